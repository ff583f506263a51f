// Package service implements batched exports over the leads port
package service

import (
	"context"

	"prospector/internal/platform/logger"
	leadsdomain "prospector/internal/services/api/leads/domain"
)

// DefaultBatchSize applies when the caller does not size the batch
const DefaultBatchSize = 10

// Batch is one export page plus a computed next-page hint
// NextPage is present iff more rows remain past this page
type Batch[T any] struct {
	Items    []T    `json:"items"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
	Total    int64  `json:"total"`
	NextPage *int   `json:"nextPage"`
	Source   string `json:"source"`
}

// Service defines the exports service contract
type Service interface {
	LeadBatch(ctx context.Context, page, batchSize int) (Batch[leadsdomain.Lead], error)
	CompanyBatch(ctx context.Context, page, batchSize int) (Batch[leadsdomain.Company], error)
}

// Svc implements the exports service
type Svc struct {
	leads leadsdomain.ServicePort
	log   logger.Logger
}

// New constructs an exports service
func New(leads leadsdomain.ServicePort) *Svc {
	if leads == nil {
		panic("exports.Service requires the leads port")
	}
	return &Svc{leads: leads, log: *logger.Named("exports")}
}

// LeadBatch returns one lead export page
func (s *Svc) LeadBatch(ctx context.Context, page, batchSize int) (Batch[leadsdomain.Lead], error) {
	page, batchSize = clampBatch(page, batchSize)
	res, err := s.leads.PageLeads(ctx, page, batchSize)
	if err != nil {
		return Batch[leadsdomain.Lead]{}, err
	}
	return toBatch(res), nil
}

// CompanyBatch returns one company export page
func (s *Svc) CompanyBatch(ctx context.Context, page, batchSize int) (Batch[leadsdomain.Company], error) {
	page, batchSize = clampBatch(page, batchSize)
	res, err := s.leads.PageCompanies(ctx, page, batchSize)
	if err != nil {
		return Batch[leadsdomain.Company]{}, err
	}
	return toBatch(res), nil
}

func clampBatch(page, batchSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	return page, batchSize
}

func toBatch[T any](res leadsdomain.Paged[T]) Batch[T] {
	items := res.Items
	if items == nil {
		items = []T{}
	}
	return Batch[T]{
		Items:    items,
		Page:     res.Page,
		PageSize: res.PageSize,
		Total:    res.Total,
		NextPage: nextPage(res.Page, res.PageSize, res.Total),
		Source:   res.Source,
	}
}

// nextPage hints the following page iff rows remain past this one
func nextPage(page, pageSize int, total int64) *int {
	if int64(page)*int64(pageSize) < total {
		n := page + 1
		return &n
	}
	return nil
}
