// Package service implements provider-driven imports on top of the leads port
package service

import (
	"context"

	"prospector/internal/platform/logger"
	leadsdomain "prospector/internal/services/api/leads/domain"
)

// Request is the transport shape for an import run
// Forced bypasses storage and always consults the providers
type Request struct {
	leadsdomain.SearchRequest
	Forced bool `json:"forced"`
}

// Result summarizes one import run
type Result struct {
	OK       bool   `json:"ok"`
	Imported int    `json:"imported"`
	Source   string `json:"source"`
}

// Service defines the imports service contract
type Service interface {
	ImportPeople(ctx context.Context, in Request) (Result, error)
	ImportCompanies(ctx context.Context, in Request) (Result, error)
}

// Svc implements the imports service
// it is a thin orchestration over the leads port, which already persists
// provider results on the way through
type Svc struct {
	leads leadsdomain.ServicePort
	log   logger.Logger
}

// New constructs an imports service
func New(leads leadsdomain.ServicePort) *Svc {
	if leads == nil {
		panic("imports.Service requires the leads port")
	}
	return &Svc{leads: leads, log: *logger.Named("imports")}
}

// ImportPeople pulls people matching the criteria into storage
func (s *Svc) ImportPeople(ctx context.Context, in Request) (Result, error) {
	c := in.Criteria()
	c.ForceProvider = c.ForceProvider || in.Forced

	res, err := s.leads.Search(ctx, c)
	if err != nil {
		return Result{}, err
	}
	s.log.Info().Int("imported", len(res.Items)).Str("source", res.Source).Msg("people import finished")
	return Result{OK: true, Imported: len(res.Items), Source: res.Source}, nil
}

// ImportCompanies pulls companies matching the criteria into storage
func (s *Svc) ImportCompanies(ctx context.Context, in Request) (Result, error) {
	c := in.Criteria()
	c.ForceProvider = c.ForceProvider || in.Forced

	res, err := s.leads.SearchCompanies(ctx, c)
	if err != nil {
		return Result{}, err
	}
	s.log.Info().Int("imported", len(res.Items)).Str("source", res.Source).Msg("company import finished")
	return Result{OK: true, Imported: len(res.Items), Source: res.Source}, nil
}
