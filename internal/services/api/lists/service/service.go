// Package service implements prospect list management
package service

import (
	"context"
	"time"

	"prospector/internal/modkit/repokit"
	perr "prospector/internal/platform/errors"
	"prospector/internal/platform/logger"
	pstr "prospector/internal/platform/strings"
	"prospector/internal/services/api/lists/domain"
	"prospector/internal/services/api/lists/repo"

	"github.com/google/uuid"
)

// Service defines the lists service contract
type Service interface {
	Create(ctx context.Context, in domain.CreateRequest) (domain.ProspectList, error)
	GetByID(ctx context.Context, id string) (domain.ProspectList, error)
	Page(ctx context.Context, page, pageSize int) ([]domain.ProspectList, int64, error)
	AddLeads(ctx context.Context, listID string, leadIDs []string) (domain.ProspectList, error)
	RemoveLeads(ctx context.Context, listID string, leadIDs []string) (domain.ProspectList, error)
}

// Svc implements the lists service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	log    logger.Logger
	now    func() time.Time
}

// New constructs a lists service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("lists.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("lists.Service requires a non nil Repo binder")
	}
	return &Svc{
		Repo:   binder.Bind(db),
		binder: binder,
		db:     db,
		log:    *logger.Named("lists"),
		now:    time.Now,
	}
}

// Create stores a new empty list
func (s *Svc) Create(ctx context.Context, in domain.CreateRequest) (domain.ProspectList, error) {
	if pstr.Blank(in.Name) {
		return domain.ProspectList{}, perr.Validationf("list name is required")
	}
	list := domain.ProspectList{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		LeadIDs:     []string{},
		CreatedAt:   s.now().UTC(),
	}
	if err := s.Repo.Insert(ctx, list); err != nil {
		return domain.ProspectList{}, err
	}
	return list, nil
}

// GetByID fetches one list by id
func (s *Svc) GetByID(ctx context.Context, id string) (domain.ProspectList, error) {
	if pstr.Blank(id) {
		return domain.ProspectList{}, perr.InvalidArgf("list id is required")
	}
	return s.Repo.GetByID(ctx, id)
}

// Page returns lists newest first
func (s *Svc) Page(ctx context.Context, page, pageSize int) ([]domain.ProspectList, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 25
	}
	items, total, err := s.Repo.Page(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []domain.ProspectList{}
	}
	return items, total, nil
}

// AddLeads adds ids to the membership set; present ids are no-ops
func (s *Svc) AddLeads(ctx context.Context, listID string, leadIDs []string) (domain.ProspectList, error) {
	return s.updateMembership(ctx, listID, leadIDs, domain.AddIDs)
}

// RemoveLeads removes ids from the membership set; absent ids are no-ops
func (s *Svc) RemoveLeads(ctx context.Context, listID string, leadIDs []string) (domain.ProspectList, error) {
	return s.updateMembership(ctx, listID, leadIDs, domain.RemoveIDs)
}

// updateMembership applies one set operation read-modify-write in a transaction
func (s *Svc) updateMembership(
	ctx context.Context,
	listID string,
	leadIDs []string,
	apply func(existing, change []string) []string,
) (domain.ProspectList, error) {
	if pstr.Blank(listID) {
		return domain.ProspectList{}, perr.InvalidArgf("list id is required")
	}
	if len(leadIDs) == 0 {
		return domain.ProspectList{}, perr.Validationf("lead ids are required")
	}

	var out domain.ProspectList
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		list, err := r.GetByID(ctx, listID)
		if err != nil {
			return err
		}
		list.LeadIDs = apply(list.LeadIDs, leadIDs)
		if err := r.SetLeadIDs(ctx, listID, list.LeadIDs); err != nil {
			return err
		}
		out = list
		return nil
	})
	if err != nil {
		return domain.ProspectList{}, err
	}
	return out, nil
}
