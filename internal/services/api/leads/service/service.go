package service

import (
	"context"
	"time"

	"prospector/internal/core/identity"
	"prospector/internal/modkit/repokit"
	perr "prospector/internal/platform/errors"
	"prospector/internal/platform/logger"
	"prospector/internal/services/api/leads/domain"
	"prospector/internal/services/api/leads/repo"
)

// Service defines the leads service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the leads service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	router *Router
	log    logger.Logger
	now    func() time.Time
}

// New constructs a leads service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], router *Router) *Svc {
	if db == nil {
		panic("leads.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("leads.Service requires a non nil Repo binder")
	}
	if router == nil {
		panic("leads.Service requires a non nil provider Router")
	}
	return &Svc{
		Repo:   binder.Bind(db),
		binder: binder,
		db:     db,
		router: router,
		log:    *logger.Named("leads"),
		now:    time.Now,
	}
}

// Search serves from storage first and falls back to the provider router
// a storage hit never consults a provider; provider results are persisted
// back so an identical query becomes a storage hit next time
func (s *Svc) Search(ctx context.Context, c domain.SearchCriteria) (domain.Paged[domain.Lead], error) {
	c = c.Clamped()

	if !c.ForceProvider {
		stored, err := s.Repo.Search(ctx, c)
		if err != nil {
			return domain.Paged[domain.Lead]{}, err
		}
		if len(stored.Items) > 0 {
			return stored, nil
		}
	}

	fetched := s.router.Search(ctx, c)
	if len(fetched.Items) > 0 {
		// persistence failure must not fail the search; the result stands either way
		if _, err := s.UpsertLeads(ctx, fetched.Items); err != nil {
			s.log.Warn().Err(err).Int("count", len(fetched.Items)).Msg("persisting provider results failed")
		}
	}
	return fetched, nil
}

// SearchCompanies routes a company search to the providers and persists any results
func (s *Svc) SearchCompanies(ctx context.Context, c domain.SearchCriteria) (domain.Paged[domain.Company], error) {
	c = c.Clamped()
	fetched := s.router.SearchCompanies(ctx, c)
	if len(fetched.Items) > 0 {
		if _, err := s.UpsertCompanies(ctx, fetched.Items); err != nil {
			s.log.Warn().Err(err).Int("count", len(fetched.Items)).Msg("persisting provider companies failed")
		}
	}
	return fetched, nil
}

// GetByID fetches one lead by its stable id
func (s *Svc) GetByID(ctx context.Context, id string) (domain.Lead, error) {
	if id == "" {
		return domain.Lead{}, perr.InvalidArgf("lead id is required")
	}
	return s.Repo.GetByID(ctx, id)
}

// UpsertLeads reconciles a batch of leads, one document per transaction
// the batch is unordered and partial success is expected: one failing
// document does not block the rest
func (s *Svc) UpsertLeads(ctx context.Context, leads []domain.Lead) ([]string, error) {
	if len(leads) == 0 {
		return nil, perr.Validationf("leads batch is empty")
	}

	now := s.now().UTC()
	ids := make([]string, 0, len(leads))
	var firstErr error

	for i := range leads {
		lead := leads[i]
		key := identity.Resolve(lead.ID, lead.Contact.WorkEmail, lead.Person.ProfileURL, lead.Company.Domain)

		var id string
		err := s.db.Tx(ctx, func(q repokit.Queryer) error {
			var err error
			id, err = s.binder.Bind(q).UpsertLead(ctx, key, lead, now)
			return err
		})
		if err != nil {
			s.log.Warn().Err(err).Str("match", key.Kind.String()).Msg("lead upsert failed")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		ids = append(ids, id)
	}

	if len(ids) == 0 && firstErr != nil {
		return nil, firstErr
	}
	return ids, nil
}

// UpsertCompanies reconciles a batch of companies keyed on domain
func (s *Svc) UpsertCompanies(ctx context.Context, companies []domain.Company) ([]string, error) {
	if len(companies) == 0 {
		return nil, perr.Validationf("companies batch is empty")
	}

	now := s.now().UTC()
	ids := make([]string, 0, len(companies))
	var firstErr error

	for i := range companies {
		company := companies[i]

		var id string
		err := s.db.Tx(ctx, func(q repokit.Queryer) error {
			var err error
			id, err = s.binder.Bind(q).UpsertCompany(ctx, company, now)
			return err
		})
		if err != nil {
			s.log.Warn().Err(err).Str("domain", company.Domain).Msg("company upsert failed")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		ids = append(ids, id)
	}

	if len(ids) == 0 && firstErr != nil {
		return nil, firstErr
	}
	return ids, nil
}

// PageLeads returns one stored lead batch for exports
func (s *Svc) PageLeads(ctx context.Context, page, pageSize int) (domain.Paged[domain.Lead], error) {
	if page < 1 {
		page = domain.DefaultPage
	}
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}
	items, total, err := s.Repo.PageLeads(ctx, page, pageSize)
	if err != nil {
		return domain.Paged[domain.Lead]{}, err
	}
	if items == nil {
		items = []domain.Lead{}
	}
	return domain.Paged[domain.Lead]{
		Items:     items,
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		FromCache: true,
		Source:    "DB",
	}, nil
}

// PageCompanies returns one stored company batch for exports
func (s *Svc) PageCompanies(ctx context.Context, page, pageSize int) (domain.Paged[domain.Company], error) {
	if page < 1 {
		page = domain.DefaultPage
	}
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}
	items, total, err := s.Repo.PageCompanies(ctx, page, pageSize)
	if err != nil {
		return domain.Paged[domain.Company]{}, err
	}
	if items == nil {
		items = []domain.Company{}
	}
	return domain.Paged[domain.Company]{
		Items:     items,
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		FromCache: true,
		Source:    "DB",
	}, nil
}
