package module

import (
	"context"

	"prospector/internal/services/api/leads/domain"
	leadssvc "prospector/internal/services/api/leads/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptLeadsPort struct{ svc leadssvc.Service }

// Search runs the storage-first search with provider fallback
func (a adaptLeadsPort) Search(ctx context.Context, c domain.SearchCriteria) (domain.Paged[domain.Lead], error) {
	return a.svc.Search(ctx, c)
}

// SearchCompanies routes a company search to the providers
func (a adaptLeadsPort) SearchCompanies(
	ctx context.Context,
	c domain.SearchCriteria,
) (domain.Paged[domain.Company], error) {
	return a.svc.SearchCompanies(ctx, c)
}

// GetByID fetches one lead
func (a adaptLeadsPort) GetByID(ctx context.Context, id string) (domain.Lead, error) {
	return a.svc.GetByID(ctx, id)
}

// UpsertLeads reconciles a lead batch
func (a adaptLeadsPort) UpsertLeads(ctx context.Context, leads []domain.Lead) ([]string, error) {
	return a.svc.UpsertLeads(ctx, leads)
}

// UpsertCompanies reconciles a company batch
func (a adaptLeadsPort) UpsertCompanies(ctx context.Context, companies []domain.Company) ([]string, error) {
	return a.svc.UpsertCompanies(ctx, companies)
}

// PageLeads returns one stored lead batch
func (a adaptLeadsPort) PageLeads(ctx context.Context, page, pageSize int) (domain.Paged[domain.Lead], error) {
	return a.svc.PageLeads(ctx, page, pageSize)
}

// PageCompanies returns one stored company batch
func (a adaptLeadsPort) PageCompanies(ctx context.Context, page, pageSize int) (domain.Paged[domain.Company], error) {
	return a.svc.PageCompanies(ctx, page, pageSize)
}
