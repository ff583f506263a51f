package domain

import "context"

// Provider is one external people/company data source
// implementations absorb their own transport failures and return empty pages
type Provider interface {
	Name() string
	Search(ctx context.Context, c SearchCriteria) Paged[Lead]
	SearchCompanies(ctx context.Context, c SearchCriteria) Paged[Company]
}

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Search(ctx context.Context, c SearchCriteria) (Paged[Lead], error)
	SearchCompanies(ctx context.Context, c SearchCriteria) (Paged[Company], error)
	GetByID(ctx context.Context, id string) (Lead, error)
	UpsertLeads(ctx context.Context, leads []Lead) ([]string, error)
	UpsertCompanies(ctx context.Context, companies []Company) ([]string, error)
	PageLeads(ctx context.Context, page, pageSize int) (Paged[Lead], error)
	PageCompanies(ctx context.Context, page, pageSize int) (Paged[Company], error)
}
