// Package service contains the lead search orchestration and upsert reconciliation workflows
package service

import (
	"context"

	perr "prospector/internal/platform/errors"
	"prospector/internal/services/api/leads/domain"
)

// SelectionPolicy decides how the router combines results across providers
type SelectionPolicy interface {
	Select(ctx context.Context, providers []domain.Provider, c domain.SearchCriteria) domain.Paged[domain.Lead]
}

// FirstMatch returns the first provider's non-empty page, favoring latency over completeness
type FirstMatch struct{}

// Select iterates providers in configured order and stops at the first page with items
// when every provider comes back empty the result is tagged with the first provider's
// name so diagnostics stay deterministic
func (FirstMatch) Select(
	ctx context.Context,
	providers []domain.Provider,
	c domain.SearchCriteria,
) domain.Paged[domain.Lead] {
	for _, p := range providers {
		res := p.Search(ctx, c)
		if len(res.Items) > 0 {
			res.FromCache = false
			res.Source = p.Name()
			return res
		}
	}
	return domain.Empty[domain.Lead](c, providers[0].Name())
}

// Aggregate concatenates every provider's page into one result
// kept as the documented alternative policy; not wired by default
type Aggregate struct{}

// Select collects items from all providers in order and sums totals
func (Aggregate) Select(
	ctx context.Context,
	providers []domain.Provider,
	c domain.SearchCriteria,
) domain.Paged[domain.Lead] {
	out := domain.Empty[domain.Lead](c, providers[0].Name())
	for _, p := range providers {
		res := p.Search(ctx, c)
		if len(res.Items) == 0 {
			continue
		}
		if len(out.Items) == 0 {
			out.Source = p.Name()
		}
		out.Items = append(out.Items, res.Items...)
		out.Total += res.Total
	}
	return out
}

// Router fans a search out over an ordered list of providers under a selection policy
type Router struct {
	providers []domain.Provider
	policy    SelectionPolicy
}

// NewRouter builds a Router; zero providers is a fatal configuration error
func NewRouter(providers []domain.Provider, policy SelectionPolicy) (*Router, error) {
	if len(providers) == 0 {
		return nil, perr.New(perr.ErrorCodeInvalidArgument, "router requires at least one provider")
	}
	if policy == nil {
		policy = FirstMatch{}
	}
	return &Router{providers: providers, policy: policy}, nil
}

// Search applies the selection policy over the configured providers
func (r *Router) Search(ctx context.Context, c domain.SearchCriteria) domain.Paged[domain.Lead] {
	return r.policy.Select(ctx, r.providers, c)
}

// SearchCompanies routes a company search with first-match semantics
func (r *Router) SearchCompanies(ctx context.Context, c domain.SearchCriteria) domain.Paged[domain.Company] {
	for _, p := range r.providers {
		res := p.SearchCompanies(ctx, c)
		if len(res.Items) > 0 {
			res.FromCache = false
			res.Source = p.Name()
			return res
		}
	}
	return domain.Empty[domain.Company](c, r.providers[0].Name())
}
