// Package http provides http transport for leads
package http

import (
	stdhttp "net/http"

	"prospector/internal/modkit/httpkit"
	"prospector/internal/services/api/leads/domain"
	svc "prospector/internal/services/api/leads/service"

	"github.com/go-chi/chi/v5"
)

// Register mounts lead endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// storage-first search with provider fallback
	httpkit.PostJSON[domain.SearchRequest](r, "/search", h.search)

	// single lead lookup
	httpkit.Get(r, "/{id}", h.getByID)

	// batch identity reconciliation
	httpkit.PostJSON[domain.UpsertLeadsRequest](r, "/upsert", h.upsert)
}

type handlers struct{ svc svc.Service }

// @Summary Search leads with storage-first fallback to providers
// @Tags Leads
// @Accept json
// @Produce json
// @Param payload body domain.SearchRequest true "Criteria"
// @Success 200 {object} domain.Paged[domain.Lead] "ok"
// @Router /leads/search [post]
func (h *handlers) search(r *stdhttp.Request, in domain.SearchRequest) (any, error) {
	return h.svc.Search(r.Context(), in.Criteria())
}

// @Summary Get one lead by id
// @Tags Leads
// @Produce json
// @Param id path string true "Lead id"
// @Success 200 {object} domain.Lead "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /leads/{id} [get]
func (h *handlers) getByID(r *stdhttp.Request) (any, error) {
	return h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
}

// @Summary Upsert a batch of leads with identity reconciliation
// @Tags Leads
// @Accept json
// @Produce json
// @Param payload body domain.UpsertLeadsRequest true "Batch"
// @Success 200 {object} domain.UpsertResponse "ok"
// @Router /leads/upsert [post]
func (h *handlers) upsert(r *stdhttp.Request, in domain.UpsertLeadsRequest) (any, error) {
	ids, err := h.svc.UpsertLeads(r.Context(), in.Leads)
	if err != nil {
		return nil, err
	}
	return domain.UpsertResponse{IDs: ids, Count: len(ids)}, nil
}
