// Package http provides http transport for sequences
package http

import (
	stdhttp "net/http"
	"strconv"

	"prospector/internal/modkit/httpkit"
	"prospector/internal/services/api/sequences/domain"
	svc "prospector/internal/services/api/sequences/service"

	"github.com/go-chi/chi/v5"
)

// Register mounts sequence endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.CreateRequest](r, "/", h.create)
	httpkit.Get(r, "/", h.page)
	httpkit.Get(r, "/{id}", h.getByID)

	// synchronous first-step fan-out
	httpkit.PostJSON[domain.StartRequest](r, "/start", h.start)
}

type handlers struct{ svc svc.Service }

// @Summary Create an outreach sequence
// @Tags Sequences
// @Accept json
// @Produce json
// @Param payload body domain.CreateRequest true "Sequence"
// @Success 201 {object} domain.Sequence "created"
// @Router /sequences [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateRequest) (any, error) {
	seq, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(seq), nil
}

// @Summary List sequences newest first
// @Tags Sequences
// @Produce json
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} httpkit.Envelope "ok"
// @Router /sequences [get]
func (h *handlers) page(r *stdhttp.Request) (any, error) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	items, total, err := h.svc.Page(r.Context(), page, size)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 25
	}
	return httpkit.List(items, total, page, size, "DB"), nil
}

// @Summary Get one sequence by id
// @Tags Sequences
// @Produce json
// @Param id path string true "Sequence id"
// @Success 200 {object} domain.Sequence "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /sequences/{id} [get]
func (h *handlers) getByID(r *stdhttp.Request) (any, error) {
	return h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
}

// @Summary Start a sequence for a batch of leads
// @Tags Sequences
// @Accept json
// @Produce json
// @Param payload body domain.StartRequest true "Target leads"
// @Success 200 {object} domain.StartSummary "ok"
// @Router /sequences/start [post]
func (h *handlers) start(r *stdhttp.Request, in domain.StartRequest) (any, error) {
	return h.svc.Start(r.Context(), in.SequenceID, in.LeadIDs)
}
