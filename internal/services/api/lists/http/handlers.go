// Package http provides http transport for prospect lists
package http

import (
	stdhttp "net/http"
	"strconv"

	"prospector/internal/modkit/httpkit"
	"prospector/internal/services/api/lists/domain"
	svc "prospector/internal/services/api/lists/service"

	"github.com/go-chi/chi/v5"
)

// Register mounts list endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.CreateRequest](r, "/", h.create)
	httpkit.Get(r, "/", h.page)
	httpkit.Get(r, "/{id}", h.getByID)

	// membership is a set: add of present and remove of absent are no-ops
	httpkit.PostJSON[domain.MembershipRequest](r, "/{id}/leads", h.addLeads)
	httpkit.DeleteJSON[domain.MembershipRequest](r, "/{id}/leads", h.removeLeads)
}

type handlers struct{ svc svc.Service }

// @Summary Create a prospect list
// @Tags Lists
// @Accept json
// @Produce json
// @Param payload body domain.CreateRequest true "List"
// @Success 201 {object} domain.ProspectList "created"
// @Router /lists [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateRequest) (any, error) {
	list, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(list), nil
}

// @Summary List prospect lists newest first
// @Tags Lists
// @Produce json
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} httpkit.Envelope "ok"
// @Router /lists [get]
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

// @Summary Get one prospect list by id
// @Tags Lists
// @Produce json
// @Param id path string true "List id"
// @Success 200 {object} domain.ProspectList "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /lists/{id} [get]
func (h *handlers) getByID(r *stdhttp.Request) (any, error) {
	return h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
}

// @Summary Add leads to a list
// @Tags Lists
// @Accept json
// @Produce json
// @Param id path string true "List id"
// @Param payload body domain.MembershipRequest true "Lead ids"
// @Success 200 {object} domain.ProspectList "ok"
// @Router /lists/{id}/leads [post]
func (h *handlers) addLeads(r *stdhttp.Request, in domain.MembershipRequest) (any, error) {
	return h.svc.AddLeads(r.Context(), chi.URLParam(r, "id"), in.LeadIDs)
}

// @Summary Remove leads from a list
// @Tags Lists
// @Accept json
// @Produce json
// @Param id path string true "List id"
// @Param payload body domain.MembershipRequest true "Lead ids"
// @Success 200 {object} domain.ProspectList "ok"
// @Router /lists/{id}/leads [delete]
func (h *handlers) removeLeads(r *stdhttp.Request, in domain.MembershipRequest) (any, error) {
	return h.svc.RemoveLeads(r.Context(), chi.URLParam(r, "id"), in.LeadIDs)
}
