// Package http provides http transport for imports
package http

import (
	stdhttp "net/http"

	"prospector/internal/modkit/httpkit"
	svc "prospector/internal/services/api/imports/service"
)

// Register mounts import endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[svc.Request](r, "/people", h.people)
	httpkit.PostJSON[svc.Request](r, "/companies", h.companies)
}

type handlers struct{ svc svc.Service }

// @Summary Import people from the configured providers
// @Tags Imports
// @Accept json
// @Produce json
// @Param payload body service.Request true "Criteria"
// @Success 200 {object} service.Result "ok"
// @Router /imports/people [post]
func (h *handlers) people(r *stdhttp.Request, in svc.Request) (any, error) {
	return h.svc.ImportPeople(r.Context(), in)
}

// @Summary Import companies from the configured providers
// @Tags Imports
// @Accept json
// @Produce json
// @Param payload body service.Request true "Criteria"
// @Success 200 {object} service.Result "ok"
// @Router /imports/companies [post]
func (h *handlers) companies(r *stdhttp.Request, in svc.Request) (any, error) {
	return h.svc.ImportCompanies(r.Context(), in)
}
