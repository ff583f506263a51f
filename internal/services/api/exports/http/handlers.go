// Package http provides http transport for exports
package http

import (
	stdhttp "net/http"
	"strconv"

	"prospector/internal/modkit/httpkit"
	svc "prospector/internal/services/api/exports/service"
)

// Register mounts export endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/leads", h.leads)
	httpkit.Get(r, "/companies", h.companies)
}

type handlers struct{ svc svc.Service }

func batchParams(r *stdhttp.Request) (page, size int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	size, _ = strconv.Atoi(r.URL.Query().Get("batchSize"))
	return page, size
}

// @Summary Export one lead batch
// @Tags Exports
// @Produce json
// @Param page query int false "Page"
// @Param batchSize query int false "Batch size (default 10)"
// @Success 200 {object} httpkit.Envelope "ok"
// @Router /exports/leads [get]
func (h *handlers) leads(r *stdhttp.Request) (any, error) {
	page, size := batchParams(r)
	return h.svc.LeadBatch(r.Context(), page, size)
}

// @Summary Export one company batch
// @Tags Exports
// @Produce json
// @Param page query int false "Page"
// @Param batchSize query int false "Batch size (default 10)"
// @Success 200 {object} httpkit.Envelope "ok"
// @Router /exports/companies [get]
func (h *handlers) companies(r *stdhttp.Request) (any, error) {
	page, size := batchParams(r)
	return h.svc.CompanyBatch(r.Context(), page, size)
}
