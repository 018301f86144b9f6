package handlers

import (
	"github.com/weathersage/sage"
	"github.com/weathersage/sage/pkg/query"
)

// APIHandler exposes the query procedures over HTTP.
type APIHandler struct {
	router   *query.Router
	endpoint string
}

// NewAPIHandler mounts router at query.DefaultEndpoint.
func NewAPIHandler(router *query.Router) *APIHandler {
	return &APIHandler{router: router, endpoint: query.DefaultEndpoint}
}

// Routes mounts the query API.
func (h *APIHandler) Routes(r sage.Router) {
	r.Mount(h.endpoint, h.router.Handler())
}
