package api

import (
	"net/http"

	"github.com/okian/motorcast/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthHandler answers liveness checks with the engine and ingest metrics.
type HealthHandler struct {
	exposition http.Handler
}

// NewHealthHandler builds the exposition handler over the motorcast registry
// once. Scrapers asking for OpenMetrics get it; everyone else gets text.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		exposition: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{
			EnableOpenMetrics: true,
		}),
	}
}

// HandleHealth serves GET /healthz.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.exposition.ServeHTTP(w, r)
}
