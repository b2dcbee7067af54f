package http

import (
	"net/http"

	apierrors "imbuesvc/internal/errors"
)

// MetricsHandler serves the Prometheus exposition of the otel meter
type MetricsHandler struct {
	exposition   http.Handler
	errorHandler *apierrors.ErrorHandler
}

// NewMetricsHandler creates a new metrics handler. A nil exposition handler
// means the metric exporter is disabled.
func NewMetricsHandler(exposition http.Handler, errorHandler *apierrors.ErrorHandler) *MetricsHandler {
	return &MetricsHandler{
		exposition:   exposition,
		errorHandler: errorHandler,
	}
}

// ServeHTTP handles GET /metrics
func (h *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.exposition == nil {
		unavailable := *apierrors.ErrServiceUnavailable
		unavailable.Message = "Metrics exporter is disabled"
		unavailable.Details = map[string]string{"hint": "set IMBUE_TELEMETRY_METRIC_EXPORTER=prometheus"}
		h.errorHandler.HandleError(w, r, &unavailable)
		return
	}
	h.exposition.ServeHTTP(w, r)
}
