package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imbuesvc/internal/config"
	apierrors "imbuesvc/internal/errors"
	"imbuesvc/internal/services"
	"imbuesvc/internal/shared/testutil"
)

func TestHealthHandler(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	imbueService := services.NewImbueService(config.Default().Imbue, nil, nil, logger)

	tests := []struct {
		name           string
		service        *services.ImbueService
		endpoint       string
		expectedStatus int
		expectedField  string
		expectedValue  interface{}
	}{
		{"health check endpoint", imbueService, "/api/health", http.StatusOK, "status", "ok"},
		{"readiness check endpoint", imbueService, "/api/health/ready", http.StatusOK, "status", "ready"},
		{"readiness without service", nil, "/api/health/ready", http.StatusServiceUnavailable, "status", "not_ready"},
		{"liveness check endpoint", imbueService, "/api/health/live", http.StatusOK, "status", "alive"},
		{"version endpoint", imbueService, "/api/version", http.StatusOK, "version", "v1.0.0-test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(services.NewHealthService("v1.0.0-test", "", tt.service, logger), logger)
			r := chi.NewRouter()
			r.Mount("/api/health", handler.Routes())
			r.Get("/api/version", handler.Version)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.endpoint, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedValue, body[tt.expectedField])
		})
	}
}

func TestMetricsHandler(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	errorHandler := apierrors.NewErrorHandler(logger, false)

	t.Run("serves exposition", func(t *testing.T) {
		exposition := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("imbue_requests_total 1\n"))
		})
		rec := httptest.NewRecorder()
		NewMetricsHandler(exposition, errorHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "imbue_requests_total")
	})

	t.Run("disabled exporter", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewMetricsHandler(nil, errorHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "/errors/service-unavailable")
	})
}
