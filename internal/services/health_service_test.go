package services

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"imbuesvc/internal/shared/testutil"
)

func TestHealthService_HealthCheck(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	hs := NewHealthService("v1.0.0-test", "https://example.com/imbue", newTestImbueService(t, testImbueConfig()), logger)

	status := hs.HealthCheck(context.Background())
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "v1.0.0-test", status.Version)
	assert.False(t, status.Timestamp.IsZero())
}

func TestHealthService_ReadinessCheck(t *testing.T) {
	tests := []struct {
		name       string
		service    *ImbueService
		wantStatus string
		wantImbue  string
	}{
		{
			name:       "ready with imbue service",
			service:    newTestImbueService(t, testImbueConfig()),
			wantStatus: "ready",
			wantImbue:  "ready",
		},
		{
			name:       "not ready without imbue service",
			service:    nil,
			wantStatus: "not_ready",
			wantImbue:  "not_ready",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			hs := NewHealthService("v1", "", tt.service, logger)

			status := hs.ReadinessCheck(context.Background())
			assert.Equal(t, tt.wantStatus, status.Status)

			imbueHealth, ok := status.Services["imbue"].(ServiceHealth)
			assert.True(t, ok)
			assert.Equal(t, tt.wantImbue, imbueHealth.Status)
		})
	}
}

func TestHealthService_ReadinessProbeUsesGuards(t *testing.T) {
	cfg := testImbueConfig()
	cfg.MaxDatasetSize = 1

	logger, _ := testutil.NewTestLogger(t)
	hs := NewHealthService("v1", "", newTestImbueService(t, cfg), logger)

	status := hs.ReadinessCheck(context.Background())
	assert.Equal(t, "not_ready", status.Status)

	imbueHealth := status.Services["imbue"].(ServiceHealth)
	assert.Contains(t, imbueHealth.Message, "dataset too large")
}

func TestHealthService_LivenessAndVersion(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	hs := NewHealthServiceWithBuildInfo("v2", "https://example.com/imbue", "2026-01-01", "abc123", nil, logger)

	live := hs.LivenessCheck(context.Background())
	assert.Equal(t, "alive", live.Status)
	assert.Equal(t, runtime.Version(), live.Runtime["go_version"])

	version := hs.Version()
	assert.Equal(t, "v2", version["version"])
	assert.Equal(t, "https://example.com/imbue", version["repo_url"])
	assert.Equal(t, "2026-01-01", version["build_time"])
	assert.Equal(t, "abc123", version["build_id"])
	assert.Equal(t, "v1", version["api_version"])
	assert.Equal(t, false, version["prerelease"])
}
