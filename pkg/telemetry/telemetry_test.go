package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/wardrobe/pkg/config"
)

func baseConfig() *config.Config {
	return &config.Config{
		ServiceName:    "test-service",
		ServiceVersion: "test",
		Environment:    "testing",
		OtelEndpoint:   "", // disabled
	}
}

func TestSetup_NoOtelEndpoint(t *testing.T) {
	shutdown, handler, err := Setup(context.Background(), baseConfig())
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	require.NotNil(t, handler, "metrics handler")
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_MetricsHandlerServesPrometheusFormat(t *testing.T) {
	_, handler, err := Setup(context.Background(), baseConfig())
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", http.NoBody))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/plain")
}

func TestCatalogMetrics_RecordsWithoutProvider(t *testing.T) {
	m, err := NewCatalogMetrics()
	require.NoError(t, err)
	ctx := context.Background()
	assert.NotPanics(t, func() {
		m.Commit(ctx, "item.added")
		m.CommitFailed(ctx, "item.added")
		m.Classified(ctx, "palette", 0.01, true)
	})
}

func TestCatalogMetrics_NilIsNoop(t *testing.T) {
	var m *CatalogMetrics
	assert.NotPanics(t, func() {
		m.Commit(context.Background(), "item.added")
		m.Classified(context.Background(), "gemini", 1, false)
	})
}

func TestCaptureError_NoopWithoutSentry(t *testing.T) {
	assert.NotPanics(t, func() {
		CaptureError(context.Background(), nil)
		CaptureError(context.Background(), http.ErrHandlerTimeout)
	})
}

func TestSetup_MetricsIncludeRuntimeAndCatalogInstruments(t *testing.T) {
	shutdown, handler, err := Setup(context.Background(), baseConfig())
	require.NoError(t, err)
	defer shutdown(context.Background()) //nolint:errcheck

	m, err := NewCatalogMetrics()
	require.NoError(t, err)
	m.Commit(context.Background(), "item.added")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", http.NoBody))
	body := rr.Body.String()
	for _, want := range []string{"go_goroutines", "wardrobe_catalog_commits"} {
		assert.Contains(t, body, want)
	}
}
