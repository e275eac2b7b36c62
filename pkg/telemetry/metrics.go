package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/ghuser/wardrobe/catalog"

// CatalogMetrics holds the instruments recorded by the catalog service and
// the image classifier. Instruments come from the global MeterProvider, so
// they are no-ops until Setup runs.
type CatalogMetrics struct {
	commits        metric.Int64Counter
	commitFailures metric.Int64Counter
	classify       metric.Float64Histogram
}

// NewCatalogMetrics registers the catalog instruments.
func NewCatalogMetrics() (*CatalogMetrics, error) {
	m := otel.Meter(meterName)

	commits, err := m.Int64Counter("wardrobe.catalog.commits",
		metric.WithDescription("Catalog mutations persisted to the gateway"))
	if err != nil {
		return nil, err
	}
	failures, err := m.Int64Counter("wardrobe.catalog.commit_failures",
		metric.WithDescription("Catalog mutations rejected because the gateway write failed"))
	if err != nil {
		return nil, err
	}
	classify, err := m.Float64Histogram("wardrobe.classifier.duration",
		metric.WithDescription("Image classification latency"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}
	return &CatalogMetrics{commits: commits, commitFailures: failures, classify: classify}, nil
}

// Commit records one persisted mutation of the given kind.
func (m *CatalogMetrics) Commit(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.commits.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// CommitFailed records one mutation that the gateway refused.
func (m *CatalogMetrics) CommitFailed(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.commitFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// Classified records a classification attempt and its outcome.
func (m *CatalogMetrics) Classified(ctx context.Context, provider string, seconds float64, ok bool) {
	if m == nil {
		return
	}
	m.classify.Record(ctx, seconds, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.Bool("ok", ok),
	))
}
