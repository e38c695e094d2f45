package repository

import (
	"context"

	"YieldAdvisor/internal/domain/models"
)

// YieldCatalog supplies the base yield table before oracle enrichment.
type YieldCatalog interface {
	Yields(ctx context.Context) ([]models.YieldRecord, error)
}

// EventPublisher emits completed analyses to downstream consumers.
type EventPublisher interface {
	PublishAnalysis(ctx context.Context, ev models.AnalysisEvent) error
	Close() error
}

// Metrics records advisor-level observations.
type Metrics interface {
	RecordAnalysis(outcome string)
	RecordOracle(outcome string)
	RecordNarration(source models.NarrationSource, kind string)
	RecordSelectorFallback()
	RecordBestAPY(protocol, chain string, apy float64)
	RecordLatency(op string, seconds float64)
}
