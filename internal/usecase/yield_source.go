package usecase

import (
	"context"
	"time"

	"YieldAdvisor/internal/domain/models"
	domrepo "YieldAdvisor/internal/domain/repository"
	domsvc "YieldAdvisor/internal/domain/service"
	"YieldAdvisor/pkg/logger"
)

// YieldSource builds the per-request yield table and stamps it with the
// oracle confidence. It never fails: a broken catalog falls back to the
// static table and a broken oracle leaves confidence at zero.
type YieldSource struct {
	live    domrepo.YieldCatalog
	static  domrepo.YieldCatalog
	oracle  domsvc.PriceOracle
	feedID  string
	metrics domrepo.Metrics
	logger  *logger.Logger
}

// NewYieldSource wires the source. live may be nil when no live catalog is configured.
func NewYieldSource(live, static domrepo.YieldCatalog, oracle domsvc.PriceOracle, feedID string, metrics domrepo.Metrics, log *logger.Logger) *YieldSource {
	return &YieldSource{
		live:    live,
		static:  static,
		oracle:  oracle,
		feedID:  feedID,
		metrics: metrics,
		logger:  log,
	}
}

func (s *YieldSource) FetchYields(ctx context.Context) models.YieldSnapshot {
	records := s.baseTable(ctx)

	start := time.Now()
	quote, err := s.oracle.LatestQuote(ctx, s.feedID)
	s.metrics.RecordLatency("oracle", time.Since(start).Seconds())
	s.metrics.RecordOracle(domsvc.OracleFailureKind(err))

	confidence := 0.0
	var q *models.PriceQuote
	if err != nil {
		s.logger.Warn("price oracle unavailable, confidence defaults to zero",
			logger.String("feed_id", s.feedID),
			logger.String("kind", domsvc.OracleFailureKind(err)),
			logger.Error(err),
		)
	} else {
		confidence = quote.Confidence
		q = &quote
	}

	out := make([]models.YieldRecord, len(records))
	for i, r := range records {
		out[i] = r.WithConfidence(confidence)
	}
	return models.YieldSnapshot{Records: out, Quote: q}
}

func (s *YieldSource) baseTable(ctx context.Context) []models.YieldRecord {
	if s.live != nil {
		records, err := s.live.Yields(ctx)
		switch {
		case err != nil:
			s.logger.Warn("live yield catalog failed, using static table", logger.Error(err))
		case len(records) == 0:
			s.logger.Warn("live yield catalog empty, using static table")
		default:
			return records
		}
	}

	records, err := s.static.Yields(ctx)
	if err != nil {
		s.logger.Error("static yield catalog failed", logger.Error(err))
		return nil
	}
	return records
}
