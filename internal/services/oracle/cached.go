package oracle

import (
	"context"
	"encoding/json"
	"time"

	"YieldAdvisor/internal/domain/models"
	"YieldAdvisor/internal/domain/service"
	"YieldAdvisor/internal/service/cache"
	"YieldAdvisor/pkg/logger"
)

// CachedOracle is a read-through cache in front of a PriceOracle.
// Only successful quotes are stored; cache faults fall through to the oracle.
type CachedOracle struct {
	next   service.PriceOracle
	cache  cache.BytesCache
	ttl    time.Duration
	logger *logger.Logger
}

func NewCachedOracle(next service.PriceOracle, c cache.BytesCache, ttl time.Duration, log *logger.Logger) *CachedOracle {
	return &CachedOracle{next: next, cache: c, ttl: ttl, logger: log}
}

func (o *CachedOracle) LatestQuote(ctx context.Context, feedID string) (models.PriceQuote, error) {
	key := "quote:" + feedID

	b, ok, err := o.cache.GetBytes(ctx, key)
	if err != nil {
		o.logger.Warn("oracle cache read failed", logger.String("feed_id", feedID), logger.Error(err))
	}
	if ok {
		var q models.PriceQuote
		if err := json.Unmarshal(b, &q); err == nil {
			return q, nil
		}
		o.logger.Warn("oracle cache entry corrupt", logger.String("feed_id", feedID))
	}

	q, err := o.next.LatestQuote(ctx, feedID)
	if err != nil {
		return q, err
	}

	if b, err := json.Marshal(q); err == nil {
		if err := o.cache.SetBytes(ctx, key, b, o.ttl); err != nil {
			o.logger.Warn("oracle cache write failed", logger.String("feed_id", feedID), logger.Error(err))
		}
	}
	return q, nil
}
