package service

import (
	"context"

	"YieldAdvisor/internal/domain/models"
)

// PriceOracle returns the latest quote for a price feed.
type PriceOracle interface {
	LatestQuote(ctx context.Context, feedID string) (models.PriceQuote, error)
}

// TextGenerator runs a single-prompt completion against a language model.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
