package usecase

import (
	"context"
	"time"

	"YieldAdvisor/internal/domain/models"
	domrepo "YieldAdvisor/internal/domain/repository"
	"YieldAdvisor/pkg/logger"

	"github.com/google/uuid"
)

// Advisor runs source, selection and narration for one request.
type Advisor struct {
	source    *YieldSource
	narrator  *Narrator
	publisher domrepo.EventPublisher
	metrics   domrepo.Metrics
	logger    *logger.Logger
	now       func() time.Time
}

func NewAdvisor(source *YieldSource, narrator *Narrator, publisher domrepo.EventPublisher, metrics domrepo.Metrics, log *logger.Logger) *Advisor {
	return &Advisor{
		source:    source,
		narrator:  narrator,
		publisher: publisher,
		metrics:   metrics,
		logger:    log,
		now:       time.Now,
	}
}

// Analyze answers an analyze request. The only error it returns is
// ErrNoDataAvailable; upstream failures degrade the answer instead.
func (a *Advisor) Analyze(ctx context.Context, req models.AnalyzeRequest, includeRanked bool) (models.AnalyzeResponse, error) {
	start := time.Now()
	defer func() { a.metrics.RecordLatency("analyze", time.Since(start).Seconds()) }()

	snap := a.source.FetchYields(ctx)

	sel, err := Select(snap.Records, req.MinAPYValue())
	if err != nil {
		a.metrics.RecordAnalysis("no_data")
		a.logger.Error("no yield data available", logger.String("token", req.TokenValue()))
		return models.AnalyzeResponse{}, err
	}
	if sel.Fallback {
		a.metrics.RecordSelectorFallback()
		a.logger.Info("no record met min_apy, ranking full table",
			logger.Float64("min_apy", req.MinAPYValue()),
			logger.Int("records", len(snap.Records)),
		)
	}
	a.metrics.RecordBestAPY(sel.Best.Protocol, sel.Best.Chain, sel.Best.APY)

	message, source := a.narrator.Narrate(ctx, sel.Best)

	resp := models.AnalyzeResponse{
		Success:         true,
		BestOpportunity: sel.Best,
		Message:         message,
	}
	if includeRanked {
		resp.AllOpportunities = sel.Ranked
	}
	a.metrics.RecordAnalysis("success")

	a.publish(ctx, req, sel, source, snap.Quote != nil)
	return resp, nil
}

func (a *Advisor) publish(ctx context.Context, req models.AnalyzeRequest, sel Selection, source models.NarrationSource, oracleOK bool) {
	ev := models.AnalysisEvent{
		ID:              uuid.NewString(),
		Token:           req.TokenValue(),
		Amount:          req.AmountValue(),
		MinAPY:          req.MinAPYValue(),
		BestOpportunity: sel.Best,
		RankedCount:     len(sel.Ranked),
		FilterFallback:  sel.Fallback,
		NarrationSource: source,
		OracleOK:        oracleOK,
		CreatedAt:       a.now().UTC(),
	}
	if err := a.publisher.PublishAnalysis(ctx, ev); err != nil {
		a.logger.Warn("analysis event not published", logger.String("event_id", ev.ID), logger.Error(err))
	}
}
