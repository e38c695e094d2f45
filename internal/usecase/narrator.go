package usecase

import (
	"context"
	"fmt"
	"time"

	"YieldAdvisor/internal/domain/models"
	domrepo "YieldAdvisor/internal/domain/repository"
	domsvc "YieldAdvisor/internal/domain/service"
	"YieldAdvisor/pkg/logger"
	"YieldAdvisor/pkg/util"
)

// Narrator turns the selected record into a short recommendation.
type Narrator struct {
	gen     domsvc.TextGenerator
	metrics domrepo.Metrics
	logger  *logger.Logger
}

func NewNarrator(gen domsvc.TextGenerator, metrics domrepo.Metrics, log *logger.Logger) *Narrator {
	return &Narrator{gen: gen, metrics: metrics, logger: log}
}

// Narrate never fails: any generator error yields FallbackMessage.
func (n *Narrator) Narrate(ctx context.Context, best models.YieldRecord) (string, models.NarrationSource) {
	start := time.Now()
	text, err := n.gen.Generate(ctx, BuildPrompt(best))
	n.metrics.RecordLatency("narrate", time.Since(start).Seconds())

	if err != nil {
		kind := domsvc.LLMFailureKind(err)
		n.metrics.RecordNarration(models.NarrationFallback, kind)
		n.logger.Warn("narration failed, using fallback message",
			logger.String("kind", kind),
			logger.String("protocol", best.Protocol),
			logger.Error(err),
		)
		return FallbackMessage(best), models.NarrationFallback
	}

	n.metrics.RecordNarration(models.NarrationLLM, "ok")
	return text, models.NarrationLLM
}

// BuildPrompt renders the recommendation prompt for r.
func BuildPrompt(r models.YieldRecord) string {
	return fmt.Sprintf(`Analyze this DeFi yield opportunity:
Protocol: %s
Chain: %s
APY: %s%%
TVL: $%s
Price confidence (oracle): %s

Consider the reliability of the oracle price data and provide a brief 2-sentence recommendation.`,
		r.Protocol,
		r.Chain,
		util.FormatDecimal(r.APY),
		util.FormatDecimal(r.TVL),
		util.FormatDecimal(r.PriceConfidence),
	)
}

// FallbackMessage is returned whenever the model cannot be reached.
func FallbackMessage(r models.YieldRecord) string {
	return fmt.Sprintf("AI analysis unavailable. Best yield: %s at %s%% APY.", r.Protocol, util.FormatDecimal(r.APY))
}
