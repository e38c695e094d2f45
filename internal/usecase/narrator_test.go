package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"YieldAdvisor/internal/domain/models"
	domsvc "YieldAdvisor/internal/domain/service"
	"YieldAdvisor/pkg/logger"
)

var morpho = models.YieldRecord{Protocol: "Morpho", Chain: "base", APY: 7.5, TVL: 300_000, PriceConfidence: 1.25}

func TestNarrateUsesModelText(t *testing.T) {
	gen := &fakeGenerator{text: "Morpho on Base offers 7.5%. The oracle is tight."}
	m := newFakeMetrics()

	text, source := NewNarrator(gen, m, logger.Nop()).Narrate(context.Background(), morpho)
	if text != gen.text || source != models.NarrationLLM {
		t.Fatalf("text=%q source=%s", text, source)
	}
	for _, want := range []string{"Protocol: Morpho", "Chain: base", "APY: 7.5%", "TVL: $300000.0", "1.25", "2-sentence", "oracle"} {
		if !strings.Contains(gen.prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, gen.prompt)
		}
	}
	if m.narrations["llm/ok"] != 1 {
		t.Fatalf("metrics = %v", m.narrations)
	}
}

func TestNarrateFallback(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     string
		record   models.YieldRecord
		wantText string
	}{
		{
			name:     "auth",
			err:      domsvc.ErrLLMAuth,
			kind:     "auth",
			record:   morpho,
			wantText: "AI analysis unavailable. Best yield: Morpho at 7.5% APY.",
		},
		{
			name:     "timeout with whole apy",
			err:      context.DeadlineExceeded,
			kind:     "timeout",
			record:   models.YieldRecord{Protocol: "Aave V3", APY: 5},
			wantText: "AI analysis unavailable. Best yield: Aave V3 at 5.0% APY.",
		},
		{
			name:     "rate limited",
			err:      domsvc.ErrLLMRateLimited,
			kind:     "rate_limited",
			record:   models.YieldRecord{Protocol: "Compound V3", APY: 6.8},
			wantText: "AI analysis unavailable. Best yield: Compound V3 at 6.8% APY.",
		},
		{
			name:     "malformed",
			err:      domsvc.ErrLLMMalformed,
			kind:     "malformed",
			record:   morpho,
			wantText: "AI analysis unavailable. Best yield: Morpho at 7.5% APY.",
		},
		{
			name:     "unclassified",
			err:      errors.New("connection reset"),
			kind:     "unavailable",
			record:   morpho,
			wantText: "AI analysis unavailable. Best yield: Morpho at 7.5% APY.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newFakeMetrics()
			text, source := NewNarrator(&fakeGenerator{err: tt.err}, m, logger.Nop()).Narrate(context.Background(), tt.record)
			if text != tt.wantText {
				t.Fatalf("text = %q, want %q", text, tt.wantText)
			}
			if source != models.NarrationFallback {
				t.Fatalf("source = %s", source)
			}
			if m.narrations["fallback/"+tt.kind] != 1 {
				t.Fatalf("metrics = %v, want kind %s", m.narrations, tt.kind)
			}
		})
	}
}
