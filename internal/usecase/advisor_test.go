package usecase

import (
	"context"
	"errors"
	"testing"

	"YieldAdvisor/internal/domain/models"
	domsvc "YieldAdvisor/internal/domain/service"
	"YieldAdvisor/internal/repository"
	"YieldAdvisor/pkg/logger"
)

func f64(v float64) *float64 { return &v }

func str(v string) *string { return &v }

type advisorDeps struct {
	catalog   fakeCatalog
	oracle    fakeOracle
	gen       *fakeGenerator
	publisher *fakePublisher
	metrics   *fakeMetrics
}

func newTestAdvisor(d advisorDeps) *Advisor {
	if d.catalog.records == nil && d.catalog.err == nil {
		d.catalog.records = repository.DefaultYieldTable
	}
	log := logger.Nop()
	src := NewYieldSource(nil, d.catalog, d.oracle, "feed", d.metrics, log)
	return NewAdvisor(src, NewNarrator(d.gen, d.metrics, log), d.publisher, d.metrics, log)
}

func TestAnalyzeScenarios(t *testing.T) {
	tests := []struct {
		name       string
		minAPY     *float64
		ranked     bool
		oracle     fakeOracle
		gen        *fakeGenerator
		wantMsg    string
		wantConf   float64
		wantRanked int
		wantSource models.NarrationSource
	}{
		{
			name:       "default threshold with working upstreams",
			oracle:     fakeOracle{quote: models.PriceQuote{Confidence: 0.8}},
			gen:        &fakeGenerator{text: "Go with Morpho. Oracle is healthy."},
			wantMsg:    "Go with Morpho. Oracle is healthy.",
			wantConf:   0.8,
			wantSource: models.NarrationLLM,
		},
		{
			name:       "threshold above all records falls back to full ranking",
			minAPY:     f64(8.0),
			ranked:     true,
			oracle:     fakeOracle{quote: models.PriceQuote{Confidence: 0.8}},
			gen:        &fakeGenerator{text: "ok."},
			wantMsg:    "ok.",
			wantConf:   0.8,
			wantRanked: len(repository.DefaultYieldTable),
			wantSource: models.NarrationLLM,
		},
		{
			name:       "oracle timeout and llm failure still succeed",
			ranked:     true,
			oracle:     fakeOracle{err: domsvc.ErrOracleTimeout},
			gen:        &fakeGenerator{err: domsvc.ErrLLMUnavailable},
			wantMsg:    "AI analysis unavailable. Best yield: Morpho at 7.5% APY.",
			wantConf:   0,
			wantRanked: 3,
			wantSource: models.NarrationFallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := &fakePublisher{}
			m := newFakeMetrics()
			a := newTestAdvisor(advisorDeps{oracle: tt.oracle, gen: tt.gen, publisher: pub, metrics: m})

			req := models.AnalyzeRequest{Token: str("USDC"), Amount: f64(1000), MinAPY: tt.minAPY}
			resp, err := a.Analyze(context.Background(), req, tt.ranked)
			if err != nil {
				t.Fatalf("analyze: %v", err)
			}
			if !resp.Success {
				t.Fatalf("success = false")
			}
			if resp.BestOpportunity.Protocol != "Morpho" || resp.BestOpportunity.APY != 7.5 {
				t.Fatalf("best = %+v", resp.BestOpportunity)
			}
			if resp.BestOpportunity.PriceConfidence != tt.wantConf {
				t.Fatalf("confidence = %v, want %v", resp.BestOpportunity.PriceConfidence, tt.wantConf)
			}
			for _, r := range resp.AllOpportunities {
				if r.PriceConfidence != tt.wantConf {
					t.Fatalf("ranked record confidence = %v", r.PriceConfidence)
				}
			}
			if resp.Message != tt.wantMsg {
				t.Fatalf("message = %q, want %q", resp.Message, tt.wantMsg)
			}
			if len(resp.AllOpportunities) != tt.wantRanked {
				t.Fatalf("all_opportunities = %d, want %d", len(resp.AllOpportunities), tt.wantRanked)
			}

			if len(pub.events) != 1 {
				t.Fatalf("events = %d", len(pub.events))
			}
			ev := pub.events[0]
			if ev.ID == "" || ev.Token != "USDC" || ev.Amount != 1000 || ev.NarrationSource != tt.wantSource {
				t.Fatalf("event = %+v", ev)
			}
			if ev.OracleOK != (tt.oracle.err == nil) {
				t.Fatalf("oracle_ok = %v", ev.OracleOK)
			}
			if m.analyses["success"] != 1 {
				t.Fatalf("analyses = %v", m.analyses)
			}
		})
	}
}

func TestAnalyzeFallbackCountsSelectorFallback(t *testing.T) {
	m := newFakeMetrics()
	a := newTestAdvisor(advisorDeps{gen: &fakeGenerator{text: "x."}, publisher: &fakePublisher{}, metrics: m})

	req := models.AnalyzeRequest{Token: str("ETH"), Amount: f64(1), MinAPY: f64(50)}
	if _, err := a.Analyze(context.Background(), req, false); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if m.fallbacks != 1 {
		t.Fatalf("fallbacks = %d", m.fallbacks)
	}
}

func TestAnalyzePublishFailureIsIgnored(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	a := newTestAdvisor(advisorDeps{gen: &fakeGenerator{text: "x."}, publisher: pub, metrics: newFakeMetrics()})

	resp, err := a.Analyze(context.Background(), models.AnalyzeRequest{Token: str("USDC"), Amount: f64(1)}, false)
	if err != nil || !resp.Success {
		t.Fatalf("resp=%+v err=%v", resp, err)
	}
}

func TestAnalyzeNoData(t *testing.T) {
	m := newFakeMetrics()
	pub := &fakePublisher{}
	a := newTestAdvisor(advisorDeps{
		catalog:   fakeCatalog{err: errors.New("gone")},
		gen:       &fakeGenerator{text: "x."},
		publisher: pub,
		metrics:   m,
	})

	_, err := a.Analyze(context.Background(), models.AnalyzeRequest{Token: str("USDC"), Amount: f64(1)}, false)
	if !errors.Is(err, domsvc.ErrNoDataAvailable) {
		t.Fatalf("err = %v", err)
	}
	if len(pub.events) != 0 || m.analyses["no_data"] != 1 {
		t.Fatalf("events=%d analyses=%v", len(pub.events), m.analyses)
	}
}
