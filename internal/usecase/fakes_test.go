package usecase

import (
	"context"
	"sync"

	"YieldAdvisor/internal/domain/models"
)

type fakeCatalog struct {
	records []models.YieldRecord
	err     error
}

func (f fakeCatalog) Yields(context.Context) ([]models.YieldRecord, error) {
	return append([]models.YieldRecord(nil), f.records...), f.err
}

type fakeOracle struct {
	quote models.PriceQuote
	err   error
}

func (f fakeOracle) LatestQuote(context.Context, string) (models.PriceQuote, error) {
	if f.err != nil {
		return models.PriceQuote{}, f.err
	}
	return f.quote, nil
}

type fakeGenerator struct {
	text   string
	err    error
	prompt string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.text, f.err
}

type fakeMetrics struct {
	mu         sync.Mutex
	analyses   map[string]int
	oracle     map[string]int
	narrations map[string]int
	fallbacks  int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{
		analyses:   map[string]int{},
		oracle:     map[string]int{},
		narrations: map[string]int{},
	}
}

func (m *fakeMetrics) RecordAnalysis(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.analyses[outcome]++
}

func (m *fakeMetrics) RecordOracle(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.oracle[outcome]++
}

func (m *fakeMetrics) RecordNarration(source models.NarrationSource, kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.narrations[string(source)+"/"+kind]++
}

func (m *fakeMetrics) RecordSelectorFallback() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallbacks++
}

func (m *fakeMetrics) RecordBestAPY(string, string, float64) {}

func (m *fakeMetrics) RecordLatency(string, float64) {}

type fakePublisher struct {
	events []models.AnalysisEvent
	err    error
}

func (p *fakePublisher) PublishAnalysis(_ context.Context, ev models.AnalysisEvent) error {
	p.events = append(p.events, ev)
	return p.err
}

func (p *fakePublisher) Close() error { return nil }
