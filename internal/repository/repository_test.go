package repository

import (
	"context"
	"errors"
	"testing"

	"YieldAdvisor/internal/domain/models"
)

func TestStaticCatalogDefaultsAndCopies(t *testing.T) {
	c := NewStaticCatalog(nil)
	got, err := c.Yields(context.Background())
	if err != nil {
		t.Fatalf("yields: %v", err)
	}
	if len(got) != len(DefaultYieldTable) {
		t.Fatalf("len = %d, want %d", len(got), len(DefaultYieldTable))
	}

	got[0].PriceConfidence = 42
	again, _ := c.Yields(context.Background())
	if again[0].PriceConfidence != 0 {
		t.Fatalf("catalog state leaked through returned slice")
	}
}

func TestStaticCatalogCustomTable(t *testing.T) {
	in := []models.YieldRecord{{Protocol: "Morpho", Chain: "base", APY: 7.5, TVL: 300_000}}
	c := NewStaticCatalog(in)
	in[0].APY = 99

	got, _ := c.Yields(context.Background())
	if len(got) != 1 || got[0].APY != 7.5 {
		t.Fatalf("got %+v", got)
	}
}

type recordingWriter struct {
	topic string
	key   []byte
	value interface{}
	err   error
}

func (w *recordingWriter) Publish(_ context.Context, topic string, key []byte, value interface{}) error {
	w.topic, w.key, w.value = topic, key, value
	return w.err
}

func (w *recordingWriter) Close() error { return nil }

func TestKafkaPublisher(t *testing.T) {
	w := &recordingWriter{}
	p := NewKafkaPublisher(w, "analyses")
	ev := models.AnalysisEvent{ID: "abc", BestOpportunity: models.YieldRecord{Protocol: "Morpho"}}

	if err := p.PublishAnalysis(context.Background(), ev); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if w.topic != "analyses" || string(w.key) != "Morpho" {
		t.Fatalf("topic=%s key=%s", w.topic, w.key)
	}
	if got, ok := w.value.(models.AnalysisEvent); !ok || got.ID != "abc" {
		t.Fatalf("value = %#v", w.value)
	}

	w.err = errors.New("broker down")
	if err := p.PublishAnalysis(context.Background(), ev); !errors.Is(err, w.err) {
		t.Fatalf("err = %v", err)
	}
}
