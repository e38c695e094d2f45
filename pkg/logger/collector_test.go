package logger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type recordingPublisher struct {
	mu      sync.Mutex
	topic   string
	batches [][]LogDigest
}

func (p *recordingPublisher) PublishMessage(_ context.Context, topic string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topic = topic
	p.batches = append(p.batches, payload.([]LogDigest))
	return nil
}

func TestCollectorDeduplicatesAndFlushesOnClose(t *testing.T) {
	pub := &recordingPublisher{}
	c := NewLogCollector(&CollectionConfig{
		Service:        "yield-advisor",
		TimeInterval:   time.Hour,
		CountThreshold: 10,
		Topic:          "logs",
		Publisher:      pub,
	})

	fields := map[string]interface{}{"kind": "timeout"}
	c.AddLog("error", "narration failed", fields, "usecase/narrator.go:10")
	c.AddLog("error", "narration failed", fields, "usecase/narrator.go:10")
	c.AddLog("error", "oracle failed", nil, "usecase/yield_source.go:20")

	if got := c.Pending(); got != 2 {
		t.Fatalf("pending = %d, want 2", got)
	}

	c.Close()

	pub.mu.Lock()
	defer pub.mu.Unlock()
	if pub.topic != "logs" {
		t.Fatalf("topic = %q", pub.topic)
	}
	if len(pub.batches) != 1 || len(pub.batches[0]) != 2 {
		t.Fatalf("unexpected batches: %+v", pub.batches)
	}
	for _, d := range pub.batches[0] {
		if d.Message == "narration failed" && d.Count != 2 {
			t.Fatalf("count = %d, want 2", d.Count)
		}
		if d.Service != "yield-advisor" {
			t.Fatalf("service = %q", d.Service)
		}
	}
}

func TestCollectorFlushesAtThreshold(t *testing.T) {
	pub := &recordingPublisher{}
	c := NewLogCollector(&CollectionConfig{TimeInterval: time.Hour, CountThreshold: 2, Topic: "logs", Publisher: pub})
	defer c.Close()

	c.AddLog("error", "a", nil, "x:1")
	c.AddLog("error", "b", nil, "x:2")

	if got := c.Pending(); got != 0 {
		t.Fatalf("pending = %d after threshold flush, want 0", got)
	}
}

func TestErrorFieldNil(t *testing.T) {
	k, v := Error(nil).GetKeyValue()
	if k != "error" || v != "" {
		t.Fatalf("got %q=%v", k, v)
	}
	k, v = Error(errors.New("boom")).GetKeyValue()
	if v != "boom" {
		t.Fatalf("got %q=%v", k, v)
	}
}

func TestChildLoggerAfterRemoveCollector(t *testing.T) {
	pub := &recordingPublisher{}
	parent := &Logger{zl: zerolog.Nop()}
	parent.AddCollector(&CollectionConfig{TimeInterval: time.Hour, CountThreshold: 10, Topic: "logs", Publisher: pub})
	collector := parent.collector

	child := parent.With(String("cache", "memory"))
	parent.RemoveCollector()

	child.Error("late failure", String("kind", "timeout"))

	if got := collector.Pending(); got != 0 {
		t.Fatalf("pending = %d after close, want 0", got)
	}
	pub.mu.Lock()
	defer pub.mu.Unlock()
	if len(pub.batches) != 0 {
		t.Fatalf("unexpected batches after close: %+v", pub.batches)
	}
}
