package repository

import (
	"context"
	"fmt"

	"YieldAdvisor/internal/domain/models"
)

// MessageWriter is the slice of pkg/kafka.Producer the publisher needs.
type MessageWriter interface {
	Publish(ctx context.Context, topic string, key []byte, value interface{}) error
	Close() error
}

// KafkaPublisher writes analysis events as JSON keyed by the recommended protocol.
type KafkaPublisher struct {
	writer MessageWriter
	topic  string
}

func NewKafkaPublisher(w MessageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: w, topic: topic}
}

func (p *KafkaPublisher) PublishAnalysis(ctx context.Context, ev models.AnalysisEvent) error {
	if err := p.writer.Publish(ctx, p.topic, []byte(ev.BestOpportunity.Protocol), ev); err != nil {
		return fmt.Errorf("publish analysis %s: %w", ev.ID, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops events. Used when the event stream is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishAnalysis(context.Context, models.AnalysisEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
