// Package kafka publishes catalog diagnostics to a Kafka topic so downstream
// tooling can track rejected rows and load outcomes.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/meeting-locator/internal/domain"
)

// Publisher produces diagnostic records to a Kafka topic.
// It implements domain.DiagnosticSink.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the diagnostics topic.
func NewPublisher(brokers []string, topic string, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// Record serializes and publishes one diagnostic. Publish failures are logged
// and swallowed: diagnostics must never fail a catalog load.
func (p *Publisher) Record(ctx context.Context, d domain.Diagnostic) {
	msg, err := serializeToMessage(d)
	if err != nil {
		p.logger.Error("serialize diagnostic", "kind", d.Kind, "error", err)
		return
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("publish diagnostic", "kind", d.Kind, "error", err)
	}
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a diagnostic into a Kafka message. Messages are
// keyed by load id so one load's diagnostics land on one partition in order.
func serializeToMessage(d domain.Diagnostic) (kafkago.Message, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize diagnostic: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(d.LoadID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "kind", Value: []byte(d.Kind)},
			{Key: "recorded_at", Value: []byte(d.Time.Format(time.RFC3339))},
		},
	}, nil
}
