// Package kafka publishes completed risk assessments to a Kafka topic for
// downstream consumers (dashboards, notification fan-out). Publishing is
// best-effort and feature-flagged; the advisory API works without it.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/sahilb1203/aquaalert-backend/internal/config"
	"github.com/sahilb1203/aquaalert-backend/internal/domain"
)

// Publisher produces one message per completed assessment.
// It implements assessment.Publisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured advisory topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaAdvisoryTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// Publish serializes and sends a single risk assessment.
func (p *Publisher) Publish(ctx context.Context, a domain.RiskAssessment) error {
	msg, err := serializeToMessage(a)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a RiskAssessment into a Kafka message keyed by
// assessment ID.
func serializeToMessage(a domain.RiskAssessment) (kafkago.Message, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize risk assessment: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(a.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "risk_level", Value: []byte(a.Tier.String())},
			{Key: "generated_at", Value: []byte(a.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
