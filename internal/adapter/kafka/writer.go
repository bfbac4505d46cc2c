// Package kafka publishes completed assessments to a Kafka topic so
// downstream consumers can archive or alert on them.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/paradeguard/risk-engine/internal/assess"
	"github.com/paradeguard/risk-engine/internal/config"
)

// Writer produces assessment messages to a Kafka topic.
// It implements assess.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured assessments topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishAssessment serializes and publishes one assessment result. The
// message is keyed by the deterministic assessment ID, so re-runs of the
// same query compact onto one key.
func (w *Writer) PublishAssessment(ctx context.Context, result assess.Result) error {
	msg, err := serializeToMessage(result)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an assessment result into a Kafka message.
func serializeToMessage(result assess.Result) (kafkago.Message, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize assessment: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(result.Assessment.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "risk_band", Value: []byte(result.Assessment.Band)},
			{Key: "day_part", Value: []byte(result.Window)},
			{Key: "generated_at", Value: []byte(result.Assessment.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
