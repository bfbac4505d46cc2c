//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/paradeguard/risk-engine/internal/adapter/kafka"
	"github.com/paradeguard/risk-engine/internal/assess"
	"github.com/paradeguard/risk-engine/internal/config"
	"github.com/paradeguard/risk-engine/internal/domain"
)

const testTopic = "test-risk-assessments"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka launches a single-broker Kafka container and returns its
// bootstrap address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx,
		"confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("test-cluster"),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "start kafka container")

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err, "resolve brokers")
	require.NotEmpty(t, brokers)
	return brokers[0]
}

// createTopic creates a topic on the broker's controller.
func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err, "dial broker")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "resolve controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err, "dial controller")
	defer controllerConn.Close()

	require.NoError(t, controllerConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

func testResult() assess.Result {
	return assess.Result{
		Place:       domain.Place{Query: "Kochi", FormattedAddress: "Kochi, Kerala, India", Lat: 9.9312, Lon: 76.2673},
		Date:        "2026-09-12",
		Window:      "Evening",
		WindowLabel: "18:00-21:00",
		Timezone:    "Asia/Kolkata",
		Assessment: domain.RiskAssessment{
			ID:             "risk-0011223344556677",
			CompositeScore: 58.3,
			RainScore:      82.0,
			Band:           "Moderate",
			Color:          "yellow",
			Confidence:     "Medium",
			DayPart:        "Evening",
			GeneratedAt:    time.Date(2026, 9, 12, 10, 30, 0, 0, time.UTC),
		},
		Providers: []string{"open-meteo"},
	}
}

// TestWriterPublishesAssessment verifies the Writer round-trips an assessment
// through a real broker with the expected key and headers.
func TestWriterPublishesAssessment(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	cfg := &config.Config{
		KafkaBrokers: []string{broker},
		KafkaTopic:   testTopic,
	}

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	want := testResult()
	require.NoError(t, writer.PublishAssessment(ctx, want))

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: []string{broker},
		Topic:   testTopic,
		GroupID: fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read published assessment")

	assert.Equal(t, want.Assessment.ID, string(msg.Key))

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "Moderate", headers["risk_band"])
	assert.Equal(t, "Evening", headers["day_part"])
	assert.Equal(t, "2026-09-12T10:30:00Z", headers["generated_at"])

	var got assess.Result
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, want.Assessment.ID, got.Assessment.ID)
	assert.Equal(t, want.Assessment.CompositeScore, got.Assessment.CompositeScore)
	assert.Equal(t, want.Place.FormattedAddress, got.Place.FormattedAddress)
	assert.Equal(t, want.Timezone, got.Timezone)
}
