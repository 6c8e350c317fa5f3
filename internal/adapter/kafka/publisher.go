package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/city-weather/internal/config"
	"github.com/couchcryptid/city-weather/internal/domain"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

// reportEvent is the JSON value written for each displayed report.
type reportEvent struct {
	ID     string               `json:"id"`
	Report domain.WeatherReport `json:"report"`
}

// Publisher writes displayed weather reports to a Kafka topic.
// It implements pipeline.Publisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured report topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaReportTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           5 * time.Second,
	}
	return &Publisher{writer: w, logger: logger}
}

// Publish writes one report event keyed by city.
func (p *Publisher) Publish(ctx context.Context, report domain.WeatherReport) error {
	msg, err := serializeToMessage(uuid.NewString(), report)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish report: %w", err)
	}
	p.logger.Debug("report published", "city", report.City, "topic", p.writer.Topic)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func serializeToMessage(id string, report domain.WeatherReport) (kafkago.Message, error) {
	data, err := json.Marshal(reportEvent{ID: id, Report: report})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize weather report: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(report.City),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_id", Value: []byte(id)},
			{Key: "unit", Value: []byte(report.Unit.String())},
			{Key: "fetched_at", Value: []byte(report.FetchedAt.Format(time.RFC3339))},
		},
	}, nil
}
