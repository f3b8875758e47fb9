// Package events publishes interview turn and sentiment events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"ai-interview-service/internal/models"
	"ai-interview-service/internal/observability/metrics"
	"ai-interview-service/internal/schema"
)

// Publisher publishes turn and sentiment events to separate Kafka topics.
// When Kafka is disabled it only logs the payloads.
type Publisher struct {
	writerTurns     *kafka.Writer
	writerSentiment *kafka.Writer
	principal       string
	topicTurns      string
	topicSentiment  string
	enabled         bool
	validator       *schema.Validator
	metrics         *metrics.Metrics
}

// Config holds Kafka publisher configuration.
type Config struct {
	Brokers        []string
	TopicTurns     string
	TopicSentiment string
	Principal      string
	Enabled        bool
}

// New creates a publisher. A nil m uses metrics.DefaultMetrics.
func New(cfg *Config, m *metrics.Metrics) *Publisher {
	if m == nil {
		m = metrics.DefaultMetrics
	}

	if cfg == nil {
		log.Info().Msg("Kafka disabled (nil config), using log-only mode")
		return &Publisher{validator: schema.New(), metrics: m}
	}

	p := &Publisher{
		principal:      cfg.Principal,
		topicTurns:     cfg.TopicTurns,
		topicSentiment: cfg.TopicSentiment,
		validator:      schema.New(),
		metrics:        m,
	}

	if !cfg.Enabled || len(cfg.Brokers) == 0 {
		log.Info().Msg("Kafka disabled, using log-only mode")
		return p
	}

	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}
	transport := &kafka.Transport{
		Dial: dialer.DialFunc,
	}

	p.writerTurns = newWriter(cfg.Brokers, cfg.TopicTurns, transport)
	p.writerSentiment = newWriter(cfg.Brokers, cfg.TopicSentiment, transport)
	p.enabled = true

	log.Info().
		Strs("brokers", cfg.Brokers).
		Str("topicTurns", cfg.TopicTurns).
		Str("topicSentiment", cfg.TopicSentiment).
		Str("principal", cfg.Principal).
		Msg("Kafka publisher initialized")

	return p
}

func newWriter(brokers []string, topic string, transport *kafka.Transport) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
		Transport:    transport,
	}
}

// PublishTurn publishes a turn event keyed by session, so a session's turns
// stay ordered within one partition.
func (p *Publisher) PublishTurn(ctx context.Context, event models.TurnEvent) error {
	return p.publish(ctx, p.writerTurns, p.topicTurns, event.EventType, event.SessionID, event)
}

// PublishSentiment publishes a fused sentiment event keyed by session.
func (p *Publisher) PublishSentiment(ctx context.Context, event models.SentimentEvent) error {
	return p.publish(ctx, p.writerSentiment, p.topicSentiment, event.EventType, event.SessionID, event)
}

func (p *Publisher) publish(ctx context.Context, writer *kafka.Writer, topic, eventType, key string, event any) error {
	start := time.Now()

	if err := p.validator.Validate(event); err != nil {
		log.Error().Err(err).Str("topic", topic).Str("key", key).Msg("Dropping invalid event")
		p.metrics.RecordKafkaPublish(topic, eventType, err, time.Since(start).Seconds())
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to marshal event")
		return fmt.Errorf("marshal %s: %w", eventType, err)
	}

	log.Debug().
		Str("principal", p.principal).
		Str("topic", topic).
		Str("key", key).
		RawJSON("payload", payload).
		Msg("Publishing event")

	if !p.enabled || writer == nil {
		p.metrics.RecordKafkaPublish(topic, eventType, nil, time.Since(start).Seconds())
		return nil
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "eventType", Value: []byte(eventType)},
			{Key: "principal", Value: []byte(p.principal)},
		},
	}

	if err := writer.WriteMessages(ctx, msg); err != nil {
		log.Error().
			Err(err).
			Str("topic", topic).
			Str("key", key).
			Msg("Failed to write to Kafka")
		p.metrics.RecordKafkaPublish(topic, eventType, err, time.Since(start).Seconds())
		return fmt.Errorf("write %s: %w", topic, err)
	}

	p.metrics.RecordKafkaPublish(topic, eventType, nil, time.Since(start).Seconds())
	return nil
}

// Close closes both Kafka writers.
func (p *Publisher) Close() error {
	var err error
	if p.writerTurns != nil {
		if e := p.writerTurns.Close(); e != nil {
			log.Error().Err(e).Msg("Error closing turns writer")
			err = e
		}
	}
	if p.writerSentiment != nil {
		if e := p.writerSentiment.Close(); e != nil {
			log.Error().Err(e).Msg("Error closing sentiment writer")
			err = e
		}
	}
	return err
}
