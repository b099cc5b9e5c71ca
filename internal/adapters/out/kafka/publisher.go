// Package kafka publishes relayed outbox messages with franz-go.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"logistics/internal/core/ports"
	"logistics/internal/pkg/tracing"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel/attribute"
)

var _ ports.EventPublisher = (*Publisher)(nil)

// Config describes the producer.
type Config struct {
	Brokers        []string
	Topic          string
	ClientID       string
	ProduceTimeout time.Duration
}

type producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// Publisher writes every outbox message as one record keyed by aggregate id, so
// the events of one aggregate stay ordered within a partition.
type Publisher struct {
	client producer
	topic  string
}

// envelope is the record value.
type envelope struct {
	ID            string          `json:"id"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     string          `json:"event_type"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
}

func NewPublisher(cfg Config) (*Publisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka topic is required")
	}
	timeout := cfg.ProduceTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.ProduceRequestTimeout(timeout),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ClientID(cfg.ClientID),
	)
	if err != nil {
		return nil, fmt.Errorf("init kafka client: %w", err)
	}
	return &Publisher{client: client, topic: cfg.Topic}, nil
}

// Publish sends messages synchronously and fails on the first rejected record.
func (p *Publisher) Publish(ctx context.Context, messages []ports.OutboxMessage) (err error) {
	if len(messages) == 0 {
		return nil
	}

	ctx, span := tracing.Start(ctx, "kafka.publish",
		attribute.String("kafka.topic", p.topic),
		attribute.Int("kafka.batch_size", len(messages)),
	)
	defer func() { tracing.End(span, err) }()

	records := make([]*kgo.Record, 0, len(messages))
	for _, m := range messages {
		record, buildErr := p.record(ctx, m)
		if buildErr != nil {
			return buildErr
		}
		records = append(records, record)
	}

	if err = p.client.ProduceSync(ctx, records...).FirstErr(); err != nil {
		return fmt.Errorf("produce outbox batch: %w", err)
	}
	return nil
}

func (p *Publisher) record(ctx context.Context, m ports.OutboxMessage) (*kgo.Record, error) {
	payload := json.RawMessage(m.Payload)
	if len(payload) == 0 {
		payload = json.RawMessage("null")
	}
	value, err := json.Marshal(envelope{
		ID:            m.ID.String(),
		AggregateType: m.AggregateType,
		AggregateID:   m.AggregateID.String(),
		EventType:     m.EventType,
		OccurredAt:    m.CreatedAt.UTC(),
		Payload:       payload,
	})
	if err != nil {
		return nil, fmt.Errorf("encode outbox message %s: %w", m.ID.String(), err)
	}

	headers := []kgo.RecordHeader{
		{Key: "message_id", Value: []byte(m.ID.String())},
		{Key: "event_type", Value: []byte(m.EventType)},
		{Key: "aggregate_type", Value: []byte(m.AggregateType)},
	}
	carrier := map[string]string{}
	tracing.Inject(ctx, carrier)
	if tp, ok := carrier["traceparent"]; ok {
		headers = append(headers, kgo.RecordHeader{Key: "traceparent", Value: []byte(tp)})
	}

	return &kgo.Record{
		Topic:   p.topic,
		Key:     []byte(m.AggregateID.String()),
		Value:   value,
		Headers: headers,
	}, nil
}

func (p *Publisher) Close() {
	p.client.Close()
}
