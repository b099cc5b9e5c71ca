package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
)

type fakeProducer struct {
	records []*kgo.Record
	err     error
	closed  bool
}

func (f *fakeProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	f.records = append(f.records, rs...)
	results := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		results = append(results, kgo.ProduceResult{Record: r, Err: f.err})
	}
	return results
}

func (f *fakeProducer) Close() { f.closed = true }

func message(eventType string) ports.OutboxMessage {
	return ports.OutboxMessage{
		ID:            kernel.NewUUID(),
		AggregateType: "delivery",
		AggregateID:   kernel.NewUUID(),
		EventType:     eventType,
		Payload:       []byte(`{"status":"Scheduled"}`),
		CreatedAt:     time.Date(2025, 5, 5, 9, 0, 0, 0, time.UTC),
	}
}

func headerValue(r *kgo.Record, key string) string {
	for _, h := range r.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestPublish_WritesOneRecordPerMessage(t *testing.T) {
	fake := &fakeProducer{}
	p := &Publisher{client: fake, topic: "logistics.events"}
	first, second := message("delivery.assigned"), message("delivery.started")

	require.NoError(t, p.Publish(context.Background(), []ports.OutboxMessage{first, second}))

	require.Len(t, fake.records, 2)
	rec := fake.records[0]
	assert.Equal(t, "logistics.events", rec.Topic)
	assert.Equal(t, first.AggregateID.String(), string(rec.Key))
	assert.Equal(t, "delivery.assigned", headerValue(rec, "event_type"))
	assert.Equal(t, first.ID.String(), headerValue(rec, "message_id"))

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Value, &env))
	assert.Equal(t, "delivery", env.AggregateType)
	assert.JSONEq(t, `{"status":"Scheduled"}`, string(env.Payload))
}

func TestPublish_EmptyBatchIsNoop(t *testing.T) {
	fake := &fakeProducer{}
	p := &Publisher{client: fake, topic: "t"}

	require.NoError(t, p.Publish(context.Background(), nil))
	assert.Empty(t, fake.records)
}

func TestPublish_ReturnsBrokerError(t *testing.T) {
	fake := &fakeProducer{err: errors.New("not leader for partition")}
	p := &Publisher{client: fake, topic: "t"}

	err := p.Publish(context.Background(), []ports.OutboxMessage{message("train.cancelled")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not leader")
}

func TestNewPublisher_RequiresBrokersAndTopic(t *testing.T) {
	_, err := NewPublisher(Config{Topic: "t"})
	require.Error(t, err)
	_, err = NewPublisher(Config{Brokers: []string{"localhost:9092"}})
	require.Error(t, err)
}

func TestClose(t *testing.T) {
	fake := &fakeProducer{}
	(&Publisher{client: fake}).Close()
	assert.True(t, fake.closed)
}
