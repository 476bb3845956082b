package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/market_ledger/internal/pkg/logger"
)

func TestGenerateExponentialBackoff(t *testing.T) {
	assert.Nil(t, generateExponentialBackoff(1))
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second},
		generateExponentialBackoff(MaxDeliveryAttempts))
}

func TestStreamConfig_Settings(t *testing.T) {
	s := NewStreamConfig(nil, "market.events", logger.Nop())

	stream := s.streamSettings()
	assert.Equal(t, StreamName, stream.Name)
	assert.Equal(t, []string{"market.events"}, stream.Subjects)
	assert.Equal(t, nats.LimitsPolicy, stream.Retention)

	consumer := s.consumerSettings()
	assert.Equal(t, ConsumerName, consumer.Durable)
	assert.Equal(t, "market.events", consumer.FilterSubject)
	assert.Equal(t, MaxDeliveryAttempts, consumer.MaxDeliver)
	assert.Len(t, consumer.BackOff, MaxDeliveryAttempts-1)
}

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{w: w, logger: logger.Nop()}

	require.NoError(t, p.Publish(context.Background(), "market.events", []byte(`{"op":"mint"}`)))
	p.Close()

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "market.events", w.msgs[0].Topic)
	assert.Equal(t, []byte("market.events"), w.msgs[0].Key)
	assert.JSONEq(t, `{"op":"mint"}`, string(w.msgs[0].Value))
	assert.True(t, w.closed)
}

func TestKafkaPublisher_PublishError(t *testing.T) {
	p := &KafkaPublisher{w: &fakeWriter{err: errors.New("leader not available")}, logger: logger.Nop()}

	err := p.Publish(context.Background(), "market.events", []byte(`{}`))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "market.events")
}

func TestNewKafkaPublisher_ConfiguresWriter(t *testing.T) {
	p := NewKafkaPublisher([]string{"k1:9092", "k2:9092"}, logger.Nop())

	w, ok := p.w.(*kafka.Writer)
	require.True(t, ok)
	assert.NotNil(t, w.Addr)
	assert.Equal(t, kafka.RequireAll, w.RequiredAcks)
	assert.Empty(t, w.Topic)
}
