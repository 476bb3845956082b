package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Pesokrava/market_ledger/internal/pkg/logger"
)

const (
	// StreamName is the JetStream stream for ledger events
	StreamName = "MARKET"

	// ConsumerName is the durable consumer for the notifier
	ConsumerName = "notifier"

	// MaxDeliveryAttempts is the max number of delivery attempts before a message is dropped
	MaxDeliveryAttempts = 5

	// AckWait is how long to wait for acknowledgment before redelivery
	AckWait = 30 * time.Second

	// StreamMaxAge bounds how long events are retained
	StreamMaxAge = 7 * 24 * time.Hour
)

// StreamConfig holds the JetStream stream configuration
type StreamConfig struct {
	js      nats.JetStreamContext
	subject string
	logger  *logger.Logger
}

// NewStreamConfig creates a stream helper for subject
func NewStreamConfig(js nats.JetStreamContext, subject string, log *logger.Logger) *StreamConfig {
	return &StreamConfig{
		js:      js,
		subject: subject,
		logger:  log,
	}
}

// generateExponentialBackoff creates a backoff schedule for NATS redeliveries
// Pattern: 1s, 2s, 4s, 8s, ... (2^n seconds)
// MaxDeliver N requires N-1 backoff durations (first delivery is immediate)
func generateExponentialBackoff(maxDeliveryAttempts int) []time.Duration {
	if maxDeliveryAttempts <= 1 {
		return nil
	}

	backoff := make([]time.Duration, maxDeliveryAttempts-1)
	for i := range backoff {
		backoff[i] = time.Duration(1<<i) * time.Second
	}
	return backoff
}

// streamSettings is the desired stream: limits retention so several consumers can read
// the same history, file storage so events survive restarts
func (s *StreamConfig) streamSettings() *nats.StreamConfig {
	return &nats.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{s.subject},
		Retention:   nats.LimitsPolicy,
		Storage:     nats.FileStorage,
		Replicas:    1,
		MaxAge:      StreamMaxAge,
		Discard:     nats.DiscardOld,
		Description: "Committed marketplace ledger calls",
	}
}

// consumerSettings is the desired durable notifier consumer
func (s *StreamConfig) consumerSettings() *nats.ConsumerConfig {
	return &nats.ConsumerConfig{
		Durable:       ConsumerName,
		AckPolicy:     nats.AckExplicitPolicy,
		AckWait:       AckWait,
		MaxDeliver:    MaxDeliveryAttempts,
		FilterSubject: s.subject,
		BackOff:       generateExponentialBackoff(MaxDeliveryAttempts),
		Description:   "Notifier consumer for ledger events",
	}
}

// EnsureStream creates the ledger event stream when it does not exist yet
func (s *StreamConfig) EnsureStream() error {
	stream, err := s.js.StreamInfo(StreamName)

	if errors.Is(err, nats.ErrStreamNotFound) {
		s.logger.WithFields(map[string]any{
			"stream":  StreamName,
			"subject": s.subject,
		}).Info("Creating JetStream stream")

		if _, err = s.js.AddStream(s.streamSettings()); err != nil {
			return fmt.Errorf("failed to create stream: %w", err)
		}

		s.logger.Info("JetStream stream created successfully")
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to get stream info: %w", err)
	}

	s.logger.WithFields(map[string]any{
		"stream":   stream.Config.Name,
		"messages": stream.State.Msgs,
		"bytes":    stream.State.Bytes,
	}).Info("JetStream stream already exists")

	return nil
}

// EnsureConsumer creates the durable notifier consumer when it does not exist yet.
// Events that still fail after MaxDeliveryAttempts are dropped; notifications are best effort.
func (s *StreamConfig) EnsureConsumer() error {
	consumerInfo, err := s.js.ConsumerInfo(StreamName, ConsumerName)

	if errors.Is(err, nats.ErrConsumerNotFound) {
		s.logger.WithFields(map[string]any{
			"stream":   StreamName,
			"consumer": ConsumerName,
		}).Info("Creating JetStream consumer")

		if _, err = s.js.AddConsumer(StreamName, s.consumerSettings()); err != nil {
			return fmt.Errorf("failed to create consumer: %w", err)
		}

		s.logger.Info("JetStream consumer created successfully")
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to get consumer info: %w", err)
	}

	s.logger.WithFields(map[string]any{
		"consumer":    consumerInfo.Name,
		"pending":     consumerInfo.NumPending,
		"redelivered": consumerInfo.NumRedelivered,
		"ack_pending": consumerInfo.NumAckPending,
	}).Info("JetStream consumer already exists")

	return nil
}
