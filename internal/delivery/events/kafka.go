package events

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Pesokrava/market_ledger/internal/pkg/logger"
)

// messageWriter is the part of *kafka.Writer the publisher needs
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes ledger events to Kafka, one topic per subject.
// Messages are keyed by subject so a topic's events land on one partition in the order Publish is called.
type KafkaPublisher struct {
	w      messageWriter
	logger *logger.Logger
}

// NewKafkaPublisher creates a publisher writing to brokers
func NewKafkaPublisher(brokers []string, log *logger.Logger) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}

	log.WithFields(map[string]interface{}{
		"brokers": brokers,
	}).Info("Kafka publisher configured")

	return &KafkaPublisher{w: w, logger: log}
}

// Publish writes data to the topic named by subject
func (p *KafkaPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	msg := kafka.Message{
		Topic: subject,
		Key:   []byte(subject),
		Value: data,
		Time:  time.Now(),
	}

	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write to kafka topic %s: %w", subject, err)
	}

	p.logger.Debugf("Published ledger event to Kafka topic %s", subject)
	return nil
}

// Close flushes and closes the writer
func (p *KafkaPublisher) Close() {
	if err := p.w.Close(); err != nil {
		p.logger.Error("Failed to close Kafka writer", err)
		return
	}
	p.logger.Info("Kafka publisher closed")
}
