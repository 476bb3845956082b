package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Pesokrava/market_ledger/internal/pkg/logger"
)

const (
	fetchBatch   = 10
	fetchMaxWait = 5 * time.Second
	fetchBackoff = 5 * time.Second
)

// Handler processes one message payload; an error asks for redelivery
type Handler func(data []byte) error

// Consumer pulls ledger events from the durable JetStream consumer
type Consumer struct {
	nc     *nats.Conn
	js     nats.JetStreamContext
	sub    *nats.Subscription
	logger *logger.Logger
}

// NewConsumer connects to NATS and binds a pull subscription to the durable consumer
func NewConsumer(url, subject string, log *logger.Logger) (*Consumer, error) {
	nc, err := nats.Connect(url, nats.Name("market-ledger-notifier"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	log.Infof("Connected to NATS at %s", url)

	streams := NewStreamConfig(js, subject, log)
	if err := streams.EnsureStream(); err != nil {
		nc.Close()
		return nil, err
	}
	if err := streams.EnsureConsumer(); err != nil {
		nc.Close()
		return nil, err
	}

	sub, err := js.PullSubscribe(subject, ConsumerName, nats.Bind(StreamName, ConsumerName), nats.ManualAck())
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to subscribe to JetStream consumer: %w", err)
	}

	log.WithFields(map[string]any{
		"stream":   StreamName,
		"consumer": ConsumerName,
	}).Info("Subscribed to JetStream consumer")

	return &Consumer{
		nc:     nc,
		js:     js,
		sub:    sub,
		logger: log,
	}, nil
}

// Run fetches batches until ctx is done. Handled messages are acked,
// failed ones are nacked so JetStream redelivers them with backoff.
func (c *Consumer) Run(ctx context.Context, handle Handler) {
	for {
		if ctx.Err() != nil {
			return
		}

		msgs, err := c.sub.Fetch(fetchBatch, nats.MaxWait(fetchMaxWait))
		if err != nil {
			if errors.Is(err, nats.ErrTimeout) {
				continue
			}
			c.logger.Error("Failed to fetch messages from JetStream", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(fetchBackoff):
			}
			continue
		}

		for _, msg := range msgs {
			if err := handle(msg.Data); err != nil {
				c.logger.Error("Failed to handle event", err)
				if nakErr := msg.Nak(); nakErr != nil {
					c.logger.Error("Failed to NAK message", nakErr)
				}
				continue
			}

			if ackErr := msg.Ack(); ackErr != nil {
				c.logger.Error("Failed to ACK message", ackErr)
			}
		}
	}
}

// Close unsubscribes and closes the NATS connection
func (c *Consumer) Close() {
	if c.sub != nil {
		if err := c.sub.Unsubscribe(); err != nil {
			c.logger.Warnf("Failed to unsubscribe from NATS: %v", err)
		}
	}
	if c.nc != nil {
		c.nc.Close()
		c.logger.Info("NATS consumer connection closed")
	}
}
