package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Pesokrava/market_ledger/internal/domain"
	"github.com/Pesokrava/market_ledger/internal/pkg/logger"
)

const (
	// Retry configuration
	maxRetries     = 3
	initialBackoff = 100 * time.Millisecond
	sendTimeout    = 5 * time.Second

	// seenCapacity bounds the event ids remembered for redelivery dedup
	seenCapacity = 4096
)

// ErrShuttingDown is returned for events that arrive after Shutdown started
var ErrShuttingDown = errors.New("notifier is shutting down")

// LedgerEvent is the subset of a committed-call event the notifier reads
type LedgerEvent struct {
	EventID uuid.UUID        `json:"event_id"`
	Op      string           `json:"op"`
	Height  uint64           `json:"height"`
	Caller  domain.Principal `json:"caller"`
	Payload json.RawMessage  `json:"payload"`
	Result  json.RawMessage  `json:"result,omitempty"`
}

// Notification is a message addressed to one principal
type Notification struct {
	Recipient domain.Principal `json:"recipient"`
	Kind      string           `json:"kind"`
	Height    uint64           `json:"height"`
	Message   string           `json:"message"`
}

// Sink delivers notifications
type Sink interface {
	Send(ctx context.Context, n Notification) error
}

// LogSink writes notifications to the structured log
type LogSink struct {
	logger *logger.Logger
}

func NewLogSink(log *logger.Logger) *LogSink {
	return &LogSink{logger: log}
}

func (s *LogSink) Send(_ context.Context, n Notification) error {
	s.logger.WithFields(map[string]any{
		"recipient": n.Recipient,
		"kind":      n.Kind,
		"height":    n.Height,
	}).Info(n.Message)
	return nil
}

// Notifier turns ledger events into notifications for the principals they concern
type Notifier struct {
	sink    Sink
	logger  *logger.Logger
	backoff time.Duration

	mu    sync.Mutex
	seen  map[uuid.UUID]struct{}
	order []uuid.UUID

	// stateMu orders wg.Add against Shutdown's Wait
	stateMu  sync.Mutex
	stopping bool
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewNotifier creates a notifier delivering to sink
func NewNotifier(sink Sink, log *logger.Logger) *Notifier {
	ctx, cancel := context.WithCancel(context.Background())

	return &Notifier{
		sink:    sink,
		logger:  log,
		backoff: initialBackoff,
		seen:    make(map[uuid.UUID]struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// HandleEvent processes one ledger event. A returned error means the event
// should be redelivered; events already handled are skipped.
func (w *Notifier) HandleEvent(data []byte) error {
	var event LedgerEvent
	if err := json.Unmarshal(data, &event); err != nil {
		w.logger.Error("Failed to unmarshal ledger event", err)
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if !w.begin() {
		return ErrShuttingDown
	}
	defer w.wg.Done()

	if w.wasSeen(event.EventID) {
		w.logger.WithFields(map[string]any{
			"event_id": event.EventID.String(),
		}).Debug("Skipping redelivered event")
		return nil
	}

	w.logger.WithFields(map[string]any{
		"event_id": event.EventID.String(),
		"op":       event.Op,
		"height":   event.Height,
		"caller":   event.Caller,
	}).Info("Received ledger event")

	notes, err := notificationsFor(event)
	if err != nil {
		return fmt.Errorf("event %s: %w", event.EventID, err)
	}

	for _, n := range notes {
		if err := w.deliver(n); err != nil {
			return err
		}
	}

	w.markSeen(event.EventID)
	return nil
}

// begin registers an in-flight event unless Shutdown already started
func (w *Notifier) begin() bool {
	w.stateMu.Lock()
	defer w.stateMu.Unlock()

	if w.stopping {
		return false
	}
	w.wg.Add(1)
	return true
}

// deliver sends n with exponential backoff between attempts
func (w *Notifier) deliver(n Notification) error {
	var lastErr error
	backoff := w.backoff

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			w.logger.WithFields(map[string]any{
				"recipient":  n.Recipient,
				"attempt":    attempt + 1,
				"backoff_ms": backoff.Milliseconds(),
			}).Warn("Retrying notification")

			select {
			case <-time.After(backoff):
			case <-w.ctx.Done():
				return ErrShuttingDown
			}

			backoff *= 2
		}

		ctx, cancel := context.WithTimeout(w.ctx, sendTimeout)
		err := w.sink.Send(ctx, n)
		cancel()

		if err == nil {
			return nil
		}
		lastErr = err
	}

	w.logger.WithFields(map[string]any{
		"recipient":   n.Recipient,
		"kind":        n.Kind,
		"max_retries": maxRetries,
	}).Error("Notification failed after all retries", lastErr)

	return fmt.Errorf("notify %s: %w", n.Recipient, lastErr)
}

func (w *Notifier) wasSeen(id uuid.UUID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.seen[id]
	return ok
}

func (w *Notifier) markSeen(id uuid.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.seen[id]; ok {
		return
	}
	if len(w.order) >= seenCapacity {
		oldest := w.order[0]
		w.order = w.order[1:]
		delete(w.seen, oldest)
	}
	w.seen[id] = struct{}{}
	w.order = append(w.order, id)
}

// Shutdown stops retries and waits for in-flight events
func (w *Notifier) Shutdown(ctx context.Context) error {
	w.logger.Info("Shutting down notifier...")

	w.stateMu.Lock()
	w.stopping = true
	w.stateMu.Unlock()
	w.cancel()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.logger.Info("All in-flight notifications completed")
		return nil
	case <-ctx.Done():
		w.logger.Warn("Shutdown timeout reached, forcing exit")
		return ctx.Err()
	}
}

// notificationsFor maps an event to the notifications it triggers; most ops trigger none
func notificationsFor(e LedgerEvent) ([]Notification, error) {
	note := func(to domain.Principal, kind, format string, args ...any) Notification {
		return Notification{Recipient: to, Kind: kind, Height: e.Height, Message: fmt.Sprintf(format, args...)}
	}

	switch e.Op {
	case "place-order":
		var p struct {
			ProductID uint64           `json:"product_id"`
			Quantity  uint64           `json:"quantity"`
			Buyer     domain.Principal `json:"buyer"`
		}
		var orderID uint64
		if err := decode(e, &p, &orderID); err != nil {
			return nil, err
		}
		return []Notification{note(p.Buyer, "order.placed", "Order %d placed: %d x product %d", orderID, p.Quantity, p.ProductID)}, nil

	case "cancel-order":
		var p struct {
			ID uint64 `json:"id"`
		}
		if err := decode(e, &p, nil); err != nil {
			return nil, err
		}
		return []Notification{note(e.Caller, "order.cancelled", "Order %d cancelled", p.ID)}, nil

	case "mint-nft-for-order":
		var p struct {
			OrderID uint64 `json:"order_id"`
		}
		var r struct {
			Buyer   domain.Principal `json:"buyer"`
			TokenID uint64           `json:"token_id"`
		}
		if err := decode(e, &p, &r); err != nil {
			return nil, err
		}
		return []Notification{note(r.Buyer, "order.completed", "Token %d minted for order %d", r.TokenID, p.OrderID)}, nil

	case "mint":
		var p struct {
			To domain.Principal `json:"to"`
		}
		var tokenID uint64
		if err := decode(e, &p, &tokenID); err != nil {
			return nil, err
		}
		return []Notification{note(p.To, "token.minted", "Token %d minted to you", tokenID)}, nil

	case "transfer":
		var p struct {
			ID   uint64           `json:"id"`
			From domain.Principal `json:"from"`
			To   domain.Principal `json:"to"`
		}
		if err := decode(e, &p, nil); err != nil {
			return nil, err
		}
		return []Notification{
			note(p.From, "token.sent", "Token %d sent to %s", p.ID, p.To),
			note(p.To, "token.received", "Token %d received from %s", p.ID, p.From),
		}, nil

	case "add-manager", "remove-manager":
		var p struct {
			Principal domain.Principal `json:"principal"`
		}
		if err := decode(e, &p, nil); err != nil {
			return nil, err
		}
		if e.Op == "add-manager" {
			return []Notification{note(p.Principal, "role.granted", "You were granted the manager role")}, nil
		}
		return []Notification{note(p.Principal, "role.revoked", "Your manager role was revoked")}, nil
	}

	return nil, nil
}

func decode(e LedgerEvent, payload, result any) error {
	if err := json.Unmarshal(e.Payload, payload); err != nil {
		return fmt.Errorf("decode %s payload: %w", e.Op, err)
	}
	if result == nil {
		return nil
	}
	if len(e.Result) == 0 {
		return fmt.Errorf("decode %s: missing result", e.Op)
	}
	if err := json.Unmarshal(e.Result, result); err != nil {
		return fmt.Errorf("decode %s result: %w", e.Op, err)
	}
	return nil
}
