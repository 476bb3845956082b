package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/market_ledger/internal/domain"
	"github.com/Pesokrava/market_ledger/internal/pkg/logger"
)

const (
	buyer   domain.Principal = "ST1SJ3DTE5DN7X54YDH5D64R3BCB6A2AG2ZQ8YPD5"
	manager domain.Principal = "ST2CY5V39NHDPWSXMW9QDT3HC3GD6Q6XX4CFRK9AG"
)

// recordingSink stores notifications and fails the first `failures` sends
type recordingSink struct {
	mu       sync.Mutex
	sent     []Notification
	attempts int
	failures int
}

func (s *recordingSink) Send(_ context.Context, n Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts++
	if s.attempts <= s.failures {
		return errors.New("smtp unavailable")
	}
	s.sent = append(s.sent, n)
	return nil
}

func setupTestNotifier(t *testing.T, failures int) (*Notifier, *recordingSink) {
	t.Helper()
	sink := &recordingSink{failures: failures}
	n := NewNotifier(sink, logger.Nop())
	n.backoff = time.Millisecond
	return n, sink
}

func eventJSON(t *testing.T, id uuid.UUID, op string, caller domain.Principal, payload, result string) []byte {
	t.Helper()
	event := LedgerEvent{
		EventID: id,
		Op:      op,
		Height:  42,
		Caller:  caller,
		Payload: json.RawMessage(payload),
	}
	if result != "" {
		event.Result = json.RawMessage(result)
	}
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return data
}

func TestNotifier_HandleEvent_PlaceOrder(t *testing.T) {
	n, sink := setupTestNotifier(t, 0)

	err := n.HandleEvent(eventJSON(t, uuid.New(), "place-order", buyer,
		`{"product_id":7,"quantity":3,"buyer":"`+string(buyer)+`"}`, `5`))

	require.NoError(t, err)
	require.Len(t, sink.sent, 1)
	assert.Equal(t, Notification{
		Recipient: buyer,
		Kind:      "order.placed",
		Height:    42,
		Message:   "Order 5 placed: 3 x product 7",
	}, sink.sent[0])
}

func TestNotifier_HandleEvent_Ops(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		caller  domain.Principal
		payload string
		result  string
		want    []Notification
	}{
		{
			name: "mint for order goes to buyer", op: "mint-nft-for-order", caller: manager,
			payload: `{"order_id":2}`, result: `{"buyer":"` + string(buyer) + `","token_id":9}`,
			want: []Notification{{Recipient: buyer, Kind: "order.completed", Height: 42, Message: "Token 9 minted for order 2"}},
		},
		{
			name: "cancel goes to caller", op: "cancel-order", caller: buyer,
			payload: `{"id":4}`,
			want:    []Notification{{Recipient: buyer, Kind: "order.cancelled", Height: 42, Message: "Order 4 cancelled"}},
		},
		{
			name: "transfer notifies both sides", op: "transfer", caller: buyer,
			payload: `{"id":1,"from":"` + string(buyer) + `","to":"` + string(manager) + `"}`,
			want: []Notification{
				{Recipient: buyer, Kind: "token.sent", Height: 42, Message: "Token 1 sent to " + string(manager)},
				{Recipient: manager, Kind: "token.received", Height: 42, Message: "Token 1 received from " + string(buyer)},
			},
		},
		{
			name: "manager granted", op: "add-manager", caller: "owner",
			payload: `{"principal":"` + string(manager) + `"}`,
			want:    []Notification{{Recipient: manager, Kind: "role.granted", Height: 42, Message: "You were granted the manager role"}},
		},
		{
			name: "direct mint", op: "mint", caller: manager,
			payload: `{"to":"` + string(buyer) + `"}`, result: `3`,
			want: []Notification{{Recipient: buyer, Kind: "token.minted", Height: 42, Message: "Token 3 minted to you"}},
		},
		{
			name: "catalog change is silent", op: "add-product", caller: manager,
			payload: `{"id":1,"price":1000,"name":"Widget"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, sink := setupTestNotifier(t, 0)

			err := n.HandleEvent(eventJSON(t, uuid.New(), tt.op, tt.caller, tt.payload, tt.result))

			require.NoError(t, err)
			assert.Equal(t, tt.want, sink.sent)
		})
	}
}

func TestNotifier_HandleEvent_InvalidJSON(t *testing.T) {
	n, _ := setupTestNotifier(t, 0)

	err := n.HandleEvent([]byte(`{invalid json}`))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}

func TestNotifier_HandleEvent_MissingResult(t *testing.T) {
	n, sink := setupTestNotifier(t, 0)

	err := n.HandleEvent(eventJSON(t, uuid.New(), "mint", manager, `{"to":"`+string(buyer)+`"}`, ""))

	assert.Error(t, err)
	assert.Empty(t, sink.sent)
}

func TestNotifier_HandleEvent_SkipsRedelivery(t *testing.T) {
	n, sink := setupTestNotifier(t, 0)
	data := eventJSON(t, uuid.New(), "cancel-order", buyer, `{"id":1}`, "")

	require.NoError(t, n.HandleEvent(data))
	require.NoError(t, n.HandleEvent(data))

	assert.Len(t, sink.sent, 1)
}

func TestNotifier_HandleEvent_RetriesThenSucceeds(t *testing.T) {
	n, sink := setupTestNotifier(t, maxRetries-1)

	err := n.HandleEvent(eventJSON(t, uuid.New(), "cancel-order", buyer, `{"id":1}`, ""))

	require.NoError(t, err)
	assert.Equal(t, maxRetries, sink.attempts)
	assert.Len(t, sink.sent, 1)
}

func TestNotifier_HandleEvent_RetriesExhausted(t *testing.T) {
	n, sink := setupTestNotifier(t, maxRetries)
	id := uuid.New()

	err := n.HandleEvent(eventJSON(t, id, "cancel-order", buyer, `{"id":1}`, ""))

	assert.Error(t, err)
	assert.Equal(t, maxRetries, sink.attempts)
	assert.False(t, n.wasSeen(id))
}

func TestNotifier_SeenIsBounded(t *testing.T) {
	n, _ := setupTestNotifier(t, 0)
	first := uuid.New()
	n.markSeen(first)

	for i := 0; i < seenCapacity; i++ {
		n.markSeen(uuid.New())
	}

	assert.False(t, n.wasSeen(first))
	assert.Len(t, n.seen, seenCapacity)
}

func TestNotifier_Shutdown(t *testing.T) {
	n, sink := setupTestNotifier(t, 0)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, n.Shutdown(ctx))

	err := n.HandleEvent(eventJSON(t, uuid.New(), "cancel-order", buyer, `{"id":1}`, ""))
	assert.ErrorIs(t, err, ErrShuttingDown)
	assert.Empty(t, sink.sent)
}

// blockingSink holds every send until release is closed
type blockingSink struct {
	entered chan struct{}
	release chan struct{}
}

func (s *blockingSink) Send(_ context.Context, _ Notification) error {
	close(s.entered)
	<-s.release
	return nil
}

func TestNotifier_ShutdownWaitsForInFlightEvent(t *testing.T) {
	sink := &blockingSink{entered: make(chan struct{}), release: make(chan struct{})}
	n := NewNotifier(sink, logger.Nop())

	data := eventJSON(t, uuid.New(), "cancel-order", buyer, `{"id":1}`, "")
	handled := make(chan error, 1)
	go func() {
		handled <- n.HandleEvent(data)
	}()
	<-sink.entered

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, n.Shutdown(ctx), context.DeadlineExceeded)

	assert.ErrorIs(t, n.HandleEvent(eventJSON(t, uuid.New(), "cancel-order", buyer, `{"id":2}`, "")), ErrShuttingDown)

	close(sink.release)
	require.NoError(t, <-handled)
	require.NoError(t, n.Shutdown(context.Background()))
}

func TestLogSink_Send(t *testing.T) {
	assert.NoError(t, NewLogSink(logger.Nop()).Send(context.Background(), Notification{Recipient: buyer}))
}
