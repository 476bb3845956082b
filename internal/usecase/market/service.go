package market

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Pesokrava/market_ledger/internal/domain"
	"github.com/Pesokrava/market_ledger/internal/ledger"
	"github.com/Pesokrava/market_ledger/internal/pkg/logger"
)

// DefaultSubject is where committed ledger events are published
const DefaultSubject = "market.events"

// outboxSize bounds queued events; writers block once it is full
const outboxSize = 1024

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// LedgerEvent describes one committed call
type LedgerEvent struct {
	EventID   uuid.UUID        `json:"event_id"`
	Op        string           `json:"op"`
	Height    uint64           `json:"height"`
	Caller    domain.Principal `json:"caller"`
	Log       *domain.LogEntry `json:"log,omitempty"`
	Payload   json.RawMessage  `json:"payload"`
	Result    json.RawMessage  `json:"result,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

// Options configures a Service
type Options struct {
	Owner        domain.Principal
	StartHeight  uint64
	InitialStock uint64
	LogPolicy    ledger.LogPolicy
	Subject      string
}

// Service hosts a single ledger: it serializes writes, assigns block heights,
// journals committed calls and announces them to subscribers.
// journal, idem and publisher are optional.
type Service struct {
	ledger    *ledger.Ledger
	height    uint64
	journal   domain.JournalRepository
	idem      domain.IdempotencyStore
	publisher EventPublisher
	subject   string
	logger    *logger.Logger
	mu        sync.RWMutex

	// outbox is drained by a single goroutine so events leave in commit order
	outbox chan outboundEvent
	done   chan struct{}
	closed bool
}

type outboundEvent struct {
	op     string
	height uint64
	data   []byte
}

// NewService creates a service around an empty ledger
func NewService(
	opts Options,
	journal domain.JournalRepository,
	idem domain.IdempotencyStore,
	publisher EventPublisher,
	log *logger.Logger,
) *Service {
	subject := opts.Subject
	if subject == "" {
		subject = DefaultSubject
	}

	s := &Service{
		ledger: ledger.New(ledger.Options{
			Owner:        opts.Owner,
			InitialStock: opts.InitialStock,
			LogPolicy:    opts.LogPolicy,
		}),
		height:    opts.StartHeight,
		journal:   journal,
		idem:      idem,
		publisher: publisher,
		subject:   subject,
		logger:    log,
	}

	if publisher != nil {
		s.outbox = make(chan outboundEvent, outboxSize)
		s.done = make(chan struct{})
		go s.runPublisher()
	}

	return s
}

// Replay re-applies the journal on top of the fresh ledger. It must run before
// the service takes traffic; any entry that fails to apply aborts it.
func (s *Service) Replay(ctx context.Context) (int, error) {
	if s.journal == nil {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.journal.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load journal: %w", err)
	}

	for _, entry := range entries {
		factory, ok := commands[entry.Op]
		if !ok {
			return 0, fmt.Errorf("journal entry %d: unknown op %q", entry.Seq, entry.Op)
		}
		cmd := factory()
		if err := json.Unmarshal(entry.Payload, cmd); err != nil {
			return 0, fmt.Errorf("journal entry %d: decode %s: %w", entry.Seq, entry.Op, err)
		}
		if entry.Height <= s.height {
			return 0, fmt.Errorf("journal entry %d: height %d does not advance past %d", entry.Seq, entry.Height, s.height)
		}

		call := ledger.Call{Caller: entry.Caller, Height: entry.Height}
		if _, err := cmd.apply(s.ledger, call); err != nil {
			return 0, fmt.Errorf("journal entry %d: apply %s: %w", entry.Seq, entry.Op, err)
		}
		s.height = entry.Height
	}

	s.logger.WithFields(map[string]interface{}{
		"entries": len(entries),
		"height":  s.height,
	}).Info("Ledger replayed from journal")

	return len(entries), nil
}

// Close stops accepting events and waits until the queued ones are published
func (s *Service) Close() {
	if s.outbox == nil {
		return
	}

	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.outbox)
	}
	s.mu.Unlock()

	<-s.done
}

func (s *Service) runPublisher() {
	defer close(s.done)

	for ev := range s.outbox {
		if err := s.publisher.Publish(context.Background(), s.subject, ev.data); err != nil {
			s.logger.Errorf(err, "Failed to publish event for %s at height %d", ev.op, ev.height)
		}
	}
}

func (s *Service) execute(ctx context.Context, caller domain.Principal, cmd command) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.executeLocked(ctx, caller, cmd)
}

// executeLocked runs cmd one block past the current height and commits it.
// The height only advances once the journal has accepted the call.
func (s *Service) executeLocked(ctx context.Context, caller domain.Principal, cmd command) (any, error) {
	call := ledger.Call{Caller: caller, Height: s.height + 1}

	var snapshot *ledger.Ledger
	if s.journal != nil {
		snapshot = s.ledger.Clone()
	}

	result, err := cmd.apply(s.ledger, call)
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"op":     cmd.name(),
			"caller": caller,
			"height": call.Height,
		}).Debugf("Ledger call rejected: %v", err)
		return nil, err
	}

	payload, err := json.Marshal(cmd)
	if err != nil {
		s.rollback(snapshot)
		s.logger.Errorf(err, "Failed to encode %s payload", cmd.name())
		return nil, fmt.Errorf("%w: encode %s: %v", domain.ErrInternal, cmd.name(), err)
	}

	if s.journal != nil {
		entry := &domain.JournalEntry{
			Height:  call.Height,
			Caller:  caller,
			Op:      cmd.name(),
			Payload: payload,
		}
		if err := s.journal.Append(ctx, entry); err != nil {
			s.rollback(snapshot)
			s.logger.Errorf(err, "Failed to journal %s at height %d", cmd.name(), call.Height)
			return nil, fmt.Errorf("%w: journal %s: %v", domain.ErrInternal, cmd.name(), err)
		}
	}

	s.height = call.Height
	s.publishEvent(call, cmd.name(), payload, result)

	s.logger.WithFields(map[string]interface{}{
		"op":     cmd.name(),
		"caller": caller,
		"height": call.Height,
	}).Info("Ledger call committed")

	return result, nil
}

func (s *Service) rollback(snapshot *ledger.Ledger) {
	if snapshot != nil {
		s.ledger = snapshot
	}
}

// publishEvent queues a ledger event for the publisher goroutine. Callers hold s.mu.
func (s *Service) publishEvent(call ledger.Call, op string, payload json.RawMessage, result any) {
	if s.publisher == nil {
		return
	}
	if s.closed {
		s.logger.Warnf("Service closed, dropping event for %s at height %d", op, call.Height)
		return
	}

	event := LedgerEvent{
		EventID:   uuid.New(),
		Op:        op,
		Height:    call.Height,
		Caller:    call.Caller,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
	if entry, ok := s.ledger.LastAppended(); ok {
		event.Log = &entry
	}
	if result != nil {
		if raw, err := json.Marshal(result); err == nil {
			event.Result = raw
		}
	}

	data, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorf(err, "Failed to marshal event for %s at height %d", op, call.Height)
		return
	}

	s.outbox <- outboundEvent{op: op, height: call.Height, data: data}
}

// Height returns the height of the last committed call
func (s *Service) Height() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.height
}

// AddManager grants the manager role
func (s *Service) AddManager(ctx context.Context, caller, p domain.Principal) error {
	_, err := s.execute(ctx, caller, &addManager{Principal: p})
	return err
}

// RemoveManager revokes the manager role
func (s *Service) RemoveManager(ctx context.Context, caller, p domain.Principal) error {
	_, err := s.execute(ctx, caller, &removeManager{Principal: p})
	return err
}

// UpdateStoreInfo replaces the storefront presentation
func (s *Service) UpdateStoreInfo(ctx context.Context, caller domain.Principal, info domain.StoreInfo) error {
	_, err := s.execute(ctx, caller, &updateStoreInfo{Info: info})
	return err
}

// AddProduct registers a new product
func (s *Service) AddProduct(ctx context.Context, caller domain.Principal, id, price uint64, name string, description *string) error {
	_, err := s.execute(ctx, caller, &addProduct{ID: id, Price: price, Name: name, Description: description})
	return err
}

// UpdateProduct replaces a product's fields
func (s *Service) UpdateProduct(ctx context.Context, caller domain.Principal, id, price uint64, name string, description *string) error {
	_, err := s.execute(ctx, caller, &updateProduct{ID: id, Price: price, Name: name, Description: description})
	return err
}

// RemoveProduct deactivates a product
func (s *Service) RemoveProduct(ctx context.Context, caller domain.Principal, id uint64) error {
	_, err := s.execute(ctx, caller, &removeProduct{ID: id})
	return err
}

// UpdateInventory sets the quantity on hand
func (s *Service) UpdateInventory(ctx context.Context, caller domain.Principal, productID, quantity uint64) error {
	_, err := s.execute(ctx, caller, &updateInventory{ProductID: productID, Quantity: quantity})
	return err
}

// AddDiscount creates a discount and returns its id
func (s *Service) AddDiscount(ctx context.Context, caller domain.Principal, productID, percent, start, end uint64) (uint64, error) {
	result, err := s.execute(ctx, caller, &addDiscount{ProductID: productID, Percent: percent, StartHeight: start, EndHeight: end})
	if err != nil {
		return 0, err
	}
	return result.(uint64), nil
}

// UpdateDiscount changes percent and end height
func (s *Service) UpdateDiscount(ctx context.Context, caller domain.Principal, id, percent, end uint64) error {
	_, err := s.execute(ctx, caller, &updateDiscount{ID: id, Percent: percent, EndHeight: end})
	return err
}

// DeactivateDiscount switches a discount off
func (s *Service) DeactivateDiscount(ctx context.Context, caller domain.Principal, id uint64) error {
	_, err := s.execute(ctx, caller, &deactivateDiscount{ID: id})
	return err
}

// PlaceOrder places an order. A non-empty idempotencyKey that caller already used
// returns the original order id with replayed set instead of placing a second order.
func (s *Service) PlaceOrder(
	ctx context.Context,
	caller domain.Principal,
	productID, quantity uint64,
	buyer domain.Principal,
	idempotencyKey string,
) (id uint64, replayed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	useKey := idempotencyKey != "" && s.idem != nil
	if useKey {
		orderID, ok, err := s.idem.Lookup(ctx, caller, idempotencyKey)
		switch {
		case err != nil:
			s.logger.Warnf("Idempotency lookup failed for key %s: %v", idempotencyKey, err)
		case ok:
			s.logger.Debugf("Idempotent replay of order %d for key %s", orderID, idempotencyKey)
			return orderID, true, nil
		}
	}

	result, err := s.executeLocked(ctx, caller, &placeOrder{ProductID: productID, Quantity: quantity, Buyer: buyer})
	if err != nil {
		return 0, false, err
	}
	id = result.(uint64)

	if useKey {
		if err := s.idem.Remember(ctx, caller, idempotencyKey, id); err != nil {
			s.logger.Warnf("Failed to remember idempotency key %s for order %d: %v", idempotencyKey, id, err)
		}
	}

	return id, false, nil
}

// CancelOrder cancels a pending order
func (s *Service) CancelOrder(ctx context.Context, caller domain.Principal, id uint64) error {
	_, err := s.execute(ctx, caller, &cancelOrder{ID: id})
	return err
}

// SetNFTContract sets the contract-wide NFT switch
func (s *Service) SetNFTContract(ctx context.Context, caller domain.Principal, ref string, enabled bool) error {
	_, err := s.execute(ctx, caller, &setNFTContract{Ref: ref, Enabled: enabled})
	return err
}

// SetProductNFT binds a product to a token contract
func (s *Service) SetProductNFT(ctx context.Context, caller domain.Principal, productID uint64, ref string, uri *string) error {
	_, err := s.execute(ctx, caller, &setProductNFT{ProductID: productID, Ref: ref, URI: uri})
	return err
}

// MintForOrder mints the product token for a pending order and completes it
func (s *Service) MintForOrder(ctx context.Context, caller domain.Principal, orderID uint64) (MintResult, error) {
	result, err := s.execute(ctx, caller, &mintForOrder{OrderID: orderID})
	if err != nil {
		return MintResult{}, err
	}
	return result.(MintResult), nil
}

// Mint issues a token directly
func (s *Service) Mint(ctx context.Context, caller, to domain.Principal) (uint64, error) {
	result, err := s.execute(ctx, caller, &mint{To: to})
	if err != nil {
		return 0, err
	}
	return result.(uint64), nil
}

// SetTokenURI attaches an ipfs:// URI to a token
func (s *Service) SetTokenURI(ctx context.Context, caller domain.Principal, id uint64, uri string) error {
	_, err := s.execute(ctx, caller, &setTokenURI{ID: id, URI: uri})
	return err
}

// Transfer moves a token between principals
func (s *Service) Transfer(ctx context.Context, caller domain.Principal, id uint64, from, to domain.Principal) error {
	_, err := s.execute(ctx, caller, &transfer{ID: id, From: from, To: to})
	return err
}
