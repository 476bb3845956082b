package domain

import "context"

// IdempotencyStore remembers which order a client-supplied key produced.
// Keys are scoped by the calling principal.
type IdempotencyStore interface {
	// Lookup returns the order id caller recorded for key; ok is false on a miss
	Lookup(ctx context.Context, caller Principal, key string) (orderID uint64, ok bool, err error)

	// Remember records (caller, key) -> orderID
	Remember(ctx context.Context, caller Principal, key string, orderID uint64) error
}
