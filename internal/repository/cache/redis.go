package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Pesokrava/market_ledger/internal/domain"
)

// keyIdemOrderPlace maps a caller's Idempotency-Key header to the order it produced
const keyIdemOrderPlace = "idem:order:place:%s:%s"

// IdempotencyStore implements domain.IdempotencyStore on Redis
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore creates a store whose keys expire after ttl
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{
		client: client,
		ttl:    ttl,
	}
}

func (c *IdempotencyStore) orderKey(caller domain.Principal, key string) string {
	return fmt.Sprintf(keyIdemOrderPlace, caller, key)
}

// Lookup returns the order id caller recorded for key
func (c *IdempotencyStore) Lookup(ctx context.Context, caller domain.Principal, key string) (uint64, bool, error) {
	id, err := c.client.Get(ctx, c.orderKey(caller, key)).Uint64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return id, true, nil
}

// Remember records (caller, key) -> orderID; the first writer wins
func (c *IdempotencyStore) Remember(ctx context.Context, caller domain.Principal, key string, orderID uint64) error {
	return c.client.SetNX(ctx, c.orderKey(caller, key), orderID, c.ttl).Err()
}
