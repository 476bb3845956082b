package cache

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis answers GET/SET commands from a map without a server
type fakeRedis struct {
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func (f *fakeRedis) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return nil, errors.New("fake redis does not dial")
	}
}

func (f *fakeRedis) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		if f.err != nil {
			cmd.SetErr(f.err)
			return f.err
		}
		args := cmd.Args()
		key, _ := args[1].(string)
		switch c := cmd.(type) {
		case *redis.StringCmd:
			val, ok := f.data[key]
			if !ok {
				c.SetErr(redis.Nil)
				return redis.Nil
			}
			c.SetVal(val)
		case *redis.BoolCmd:
			if _, exists := f.data[key]; exists {
				c.SetVal(false)
				return nil
			}
			f.data[key] = fmt.Sprint(args[2])
			f.ttls[key] = expiry(args[3], args[4])
			c.SetVal(true)
		}
		return nil
	}
}

// expiry decodes the EX/PX pair go-redis appends to SET
func expiry(unit, value interface{}) time.Duration {
	n, _ := value.(int64)
	if unit == "px" {
		return time.Duration(n) * time.Millisecond
	}
	return time.Duration(n) * time.Second
}

func (f *fakeRedis) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func newFakeStore(t *testing.T, ttl time.Duration) (*IdempotencyStore, *fakeRedis) {
	t.Helper()
	fake := &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
	client := redis.NewClient(&redis.Options{Addr: "fake:6379"})
	client.AddHook(fake)
	t.Cleanup(func() { _ = client.Close() })
	return NewIdempotencyStore(client, ttl), fake
}

func TestIdempotencyStore_LookupMiss(t *testing.T) {
	store, _ := newFakeStore(t, time.Hour)

	id, ok, err := store.Lookup(context.Background(), "SP1BUYER", "abc")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, id)
}

func TestIdempotencyStore_RememberThenLookup(t *testing.T) {
	store, fake := newFakeStore(t, 24*time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Remember(ctx, "SP1BUYER", "abc", 17))
	require.NoError(t, store.Remember(ctx, "SP1BUYER", "abc", 99))

	id, ok, err := store.Lookup(ctx, "SP1BUYER", "abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(17), id)
	assert.Equal(t, "17", fake.data["idem:order:place:SP1BUYER:abc"])
	assert.Equal(t, 24*time.Hour, fake.ttls["idem:order:place:SP1BUYER:abc"])
}

func TestIdempotencyStore_KeysAreScopedByCaller(t *testing.T) {
	store, _ := newFakeStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Remember(ctx, "SP1BUYER", "abc", 17))

	_, ok, err := store.Lookup(ctx, "SP2OTHER", "abc")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Remember(ctx, "SP2OTHER", "abc", 18))
	id, ok, err := store.Lookup(ctx, "SP2OTHER", "abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(18), id)
}

func TestIdempotencyStore_Errors(t *testing.T) {
	store, fake := newFakeStore(t, time.Hour)
	fake.err = errors.New("connection refused")

	_, ok, err := store.Lookup(context.Background(), "SP1BUYER", "abc")
	assert.Error(t, err)
	assert.False(t, ok)

	assert.Error(t, store.Remember(context.Background(), "SP1BUYER", "abc", 1))
}
