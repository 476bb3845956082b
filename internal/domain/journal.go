package domain

import (
	"context"
	"encoding/json"
	"time"
)

// JournalEntry is one committed ledger call, enough to replay it deterministically
type JournalEntry struct {
	Seq       int64           `json:"seq" db:"seq"`
	Height    uint64          `json:"height" db:"height"`
	Caller    Principal       `json:"caller" db:"caller"`
	Op        string          `json:"op" db:"op"`
	Payload   json.RawMessage `json:"payload" db:"payload"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// JournalRepository defines the interface for durable ledger history
type JournalRepository interface {
	// Append stores a committed call and fills in Seq and CreatedAt
	Append(ctx context.Context, entry *JournalEntry) error

	// List returns every entry in commit order
	List(ctx context.Context) ([]*JournalEntry, error)
}
