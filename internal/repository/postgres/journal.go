package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Pesokrava/market_ledger/internal/domain"
)

// JournalRepository implements domain.JournalRepository for PostgreSQL
type JournalRepository struct {
	db *sqlx.DB
}

// NewJournalRepository creates a new PostgreSQL journal repository
func NewJournalRepository(db *sqlx.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// journalRow mirrors ledger_journal; payload travels as text since lib/pq
// returns jsonb as bytes but will not accept []byte for a jsonb parameter
type journalRow struct {
	Seq       int64            `db:"seq"`
	Height    uint64           `db:"height"`
	Caller    domain.Principal `db:"caller"`
	Op        string           `db:"op"`
	Payload   string           `db:"payload"`
	CreatedAt time.Time        `db:"created_at"`
}

// Append stores a committed call
func (r *JournalRepository) Append(ctx context.Context, entry *domain.JournalEntry) error {
	query := `
		INSERT INTO ledger_journal (height, caller, op, payload)
		VALUES ($1, $2, $3, $4::jsonb)
		RETURNING seq, created_at
	`

	err := r.db.QueryRowxContext(
		ctx,
		query,
		entry.Height,
		string(entry.Caller),
		entry.Op,
		string(entry.Payload),
	).Scan(
		&entry.Seq,
		&entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append journal entry at height %d: %w", entry.Height, err)
	}

	return nil
}

// List returns every entry in commit order
func (r *JournalRepository) List(ctx context.Context) ([]*domain.JournalEntry, error) {
	query := `
		SELECT seq, height, caller, op, payload, created_at
		FROM ledger_journal
		ORDER BY seq ASC
	`

	var rows []journalRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list journal: %w", err)
	}

	entries := make([]*domain.JournalEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, &domain.JournalEntry{
			Seq:       row.Seq,
			Height:    row.Height,
			Caller:    row.Caller,
			Op:        row.Op,
			Payload:   json.RawMessage(row.Payload),
			CreatedAt: row.CreatedAt,
		})
	}

	return entries, nil
}
