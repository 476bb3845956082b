package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/market_ledger/internal/domain"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestJournalRepository_Append(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewJournalRepository(db)
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	entry := &domain.JournalEntry{
		Height:  12,
		Caller:  "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM",
		Op:      "add-product",
		Payload: json.RawMessage(`{"id":1,"price":1000,"name":"Widget"}`),
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO ledger_journal (height, caller, op, payload)")).
		WithArgs(int64(12), "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM", "add-product", `{"id":1,"price":1000,"name":"Widget"}`).
		WillReturnRows(sqlmock.NewRows([]string{"seq", "created_at"}).AddRow(int64(3), createdAt))

	err := repo.Append(context.Background(), entry)

	require.NoError(t, err)
	assert.Equal(t, int64(3), entry.Seq)
	assert.Equal(t, createdAt, entry.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournalRepository_Append_Error(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewJournalRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO ledger_journal")).
		WillReturnError(errors.New("duplicate key value violates unique constraint"))

	err := repo.Append(context.Background(), &domain.JournalEntry{Height: 1, Op: "mint", Payload: json.RawMessage(`{}`)})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "height 1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournalRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewJournalRepository(db)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"seq", "height", "caller", "op", "payload", "created_at"}).
		AddRow(int64(1), int64(1), "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM", "add-manager", []byte(`{"principal":"ST2"}`), now).
		AddRow(int64(2), int64(2), "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM", "mint", []byte(`{"to":"ST2"}`), now)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT seq, height, caller, op, payload, created_at")).WillReturnRows(rows)

	entries, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(1), entries[0].Seq)
	assert.Equal(t, uint64(1), entries[0].Height)
	assert.Equal(t, domain.Principal("ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM"), entries[0].Caller)
	assert.Equal(t, "add-manager", entries[0].Op)
	assert.JSONEq(t, `{"principal":"ST2"}`, string(entries[0].Payload))
	assert.Equal(t, "mint", entries[1].Op)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournalRepository_List_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewJournalRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM ledger_journal")).
		WillReturnRows(sqlmock.NewRows([]string{"seq", "height", "caller", "op", "payload", "created_at"}))

	entries, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, entries)
}
