//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/market_ledger/internal/config"
	httpDelivery "github.com/Pesokrava/market_ledger/internal/delivery/http"
	"github.com/Pesokrava/market_ledger/internal/delivery/http/handler"
	"github.com/Pesokrava/market_ledger/internal/delivery/http/middleware"
	"github.com/Pesokrava/market_ledger/internal/domain"
	"github.com/Pesokrava/market_ledger/internal/pkg/cache"
	"github.com/Pesokrava/market_ledger/internal/pkg/database"
	"github.com/Pesokrava/market_ledger/internal/pkg/logger"
	cacheRepo "github.com/Pesokrava/market_ledger/internal/repository/cache"
	"github.com/Pesokrava/market_ledger/internal/repository/postgres"
	"github.com/Pesokrava/market_ledger/internal/usecase/market"
)

const (
	testOwner = "SP1INTEGRATIONOWNER"
	testBuyer = "SP2INTEGRATIONBUYER"
)

// stack is the live infrastructure a service is built on
type stack struct {
	cfg     *config.Config
	log     *logger.Logger
	db      *sqlx.DB
	journal *postgres.JournalRepository
	idem    *cacheRepo.IdempotencyStore
}

func setupStack(t *testing.T) *stack {
	t.Helper()
	t.Setenv("MARKET_OWNER", testOwner)

	cfg, err := config.Load()
	require.NoError(t, err)

	log := logger.New(cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	db, err := database.WaitForDB(ctx, cfg, 5, 2*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.RunMigrations(db, "../../migrations"))
	_, err = db.Exec("TRUNCATE ledger_journal RESTART IDENTITY")
	require.NoError(t, err)

	redisClient, err := cache.WaitForRedis(ctx, cfg, 5, 2*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { redisClient.Close() })

	return &stack{
		cfg:     cfg,
		log:     log,
		db:      db,
		journal: postgres.NewJournalRepository(db),
		idem:    cacheRepo.NewIdempotencyStore(redisClient, time.Minute),
	}
}

func (s *stack) newService(t *testing.T, publisher market.EventPublisher) *market.Service {
	t.Helper()

	svc := market.NewService(market.Options{Owner: testOwner, Subject: s.cfg.Events.Subject}, s.journal, s.idem, publisher, s.log)
	t.Cleanup(svc.Close)

	_, err := svc.Replay(context.Background())
	require.NoError(t, err)
	return svc
}

func (s *stack) newServer(t *testing.T, svc *market.Service) http.Handler {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return httpDelivery.NewRouter(svc, s.cfg, s.log).Setup(ctx)
}

func send(t *testing.T, server http.Handler, method, path, caller, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if caller != "" {
		req.Header.Set(middleware.PrincipalHeader, caller)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp["success"].(bool))
	return resp["data"].(map[string]interface{})
}

func TestOrderFlowSurvivesRestart(t *testing.T) {
	st := setupStack(t)
	server := st.newServer(t, st.newService(t, nil))

	w := send(t, server, http.MethodPost, "/api/v1/products", testOwner, `{"id": 1, "name": "Widget", "price": 1000}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = send(t, server, http.MethodPut, "/api/v1/products/1/inventory", testOwner, `{"quantity": 50}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = send(t, server, http.MethodPost, "/api/v1/orders", testBuyer, `{"product_id": 1, "quantity": 10}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	orderID := decodeData(t, w)["id"]

	var rows int
	require.NoError(t, st.db.Get(&rows, "SELECT COUNT(*) FROM ledger_journal"))
	assert.Equal(t, 3, rows)

	// a fresh service rebuilds the same state from the journal
	restarted := st.newService(t, nil)
	assert.Equal(t, uint64(3), restarted.Height())
	assert.Equal(t, uint64(40), restarted.GetInventory(1))

	order, err := restarted.GetOrder(uint64(orderID.(float64)))
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPending, order.Status)
	assert.Equal(t, domain.Principal(testBuyer), order.Buyer)

	entry, err := restarted.LastLog()
	require.NoError(t, err)
	assert.Equal(t, "place-order", entry.Action)
}

func TestRejectedCallsAreNotJournaled(t *testing.T) {
	st := setupStack(t)
	server := st.newServer(t, st.newService(t, nil))

	w := send(t, server, http.MethodPost, "/api/v1/products", testBuyer, `{"id": 1, "name": "Widget", "price": 1000}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var rows int
	require.NoError(t, st.db.Get(&rows, "SELECT COUNT(*) FROM ledger_journal"))
	assert.Zero(t, rows)
}

func TestOrderIdempotencyKey(t *testing.T) {
	st := setupStack(t)
	server := st.newServer(t, st.newService(t, nil))

	require.Equal(t, http.StatusCreated,
		send(t, server, http.MethodPost, "/api/v1/products", testOwner, `{"id": 1, "name": "Widget", "price": 1000}`).Code)
	require.Equal(t, http.StatusOK,
		send(t, server, http.MethodPut, "/api/v1/products/1/inventory", testOwner, `{"quantity": 50}`).Code)

	key := uuid.NewString()
	body := `{"product_id": 1, "quantity": 5}`

	first := send(t, server, http.MethodPost, "/api/v1/orders", testBuyer, body, handler.IdempotencyKeyHeader, key)
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())

	retry := send(t, server, http.MethodPost, "/api/v1/orders", testBuyer, body, handler.IdempotencyKeyHeader, key)
	require.Equal(t, http.StatusOK, retry.Code, retry.Body.String())
	assert.Equal(t, "true", retry.Header().Get(handler.ReplayedHeader))

	w := send(t, server, http.MethodGet, "/api/v1/products/1/inventory", "", "")
	assert.Equal(t, float64(45), decodeData(t, w)["quantity"])
}

func TestHealthCheck(t *testing.T) {
	st := setupStack(t)
	server := st.newServer(t, st.newService(t, nil))

	w := send(t, server, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, float64(0), resp["height"])
}
