package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/market_ledger/internal/delivery/http/middleware"
	"github.com/Pesokrava/market_ledger/internal/domain"
	"github.com/Pesokrava/market_ledger/internal/pkg/logger"
	"github.com/Pesokrava/market_ledger/internal/usecase/market"
)

const (
	owner    = domain.Principal("SP1OWNER")
	manager  = domain.Principal("SP2MANAGER")
	buyer    = domain.Principal("SP3BUYER")
	stranger = domain.Principal("SP4STRANGER")
)

// memoryIdempotency is an in-process domain.IdempotencyStore
type memoryIdempotency struct {
	mu   sync.Mutex
	keys map[string]uint64
}

func (m *memoryIdempotency) Lookup(_ context.Context, caller domain.Principal, key string) (uint64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.keys[string(caller)+":"+key]
	return id, ok, nil
}

func (m *memoryIdempotency) Remember(_ context.Context, caller domain.Principal, key string, orderID uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[string(caller)+":"+key] = orderID
	return nil
}

func newTestService(t *testing.T, idem domain.IdempotencyStore) *market.Service {
	t.Helper()
	svc := market.NewService(market.Options{Owner: owner}, nil, idem, nil, logger.Nop())
	t.Cleanup(svc.Close)
	return svc
}

func newTestRouter(svc *market.Service) http.Handler {
	log := logger.Nop()
	store := NewStoreHandler(svc, log)
	products := NewProductHandler(svc, log)
	discounts := NewDiscountHandler(svc, log)
	orders := NewOrderHandler(svc, log)
	tokens := NewTokenHandler(svc, log)

	r := chi.NewRouter()
	r.Use(middleware.Principal())

	r.Get("/store", store.GetStore)
	r.Put("/store", store.UpdateStore)
	r.Get("/managers", store.ListManagers)
	r.Post("/managers", store.AddManager)
	r.Delete("/managers/{principal}", store.RemoveManager)
	r.Get("/logs/last", store.LastLog)
	r.Get("/logs/nonce", store.LogNonce)

	r.Post("/products", products.Create)
	r.Get("/products", products.List)
	r.Get("/products/{id}", products.GetByID)
	r.Put("/products/{id}", products.Update)
	r.Delete("/products/{id}", products.Delete)
	r.Get("/products/{id}/inventory", products.GetInventory)
	r.Put("/products/{id}/inventory", products.SetInventory)
	r.Get("/products/{id}/price", products.GetPrice)
	r.Get("/products/{id}/nft", products.GetNFT)
	r.Put("/products/{id}/nft", products.SetNFT)

	r.Post("/discounts", discounts.Create)
	r.Get("/discounts/{id}", discounts.GetByID)
	r.Put("/discounts/{id}", discounts.Update)
	r.Post("/discounts/{id}/deactivate", discounts.Deactivate)

	r.Post("/orders", orders.Place)
	r.Get("/orders", orders.List)
	r.Get("/orders/{id}", orders.GetByID)
	r.Post("/orders/{id}/cancel", orders.Cancel)
	r.Post("/orders/{id}/mint", orders.Mint)

	r.Get("/nft/contract", tokens.GetContract)
	r.Put("/nft/contract", tokens.SetContract)
	r.Post("/tokens", tokens.Mint)
	r.Get("/tokens/last", tokens.LastTokenID)
	r.Get("/tokens/{id}", tokens.GetByID)
	r.Put("/tokens/{id}/uri", tokens.SetURI)
	r.Post("/tokens/{id}/transfer", tokens.Transfer)

	return r
}

// do sends one request; headers are extra key/value pairs
func do(t *testing.T, h http.Handler, method, path string, caller domain.Principal, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if caller != "" {
		req.Header.Set(middleware.PrincipalHeader, string(caller))
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// data decodes the "data" member of a success envelope
func data(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	return body.Data
}

// assertLedgerError checks the HTTP status and the coded error body
func assertLedgerError(t *testing.T, w *httptest.ResponseRecorder, status int, want *domain.Error) {
	t.Helper()

	assert.Equal(t, status, w.Code)
	var got domain.Error
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, want.Code, got.Code)
	assert.Equal(t, want.Name, got.Name)
}

func addProduct(t *testing.T, h http.Handler, id, price uint64) {
	t.Helper()
	w := do(t, h, http.MethodPost, "/products", owner, map[string]interface{}{
		"id":    id,
		"name":  "Widget",
		"price": price,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func setStock(t *testing.T, h http.Handler, id, quantity uint64) {
	t.Helper()
	w := do(t, h, http.MethodPut, "/products/"+itoa(id)+"/inventory", owner, map[string]uint64{"quantity": quantity})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func itoa(v uint64) string {
	b, _ := json.Marshal(v)
	return string(b)
}
