package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/market_ledger/internal/domain"
)

func TestTokenHandler(t *testing.T) {
	h := newTestRouter(newTestService(t, nil))

	w := do(t, h, http.MethodGet, "/tokens/last", "", nil)
	assert.Equal(t, float64(0), data(t, w)["last_token_id"])

	w = do(t, h, http.MethodPost, "/tokens", owner, map[string]string{"to": string(buyer)})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	token := data(t, w)
	assert.Equal(t, float64(1), token["id"])
	assert.Equal(t, string(buyer), token["owner"])

	w = do(t, h, http.MethodGet, "/tokens/last", "", nil)
	assert.Equal(t, float64(1), data(t, w)["last_token_id"])

	t.Run("set uri", func(t *testing.T) {
		w := do(t, h, http.MethodPut, "/tokens/1/uri", owner, map[string]string{"uri": "ipfs://bafy/1.json"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "ipfs://bafy/1.json", data(t, w)["uri"])

		w = do(t, h, http.MethodPut, "/tokens/1/uri", owner, map[string]string{"uri": "http://bafy/1.json"})
		assertLedgerError(t, w, http.StatusBadRequest, domain.ErrInvalidURI)

		w = do(t, h, http.MethodPut, "/tokens/2/uri", owner, map[string]string{"uri": "ipfs://x"})
		assertLedgerError(t, w, http.StatusNotFound, domain.ErrInvalidToken)
	})

	t.Run("transfer", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/tokens/1/transfer", owner, map[string]string{"from": string(buyer), "to": string(stranger)})
		assertLedgerError(t, w, http.StatusForbidden, domain.ErrNotAuthorized)

		w = do(t, h, http.MethodPost, "/tokens/1/transfer", buyer, map[string]string{"from": string(buyer), "to": string(domain.BurnPrincipal)})
		assertLedgerError(t, w, http.StatusBadRequest, domain.ErrInvalidPrincipal)

		w = do(t, h, http.MethodPost, "/tokens/1/transfer", buyer, map[string]string{"from": string(buyer), "to": string(stranger)})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, string(stranger), data(t, w)["owner"])
	})

	t.Run("unknown token", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/tokens/99", "", nil)
		assertLedgerError(t, w, http.StatusNotFound, domain.ErrInvalidToken)
	})

	t.Run("mint requires a role", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/tokens", buyer, map[string]string{"to": string(buyer)})
		assertLedgerError(t, w, http.StatusForbidden, domain.ErrNotAuthorized)
	})
}

func TestTokenHandler_Contract(t *testing.T) {
	h := newTestRouter(newTestService(t, nil))

	w := do(t, h, http.MethodGet, "/nft/contract", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, data(t, w)["enabled"])

	w = do(t, h, http.MethodPut, "/nft/contract", owner, map[string]interface{}{"contract": "SP1OWNER.market-nft", "enabled": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	contract := data(t, w)
	assert.Equal(t, "SP1OWNER.market-nft", contract["contract"])
	assert.Equal(t, true, contract["enabled"])

	w = do(t, h, http.MethodPost, "/managers", owner, map[string]string{"principal": string(manager)})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, h, http.MethodPut, "/nft/contract", manager, map[string]interface{}{"contract": "x", "enabled": false})
	assertLedgerError(t, w, http.StatusForbidden, domain.ErrOwnerOnly)
}
