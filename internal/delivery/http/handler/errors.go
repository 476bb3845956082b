package handler

import (
	"errors"
	"net/http"

	"github.com/Pesokrava/market_ledger/internal/delivery/http/response"
	"github.com/Pesokrava/market_ledger/internal/domain"
	"github.com/Pesokrava/market_ledger/internal/pkg/logger"
)

// handleError writes err to the client; only infrastructure failures are logged as errors
func handleError(w http.ResponseWriter, log *logger.Logger, err error) {
	switch code, ok := domain.CodeOf(err); {
	case ok:
		log.Debugf("Ledger rejected request: u%d", code)
	case errors.Is(err, domain.ErrInvalidInput):
		log.Debugf("Bad request: %v", err)
	default:
		log.Error("Request failed", err)
	}

	response.LedgerError(w, err)
}
