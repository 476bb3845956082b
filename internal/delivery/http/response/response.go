package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Pesokrava/market_ledger/internal/domain"
)

// JSON writes a JSON response
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// Error writes an error response
func Error(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// Success writes a success response with data
func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

// Created writes a created response
func Created(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

// NoContent writes a no content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// LedgerError writes a coded ledger error as {"error": NAME, "code": n}.
// Errors without a code fall back to 400 for bad input and 500 otherwise.
func LedgerError(w http.ResponseWriter, err error) {
	var lerr *domain.Error
	if errors.As(err, &lerr) {
		JSON(w, StatusFor(lerr.Code), lerr)
		return
	}

	if errors.Is(err, domain.ErrInvalidInput) {
		Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	Error(w, http.StatusInternalServerError, "Internal server error")
}

// StatusFor maps a ledger error code to its HTTP status
func StatusFor(code uint32) int {
	switch code {
	case domain.ErrNotAuthorized.Code, domain.ErrOwnerOnly.Code:
		return http.StatusForbidden
	case domain.ErrNotFound.Code,
		domain.ErrProductNotFound.Code,
		domain.ErrOrderNotFound.Code,
		domain.ErrInvalidToken.Code,
		domain.ErrNFTNotFound.Code,
		domain.ErrInvalidDiscountID.Code:
		return http.StatusNotFound
	case domain.ErrListFull.Code,
		domain.ErrProductInactive.Code,
		domain.ErrProductAddFailed.Code,
		domain.ErrInvalidOrderStatus.Code,
		domain.ErrInsufficientInventory.Code:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
