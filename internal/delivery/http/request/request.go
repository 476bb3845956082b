package request

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Pesokrava/market_ledger/internal/domain"
	"github.com/Pesokrava/market_ledger/internal/pkg/validator"
)

const maxRequestBodySize = 1 << 20 // 1MB

// DecodeJSON decodes JSON request body into the provided struct with size limit
func DecodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()

	// Limit request body size to prevent DoS attacks
	limitedReader := io.LimitReader(r.Body, maxRequestBodySize)

	if err := json.NewDecoder(limitedReader).Decode(v); err != nil {
		return fmt.Errorf("%w: failed to decode JSON: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// DecodeAndValidate decodes the body and runs the struct's validate tags
func DecodeAndValidate(r *http.Request, v interface{}) error {
	if err := DecodeJSON(r, v); err != nil {
		return err
	}
	if err := validator.Get().Struct(v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// GetUint64Param extracts an unsigned integer parameter from the URL
func GetUint64Param(r *http.Request, key string) (uint64, error) {
	param := chi.URLParam(r, key)
	if param == "" {
		return 0, fmt.Errorf("%w: missing parameter: %s", domain.ErrInvalidInput, key)
	}

	id, err := strconv.ParseUint(param, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s: %v", domain.ErrInvalidInput, key, err)
	}

	return id, nil
}

// GetPrincipalParam extracts a principal parameter from the URL
func GetPrincipalParam(r *http.Request, key string) (domain.Principal, error) {
	param := chi.URLParam(r, key)
	if param == "" {
		return "", fmt.Errorf("%w: missing parameter: %s", domain.ErrInvalidInput, key)
	}
	return domain.Principal(param), nil
}
