package domain

import (
	"errors"
	"fmt"
)

// Error is a ledger failure carrying the numeric code existing clients match on
type Error struct {
	Code uint32 `json:"code"`
	Name string `json:"error"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (u%d)", e.Name, e.Code)
}

func newError(code uint32, name string) *Error {
	return &Error{Code: code, Name: name}
}

var (
	ErrNotAuthorized    = newError(401, "NOT-AUTHORIZED")
	ErrNotFound         = newError(404, "NOT-FOUND")
	ErrListFull         = newError(405, "LIST-FULL")
	ErrInvalidPrincipal = newError(406, "INVALID-PRINCIPAL")
	ErrOwnerOnly        = newError(407, "OWNER-ONLY")

	ErrProductNotFound  = newError(2000, "PRODUCT-NOT-FOUND")
	ErrProductInactive  = newError(2001, "PRODUCT-INACTIVE")
	ErrInvalidPrice     = newError(2002, "INVALID-PRICE")
	ErrProductAddFailed = newError(2004, "PRODUCT-ADD-FAILED")

	ErrOrderNotFound         = newError(3000, "ORDER-NOT-FOUND")
	ErrInvalidOrderStatus    = newError(3001, "INVALID-ORDER-STATUS")
	ErrInsufficientInventory = newError(3002, "INSUFFICIENT-INVENTORY")
	ErrInvalidQuantity       = newError(3003, "INVALID-QUANTITY")

	// ErrInvalidString covers optional strings (descriptions) that are empty or too long
	ErrInvalidString = newError(4000, "INVALID-STRING")
	// ErrEmptyString covers required strings (names) that are empty or too long
	ErrEmptyString = newError(4001, "EMPTY-STRING")

	ErrInvalidToken = newError(6011, "INVALID-TOKEN")
	ErrNFTNotFound  = newError(6016, "NFT-NOT-FOUND")
	ErrInvalidURI   = newError(6017, "INVALID-URI")

	ErrInvalidDiscount   = newError(7002, "INVALID-DISCOUNT")
	ErrInvalidDiscountID = newError(7003, "INVALID-DISCOUNT-ID")
)

var (
	// ErrInvalidInput is returned when a request cannot be decoded
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal is returned when an internal error occurs
	ErrInternal = errors.New("internal error")
)

// CodeOf extracts the ledger error code from err, if any
func CodeOf(err error) (uint32, bool) {
	var lerr *Error
	if errors.As(err, &lerr) {
		return lerr.Code, true
	}
	return 0, false
}
