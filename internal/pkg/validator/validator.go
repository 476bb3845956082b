package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/Pesokrava/market_ledger/internal/domain"
)

// Shared validator instance to avoid creating multiple instances
var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("principal", validatePrincipal)
}

// Get returns the shared validator instance
func Get() *validator.Validate {
	return validate
}

// validatePrincipal accepts any non-empty identity except the burn address
func validatePrincipal(fl validator.FieldLevel) bool {
	return domain.Principal(fl.Field().String()).Valid()
}
