package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Pesokrava/market_ledger/internal/domain"
)

func TestPrincipalRule(t *testing.T) {
	v := Get()

	assert.NoError(t, v.Var("ST1SJ3DTE5DN7X54YDH5D64R3BCB6A2AG2ZQ8YPD5", "principal"))
	assert.Error(t, v.Var(string(domain.BurnPrincipal), "principal"))
	assert.Error(t, v.Var("", "principal"))
}

func TestGet_ReturnsSharedInstance(t *testing.T) {
	assert.Same(t, Get(), Get())
}
