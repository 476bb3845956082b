package ledger

import (
	"fmt"

	"github.com/Pesokrava/market_ledger/internal/domain"
)

var (
	rulePrice       = fmt.Sprintf("gt=0,lte=%d", MaxPrice)
	ruleName        = fmt.Sprintf("min=1,max=%d,ascii", MaxNameLen)
	ruleDescription = fmt.Sprintf("min=1,max=%d,ascii", MaxDescLen)
	ruleQuantity    = fmt.Sprintf("min=1,max=%d", MaxQuantity)
	rulePercent     = "lte=100"
	rulePrincipal   = "principal"
	ruleURI         = fmt.Sprintf("max=%d,startswith=ipfs://", MaxURILen)
)

// check runs a validator rule against value and maps any failure to fail
func (l *Ledger) check(value any, rule string, fail *domain.Error) error {
	if err := l.validate.Var(value, rule); err != nil {
		return fail
	}
	return nil
}

func (l *Ledger) checkOptional(value *string, rule string, fail *domain.Error) error {
	if value == nil {
		return nil
	}
	return l.check(*value, rule, fail)
}

// checkPrincipal rejects identities that can never hold a role or a token
func (l *Ledger) checkPrincipal(p domain.Principal) error {
	return l.check(p, rulePrincipal, domain.ErrInvalidPrincipal)
}
