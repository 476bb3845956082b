package ledger

import (
	"fmt"

	"github.com/Pesokrava/market_ledger/internal/domain"
)

var ruleStoreURL = fmt.Sprintf("max=%d,ascii", MaxDescLen)

// UpdateStoreInfo replaces the storefront presentation; owner only
func (l *Ledger) UpdateStoreInfo(call Call, info domain.StoreInfo) error {
	if err := l.requireOwner(call); err != nil {
		return err
	}
	if err := l.check(info.Name, ruleName, domain.ErrEmptyString); err != nil {
		return err
	}
	if err := l.check(info.Description, ruleDescription, domain.ErrInvalidString); err != nil {
		return err
	}
	if err := l.check(info.Logo, ruleStoreURL, domain.ErrInvalidString); err != nil {
		return err
	}
	if err := l.check(info.Banner, ruleStoreURL, domain.ErrInvalidString); err != nil {
		return err
	}

	l.store = info

	l.log.append(call, "update-store-info", "Store info updated")
	return nil
}

// StoreInfo returns the storefront presentation
func (l *Ledger) StoreInfo() domain.StoreInfo {
	return l.store
}
