package ledger

import (
	"math"

	"github.com/Pesokrava/market_ledger/internal/domain"
)

// UpdateInventory sets the absolute quantity on hand for a product
func (l *Ledger) UpdateInventory(call Call, productID, quantity uint64) error {
	if err := l.requireManager(call); err != nil {
		return err
	}
	if _, ok := l.products[productID]; !ok {
		return domain.ErrProductNotFound
	}

	l.inventory[productID] = quantity

	l.log.append(call, "update-inventory", "Inventory updated")
	return nil
}

// GetInventory returns the quantity on hand, 0 if never set
func (l *Ledger) GetInventory(productID uint64) uint64 {
	return l.inventory[productID]
}

func (l *Ledger) canReserve(productID, quantity uint64) error {
	if quantity > l.inventory[productID] {
		return domain.ErrInsufficientInventory
	}
	return nil
}

// reserve must only run after canReserve succeeded in the same call
func (l *Ledger) reserve(productID, quantity uint64) {
	l.inventory[productID] -= quantity
}

func (l *Ledger) canRelease(productID, quantity uint64) error {
	if quantity > math.MaxUint64-l.inventory[productID] {
		return domain.ErrInvalidQuantity
	}
	return nil
}

// release must only run after canRelease succeeded in the same call
func (l *Ledger) release(productID, quantity uint64) {
	l.inventory[productID] += quantity
}
