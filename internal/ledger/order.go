package ledger

import (
	"github.com/Pesokrava/market_ledger/internal/domain"
)

// PlaceOrder reserves inventory and records a PENDING order for buyer
func (l *Ledger) PlaceOrder(call Call, productID, quantity uint64, buyer domain.Principal) (uint64, error) {
	product, ok := l.products[productID]
	if !ok {
		return 0, domain.ErrProductNotFound
	}
	if !product.Active() {
		return 0, domain.ErrProductInactive
	}
	if err := l.check(quantity, ruleQuantity, domain.ErrInvalidQuantity); err != nil {
		return 0, err
	}
	if err := l.checkPrincipal(buyer); err != nil {
		return 0, err
	}
	if err := l.canReserve(productID, quantity); err != nil {
		return 0, err
	}
	if len(l.orders) >= OrderCapacity {
		return 0, domain.ErrListFull
	}

	id := uint64(len(l.orders))
	l.reserve(productID, quantity)
	l.orders = append(l.orders, &domain.Order{
		ID:        id,
		ProductID: productID,
		Quantity:  quantity,
		Buyer:     buyer,
		Status:    domain.OrderPending,
		CreatedAt: call.Height,
		UpdatedAt: call.Height,
	})

	l.log.append(call, "place-order", "Order placed")
	return id, nil
}

// CancelOrder returns the reserved quantity to inventory; buyer, manager or owner only
func (l *Ledger) CancelOrder(call Call, id uint64) error {
	order, ok := l.order(id)
	if !ok {
		return domain.ErrNotFound
	}
	if !domain.CanTransition(order.Status, domain.OrderCancelled) {
		return domain.ErrInvalidOrderStatus
	}
	if call.Caller != order.Buyer && !l.IsManagerOrOwner(call.Caller) {
		return domain.ErrNotAuthorized
	}
	if err := l.canRelease(order.ProductID, order.Quantity); err != nil {
		return err
	}

	l.release(order.ProductID, order.Quantity)
	order.Status = domain.OrderCancelled
	order.UpdatedAt = call.Height

	l.log.append(call, "cancel-order", "Order cancelled")
	return nil
}

// GetOrder returns a copy of an order
func (l *Ledger) GetOrder(id uint64) (domain.Order, error) {
	order, ok := l.order(id)
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return *order, nil
}

// ListOrders returns every order in placement order
func (l *Ledger) ListOrders() []domain.Order {
	out := make([]domain.Order, 0, len(l.orders))
	for _, o := range l.orders {
		out = append(out, *o)
	}
	return out
}

func (l *Ledger) order(id uint64) (*domain.Order, bool) {
	if id >= uint64(len(l.orders)) {
		return nil, false
	}
	return l.orders[id], true
}
