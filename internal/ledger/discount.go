package ledger

import (
	"github.com/Pesokrava/market_ledger/internal/domain"
)

// AddDiscount creates a discount and returns its id
func (l *Ledger) AddDiscount(call Call, productID, percent, start, end uint64) (uint64, error) {
	if err := l.requireManager(call); err != nil {
		return 0, err
	}
	if err := l.check(percent, rulePercent, domain.ErrInvalidDiscount); err != nil {
		return 0, err
	}
	if start > end {
		return 0, domain.ErrInvalidDiscount
	}
	if _, ok := l.products[productID]; !ok {
		return 0, domain.ErrProductNotFound
	}

	id := uint64(len(l.discounts))
	l.discounts = append(l.discounts, &domain.Discount{
		ID:          id,
		ProductID:   productID,
		Percent:     percent,
		StartHeight: start,
		EndHeight:   end,
		Active:      true,
	})

	l.log.append(call, "add-discount", "Discount added")
	return id, nil
}

// UpdateDiscount changes the percent and end height of a discount
func (l *Ledger) UpdateDiscount(call Call, id, percent, end uint64) error {
	if err := l.requireManager(call); err != nil {
		return err
	}
	discount, err := l.discount(id)
	if err != nil {
		return err
	}
	if err := l.check(percent, rulePercent, domain.ErrInvalidDiscount); err != nil {
		return err
	}
	if end < discount.StartHeight {
		return domain.ErrInvalidDiscount
	}

	discount.Percent = percent
	discount.EndHeight = end

	l.log.append(call, "update-discount", "Discount updated")
	return nil
}

// DeactivateDiscount switches a discount off permanently
func (l *Ledger) DeactivateDiscount(call Call, id uint64) error {
	if err := l.requireManager(call); err != nil {
		return err
	}
	discount, err := l.discount(id)
	if err != nil {
		return err
	}

	discount.Active = false

	l.log.append(call, "deactivate-discount", "Discount deactivated")
	return nil
}

// GetDiscount returns a copy of a discount
func (l *Ledger) GetDiscount(id uint64) (domain.Discount, error) {
	discount, err := l.discount(id)
	if err != nil {
		return domain.Discount{}, err
	}
	return *discount, nil
}

func (l *Ledger) discount(id uint64) (*domain.Discount, error) {
	if id >= uint64(len(l.discounts)) {
		return nil, domain.ErrInvalidDiscountID
	}
	return l.discounts[id], nil
}

// currentDiscount is the most recently added discount for the product that applies at height
func (l *Ledger) currentDiscount(productID, height uint64) *domain.Discount {
	for i := len(l.discounts) - 1; i >= 0; i-- {
		d := l.discounts[i]
		if d.ProductID == productID && d.AppliesAt(height) {
			return d
		}
	}
	return nil
}

// DiscountedPrice resolves the price of a product at height
func (l *Ledger) DiscountedPrice(productID, height uint64) (uint64, error) {
	product, ok := l.products[productID]
	if !ok {
		return 0, domain.ErrProductNotFound
	}
	if d := l.currentDiscount(productID, height); d != nil {
		return d.Apply(product.Price), nil
	}
	return product.Price, nil
}
