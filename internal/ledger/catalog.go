package ledger

import (
	"github.com/Pesokrava/market_ledger/internal/domain"
)

func (l *Ledger) checkProductFields(price uint64, name string, description *string) error {
	if err := l.check(price, rulePrice, domain.ErrInvalidPrice); err != nil {
		return err
	}
	if err := l.check(name, ruleName, domain.ErrEmptyString); err != nil {
		return err
	}
	return l.checkOptional(description, ruleDescription, domain.ErrInvalidString)
}

// AddProduct registers a new active product and appends it to the listing
func (l *Ledger) AddProduct(call Call, id, price uint64, name string, description *string) error {
	if err := l.requireManager(call); err != nil {
		return err
	}
	if err := l.checkProductFields(price, name, description); err != nil {
		return err
	}
	if _, exists := l.products[id]; exists {
		return domain.ErrProductAddFailed
	}
	if l.activeIndex.Full() {
		return domain.ErrListFull
	}

	l.products[id] = &domain.Product{
		ID:          id,
		Name:        name,
		Description: cloneString(description),
		Price:       price,
		Status:      domain.ProductActive,
	}
	l.activeIndex.Append(id)
	if l.initialStock > 0 {
		l.inventory[id] = l.initialStock
	}

	l.log.append(call, "add-product", "Product added")
	return nil
}

// UpdateProduct replaces name, price and description in place
func (l *Ledger) UpdateProduct(call Call, id, price uint64, name string, description *string) error {
	if err := l.requireManager(call); err != nil {
		return err
	}
	if err := l.checkProductFields(price, name, description); err != nil {
		return err
	}
	product, ok := l.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}

	product.Name = name
	product.Price = price
	product.Description = cloneString(description)

	l.log.append(call, "update-product", "Product updated")
	return nil
}

// RemoveProduct deactivates a product and drops it from the listing
func (l *Ledger) RemoveProduct(call Call, id uint64) error {
	if err := l.requireManager(call); err != nil {
		return err
	}
	product, ok := l.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	if !product.Active() {
		return domain.ErrProductInactive
	}

	product.Status = domain.ProductInactive
	l.activeIndex.Remove(id)

	l.log.append(call, "remove-product", "Product removed")
	return nil
}

// GetProduct returns a copy of the product, including removed ones
func (l *Ledger) GetProduct(id uint64) (domain.Product, error) {
	product, ok := l.products[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	p := *product
	p.Description = cloneString(product.Description)
	return p, nil
}

// ListProducts returns active products in insertion order
func (l *Ledger) ListProducts() []domain.ProductSummary {
	ids := l.activeIndex.IDs()
	out := make([]domain.ProductSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, l.products[id].Summary())
	}
	return out
}
