package domain

// Discount is a percentage reduction valid over the half-open window [StartHeight, EndHeight)
type Discount struct {
	ID          uint64 `json:"id"`
	ProductID   uint64 `json:"product_id"`
	Percent     uint64 `json:"percent"`
	StartHeight uint64 `json:"start_height"`
	EndHeight   uint64 `json:"end_height"`
	Active      bool   `json:"active"`
}

// AppliesAt reports whether the discount is active and its window contains height
func (d *Discount) AppliesAt(height uint64) bool {
	return d.Active && d.StartHeight <= height && height < d.EndHeight
}

// Apply returns price reduced by the discount, truncating toward zero
func (d *Discount) Apply(price uint64) uint64 {
	return price * (100 - d.Percent) / 100
}
