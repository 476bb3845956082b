package domain

// ProductStatus is the lifecycle state of a catalog entry
type ProductStatus string

const (
	ProductActive   ProductStatus = "ACTIVE"
	ProductInactive ProductStatus = "INACTIVE"
)

// Product represents a catalog entry; removed products stay resolvable as INACTIVE
type Product struct {
	ID          uint64        `json:"id"`
	Name        string        `json:"name"`
	Description *string       `json:"description,omitempty"`
	Price       uint64        `json:"price"`
	Status      ProductStatus `json:"status"`
}

// Active reports whether the product can be listed and ordered
func (p *Product) Active() bool {
	return p.Status == ProductActive
}

// Summary returns the listing view of the product
func (p *Product) Summary() ProductSummary {
	return ProductSummary{ID: p.ID, Name: p.Name, Price: p.Price}
}

// ProductSummary is the list-products projection
type ProductSummary struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Price uint64 `json:"price"`
}
