package domain

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderCancelled OrderStatus = "CANCELLED"
	OrderCompleted OrderStatus = "COMPLETED"
)

var validNext = map[OrderStatus]map[OrderStatus]bool{
	OrderPending:   {OrderCancelled: true, OrderCompleted: true},
	OrderCancelled: {},
	OrderCompleted: {},
}

// CanTransition reports whether an order may move from one status to another
func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

// Terminal reports whether no further transition is possible
func (s OrderStatus) Terminal() bool {
	return len(validNext[s]) == 0
}

// Order represents a buyer order; timestamps are block heights
type Order struct {
	ID        uint64      `json:"id"`
	ProductID uint64      `json:"product_id"`
	Quantity  uint64      `json:"quantity"`
	Buyer     Principal   `json:"buyer"`
	Status    OrderStatus `json:"status"`
	CreatedAt uint64      `json:"created_at"`
	UpdatedAt uint64      `json:"updated_at"`
}
