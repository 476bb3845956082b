package market

import (
	"github.com/Pesokrava/market_ledger/internal/domain"
	"github.com/Pesokrava/market_ledger/internal/ledger"
)

// command is one journaled ledger write. Its JSON form is the journal payload,
// so fields must carry everything apply needs besides caller and height.
type command interface {
	name() string
	apply(l *ledger.Ledger, call ledger.Call) (any, error)
}

// commands maps journal op names back to empty commands for replay
var commands = map[string]func() command{
	"add-manager":         func() command { return &addManager{} },
	"remove-manager":      func() command { return &removeManager{} },
	"update-store-info":   func() command { return &updateStoreInfo{} },
	"add-product":         func() command { return &addProduct{} },
	"update-product":      func() command { return &updateProduct{} },
	"remove-product":      func() command { return &removeProduct{} },
	"update-inventory":    func() command { return &updateInventory{} },
	"add-discount":        func() command { return &addDiscount{} },
	"update-discount":     func() command { return &updateDiscount{} },
	"deactivate-discount": func() command { return &deactivateDiscount{} },
	"place-order":         func() command { return &placeOrder{} },
	"cancel-order":        func() command { return &cancelOrder{} },
	"set-nft-contract":    func() command { return &setNFTContract{} },
	"set-product-nft":     func() command { return &setProductNFT{} },
	"mint-nft-for-order":  func() command { return &mintForOrder{} },
	"mint":                func() command { return &mint{} },
	"set-token-uri":       func() command { return &setTokenURI{} },
	"transfer":            func() command { return &transfer{} },
}

type addManager struct {
	Principal domain.Principal `json:"principal"`
}

func (c *addManager) name() string { return "add-manager" }
func (c *addManager) apply(l *ledger.Ledger, call ledger.Call) (any, error) {
	return nil, l.AddManager(call, c.Principal)
}

type removeManager struct {
	Principal domain.Principal `json:"principal"`
}

func (c *removeManager) name() string { return "remove-manager" }
func (c *removeManager) apply(l *ledger.Ledger, call ledger.Call) (any, error) {
	return nil, l.RemoveManager(call, c.Principal)
}

type updateStoreInfo struct {
	Info domain.StoreInfo `json:"info"`
}

func (c *updateStoreInfo) name() string { return "update-store-info" }
func (c *updateStoreInfo) apply(l *ledger.Ledger, call ledger.Call) (any, error) {
	return nil, l.UpdateStoreInfo(call, c.Info)
}

type addProduct struct {
	ID          uint64  `json:"id"`
	Price       uint64  `json:"price"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (c *addProduct) name() string { return "add-product" }
func (c *addProduct) apply(l *ledger.Ledger, call ledger.Call) (any, error) {
	return nil, l.AddProduct(call, c.ID, c.Price, c.Name, c.Description)
}

type updateProduct addProduct

func (c *updateProduct) name() string { return "update-product" }
func (c *updateProduct) apply(l *ledger.Ledger, call ledger.Call) (any, error) {
	return nil, l.UpdateProduct(call, c.ID, c.Price, c.Name, c.Description)
}

type removeProduct struct {
	ID uint64 `json:"id"`
}

func (c *removeProduct) name() string { return "remove-product" }
func (c *removeProduct) apply(l *ledger.Ledger, call ledger.Call) (any, error) {
	return nil, l.RemoveProduct(call, c.ID)
}

type updateInventory struct {
	ProductID uint64 `json:"product_id"`
	Quantity  uint64 `json:"quantity"`
}

func (c *updateInventory) name() string { return "update-inventory" }
func (c *updateInventory) apply(l *ledger.Ledger, call ledger.Call) (any, error) {
	return nil, l.UpdateInventory(call, c.ProductID, c.Quantity)
}

type addDiscount struct {
	ProductID   uint64 `json:"product_id"`
	Percent     uint64 `json:"percent"`
	StartHeight uint64 `json:"start_height"`
	EndHeight   uint64 `json:"end_height"`
}

func (c *addDiscount) name() string { return "add-discount" }
func (c *addDiscount) apply(l *ledger.Ledger, call ledger.Call) (any, error) {
	return l.AddDiscount(call, c.ProductID, c.Percent, c.StartHeight, c.EndHeight)
}

type updateDiscount struct {
	ID        uint64 `json:"id"`
	Percent   uint64 `json:"percent"`
	EndHeight uint64 `json:"end_height"`
}

func (c *updateDiscount) name() string { return "update-discount" }
func (c *updateDiscount) apply(l *ledger.Ledger, call ledger.Call) (any, error) {
	return nil, l.UpdateDiscount(call, c.ID, c.Percent, c.EndHeight)
}

type deactivateDiscount struct {
	ID uint64 `json:"id"`
}

func (c *deactivateDiscount) name() string { return "deactivate-discount" }
func (c *deactivateDiscount) apply(l *ledger.Ledger, call ledger.Call) (any, error) {
	return nil, l.DeactivateDiscount(call, c.ID)
}

type placeOrder struct {
	ProductID uint64           `json:"product_id"`
	Quantity  uint64           `json:"quantity"`
	Buyer     domain.Principal `json:"buyer"`
}

func (c *placeOrder) name() string { return "place-order" }
func (c *placeOrder) apply(l *ledger.Ledger, call ledger.Call) (any, error) {
	return l.PlaceOrder(call, c.ProductID, c.Quantity, c.Buyer)
}

type cancelOrder struct {
	ID uint64 `json:"id"`
}

func (c *cancelOrder) name() string { return "cancel-order" }
func (c *cancelOrder) apply(l *ledger.Ledger, call ledger.Call) (any, error) {
	return nil, l.CancelOrder(call, c.ID)
}

type setNFTContract struct {
	Ref     string `json:"ref"`
	Enabled bool   `json:"enabled"`
}

func (c *setNFTContract) name() string { return "set-nft-contract" }
func (c *setNFTContract) apply(l *ledger.Ledger, call ledger.Call) (any, error) {
	return nil, l.SetNFTContract(call, c.Ref, c.Enabled)
}

type setProductNFT struct {
	ProductID uint64  `json:"product_id"`
	Ref       string  `json:"ref"`
	URI       *string `json:"uri,omitempty"`
}

func (c *setProductNFT) name() string { return "set-product-nft" }
func (c *setProductNFT) apply(l *ledger.Ledger, call ledger.Call) (any, error) {
	return nil, l.SetProductNFT(call, c.ProductID, c.Ref, c.URI)
}

// MintResult is what mint-nft-for-order hands back to the caller
type MintResult struct {
	Buyer   domain.Principal `json:"buyer"`
	TokenID uint64           `json:"token_id"`
}

type mintForOrder struct {
	OrderID uint64 `json:"order_id"`
}

func (c *mintForOrder) name() string { return "mint-nft-for-order" }
func (c *mintForOrder) apply(l *ledger.Ledger, call ledger.Call) (any, error) {
	buyer, tokenID, err := l.MintForOrder(call, c.OrderID)
	if err != nil {
		return nil, err
	}
	return MintResult{Buyer: buyer, TokenID: tokenID}, nil
}

type mint struct {
	To domain.Principal `json:"to"`
}

func (c *mint) name() string { return "mint" }
func (c *mint) apply(l *ledger.Ledger, call ledger.Call) (any, error) {
	return l.Mint(call, c.To)
}

type setTokenURI struct {
	ID  uint64 `json:"id"`
	URI string `json:"uri"`
}

func (c *setTokenURI) name() string { return "set-token-uri" }
func (c *setTokenURI) apply(l *ledger.Ledger, call ledger.Call) (any, error) {
	return nil, l.SetTokenURI(call, c.ID, c.URI)
}

type transfer struct {
	ID   uint64           `json:"id"`
	From domain.Principal `json:"from"`
	To   domain.Principal `json:"to"`
}

func (c *transfer) name() string { return "transfer" }
func (c *transfer) apply(l *ledger.Ledger, call ledger.Call) (any, error) {
	return nil, l.Transfer(call, c.ID, c.From, c.To)
}
