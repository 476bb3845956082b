package market

import (
	"github.com/Pesokrava/market_ledger/internal/domain"
	"github.com/Pesokrava/market_ledger/internal/ledger"
)

// view runs fn against the ledger under the read lock
func view[T any](s *Service, fn func(l *ledger.Ledger) T) T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.ledger)
}

func viewErr[T any](s *Service, fn func(l *ledger.Ledger) (T, error)) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.ledger)
}

func (s *Service) Owner() domain.Principal {
	return view(s, (*ledger.Ledger).Owner)
}

// Capability resolves the role of p against current state
func (s *Service) Capability(p domain.Principal) domain.Capability {
	return view(s, func(l *ledger.Ledger) domain.Capability { return l.Capability(p) })
}

func (s *Service) Managers() []domain.Principal {
	return view(s, (*ledger.Ledger).Managers)
}

func (s *Service) StoreInfo() domain.StoreInfo {
	return view(s, (*ledger.Ledger).StoreInfo)
}

func (s *Service) GetProduct(id uint64) (domain.Product, error) {
	return viewErr(s, func(l *ledger.Ledger) (domain.Product, error) { return l.GetProduct(id) })
}

func (s *Service) ListProducts() []domain.ProductSummary {
	return view(s, (*ledger.Ledger).ListProducts)
}

func (s *Service) GetInventory(productID uint64) uint64 {
	return view(s, func(l *ledger.Ledger) uint64 { return l.GetInventory(productID) })
}

// DiscountedPrice resolves the price at the current height
func (s *Service) DiscountedPrice(productID uint64) (uint64, error) {
	return viewErr(s, func(l *ledger.Ledger) (uint64, error) { return l.DiscountedPrice(productID, s.height) })
}

func (s *Service) GetDiscount(id uint64) (domain.Discount, error) {
	return viewErr(s, func(l *ledger.Ledger) (domain.Discount, error) { return l.GetDiscount(id) })
}

func (s *Service) GetOrder(id uint64) (domain.Order, error) {
	return viewErr(s, func(l *ledger.Ledger) (domain.Order, error) { return l.GetOrder(id) })
}

func (s *Service) ListOrders() []domain.Order {
	return view(s, (*ledger.Ledger).ListOrders)
}

func (s *Service) NFTContract() domain.NFTContract {
	return view(s, (*ledger.Ledger).NFTContract)
}

func (s *Service) GetProductNFT(productID uint64) (domain.NFTBinding, error) {
	return viewErr(s, func(l *ledger.Ledger) (domain.NFTBinding, error) { return l.GetProductNFT(productID) })
}

func (s *Service) GetToken(id uint64) (domain.Token, error) {
	return viewErr(s, func(l *ledger.Ledger) (domain.Token, error) { return l.GetToken(id) })
}

// GetOwner returns the holder of a token; unknown tokens report INVALID-TOKEN
func (s *Service) GetOwner(id uint64) (domain.Principal, error) {
	return viewErr(s, func(l *ledger.Ledger) (domain.Principal, error) {
		owner, ok := l.GetOwner(id)
		if !ok {
			return "", domain.ErrInvalidToken
		}
		return owner, nil
	})
}

func (s *Service) LastTokenID() uint64 {
	return view(s, (*ledger.Ledger).LastTokenID)
}

func (s *Service) LastLog() (domain.LogEntry, error) {
	return viewErr(s, (*ledger.Ledger).LastLog)
}

func (s *Service) LogNonce() uint64 {
	return view(s, (*ledger.Ledger).LogNonce)
}
