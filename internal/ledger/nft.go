package ledger

import (
	"github.com/Pesokrava/market_ledger/internal/domain"
)

// SetNFTContract sets the contract-wide NFT switch; owner only
func (l *Ledger) SetNFTContract(call Call, ref string, enabled bool) error {
	if err := l.requireOwner(call); err != nil {
		return err
	}
	if err := l.check(ref, "required", domain.ErrInvalidString); err != nil {
		return err
	}

	l.nftContract = domain.NFTContract{Ref: ref, Enabled: enabled}

	l.log.append(call, "set-nft-contract", "NFT contract updated")
	return nil
}

// NFTContract returns the contract-wide NFT switch
func (l *Ledger) NFTContract() domain.NFTContract {
	return l.nftContract
}

// SetProductNFT binds a product to a token contract with an optional URI template
func (l *Ledger) SetProductNFT(call Call, productID uint64, ref string, uri *string) error {
	if err := l.requireManager(call); err != nil {
		return err
	}
	if _, ok := l.products[productID]; !ok {
		return domain.ErrProductNotFound
	}
	if err := l.check(ref, "required", domain.ErrInvalidString); err != nil {
		return err
	}
	if err := l.checkOptional(uri, ruleURI, domain.ErrInvalidURI); err != nil {
		return err
	}

	l.bindings[productID] = &domain.NFTBinding{
		ProductID:     productID,
		TokenContract: ref,
		Enabled:       true,
		URITemplate:   cloneString(uri),
	}

	l.log.append(call, "set-product-nft", "Product NFT configured")
	return nil
}

// GetProductNFT returns the binding for a product
func (l *Ledger) GetProductNFT(productID uint64) (domain.NFTBinding, error) {
	b, ok := l.bindings[productID]
	if !ok {
		return domain.NFTBinding{}, domain.ErrNFTNotFound
	}
	cb := *b
	cb.URITemplate = cloneString(b.URITemplate)
	return cb, nil
}

// MintForOrder mints the product's token to the buyer and completes the order.
// The PENDING guard makes a second call on the same order fail.
func (l *Ledger) MintForOrder(call Call, orderID uint64) (domain.Principal, uint64, error) {
	if err := l.require(call, domain.CapabilityManager, domain.ErrOwnerOnly); err != nil {
		return "", 0, err
	}
	order, ok := l.order(orderID)
	if !ok {
		return "", 0, domain.ErrOrderNotFound
	}
	binding, ok := l.bindings[order.ProductID]
	if !ok || !binding.Enabled || !l.nftContract.Enabled {
		return "", 0, domain.ErrNFTNotFound
	}
	if !domain.CanTransition(order.Status, domain.OrderCompleted) {
		return "", 0, domain.ErrInvalidOrderStatus
	}

	tokenID := l.mint(order.Buyer, binding.URITemplate)
	order.Status = domain.OrderCompleted
	order.UpdatedAt = call.Height

	l.log.append(call, "mint-nft", "NFT minted for order")
	return order.Buyer, tokenID, nil
}
