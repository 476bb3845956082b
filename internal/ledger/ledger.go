// Package ledger is the marketplace transition engine. It holds catalog, inventory,
// discount, order, token and audit state and applies calls to it synchronously.
// A call either succeeds completely or returns a *domain.Error and leaves the
// ledger untouched; every check runs before the first write.
package ledger

import (
	"github.com/go-playground/validator/v10"

	"github.com/Pesokrava/market_ledger/internal/domain"
	pkgvalidator "github.com/Pesokrava/market_ledger/internal/pkg/validator"
)

const (
	MaxPrice        uint64 = 1_000_000_000_000
	MaxQuantity     uint64 = 1000
	MaxNameLen             = 50
	MaxDescLen             = 200
	MaxURILen              = 256
	ProductCapacity        = 200
	OrderCapacity          = 200
	MaxLog                 = 200
)

// Call carries the host-supplied context of one ledger call
type Call struct {
	Caller domain.Principal
	Height uint64
}

// Options configures a fresh ledger
type Options struct {
	Owner        domain.Principal
	InitialStock uint64
	LogPolicy    LogPolicy
}

// Ledger is the application context: roles, counters and every entity table
type Ledger struct {
	owner        domain.Principal
	managers     map[domain.Principal]struct{}
	initialStock uint64

	store domain.StoreInfo

	products    map[uint64]*domain.Product
	activeIndex *orderedIndex
	inventory   map[uint64]uint64

	discounts []*domain.Discount

	orders []*domain.Order

	tokens      map[uint64]*domain.Token
	lastTokenID uint64

	nftContract domain.NFTContract
	bindings    map[uint64]*domain.NFTBinding

	log *auditLog

	validate *validator.Validate
}

// New creates an empty ledger owned by opts.Owner
func New(opts Options) *Ledger {
	return &Ledger{
		owner:        opts.Owner,
		managers:     make(map[domain.Principal]struct{}),
		initialStock: opts.InitialStock,
		products:     make(map[uint64]*domain.Product),
		activeIndex:  newOrderedIndex(ProductCapacity),
		inventory:    make(map[uint64]uint64),
		tokens:       make(map[uint64]*domain.Token),
		bindings:     make(map[uint64]*domain.NFTBinding),
		log:          newAuditLog(MaxLog, opts.LogPolicy),
		validate:     pkgvalidator.Get(),
	}
}

// Clone returns a deep copy that shares no mutable state with l
func (l *Ledger) Clone() *Ledger {
	c := &Ledger{
		owner:        l.owner,
		managers:     make(map[domain.Principal]struct{}, len(l.managers)),
		initialStock: l.initialStock,
		store:        l.store,
		products:     make(map[uint64]*domain.Product, len(l.products)),
		activeIndex:  l.activeIndex.clone(),
		inventory:    make(map[uint64]uint64, len(l.inventory)),
		discounts:    make([]*domain.Discount, len(l.discounts)),
		orders:       make([]*domain.Order, len(l.orders)),
		tokens:       make(map[uint64]*domain.Token, len(l.tokens)),
		lastTokenID:  l.lastTokenID,
		nftContract:  l.nftContract,
		bindings:     make(map[uint64]*domain.NFTBinding, len(l.bindings)),
		log:          l.log.clone(),
		validate:     l.validate,
	}

	for p := range l.managers {
		c.managers[p] = struct{}{}
	}
	for id, p := range l.products {
		cp := *p
		cp.Description = cloneString(p.Description)
		c.products[id] = &cp
	}
	for id, qty := range l.inventory {
		c.inventory[id] = qty
	}
	for i, d := range l.discounts {
		cd := *d
		c.discounts[i] = &cd
	}
	for i, o := range l.orders {
		co := *o
		c.orders[i] = &co
	}
	for id, t := range l.tokens {
		ct := *t
		ct.URI = cloneString(t.URI)
		c.tokens[id] = &ct
	}
	for id, b := range l.bindings {
		cb := *b
		cb.URITemplate = cloneString(b.URITemplate)
		c.bindings[id] = &cb
	}

	return c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
