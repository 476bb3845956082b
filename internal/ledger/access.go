package ledger

import (
	"sort"

	"github.com/Pesokrava/market_ledger/internal/domain"
)

// Owner returns the principal fixed at creation
func (l *Ledger) Owner() domain.Principal {
	return l.owner
}

func (l *Ledger) IsOwner(p domain.Principal) bool {
	return p == l.owner
}

func (l *Ledger) IsManagerOrOwner(p domain.Principal) bool {
	return l.Capability(p).AtLeast(domain.CapabilityManager)
}

// Capability resolves the privilege level of p from current role state only
func (l *Ledger) Capability(p domain.Principal) domain.Capability {
	if p == l.owner {
		return domain.CapabilityOwner
	}
	if _, ok := l.managers[p]; ok {
		return domain.CapabilityManager
	}
	return domain.CapabilityPublic
}

// Managers returns the current managers sorted
func (l *Ledger) Managers() []domain.Principal {
	out := make([]domain.Principal, 0, len(l.managers))
	for p := range l.managers {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (l *Ledger) require(call Call, min domain.Capability, fail *domain.Error) error {
	if !l.Capability(call.Caller).AtLeast(min) {
		return fail
	}
	return nil
}

func (l *Ledger) requireOwner(call Call) error {
	return l.require(call, domain.CapabilityOwner, domain.ErrOwnerOnly)
}

func (l *Ledger) requireManager(call Call) error {
	return l.require(call, domain.CapabilityManager, domain.ErrNotAuthorized)
}

// AddManager grants the manager role; owner only
func (l *Ledger) AddManager(call Call, p domain.Principal) error {
	if err := l.require(call, domain.CapabilityOwner, domain.ErrNotAuthorized); err != nil {
		return err
	}
	if err := l.checkPrincipal(p); err != nil {
		return err
	}

	l.managers[p] = struct{}{}
	l.log.append(call, "add-manager", "Manager added")
	return nil
}

// RemoveManager revokes the manager role; owner only
func (l *Ledger) RemoveManager(call Call, p domain.Principal) error {
	if err := l.require(call, domain.CapabilityOwner, domain.ErrNotAuthorized); err != nil {
		return err
	}
	if err := l.checkPrincipal(p); err != nil {
		return err
	}

	delete(l.managers, p)
	l.log.append(call, "remove-manager", "Manager removed")
	return nil
}
