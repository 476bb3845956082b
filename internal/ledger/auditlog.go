package ledger

import (
	"fmt"
	"strings"

	"github.com/Pesokrava/market_ledger/internal/domain"
)

// LogPolicy decides what happens once the audit log reaches capacity
type LogPolicy int

const (
	// LogPolicyRing overwrites the oldest entry
	LogPolicyRing LogPolicy = iota
	// LogPolicyStop keeps the first entries and counts the rest
	LogPolicyStop
)

// ParseLogPolicy accepts "ring" or "stop"
func ParseLogPolicy(s string) (LogPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ring":
		return LogPolicyRing, nil
	case "stop":
		return LogPolicyStop, nil
	default:
		return LogPolicyRing, fmt.Errorf("unknown log policy %q", s)
	}
}

type auditLog struct {
	entries  []domain.LogEntry
	next     int
	nonce    uint64
	latest   domain.LogEntry
	capacity int
	policy   LogPolicy
}

func newAuditLog(capacity int, policy LogPolicy) *auditLog {
	return &auditLog{
		entries:  make([]domain.LogEntry, 0, capacity),
		capacity: capacity,
		policy:   policy,
	}
}

func (a *auditLog) append(call Call, action, details string) domain.LogEntry {
	entry := domain.LogEntry{
		Seq:       a.nonce,
		Action:    action,
		Principal: call.Caller,
		Details:   details,
		Timestamp: call.Height,
	}
	a.nonce++
	a.latest = entry

	switch {
	case len(a.entries) < a.capacity:
		a.entries = append(a.entries, entry)
		a.next = len(a.entries) % a.capacity
	case a.policy == LogPolicyRing:
		a.entries[a.next] = entry
		a.next = (a.next + 1) % a.capacity
	}

	return entry
}

func (a *auditLog) last() (domain.LogEntry, bool) {
	if len(a.entries) == 0 {
		return domain.LogEntry{}, false
	}
	if len(a.entries) < a.capacity || a.policy == LogPolicyStop {
		return a.entries[len(a.entries)-1], true
	}
	return a.entries[(a.next+a.capacity-1)%a.capacity], true
}

func (a *auditLog) clone() *auditLog {
	c := *a
	c.entries = make([]domain.LogEntry, len(a.entries), a.capacity)
	copy(c.entries, a.entries)
	return &c
}

// LastLog returns the most recent stored entry
func (l *Ledger) LastLog() (domain.LogEntry, error) {
	entry, ok := l.log.last()
	if !ok {
		return domain.LogEntry{}, domain.ErrNotFound
	}
	return entry, nil
}

// LogNonce returns how many entries have ever been appended
func (l *Ledger) LogNonce() uint64 {
	return l.log.nonce
}

// LastAppended returns the entry written by the most recent successful call,
// whether or not the capacity policy kept it
func (l *Ledger) LastAppended() (domain.LogEntry, bool) {
	return l.log.latest, l.log.nonce > 0
}
