package service

import "sync"

// QuotaLedger tracks sats sent over the process lifetime against a fixed cap.
//
// A payment first reserves its amount, then either commits it once the
// processor confirms or releases it on failure. Pending reservations count
// against the cap, so concurrent payments can never jointly overshoot it.
// The committed total never decreases.
type QuotaLedger struct {
	mu        sync.Mutex
	max       int64
	committed int64
	pending   int64
}

// NewQuotaLedger creates a ledger capped at maxSats.
func NewQuotaLedger(maxSats int64) *QuotaLedger {
	return &QuotaLedger{max: maxSats}
}

// Reserve holds amountSats for an in-flight payment. It returns false,
// leaving the ledger unchanged, if the amount would exceed the cap.
func (l *QuotaLedger) Reserve(amountSats int64) bool {
	if amountSats < 0 {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.committed+l.pending+amountSats > l.max {
		return false
	}
	l.pending += amountSats
	return true
}

// Commit moves a reservation into the sent total and returns the new total.
func (l *QuotaLedger) Commit(amountSats int64) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.pending -= amountSats
	l.committed += amountSats
	return l.committed
}

// Release drops a reservation whose payment failed.
func (l *QuotaLedger) Release(amountSats int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.pending -= amountSats
}

// TotalSent returns the committed total.
func (l *QuotaLedger) TotalSent() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.committed
}

func (l *QuotaLedger) Max() int64 {
	return l.max
}
