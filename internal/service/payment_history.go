package service

import (
	"context"
	"sync"
	"time"

	"strike-connect/internal/core/domain"
	"strike-connect/internal/core/ports"

	"github.com/rs/zerolog"
)

// PaymentHistory is the append-only log of outgoing payments. The in-memory
// log is authoritative; the optional repository is a best-effort mirror.
type PaymentHistory struct {
	mu       sync.RWMutex
	payments []domain.Payment
	repo     ports.PaymentRepository
	log      zerolog.Logger
}

// NewPaymentHistory creates an empty history. repo may be nil.
func NewPaymentHistory(repo ports.PaymentRepository, log zerolog.Logger) *PaymentHistory {
	return &PaymentHistory{
		repo: repo,
		log:  log.With().Str("component", "payment_history").Logger(),
	}
}

// Append records a payment. Mirror failures are logged, never returned.
func (h *PaymentHistory) Append(ctx context.Context, p domain.Payment) {
	h.mu.Lock()
	h.payments = append(h.payments, p)
	h.mu.Unlock()

	if h.repo == nil {
		return
	}
	if err := h.repo.Create(ctx, &p); err != nil {
		h.log.Warn().Err(err).Str("payment_id", p.PaymentID).Msg("failed to persist payment")
	}
}

// All returns a copy of every recorded payment, oldest first.
func (h *PaymentHistory) All() []domain.Payment {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]domain.Payment, len(h.payments))
	copy(out, h.payments)
	return out
}

// OutgoingSince sums the sats of outgoing payments at or after t.
func (h *PaymentHistory) OutgoingSince(t time.Time) int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var total int64
	for i := range h.payments {
		if h.payments[i].IsOutgoingSince(t) {
			total += h.payments[i].Amount
		}
	}
	return total
}
