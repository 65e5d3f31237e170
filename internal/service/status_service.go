package service

import (
	"context"
	"sort"
	"time"

	"strike-connect/internal/core/domain"
)

// dashboardActivityLimit caps the merged activity feed.
const dashboardActivityLimit = 100

// RelayStatusReader exposes the relay link state read-only.
type RelayStatusReader interface {
	Status() domain.RelayStatus
}

// StatusService assembles read-only views for the dashboard. It never
// mutates the state it reads.
type StatusService struct {
	relay      RelayStatusReader
	ledger     *QuotaLedger
	invoices   *InvoiceCache
	history    *PaymentHistory
	aggregator *BalanceAggregator
	features   domain.Features
	started    time.Time
	now        func() time.Time
}

func NewStatusService(
	relay RelayStatusReader,
	ledger *QuotaLedger,
	invoices *InvoiceCache,
	history *PaymentHistory,
	aggregator *BalanceAggregator,
	features domain.Features,
) *StatusService {
	return &StatusService{
		relay:      relay,
		ledger:     ledger,
		invoices:   invoices,
		history:    history,
		aggregator: aggregator,
		features:   features,
		started:    time.Now(),
		now:        time.Now,
	}
}

func (s *StatusService) Features() domain.Features {
	return s.features
}

// Status summarises relay, quota and feature state.
func (s *StatusService) Status(ctx context.Context) domain.Status {
	sent := s.ledger.TotalSent()
	return domain.Status{
		Relay: s.relay.Status(),
		Payments: domain.PaymentStats{
			TotalSent: sent,
			QuotaMax:  s.ledger.Max(),
			QuotaUsed: sent,
		},
		Features:       s.features,
		UptimeMs:       s.now().Sub(s.started).Milliseconds(),
		CachedInvoices: s.invoices.Len(ctx),
	}
}

// Balance returns the last aggregated snapshot with quota usage.
func (s *StatusService) Balance() domain.BalanceView {
	return domain.BalanceView{
		BalanceSnapshot: s.aggregator.Snapshot(),
		QuotaUsed:       s.ledger.TotalSent(),
		QuotaMax:        s.ledger.Max(),
	}
}

// Activity merges cached incoming transactions with outgoing payments,
// newest first, capped at dashboardActivityLimit.
func (s *StatusService) Activity() []domain.ActivityEntry {
	entries := s.aggregator.Transactions()
	for _, p := range s.history.All() {
		entries = append(entries, domain.ActivityFromPayment(p))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})
	if len(entries) > dashboardActivityLimit {
		entries = entries[:dashboardActivityLimit]
	}
	return entries
}
