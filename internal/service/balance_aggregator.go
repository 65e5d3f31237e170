package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"strike-connect/internal/core/domain"
	"strike-connect/internal/core/ports"

	"github.com/rs/zerolog"
)

const (
	aggregateWindow  = 24 * time.Hour
	aggregateTxLimit = 100
)

// BalanceAggregator periodically builds the balance snapshot and the cached
// incoming transaction list. A cycle either replaces both views wholesale
// or, on failure, leaves the previous ones untouched.
type BalanceAggregator struct {
	gateway  ports.PaymentGateway
	history  *PaymentHistory
	features domain.Features
	interval time.Duration
	log      zerolog.Logger
	now      func() time.Time

	mu           sync.RWMutex
	snapshot     domain.BalanceSnapshot
	transactions []domain.ActivityEntry
}

func NewBalanceAggregator(
	gateway ports.PaymentGateway,
	history *PaymentHistory,
	features domain.Features,
	interval time.Duration,
	log zerolog.Logger,
) *BalanceAggregator {
	return &BalanceAggregator{
		gateway:  gateway,
		history:  history,
		features: features,
		interval: interval,
		log:      log.With().Str("component", "balance_aggregator").Logger(),
		now:      time.Now,
	}
}

// Run refreshes once immediately, then every interval until ctx is done.
func (a *BalanceAggregator) Run(ctx context.Context) {
	a.log.Info().Dur("interval", a.interval).Msg("starting balance polling")
	a.refreshAndLog(ctx)

	if a.interval <= 0 {
		a.log.Error().Dur("interval", a.interval).Msg("invalid poll interval, periodic refresh disabled")
		return
	}
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.refreshAndLog(ctx)
		}
	}
}

func (a *BalanceAggregator) refreshAndLog(ctx context.Context) {
	if err := a.Refresh(ctx); err != nil {
		a.log.Error().Err(err).Msg("error updating balance data")
	}
}

// Refresh runs one aggregation cycle.
func (a *BalanceAggregator) Refresh(ctx context.Context) error {
	if !a.features.BalanceEnabled && !a.features.TransactionHistoryEnabled {
		a.log.Debug().Msg("skipping update: balance and transaction history are disabled")
		return nil
	}

	now := a.now()
	next := a.Snapshot()
	var txs []domain.ActivityEntry

	if a.features.BalanceEnabled {
		balances, err := a.gateway.GetBalance(ctx)
		if err != nil {
			return fmt.Errorf("fetching balance: %w", err)
		}
		paid, err := a.gateway.ListPaidInvoicesSince(ctx, now.Add(-aggregateWindow))
		if err != nil {
			return fmt.Errorf("fetching paid invoices: %w", err)
		}

		var incoming int64
		for _, inv := range paid {
			incoming += domain.BTCToMillisats(inv.Amount)
		}
		next.TotalBalance = domain.BTCBalanceMillisats(balances)
		next.Incoming24h = incoming
		next.Outgoing24h = a.history.OutgoingSince(now.Add(-aggregateWindow)) * 1000
	}

	if a.features.TransactionHistoryEnabled {
		items, err := a.gateway.ListInvoices(ctx, aggregateTxLimit)
		if err != nil {
			return fmt.Errorf("fetching invoices: %w", err)
		}
		txs = make([]domain.ActivityEntry, 0, len(items))
		for _, inv := range items {
			txs = append(txs, domain.ActivityFromInvoice(inv))
		}
	}

	next.LastUpdated = &now

	a.mu.Lock()
	a.snapshot = next
	if a.features.TransactionHistoryEnabled {
		a.transactions = txs
	}
	a.mu.Unlock()

	a.log.Info().
		Int64("balance_msat", next.TotalBalance).
		Int64("incoming_24h_msat", next.Incoming24h).
		Int64("outgoing_24h_msat", next.Outgoing24h).
		Int("transactions", len(txs)).
		Msg("balance data updated")
	return nil
}

// Snapshot returns a copy of the latest snapshot.
func (a *BalanceAggregator) Snapshot() domain.BalanceSnapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()

	s := a.snapshot
	if s.LastUpdated != nil {
		t := *s.LastUpdated
		s.LastUpdated = &t
	}
	return s
}

// Transactions returns a copy of the cached incoming transactions.
func (a *BalanceAggregator) Transactions() []domain.ActivityEntry {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]domain.ActivityEntry, len(a.transactions))
	copy(out, a.transactions)
	return out
}
