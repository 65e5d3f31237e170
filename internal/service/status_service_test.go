package service

import (
	"context"
	"testing"
	"time"

	"strike-connect/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticRelay struct{ status domain.RelayStatus }

func (r staticRelay) Status() domain.RelayStatus { return r.status }

func TestStatusService_StatusAndBalance(t *testing.T) {
	ctx := context.Background()
	ledger := NewQuotaLedger(1000)
	require.True(t, ledger.Reserve(250))
	ledger.Commit(250)

	invoices := NewInvoiceCache(newMapInvoiceStore(), zerolog.Nop())
	require.NoError(t, invoices.Cache(ctx, &domain.Invoice{Invoice: "lnbc1a"}))
	history := NewPaymentHistory(nil, zerolog.Nop())
	features := domain.Features{BalanceEnabled: true}
	agg := NewBalanceAggregator(nil, history, domain.Features{}, time.Hour, zerolog.Nop())

	relay := staticRelay{domain.RelayStatus{Connected: true, URI: "wss://r"}}
	s := NewStatusService(relay, ledger, invoices, history, agg, features)
	s.now = func() time.Time { return s.started.Add(1500 * time.Millisecond) }

	st := s.Status(ctx)
	assert.Equal(t, relay.status, st.Relay)
	assert.Equal(t, domain.PaymentStats{TotalSent: 250, QuotaMax: 1000, QuotaUsed: 250}, st.Payments)
	assert.Equal(t, features, st.Features)
	assert.Equal(t, int64(1500), st.UptimeMs)
	assert.Equal(t, 1, st.CachedInvoices)

	bal := s.Balance()
	assert.Equal(t, int64(250), bal.QuotaUsed)
	assert.Equal(t, int64(1000), bal.QuotaMax)
	assert.Nil(t, bal.LastUpdated)
}

func TestStatusService_ActivityMergesNewestFirst(t *testing.T) {
	ctx := context.Background()
	history := NewPaymentHistory(nil, zerolog.Nop())
	agg := NewBalanceAggregator(nil, history, domain.Features{}, time.Hour, zerolog.Nop())
	agg.transactions = []domain.ActivityEntry{
		{Type: domain.InvoiceTypeIncoming, Invoice: "in-old", Timestamp: 100},
		{Type: domain.InvoiceTypeIncoming, Invoice: "in-new", Timestamp: 300},
	}
	history.Append(ctx, domain.Payment{Type: domain.InvoiceTypeOutgoing, Invoice: "out", Amount: 6, Timestamp: 200})

	s := NewStatusService(staticRelay{}, NewQuotaLedger(1), NewInvoiceCache(newMapInvoiceStore(), zerolog.Nop()), history, agg, domain.Features{})

	activity := s.Activity()
	require.Len(t, activity, 3)
	assert.Equal(t, "in-new", activity[0].Invoice)
	assert.Equal(t, "out", activity[1].Invoice)
	assert.Equal(t, int64(6000), activity[1].Amount, "outgoing sats are shown in millisats")
	assert.Equal(t, "in-old", activity[2].Invoice)
}

func TestStatusService_ActivityCapped(t *testing.T) {
	ctx := context.Background()
	history := NewPaymentHistory(nil, zerolog.Nop())
	for i := 0; i < 150; i++ {
		history.Append(ctx, domain.Payment{Type: domain.InvoiceTypeOutgoing, Timestamp: int64(i)})
	}
	agg := NewBalanceAggregator(nil, history, domain.Features{}, time.Hour, zerolog.Nop())
	s := NewStatusService(staticRelay{}, NewQuotaLedger(1), NewInvoiceCache(newMapInvoiceStore(), zerolog.Nop()), history, agg, domain.Features{})

	activity := s.Activity()
	require.Len(t, activity, 100)
	assert.Equal(t, int64(149), activity[0].Timestamp)
	assert.Equal(t, int64(50), activity[99].Timestamp)
}
