package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"strike-connect/internal/core/domain"
	"strike-connect/pkg/apperror"
	"strike-connect/pkg/bolt11"

	"github.com/rs/zerolog"
)

const (
	defaultListLimit   = 50
	defaultPaymentDesc = "Zap"
)

func (d *RequestDispatcher) payInvoice(ctx context.Context, req *domain.Request, log zerolog.Logger) (any, error) {
	invoice := req.StringParam("invoice")
	if invoice == "" {
		return nil, apperror.ErrPaymentFailed(errors.New("missing invoice param"))
	}

	// Invoices without a decodable amount are rejected before the quota check.
	amountSats, err := bolt11.AmountSats(invoice)
	if err != nil {
		return nil, apperror.ErrPaymentFailed(fmt.Errorf("decoding invoice amount: %w", err))
	}

	if !d.ledger.Reserve(amountSats) {
		log.Warn().
			Int64("amount_sats", amountSats).
			Int64("total_sent_sats", d.ledger.TotalSent()).
			Msg("payment would exceed quota")
		return nil, apperror.ErrQuotaExceeded(d.ledger.Max())
	}

	res, err := d.gateway.PayInvoice(ctx, invoice)
	if err != nil {
		d.ledger.Release(amountSats)
		return nil, apperror.ErrPaymentFailed(err)
	}

	total := d.ledger.Commit(amountSats)
	d.metrics.SetQuotaUsed(total)
	log.Info().
		Int64("amount_sats", amountSats).
		Int64("total_sent_sats", total).
		Str("payment_id", res.PaymentID).
		Msg("payment sent")

	desc := req.StringParam("comment")
	if desc == "" {
		desc = defaultPaymentDesc
	}
	d.history.Append(ctx, domain.Payment{
		PaymentID:   res.PaymentID,
		Type:        domain.InvoiceTypeOutgoing,
		Invoice:     invoice,
		Amount:      amountSats,
		Timestamp:   d.now().Unix(),
		Description: desc,
		Status:      domain.PaymentStatusSent,
	})

	return &domain.PayInvoiceResult{Preimage: domain.PlaceholderPreimage}, nil
}

func (d *RequestDispatcher) makeInvoice(ctx context.Context, req *domain.Request, log zerolog.Logger) (any, error) {
	amount, ok := req.Int64Param("amount")
	if !ok || amount <= 0 {
		return nil, apperror.ErrInternal(errors.New("amount must be a positive number of millisats"))
	}
	// The processor invoices whole sats only.
	if amount%1000 != 0 {
		return nil, apperror.ErrInternal(fmt.Errorf("amount %d msat is not a whole number of sats", amount))
	}
	desc := req.StringParam("description")

	created, err := d.gateway.MakeInvoice(ctx, amount, desc)
	if err != nil {
		return nil, apperror.ErrInternal(err)
	}

	inv := &domain.Invoice{
		Type:        domain.InvoiceTypeIncoming,
		Invoice:     created.Invoice,
		Description: desc,
		Amount:      amount,
		CreatedAt:   unixOrZero(created.CreatedAt),
		ExpiresAt:   unixOrZero(created.ExpiresAt),
		Metadata: domain.InvoiceMetadata{
			State:     created.State,
			InvoiceID: created.InvoiceID,
		},
	}

	if err := d.invoices.Cache(ctx, inv); err != nil {
		log.Warn().Err(err).Str("invoice_id", created.InvoiceID).Msg("invoice created but not cached")
	}
	return inv, nil
}

func (d *RequestDispatcher) lookupInvoice(ctx context.Context, req *domain.Request, log zerolog.Logger) (any, error) {
	invoice := req.StringParam("invoice")

	cached, err := d.invoices.Get(ctx, invoice)
	if err != nil {
		return nil, err
	}

	state, err := d.gateway.LookupInvoice(ctx, cached.Metadata.InvoiceID)
	if err != nil {
		return nil, apperror.ErrInternal(err)
	}

	refreshed, err := d.invoices.RefreshState(ctx, invoice, state)
	if err != nil {
		log.Warn().Err(err).Str("invoice_id", cached.Metadata.InvoiceID).Msg("failed to store refreshed state")
		refreshed = cached.Clone()
		refreshed.Metadata.State = state
	}
	return refreshed, nil
}

func (d *RequestDispatcher) getBalance(ctx context.Context) (any, error) {
	balances, err := d.gateway.GetBalance(ctx)
	if err != nil {
		return nil, apperror.ErrInternal(err)
	}
	return &domain.BalanceResult{Balance: domain.BTCBalanceMillisats(balances)}, nil
}

func (d *RequestDispatcher) listTransactions(ctx context.Context, req *domain.Request) (any, error) {
	limit, ok := req.Int64Param("limit")
	if !ok || limit <= 0 {
		limit = defaultListLimit
	}

	items, err := d.gateway.ListInvoices(ctx, int(limit))
	if err != nil {
		return nil, apperror.ErrInternal(err)
	}

	txs := make([]domain.Transaction, 0, len(items))
	for _, inv := range items {
		txs = append(txs, domain.TransactionFromInvoice(inv))
	}
	return &domain.ListTransactionsResult{Transactions: txs}, nil
}

func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}
