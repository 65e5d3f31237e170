package service

import (
	"context"
	"fmt"

	"strike-connect/internal/core/domain"
	"strike-connect/internal/core/ports"
	"strike-connect/pkg/apperror"

	"github.com/rs/zerolog"
)

// InvoiceCache remembers invoices created through make_invoice so that
// lookup_invoice can resolve them later.
type InvoiceCache struct {
	store ports.InvoiceStore
	log   zerolog.Logger
}

// NewInvoiceCache creates a cache over the given store.
func NewInvoiceCache(store ports.InvoiceStore, log zerolog.Logger) *InvoiceCache {
	return &InvoiceCache{
		store: store,
		log:   log.With().Str("component", "invoice_cache").Logger(),
	}
}

// Cache upserts the invoice keyed by its invoice string.
func (c *InvoiceCache) Cache(ctx context.Context, inv *domain.Invoice) error {
	if inv.Invoice == "" {
		return fmt.Errorf("cache invoice: empty invoice string")
	}
	if err := c.store.Put(ctx, inv); err != nil {
		return fmt.Errorf("cache invoice: %w", err)
	}
	c.log.Debug().Str("invoice_id", inv.Metadata.InvoiceID).Msg("invoice cached")
	return nil
}

// Get returns the cached invoice or a NOT_FOUND AppError.
func (c *InvoiceCache) Get(ctx context.Context, invoice string) (*domain.Invoice, error) {
	inv, err := c.store.Get(ctx, invoice)
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if inv == nil {
		return nil, apperror.ErrNotFound()
	}
	return inv, nil
}

// RefreshState updates the cached state in place and returns the refreshed invoice.
func (c *InvoiceCache) RefreshState(ctx context.Context, invoice, state string) (*domain.Invoice, error) {
	inv, err := c.store.UpdateState(ctx, invoice, state)
	if err != nil {
		return nil, fmt.Errorf("refresh invoice state: %w", err)
	}
	if inv == nil {
		return nil, apperror.ErrNotFound()
	}
	return inv, nil
}

// Len returns the number of cached invoices, or 0 if the store cannot count.
func (c *InvoiceCache) Len(ctx context.Context) int {
	n, err := c.store.Count(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("failed to count cached invoices")
		return 0
	}
	return n
}
