package ports

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

import (
	"context"

	"strike-connect/internal/core/domain"
)

// InvoiceStore persists created invoices keyed by invoice string.
type InvoiceStore interface {
	// Put upserts the invoice.
	Put(ctx context.Context, inv *domain.Invoice) error
	// Get returns nil, nil when the invoice is unknown.
	Get(ctx context.Context, invoice string) (*domain.Invoice, error)
	// UpdateState sets metadata.state and returns the updated invoice,
	// or nil, nil when the invoice is unknown.
	UpdateState(ctx context.Context, invoice, state string) (*domain.Invoice, error)
	Count(ctx context.Context) (int, error)
}

// PaymentRepository mirrors outgoing payments to durable storage.
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
}
