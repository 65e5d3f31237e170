package ports

//go:generate mockgen -source=gateway.go -destination=mocks/mock_gateway.go -package=mocks

import (
	"context"
	"time"

	"strike-connect/internal/core/domain"
)

// PaymentGateway is the typed surface of the Lightning payment processor.
// Errors caused by rejected credentials wrap domain.ErrProcessorUnauthorized.
type PaymentGateway interface {
	PayInvoice(ctx context.Context, bolt11 string) (*domain.PaymentResult, error)
	MakeInvoice(ctx context.Context, amountMsat int64, description string) (*domain.CreatedInvoice, error)
	// LookupInvoice returns the current state of the invoice.
	LookupInvoice(ctx context.Context, invoiceID string) (string, error)
	GetBalance(ctx context.Context) ([]domain.ProcessorBalance, error)
	// ListInvoices returns up to limit invoices, newest first.
	ListInvoices(ctx context.Context, limit int) ([]domain.ProcessorInvoice, error)
	// ListPaidInvoicesSince returns invoices paid after since.
	ListPaidInvoicesSince(ctx context.Context, since time.Time) ([]domain.ProcessorInvoice, error)
}
