package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"strike-connect/internal/core/domain"
	"strike-connect/internal/core/ports/mocks"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestACLProbe_AllGranted(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockPaymentGateway(ctrl)
	ctx := context.Background()

	gw.EXPECT().MakeInvoice(ctx, int64(1000), "ACL Test").Return(&domain.CreatedInvoice{InvoiceID: "inv-1", State: "UNPAID"}, nil)
	gw.EXPECT().ListInvoices(ctx, 1).Return([]domain.ProcessorInvoice{{InvoiceID: "inv-1"}}, nil).Times(2)
	gw.EXPECT().GetBalance(ctx).Return([]domain.ProcessorBalance{
		{Currency: "BTC", Total: decimal.Zero},
		{Currency: "USD", Total: decimal.Zero},
	}, nil)

	results := NewACLProbe(gw, zerolog.Nop()).Run(ctx)

	assert.Len(t, results, 5)
	assert.Equal(t, domain.ACLStatusUnknown, results[domain.MethodPayInvoice].Status)
	assert.Equal(t, domain.ACLStatusSuccess, results[domain.MethodMakeInvoice].Status)
	assert.Equal(t, "inv-1", results[domain.MethodMakeInvoice].Details["invoice_id"])
	assert.Equal(t, domain.ACLStatusSuccess, results[domain.MethodLookupInvoice].Status)
	assert.Equal(t, "Successfully listed invoices (count: 1)", results[domain.MethodListTransactions].Message)
	assert.Equal(t, "BTC, USD", results[domain.MethodGetBalance].Details["currencies"])
}

func TestACLProbe_MissingAndErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockPaymentGateway(ctrl)
	ctx := context.Background()
	unauthorized := fmt.Errorf("strike: status 403: %w", domain.ErrProcessorUnauthorized)

	gw.EXPECT().MakeInvoice(ctx, gomock.Any(), gomock.Any()).Return(nil, unauthorized)
	gw.EXPECT().ListInvoices(ctx, 1).Return(nil, errors.New("connection reset")).Times(2)
	gw.EXPECT().GetBalance(ctx).Return(nil, unauthorized)

	results := NewACLProbe(gw, zerolog.Nop()).Run(ctx)

	assert.Equal(t, domain.ACLStatusMissing, results[domain.MethodMakeInvoice].Status)
	assert.Equal(t, "API key missing partner.invoice.create scope", results[domain.MethodMakeInvoice].Message)
	assert.Equal(t, domain.ACLStatusError, results[domain.MethodLookupInvoice].Status)
	assert.Equal(t, "connection reset", results[domain.MethodLookupInvoice].Message)
	assert.Equal(t, domain.ACLStatusMissing, results[domain.MethodGetBalance].Status)
}
