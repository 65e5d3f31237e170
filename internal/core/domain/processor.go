package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrProcessorUnauthorized is wrapped by gateway errors caused by rejected
// credentials or missing API scopes.
var ErrProcessorUnauthorized = errors.New("processor rejected credentials")

// CurrencyBTC is the processor currency code for bitcoin.
const CurrencyBTC = "BTC"

// Processor invoice states.
const (
	InvoiceStateUnpaid    = "UNPAID"
	InvoiceStatePending   = "PENDING"
	InvoiceStatePaid      = "PAID"
	InvoiceStateCancelled = "CANCELLED"
)

// PaymentResult is the processor's answer to a successful pay call.
type PaymentResult struct {
	PaymentID string
	State     string
}

// CreatedInvoice is the processor's answer to an invoice creation.
type CreatedInvoice struct {
	InvoiceID string
	Invoice   string
	State     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// ProcessorBalance is one currency entry of the processor balance.
type ProcessorBalance struct {
	Currency string
	Total    decimal.Decimal
}

// ProcessorInvoice is an invoice as listed by the processor.
type ProcessorInvoice struct {
	InvoiceID   string
	Description string
	State       string
	Amount      decimal.Decimal
	Currency    string
	Created     time.Time
}

var millisatsPerBTC = decimal.New(1, 11)

// BTCToMillisats converts a BTC amount to millisats, rounding down.
func BTCToMillisats(btc decimal.Decimal) int64 {
	return btc.Mul(millisatsPerBTC).Floor().IntPart()
}

// MillisatsToBTC converts millisats to BTC, truncated to 8 decimal places
// since the processor does not accept sub-satoshi amounts.
func MillisatsToBTC(msat int64) decimal.Decimal {
	return decimal.New(msat, -11).Truncate(8)
}

// BTCBalanceMillisats picks the BTC entry out of a balance list. A missing
// entry is a zero balance.
func BTCBalanceMillisats(balances []ProcessorBalance) int64 {
	for _, b := range balances {
		if b.Currency == CurrencyBTC {
			return BTCToMillisats(b.Total)
		}
	}
	return 0
}
