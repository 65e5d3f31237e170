package strike

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"strike-connect/internal/core/domain"

	"github.com/shopspring/decimal"
)

const paymentStateFailed = "FAILED"

type money struct {
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}

type paymentQuoteRequest struct {
	LnInvoice      string `json:"lnInvoice"`
	SourceCurrency string `json:"sourceCurrency"`
}

type paymentQuote struct {
	PaymentQuoteID string `json:"paymentQuoteId"`
}

type payment struct {
	PaymentID string `json:"paymentId"`
	State     string `json:"state"`
}

type invoiceRequest struct {
	CorrelationID string `json:"correlationId"`
	Description   string `json:"description"`
	Amount        money  `json:"amount"`
}

type invoice struct {
	InvoiceID   string    `json:"invoiceId"`
	Amount      money     `json:"amount"`
	State       string    `json:"state"`
	Created     time.Time `json:"created"`
	Description string    `json:"description"`
}

func (i invoice) toDomain() domain.ProcessorInvoice {
	return domain.ProcessorInvoice{
		InvoiceID:   i.InvoiceID,
		Description: i.Description,
		State:       i.State,
		Amount:      i.Amount.Amount,
		Currency:    i.Amount.Currency,
		Created:     i.Created,
	}
}

type invoiceQuote struct {
	QuoteID    string    `json:"quoteId"`
	LnInvoice  string    `json:"lnInvoice"`
	Expiration time.Time `json:"expiration"`
}

type invoicePage struct {
	Items []invoice `json:"items"`
	Count int       `json:"count"`
}

type balance struct {
	Currency  string          `json:"currency"`
	Available decimal.Decimal `json:"available"`
	Total     decimal.Decimal `json:"total"`
}

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("strike: status %d: %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("strike: status %d", e.Status)
}

// Unwrap exposes domain.ErrProcessorUnauthorized for 401 and 403.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden {
		return domain.ErrProcessorUnauthorized
	}
	return nil
}

func newAPIError(status int, body []byte) error {
	var payload struct {
		Data struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"data"`
	}
	e := &APIError{Status: status}
	if json.Unmarshal(body, &payload) == nil {
		e.Code = payload.Data.Code
		e.Message = payload.Data.Message
	}
	return e
}

// IsUnauthorized reports whether err was caused by rejected credentials.
func IsUnauthorized(err error) bool {
	return errors.Is(err, domain.ErrProcessorUnauthorized)
}
