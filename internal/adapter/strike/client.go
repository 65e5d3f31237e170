package strike

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"strike-connect/internal/core/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxPageSize is the largest $top the API accepts.
const maxPageSize = 100

// HTTPClient is satisfied by *http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	BaseURL        string
	APIKey         string
	SourceCurrency string
	Timeout        time.Duration
}

// Client implements ports.PaymentGateway against the Strike REST API.
type Client struct {
	baseURL        string
	apiKey         string
	sourceCurrency string
	http           HTTPClient
	log            zerolog.Logger
}

// NewClient creates a client. If httpClient is nil an *http.Client with
// cfg.Timeout is used.
func NewClient(cfg Config, httpClient HTTPClient, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:         cfg.APIKey,
		sourceCurrency: cfg.SourceCurrency,
		http:           httpClient,
		log:            log.With().Str("component", "strike").Logger(),
	}
}

// PayInvoice quotes the invoice in the source currency and executes the quote.
func (c *Client) PayInvoice(ctx context.Context, bolt11 string) (*domain.PaymentResult, error) {
	var q paymentQuote
	err := c.do(ctx, http.MethodPost, "/v1/payment-quotes/lightning", nil, paymentQuoteRequest{
		LnInvoice:      bolt11,
		SourceCurrency: c.sourceCurrency,
	}, &q)
	if err != nil {
		return nil, fmt.Errorf("creating payment quote: %w", err)
	}

	var p payment
	path := "/v1/payment-quotes/" + url.PathEscape(q.PaymentQuoteID) + "/execute"
	if err := c.do(ctx, http.MethodPatch, path, nil, nil, &p); err != nil {
		return nil, fmt.Errorf("executing payment quote %s: %w", q.PaymentQuoteID, err)
	}
	if p.State == paymentStateFailed {
		return nil, fmt.Errorf("payment %s failed", p.PaymentID)
	}

	c.log.Debug().Str("payment_id", p.PaymentID).Str("state", p.State).Msg("payment executed")
	return &domain.PaymentResult{PaymentID: p.PaymentID, State: p.State}, nil
}

// MakeInvoice creates a BTC invoice and quotes it to obtain the bolt11 string.
func (c *Client) MakeInvoice(ctx context.Context, amountMsat int64, description string) (*domain.CreatedInvoice, error) {
	var inv invoice
	err := c.do(ctx, http.MethodPost, "/v1/invoices", nil, invoiceRequest{
		CorrelationID: uuid.NewString(),
		Description:   description,
		Amount: money{
			Currency: domain.CurrencyBTC,
			Amount:   domain.MillisatsToBTC(amountMsat),
		},
	}, &inv)
	if err != nil {
		return nil, fmt.Errorf("creating invoice: %w", err)
	}

	var q invoiceQuote
	path := "/v1/invoices/" + url.PathEscape(inv.InvoiceID) + "/quote"
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &q); err != nil {
		return nil, fmt.Errorf("quoting invoice %s: %w", inv.InvoiceID, err)
	}

	return &domain.CreatedInvoice{
		InvoiceID: inv.InvoiceID,
		Invoice:   q.LnInvoice,
		State:     inv.State,
		CreatedAt: inv.Created,
		ExpiresAt: q.Expiration,
	}, nil
}

func (c *Client) LookupInvoice(ctx context.Context, invoiceID string) (string, error) {
	var inv invoice
	if err := c.do(ctx, http.MethodGet, "/v1/invoices/"+url.PathEscape(invoiceID), nil, nil, &inv); err != nil {
		return "", fmt.Errorf("looking up invoice %s: %w", invoiceID, err)
	}
	return inv.State, nil
}

func (c *Client) GetBalance(ctx context.Context) ([]domain.ProcessorBalance, error) {
	var balances []balance
	if err := c.do(ctx, http.MethodGet, "/v1/balances", nil, nil, &balances); err != nil {
		return nil, fmt.Errorf("getting balances: %w", err)
	}

	out := make([]domain.ProcessorBalance, 0, len(balances))
	for _, b := range balances {
		out = append(out, domain.ProcessorBalance{Currency: b.Currency, Total: b.Total})
	}
	return out, nil
}

// ListInvoices returns the newest invoices, at most limit.
func (c *Client) ListInvoices(ctx context.Context, limit int) ([]domain.ProcessorInvoice, error) {
	q := url.Values{}
	q.Set("$orderby", "created desc")
	return c.listInvoices(ctx, q, limit)
}

// ListPaidInvoicesSince returns paid invoices created after since.
func (c *Client) ListPaidInvoicesSince(ctx context.Context, since time.Time) ([]domain.ProcessorInvoice, error) {
	q := url.Values{}
	q.Set("$filter", fmt.Sprintf("state eq '%s' and created gt %s", domain.InvoiceStatePaid, since.UTC().Format(time.RFC3339)))
	q.Set("$orderby", "created desc")
	return c.listInvoices(ctx, q, 0)
}

// listInvoices pages through results. limit <= 0 means all.
func (c *Client) listInvoices(ctx context.Context, q url.Values, limit int) ([]domain.ProcessorInvoice, error) {
	var out []domain.ProcessorInvoice
	for {
		top := maxPageSize
		if limit > 0 && limit-len(out) < top {
			top = limit - len(out)
		}
		q.Set("$top", fmt.Sprint(top))
		q.Set("$skip", fmt.Sprint(len(out)))

		var page invoicePage
		if err := c.do(ctx, http.MethodGet, "/v1/invoices", q, nil, &page); err != nil {
			return nil, fmt.Errorf("listing invoices: %w", err)
		}
		for _, inv := range page.Items {
			out = append(out, inv.toDomain())
		}

		done := len(page.Items) == 0 || len(out) >= page.Count
		if limit > 0 && len(out) >= limit {
			done = true
		}
		if done {
			return out, nil
		}
	}
}

// do sends a JSON request and decodes a JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("strike request")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
