package strike

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"strike-connect/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  map[string]string
	Auth   string
	Body   map[string]any
}

type fakeStrike struct {
	mu       sync.Mutex
	requests []recordedRequest
	routes   map[string]http.HandlerFunc
}

func newFakeStrike(t *testing.T) (*fakeStrike, *Client) {
	t.Helper()
	f := &fakeStrike{routes: make(map[string]http.HandlerFunc)}
	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)

	client := NewClient(Config{
		BaseURL:        srv.URL + "/",
		APIKey:         "test-key",
		SourceCurrency: "USD",
		Timeout:        5 * time.Second,
	}, srv.Client(), zerolog.Nop())
	return f, client
}

func (f *fakeStrike) handle(method, path string, h http.HandlerFunc) {
	f.routes[method+" "+path] = h
}

func (f *fakeStrike) serve(w http.ResponseWriter, r *http.Request) {
	rec := recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  map[string]string{},
		Auth:   r.Header.Get("Authorization"),
	}
	for k := range r.URL.Query() {
		rec.Query[k] = r.URL.Query().Get(k)
	}
	if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
		_ = json.Unmarshal(raw, &rec.Body)
	}

	f.mu.Lock()
	f.requests = append(f.requests, rec)
	h, ok := f.routes[r.Method+" "+r.URL.Path]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	h(w, r)
}

func (f *fakeStrike) recorded() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func writeJSON(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

// ==== PayInvoice Tests ====

func TestClient_PayInvoice(t *testing.T) {
	f, client := newFakeStrike(t)
	f.handle(http.MethodPost, "/v1/payment-quotes/lightning", writeJSON(201, `{"paymentQuoteId":"pq-1"}`))
	f.handle(http.MethodPatch, "/v1/payment-quotes/pq-1/execute", writeJSON(202, `{"paymentId":"pay-1","state":"COMPLETED"}`))

	res, err := client.PayInvoice(context.Background(), "lnbc1u1xyz")
	require.NoError(t, err)
	assert.Equal(t, "pay-1", res.PaymentID)
	assert.Equal(t, "COMPLETED", res.State)

	reqs := f.recorded()
	require.Len(t, reqs, 2)
	assert.Equal(t, "Bearer test-key", reqs[0].Auth)
	assert.Equal(t, "lnbc1u1xyz", reqs[0].Body["lnInvoice"])
	assert.Equal(t, "USD", reqs[0].Body["sourceCurrency"])
	assert.Equal(t, http.MethodPatch, reqs[1].Method)
}

func TestClient_PayInvoice_Failed(t *testing.T) {
	f, client := newFakeStrike(t)
	f.handle(http.MethodPost, "/v1/payment-quotes/lightning", writeJSON(201, `{"paymentQuoteId":"pq-1"}`))
	f.handle(http.MethodPatch, "/v1/payment-quotes/pq-1/execute", writeJSON(200, `{"paymentId":"pay-1","state":"FAILED"}`))

	_, err := client.PayInvoice(context.Background(), "lnbc1u1xyz")
	assert.Error(t, err)
}

func TestClient_PayInvoice_QuoteRejected(t *testing.T) {
	f, client := newFakeStrike(t)
	f.handle(http.MethodPost, "/v1/payment-quotes/lightning",
		writeJSON(422, `{"data":{"status":422,"code":"INVALID_LN_INVOICE","message":"Invalid invoice"}}`))

	_, err := client.PayInvoice(context.Background(), "garbage")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 422, apiErr.Status)
	assert.Equal(t, "INVALID_LN_INVOICE", apiErr.Code)
	assert.False(t, IsUnauthorized(err))
	assert.Len(t, f.recorded(), 1)
}

// ==== MakeInvoice Tests ====

func TestClient_MakeInvoice(t *testing.T) {
	f, client := newFakeStrike(t)
	f.handle(http.MethodPost, "/v1/invoices", writeJSON(201, `{
		"invoiceId":"inv-1",
		"amount":{"currency":"BTC","amount":"0.00001"},
		"state":"UNPAID",
		"created":"2024-05-01T10:00:00.123Z",
		"description":"coffee"
	}`))
	f.handle(http.MethodPost, "/v1/invoices/inv-1/quote", writeJSON(201, `{
		"quoteId":"q-1",
		"lnInvoice":"lnbc10u1abc",
		"expiration":"2024-05-01T11:00:00Z"
	}`))

	created, err := client.MakeInvoice(context.Background(), 1_000_000, "coffee")
	require.NoError(t, err)
	assert.Equal(t, "inv-1", created.InvoiceID)
	assert.Equal(t, "lnbc10u1abc", created.Invoice)
	assert.Equal(t, "UNPAID", created.State)
	assert.Equal(t, int64(1714557600), created.CreatedAt.Unix())
	assert.Equal(t, int64(1714561200), created.ExpiresAt.Unix())

	reqs := f.recorded()
	require.Len(t, reqs, 2)
	assert.Equal(t, "coffee", reqs[0].Body["description"])
	assert.NotEmpty(t, reqs[0].Body["correlationId"])
	amount := reqs[0].Body["amount"].(map[string]any)
	assert.Equal(t, "BTC", amount["currency"])
	assert.Equal(t, "0.00001", amount["amount"])
}

func TestClient_MakeInvoice_Unauthorized(t *testing.T) {
	f, client := newFakeStrike(t)
	f.handle(http.MethodPost, "/v1/invoices", writeJSON(403, `{"data":{"status":403,"code":"FORBIDDEN","message":"missing scope"}}`))

	_, err := client.MakeInvoice(context.Background(), 1000, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProcessorUnauthorized))
}

// ==== Lookup / Balance Tests ====

func TestClient_LookupInvoice(t *testing.T) {
	f, client := newFakeStrike(t)
	f.handle(http.MethodGet, "/v1/invoices/inv-1", writeJSON(200, `{"invoiceId":"inv-1","state":"PAID"}`))

	state, err := client.LookupInvoice(context.Background(), "inv-1")
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatePaid, state)
}

func TestClient_LookupInvoice_NotFound(t *testing.T) {
	_, client := newFakeStrike(t)

	_, err := client.LookupInvoice(context.Background(), "missing")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestClient_GetBalance(t *testing.T) {
	f, client := newFakeStrike(t)
	f.handle(http.MethodGet, "/v1/balances", writeJSON(200, `[
		{"currency":"USD","available":"10.50","total":"10.50"},
		{"currency":"BTC","available":"0.00012345","total":"0.00012345"}
	]`))

	balances, err := client.GetBalance(context.Background())
	require.NoError(t, err)
	require.Len(t, balances, 2)
	assert.True(t, decimal.RequireFromString("0.00012345").Equal(balances[1].Total))
	assert.Equal(t, int64(12_345_000), domain.BTCBalanceMillisats(balances))
}

func TestClient_GetBalance_Unauthorized(t *testing.T) {
	f, client := newFakeStrike(t)
	f.handle(http.MethodGet, "/v1/balances", writeJSON(401, ``))

	_, err := client.GetBalance(context.Background())
	assert.True(t, IsUnauthorized(err))
}

// ==== List Tests ====

func TestClient_ListInvoices(t *testing.T) {
	f, client := newFakeStrike(t)
	f.handle(http.MethodGet, "/v1/invoices", writeJSON(200, `{
		"items":[
			{"invoiceId":"a","state":"PAID","amount":{"currency":"BTC","amount":"0.0001"},"created":"2024-05-01T10:00:00Z","description":"x"},
			{"invoiceId":"b","state":"UNPAID","amount":{"currency":"BTC","amount":"0.0002"},"created":"2024-04-30T10:00:00Z"}
		],
		"count":2
	}`))

	invoices, err := client.ListInvoices(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, invoices, 2)
	assert.Equal(t, "a", invoices[0].InvoiceID)
	assert.Equal(t, "x", invoices[0].Description)
	assert.Equal(t, int64(10_000_000), domain.BTCToMillisats(invoices[0].Amount))

	reqs := f.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, "50", reqs[0].Query["$top"])
	assert.Equal(t, "0", reqs[0].Query["$skip"])
	assert.Equal(t, "created desc", reqs[0].Query["$orderby"])
}

func TestClient_ListPaidInvoicesSince_Pages(t *testing.T) {
	f, client := newFakeStrike(t)
	f.handle(http.MethodGet, "/v1/invoices", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("$skip") == "0" {
			writeJSON(200, `{"items":[{"invoiceId":"a","state":"PAID","amount":{"currency":"BTC","amount":"0.0001"}}],"count":2}`)(w, r)
			return
		}
		writeJSON(200, `{"items":[{"invoiceId":"b","state":"PAID","amount":{"currency":"BTC","amount":"0.0002"}}],"count":2}`)(w, r)
	})

	since := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	invoices, err := client.ListPaidInvoicesSince(context.Background(), since)
	require.NoError(t, err)
	require.Len(t, invoices, 2)
	assert.Equal(t, "b", invoices[1].InvoiceID)

	reqs := f.recorded()
	require.Len(t, reqs, 2)
	assert.Equal(t, "state eq 'PAID' and created gt 2024-05-01T10:00:00Z", reqs[0].Query["$filter"])
	assert.Equal(t, "1", reqs[1].Query["$skip"])
}

func TestClient_TransportError(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1", APIKey: "k"}, nil, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := client.GetBalance(ctx)
	assert.Error(t, err)
	assert.False(t, IsUnauthorized(err))
}
