package domain

import (
	"encoding/json"
	"strconv"
	"time"
)

// Wallet connect event kinds.
const (
	KindWalletRequest  = 23194
	KindWalletResponse = 23195
)

// Wallet connect methods served by the dispatcher.
const (
	MethodPayInvoice       = "pay_invoice"
	MethodMakeInvoice      = "make_invoice"
	MethodLookupInvoice    = "lookup_invoice"
	MethodGetBalance       = "get_balance"
	MethodListTransactions = "list_transactions"

	// MethodUnknown is the result type used when the request could not be decrypted.
	MethodUnknown = "unknown"
)

// RequestEnvelope is a relay event addressed to the service. Immutable once received.
type RequestEnvelope struct {
	ID        string
	PubKey    string
	Content   string
	CreatedAt time.Time
}

// Request is the decrypted content of a RequestEnvelope.
type Request struct {
	Method string         `json:"method"`
	Params map[string]any `json:"params"`
}

// StringParam returns params[key] if it is a string.
func (r *Request) StringParam(key string) string {
	if r.Params == nil {
		return ""
	}
	s, _ := r.Params[key].(string)
	return s
}

// Int64Param returns params[key] as an integer. JSON numbers and numeric
// strings are accepted; fractional values are truncated.
func (r *Request) Int64Param(key string) (int64, bool) {
	if r.Params == nil {
		return 0, false
	}
	switch v := r.Params[key].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			f, ferr := v.Float64()
			if ferr != nil {
				return 0, false
			}
			return int64(f), true
		}
		return n, true
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// Response is the plaintext of a response envelope. Exactly one of Result
// or Error is set.
type Response struct {
	ResultType string         `json:"result_type"`
	Result     any            `json:"result,omitempty"`
	Error      *ResponseError `json:"error,omitempty"`
}

type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SignedEvent is an encrypted, signed response ready to publish.
type SignedEvent struct {
	ID        string     `json:"id"`
	PubKey    string     `json:"pubkey"`
	CreatedAt int64      `json:"created_at"`
	Kind      int        `json:"kind"`
	Tags      [][]string `json:"tags"`
	Content   string     `json:"content"`
	Sig       string     `json:"sig"`
}

// Filter selects relay events for a subscription.
type Filter struct {
	Authors []string
	Kinds   []int
}

// PlaceholderPreimage is returned for every successful payment: the
// processor does not surface the real preimage.
const PlaceholderPreimage = "0000000000000000000000000000000000000000000000000000000000000000"

type PayInvoiceResult struct {
	Preimage string `json:"preimage"`
}

// BalanceResult carries the BTC balance in millisats.
type BalanceResult struct {
	Balance int64 `json:"balance"`
}

type ListTransactionsResult struct {
	Transactions []Transaction `json:"transactions"`
}
