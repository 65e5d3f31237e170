package domain

// Invoice types.
const (
	InvoiceTypeIncoming = "incoming"
	InvoiceTypeOutgoing = "outgoing"
)

// Invoice is a created invoice as returned by make_invoice and cached for
// lookup_invoice. Amount is in millisats, times are unix seconds.
type Invoice struct {
	Type        string          `json:"type"`
	Invoice     string          `json:"invoice"`
	Description string          `json:"description"`
	Amount      int64           `json:"amount"`
	CreatedAt   int64           `json:"created_at"`
	ExpiresAt   int64           `json:"expires_at"`
	Metadata    InvoiceMetadata `json:"metadata"`
}

type InvoiceMetadata struct {
	State     string `json:"state"`
	InvoiceID string `json:"invoice_id"`
}

// Clone returns a copy safe to hand to another goroutine.
func (i *Invoice) Clone() *Invoice {
	c := *i
	return &c
}
