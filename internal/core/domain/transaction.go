package domain

// Transaction is one list_transactions entry. Amount is in millisats.
type Transaction struct {
	Type        string              `json:"type"`
	Invoice     string              `json:"invoice"`
	Description string              `json:"description"`
	Amount      int64               `json:"amount"`
	CreatedAt   int64               `json:"created_at"`
	ExpiresAt   *int64              `json:"expires_at"`
	Metadata    TransactionMetadata `json:"metadata"`
}

type TransactionMetadata struct {
	State    string `json:"state"`
	Currency string `json:"currency"`
}

// ActivityEntry is a row of the dashboard activity feed, which mixes
// processor invoices with local outgoing payments. Amount is in millisats.
type ActivityEntry struct {
	Type        string `json:"type"`
	Invoice     string `json:"invoice"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	Timestamp   int64  `json:"timestamp"`
	State       string `json:"state,omitempty"`
	Currency    string `json:"currency,omitempty"`
	Status      string `json:"status,omitempty"`
	PaymentID   string `json:"payment_id,omitempty"`
}

// ActivityFromInvoice maps a processor invoice to an incoming activity entry.
func ActivityFromInvoice(inv ProcessorInvoice) ActivityEntry {
	return ActivityEntry{
		Type:        InvoiceTypeIncoming,
		Invoice:     inv.InvoiceID,
		Description: inv.Description,
		Amount:      BTCToMillisats(inv.Amount),
		Timestamp:   inv.Created.Unix(),
		State:       inv.State,
		Currency:    inv.Currency,
	}
}

// ActivityFromPayment maps an outgoing payment to an activity entry.
func ActivityFromPayment(p Payment) ActivityEntry {
	return ActivityEntry{
		Type:        p.Type,
		Invoice:     p.Invoice,
		Description: p.Description,
		Amount:      p.Amount * 1000,
		Timestamp:   p.Timestamp,
		Status:      p.Status,
		PaymentID:   p.PaymentID,
	}
}

// TransactionFromInvoice maps a processor invoice to a list_transactions entry.
func TransactionFromInvoice(inv ProcessorInvoice) Transaction {
	return Transaction{
		Type:        InvoiceTypeIncoming,
		Invoice:     inv.InvoiceID,
		Description: inv.Description,
		Amount:      BTCToMillisats(inv.Amount),
		CreatedAt:   inv.Created.Unix(),
		Metadata: TransactionMetadata{
			State:    inv.State,
			Currency: inv.Currency,
		},
	}
}
