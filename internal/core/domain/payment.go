package domain

import "time"

// PaymentStatusSent is the only status recorded: failed payments are never appended.
const PaymentStatusSent = "sent"

// Payment is an outgoing payment history record. Amount is in sats.
type Payment struct {
	PaymentID   string `json:"payment_id"`
	Type        string `json:"type"`
	Invoice     string `json:"invoice"`
	Amount      int64  `json:"amount"`
	Timestamp   int64  `json:"timestamp"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// IsOutgoingSince reports whether the payment is outgoing and at or after t.
func (p *Payment) IsOutgoingSince(t time.Time) bool {
	return p.Type == InvoiceTypeOutgoing && p.Timestamp >= t.Unix()
}
