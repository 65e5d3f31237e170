package domain

// RelayStatus is the read-only view of the relay link.
type RelayStatus struct {
	Connected bool   `json:"connected"`
	URI       string `json:"uri"`
}

type Features struct {
	BalanceEnabled            bool `json:"balance_enabled"`
	TransactionHistoryEnabled bool `json:"transaction_history_enabled"`
}

type PaymentStats struct {
	TotalSent int64 `json:"total_sent"`
	QuotaMax  int64 `json:"quota_max"`
	QuotaUsed int64 `json:"quota_used"`
}

// Status is the dashboard status summary.
type Status struct {
	Relay          RelayStatus  `json:"relay"`
	Payments       PaymentStats `json:"payments"`
	Features       Features     `json:"features"`
	UptimeMs       int64        `json:"uptime"`
	CachedInvoices int          `json:"cached_invoices"`
}

// ACL probe outcomes.
const (
	ACLStatusSuccess = "success"
	ACLStatusMissing = "missing"
	ACLStatusError   = "error"
	ACLStatusUnknown = "unknown"
)

// ACLResult is the outcome of probing one processor API scope.
type ACLResult struct {
	Scope   string            `json:"scope"`
	Name    string            `json:"name"`
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}
