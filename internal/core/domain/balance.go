package domain

import "time"

// BalanceSnapshot is the aggregated wallet view. Amounts are in millisats.
// A snapshot is replaced wholesale, never merged.
type BalanceSnapshot struct {
	TotalBalance int64      `json:"total_balance"`
	Incoming24h  int64      `json:"incoming_24h"`
	Outgoing24h  int64      `json:"outgoing_24h"`
	LastUpdated  *time.Time `json:"last_updated"`
}

// BalanceView is the dashboard balance payload: the last snapshot plus
// quota usage in sats.
type BalanceView struct {
	BalanceSnapshot
	QuotaUsed int64 `json:"quota_used"`
	QuotaMax  int64 `json:"quota_max"`
}
