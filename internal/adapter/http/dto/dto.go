package dto

import (
	"strike-connect/internal/core/domain"
	"strike-connect/pkg/logger"
)

// LoginRequest is the request body for dashboard login.
type LoginRequest struct {
	Password string `json:"password" binding:"required,max=1024"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// ConfigResponse is the non-secret runtime configuration.
type ConfigResponse struct {
	RelayURI                  string `json:"relay_uri"`
	MaxSendSats               int64  `json:"max_send_sats"`
	BalanceEnabled            bool   `json:"balance_enabled"`
	TransactionHistoryEnabled bool   `json:"transaction_history_enabled"`
	BalancePollInterval       string `json:"balance_poll_interval"`
	BalanceDisplay            string `json:"balance_display"`
	AuthEnabled               bool   `json:"auth_enabled"`
}

// TransactionsResponse wraps the merged activity feed.
type TransactionsResponse struct {
	Transactions []domain.ActivityEntry `json:"transactions"`
	Count        int                    `json:"count"`
}

// LogsResponse wraps buffered log entries, oldest first.
type LogsResponse struct {
	Logs []logger.Entry `json:"logs"`
}

// ACLResponse wraps the processor scope probe results keyed by scope.
type ACLResponse struct {
	Results map[string]domain.ACLResult `json:"results"`
}
