package handler

import (
	"context"

	"strike-connect/internal/adapter/http/dto"
	"strike-connect/internal/core/domain"
	"strike-connect/pkg/apperror"
	"strike-connect/pkg/response"

	"github.com/gin-gonic/gin"
)

// StatusReader is the read-only wallet state shown on the dashboard.
type StatusReader interface {
	Features() domain.Features
	Status(ctx context.Context) domain.Status
	Balance() domain.BalanceView
	Activity() []domain.ActivityEntry
}

// ACLRunner probes the processor API scopes.
type ACLRunner interface {
	Run(ctx context.Context) map[string]domain.ACLResult
}

// DashboardHandler serves the read-only dashboard API.
type DashboardHandler struct {
	status StatusReader
	acl    ACLRunner
	config dto.ConfigResponse
}

func NewDashboardHandler(status StatusReader, acl ACLRunner, config dto.ConfigResponse) *DashboardHandler {
	return &DashboardHandler{status: status, acl: acl, config: config}
}

// GetStatus handles GET /api/status.
func (h *DashboardHandler) GetStatus(c *gin.Context) {
	response.OK(c, h.status.Status(c.Request.Context()))
}

// GetConfig handles GET /api/config.
func (h *DashboardHandler) GetConfig(c *gin.Context) {
	response.OK(c, h.config)
}

// GetBalance handles GET /api/balance.
func (h *DashboardHandler) GetBalance(c *gin.Context) {
	if !h.status.Features().BalanceEnabled {
		response.Error(c, apperror.ErrFeatureDisabled("Wallet balance"))
		return
	}
	response.OK(c, h.status.Balance())
}

// ListTransactions handles GET /api/transactions.
func (h *DashboardHandler) ListTransactions(c *gin.Context) {
	if !h.status.Features().TransactionHistoryEnabled {
		response.Error(c, apperror.ErrFeatureDisabled("Transaction history"))
		return
	}
	txs := h.status.Activity()
	response.OK(c, dto.TransactionsResponse{Transactions: txs, Count: len(txs)})
}

// TestACL handles POST /api/test-acl.
func (h *DashboardHandler) TestACL(c *gin.Context) {
	response.OK(c, dto.ACLResponse{Results: h.acl.Run(c.Request.Context())})
}
