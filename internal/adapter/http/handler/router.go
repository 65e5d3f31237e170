package handler

import (
	"net/http"

	"strike-connect/internal/adapter/http/dto"
	"strike-connect/internal/adapter/http/middleware"
	"strike-connect/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Status         StatusReader
	ACL            ACLRunner
	Logs           LogSource
	Config         dto.ConfigResponse
	HashSvc        ports.HashService
	TokenSvc       ports.TokenService // nil = dashboard API is open
	PasswordHash   string
	RateLimitStore middleware.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Metrics        http.Handler // nil = no /metrics endpoint
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(64 << 10))

	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	rules := middleware.DefaultRateLimitRules()
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	api := r.Group("/api")

	authEnabled := deps.TokenSvc != nil && deps.PasswordHash != ""
	if authEnabled {
		authHandler := NewAuthHandler(deps.HashSvc, deps.TokenSvc, deps.PasswordHash, deps.Logger)
		api.POST("/login", rl("login"), authHandler.Login)
	}

	protected := api.Group("", rl("api"))
	if authEnabled {
		protected.Use(middleware.JWTAuth(deps.TokenSvc, deps.Logger))
	}

	dashboardHandler := NewDashboardHandler(deps.Status, deps.ACL, deps.Config)
	logsHandler := NewLogsHandler(deps.Logs, deps.Logger)
	{
		protected.GET("/status", dashboardHandler.GetStatus)
		protected.GET("/config", dashboardHandler.GetConfig)
		protected.GET("/balance", dashboardHandler.GetBalance)
		protected.GET("/transactions", dashboardHandler.ListTransactions)
		protected.POST("/test-acl", rl("test_acl"), dashboardHandler.TestACL)
		protected.GET("/logs", logsHandler.GetLogs)
		protected.GET("/logs/stream", logsHandler.Stream)
	}

	return r
}
