package handler

import (
	"net/http"

	"strike-connect/internal/adapter/http/dto"
	"strike-connect/internal/core/ports"
	"strike-connect/pkg/apperror"
	"strike-connect/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// dashboardSubject is the JWT subject of the single dashboard operator.
const dashboardSubject = "dashboard"

// AuthHandler handles dashboard login.
type AuthHandler struct {
	hasher       ports.HashService
	tokens       ports.TokenService
	passwordHash string
	log          zerolog.Logger
}

func NewAuthHandler(hasher ports.HashService, tokens ports.TokenService, passwordHash string, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		hasher:       hasher,
		tokens:       tokens,
		passwordHash: passwordHash,
		log:          log,
	}
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	ok, err := h.hasher.Verify(req.Password, h.passwordHash)
	if err != nil {
		h.log.Error().Err(err).Msg("verifying dashboard password")
		response.Error(c, apperror.ErrInternal(err))
		return
	}
	if !ok {
		h.log.Warn().Str("client_ip", c.ClientIP()).Msg("dashboard login failed")
		response.Error(c, apperror.ErrInvalidCredentials())
		return
	}

	token, expiry, err := h.tokens.Generate(dashboardSubject)
	if err != nil {
		response.Error(c, apperror.ErrInternal(err))
		return
	}

	response.OK(c, dto.LoginResponse{
		Token:  token,
		Expiry: expiry.Unix(),
	})
}

// HealthCheck handles GET /health, pinging every configured dependency.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
