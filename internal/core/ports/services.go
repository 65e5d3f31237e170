package ports

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"time"
)

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles dashboard JWT operations.
type TokenService interface {
	Generate(subject string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Subject string
}

// MetricsRecorder receives operational counters. Implementations must be
// safe for concurrent use.
type MetricsRecorder interface {
	ObserveRequest(method, outcome string, d time.Duration)
	SetQuotaUsed(sats int64)
	SetRelayConnected(connected bool)
	IncReconnects()
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) ObserveRequest(string, string, time.Duration) {}
func (NopMetrics) SetQuotaUsed(int64)                           {}
func (NopMetrics) SetRelayConnected(bool)                       {}
func (NopMetrics) IncReconnects()                               {}
