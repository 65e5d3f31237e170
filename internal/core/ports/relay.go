package ports

//go:generate mockgen -source=relay.go -destination=mocks/mock_relay.go -package=mocks

import (
	"context"

	"strike-connect/internal/core/domain"
)

// EnvelopeCodec decrypts request envelopes and builds signed responses.
type EnvelopeCodec interface {
	// Decrypt fails for any decryption or JSON parse error.
	Decrypt(content string) (*domain.Request, error)
	// EncryptAndSign serializes resp and wraps it in a response event
	// referencing requestID.
	EncryptAndSign(resp *domain.Response, requestID string) (*domain.SignedEvent, error)
}

// RelayDialer opens relay connections.
type RelayDialer interface {
	Dial(ctx context.Context, uri string) (RelayConn, error)
}

// RelayConn is one live relay connection.
type RelayConn interface {
	// Subscribe delivers matching events until the connection ends.
	Subscribe(ctx context.Context, filter domain.Filter) (<-chan domain.RequestEnvelope, error)
	Publish(ctx context.Context, ev *domain.SignedEvent) error
	// Done is closed when the connection is lost or closed.
	Done() <-chan struct{}
	IsConnected() bool
	Close() error
}
