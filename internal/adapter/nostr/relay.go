package nostr

import (
	"context"
	"fmt"

	"strike-connect/internal/core/domain"
	"strike-connect/internal/core/ports"

	gonostr "github.com/nbd-wtf/go-nostr"
	"github.com/rs/zerolog"
)

// Dialer implements ports.RelayDialer over go-nostr websocket relays.
type Dialer struct {
	log zerolog.Logger
}

func NewDialer(log zerolog.Logger) *Dialer {
	return &Dialer{log: log.With().Str("component", "relay").Logger()}
}

func (d *Dialer) Dial(ctx context.Context, uri string) (ports.RelayConn, error) {
	relay, err := gonostr.RelayConnect(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", uri, err)
	}
	return &Conn{relay: relay, log: d.log.With().Str("relay", uri).Logger()}, nil
}

// Conn wraps one go-nostr relay connection.
type Conn struct {
	relay *gonostr.Relay
	log   zerolog.Logger
}

// Subscribe forwards signature-valid events matching filter until ctx is
// done or the connection drops, then closes the returned channel.
func (c *Conn) Subscribe(ctx context.Context, filter domain.Filter) (<-chan domain.RequestEnvelope, error) {
	sub, err := c.relay.Subscribe(ctx, gonostr.Filters{{
		Authors: filter.Authors,
		Kinds:   filter.Kinds,
	}})
	if err != nil {
		return nil, fmt.Errorf("subscribing: %w", err)
	}

	out := make(chan domain.RequestEnvelope)
	go func() {
		defer close(out)
		defer sub.Unsub()

		for {
			select {
			case <-ctx.Done():
				return
			case <-c.relay.Context().Done():
				return
			case ev, ok := <-sub.Events:
				if !ok {
					c.log.Info().Msg("relay subscription closed")
					return
				}
				if valid, err := ev.CheckSignature(); !valid {
					c.log.Warn().Err(err).Str("event_id", ev.ID).Msg("dropping event with invalid signature")
					continue
				}
				env := domain.RequestEnvelope{
					ID:        ev.ID,
					PubKey:    ev.PubKey,
					Content:   ev.Content,
					CreatedAt: ev.CreatedAt.Time(),
				}
				select {
				case out <- env:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (c *Conn) Publish(ctx context.Context, ev *domain.SignedEvent) error {
	if err := c.relay.Publish(ctx, fromSignedEvent(ev)); err != nil {
		return fmt.Errorf("publishing %s: %w", ev.ID, err)
	}
	return nil
}

func (c *Conn) Done() <-chan struct{} {
	return c.relay.Context().Done()
}

func (c *Conn) IsConnected() bool {
	return c.relay.IsConnected()
}

func (c *Conn) Close() error {
	return c.relay.Close()
}
