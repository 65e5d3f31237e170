package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"strike-connect/internal/core/domain"
	"strike-connect/internal/core/ports"

	"github.com/rs/zerolog"
)

const (
	// DefaultRetryDelay is the fixed wait between reconnect attempts.
	DefaultRetryDelay = 5 * time.Second

	defaultEventBuffer = 64
)

// ConnectionSupervisor owns the relay link. It connects, subscribes to
// wallet requests from the connection pubkey and feeds them to a bounded
// channel. When the link fails or closes it retries after a fixed delay,
// forever. Nothing is queued across reconnects.
type ConnectionSupervisor struct {
	dialer  ports.RelayDialer
	uri     string
	filter  domain.Filter
	events  chan domain.RequestEnvelope
	metrics ports.MetricsRecorder
	log     zerolog.Logger

	retryDelay     time.Duration
	onFirstConnect func(ctx context.Context)
	firstConnect   sync.Once

	mu   sync.RWMutex
	conn ports.RelayConn
}

// SupervisorOption customizes a ConnectionSupervisor.
type SupervisorOption func(*ConnectionSupervisor)

// WithRetryDelay overrides DefaultRetryDelay.
func WithRetryDelay(d time.Duration) SupervisorOption {
	return func(s *ConnectionSupervisor) { s.retryDelay = d }
}

// WithOnFirstConnect registers a hook run once, after the first successful
// subscribe. The hook must not block.
func WithOnFirstConnect(fn func(ctx context.Context)) SupervisorOption {
	return func(s *ConnectionSupervisor) { s.onFirstConnect = fn }
}

func WithEventBuffer(n int) SupervisorOption {
	return func(s *ConnectionSupervisor) { s.events = make(chan domain.RequestEnvelope, n) }
}

// NewConnectionSupervisor creates a supervisor for uri that accepts requests
// authored by connectionPubkey. metrics may be nil.
func NewConnectionSupervisor(
	dialer ports.RelayDialer,
	uri string,
	connectionPubkey string,
	metrics ports.MetricsRecorder,
	log zerolog.Logger,
	opts ...SupervisorOption,
) *ConnectionSupervisor {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	s := &ConnectionSupervisor{
		dialer: dialer,
		uri:    uri,
		filter: domain.Filter{
			Authors: []string{connectionPubkey},
			Kinds:   []int{domain.KindWalletRequest},
		},
		metrics:    metrics,
		retryDelay: DefaultRetryDelay,
		log:        log.With().Str("component", "supervisor").Str("relay", uri).Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.events == nil {
		s.events = make(chan domain.RequestEnvelope, defaultEventBuffer)
	}
	return s
}

// Events is closed when Run returns.
func (s *ConnectionSupervisor) Events() <-chan domain.RequestEnvelope {
	return s.events
}

// Run keeps the relay link alive until ctx is done.
func (s *ConnectionSupervisor) Run(ctx context.Context) {
	defer close(s.events)

	for {
		err := s.session(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			s.log.Error().Err(err).Dur("retry_in", s.retryDelay).Msg("failed to connect to relay, retrying")
		} else {
			s.log.Warn().Dur("retry_in", s.retryDelay).Msg("relay connection closed, reconnecting")
		}
		s.metrics.IncReconnects()

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.retryDelay):
		}
	}
}

// session runs one connection until it ends. A nil error means the relay
// closed the link.
func (s *ConnectionSupervisor) session(ctx context.Context) error {
	conn, err := s.dialer.Dial(ctx, s.uri)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer func() {
		s.setConn(nil)
		if err := conn.Close(); err != nil {
			s.log.Debug().Err(err).Msg("error closing relay connection")
		}
	}()

	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sub, err := conn.Subscribe(subCtx, s.filter)
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}

	s.setConn(conn)
	s.log.Info().Msg("connected to relay")

	// A dial that completes after shutdown must not start dependent services.
	if ctx.Err() != nil {
		return nil
	}
	s.firstConnect.Do(func() {
		if s.onFirstConnect != nil {
			s.onFirstConnect(ctx)
		}
	})

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-conn.Done():
			return nil
		case env, ok := <-sub:
			if !ok {
				return nil
			}
			s.log.Debug().Str("event_id", env.ID).Msg("request received")
			select {
			case s.events <- env:
			case <-ctx.Done():
				return nil
			case <-conn.Done():
				return nil
			}
		}
	}
}

func (s *ConnectionSupervisor) setConn(conn ports.RelayConn) {
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
	s.metrics.SetRelayConnected(conn != nil)
}

func (s *ConnectionSupervisor) current() ports.RelayConn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conn
}

// Connected reports whether a live, subscribed link exists.
func (s *ConnectionSupervisor) Connected() bool {
	conn := s.current()
	return conn != nil && conn.IsConnected()
}

// Publish sends ev over the current link.
func (s *ConnectionSupervisor) Publish(ctx context.Context, ev *domain.SignedEvent) error {
	conn := s.current()
	if conn == nil {
		return ErrRelayNotConnected
	}
	return conn.Publish(ctx, ev)
}

func (s *ConnectionSupervisor) URI() string {
	return s.uri
}

// Status returns the read-only view of the link.
func (s *ConnectionSupervisor) Status() domain.RelayStatus {
	return domain.RelayStatus{Connected: s.Connected(), URI: s.uri}
}
