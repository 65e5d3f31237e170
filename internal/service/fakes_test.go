package service

import (
	"context"
	"sync"
	"testing"

	"strike-connect/internal/core/domain"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/stretchr/testify/require"
)

// mapInvoiceStore is an in-memory ports.InvoiceStore for service tests.
type mapInvoiceStore struct {
	mu sync.Mutex
	m  map[string]domain.Invoice
}

func newMapInvoiceStore() *mapInvoiceStore {
	return &mapInvoiceStore{m: make(map[string]domain.Invoice)}
}

func (s *mapInvoiceStore) Put(_ context.Context, inv *domain.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[inv.Invoice] = *inv
	return nil
}

func (s *mapInvoiceStore) Get(_ context.Context, invoice string) (*domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.m[invoice]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (s *mapInvoiceStore) UpdateState(_ context.Context, invoice, state string) (*domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.m[invoice]
	if !ok {
		return nil, nil
	}
	inv.Metadata.State = state
	s.m[invoice] = inv
	return &inv, nil
}

func (s *mapInvoiceStore) Count(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m), nil
}

// fakePublisher records published responses.
type fakePublisher struct {
	mu        sync.Mutex
	connected bool
	events    []*domain.SignedEvent
	err       error
}

func (p *fakePublisher) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected
}

func (p *fakePublisher) Publish(_ context.Context, ev *domain.SignedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *fakePublisher) published() []*domain.SignedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*domain.SignedEvent, len(p.events))
	copy(out, p.events)
	return out
}

// testInvoice returns a checksummed invoice string with the given
// human-readable part, e.g. "lnbc6u" for 600 sats.
func testInvoice(t *testing.T, hrp string) string {
	t.Helper()
	data := make([]byte, 40)
	for i := range data {
		data[i] = byte((i * 7) % 32)
	}
	s, err := bech32.Encode(hrp, data)
	require.NoError(t, err)
	return s
}
