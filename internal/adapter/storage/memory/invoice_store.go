package memory

import (
	"container/list"
	"context"
	"errors"
	"sync"

	"strike-connect/internal/core/domain"
)

// InvoiceStore keeps invoices in process memory. With a positive maxEntries
// the oldest inserted invoice is evicted once the limit is reached.
type InvoiceStore struct {
	mu         sync.RWMutex
	maxEntries int
	items      map[string]*list.Element
	order      *list.List
}

func NewInvoiceStore(maxEntries int) *InvoiceStore {
	return &InvoiceStore{
		maxEntries: maxEntries,
		items:      make(map[string]*list.Element),
		order:      list.New(),
	}
}

func (s *InvoiceStore) Put(_ context.Context, inv *domain.Invoice) error {
	if inv == nil || inv.Invoice == "" {
		return errors.New("invoice string is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.items[inv.Invoice]; ok {
		el.Value = inv.Clone()
		return nil
	}

	s.items[inv.Invoice] = s.order.PushBack(inv.Clone())
	for s.maxEntries > 0 && s.order.Len() > s.maxEntries {
		oldest := s.order.Front()
		s.order.Remove(oldest)
		delete(s.items, oldest.Value.(*domain.Invoice).Invoice)
	}
	return nil
}

func (s *InvoiceStore) Get(_ context.Context, invoice string) (*domain.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	el, ok := s.items[invoice]
	if !ok {
		return nil, nil
	}
	return el.Value.(*domain.Invoice).Clone(), nil
}

func (s *InvoiceStore) UpdateState(_ context.Context, invoice, state string) (*domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.items[invoice]
	if !ok {
		return nil, nil
	}
	inv := el.Value.(*domain.Invoice)
	inv.Metadata.State = state
	return inv.Clone(), nil
}

func (s *InvoiceStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}
