package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"strike-connect/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

const (
	invoicePrefix     = "invoice:"
	scanBatch         = 100
	maxUpdateAttempts = 5
)

// InvoiceStore implements ports.InvoiceStore with one JSON value per
// invoice string. A zero ttl keeps invoices until deleted.
type InvoiceStore struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

func NewInvoiceStore(client goredis.UniversalClient, ttl time.Duration) *InvoiceStore {
	return &InvoiceStore{client: client, ttl: ttl}
}

func (s *InvoiceStore) Put(ctx context.Context, inv *domain.Invoice) error {
	if inv == nil || inv.Invoice == "" {
		return errors.New("invoice string is required")
	}
	buf, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("encoding invoice: %w", err)
	}
	if err := s.client.Set(ctx, invoicePrefix+inv.Invoice, buf, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set invoice: %w", err)
	}
	return nil
}

func (s *InvoiceStore) Get(ctx context.Context, invoice string) (*domain.Invoice, error) {
	raw, err := s.client.Get(ctx, invoicePrefix+invoice).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get invoice: %w", err)
	}
	return decodeInvoice(raw)
}

// UpdateState rewrites the stored state under WATCH so a concurrent Put is
// never overwritten with stale fields. The remaining TTL is preserved.
func (s *InvoiceStore) UpdateState(ctx context.Context, invoice, state string) (*domain.Invoice, error) {
	key := invoicePrefix + invoice

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		var updated *domain.Invoice
		err := s.client.Watch(ctx, func(tx *goredis.Tx) error {
			raw, err := tx.Get(ctx, key).Bytes()
			if errors.Is(err, goredis.Nil) {
				return nil
			}
			if err != nil {
				return err
			}

			inv, err := decodeInvoice(raw)
			if err != nil {
				return err
			}
			inv.Metadata.State = state
			buf, err := json.Marshal(inv)
			if err != nil {
				return fmt.Errorf("encoding invoice: %w", err)
			}

			_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
				pipe.Set(ctx, key, buf, goredis.KeepTTL)
				return nil
			})
			if err == nil {
				updated = inv
			}
			return err
		}, key)

		if errors.Is(err, goredis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("redis update invoice state: %w", err)
		}
		return updated, nil
	}
	return nil, fmt.Errorf("redis update invoice state: %w", goredis.TxFailedErr)
}

// Count scans the invoice keyspace.
func (s *InvoiceStore) Count(ctx context.Context) (int, error) {
	var (
		cursor uint64
		total  int
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, invoicePrefix+"*", scanBatch).Result()
		if err != nil {
			return 0, fmt.Errorf("redis scan invoices: %w", err)
		}
		total += len(keys)
		cursor = next
		if cursor == 0 {
			return total, nil
		}
	}
}

func decodeInvoice(raw []byte) (*domain.Invoice, error) {
	var inv domain.Invoice
	if err := json.Unmarshal(raw, &inv); err != nil {
		return nil, fmt.Errorf("decoding invoice: %w", err)
	}
	return &inv, nil
}
