package postgres

import (
	"context"
	"fmt"
	"time"

	"strike-connect/internal/core/domain"
)

const createPaymentsTable = `CREATE TABLE IF NOT EXISTS payments (
	payment_id  TEXT PRIMARY KEY,
	type        TEXT NOT NULL,
	invoice     TEXT NOT NULL,
	amount_sats BIGINT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL,
	paid_at     TIMESTAMPTZ NOT NULL
)`

const createPaymentsPaidAtIndex = `CREATE INDEX IF NOT EXISTS idx_payments_paid_at ON payments (paid_at DESC)`

// PaymentRepo implements ports.PaymentRepository.
type PaymentRepo struct {
	pool Pool
}

func NewPaymentRepo(pool Pool) *PaymentRepo {
	return &PaymentRepo{pool: pool}
}

// Migrate creates the payments table if it does not exist.
func (r *PaymentRepo) Migrate(ctx context.Context) error {
	for _, stmt := range []string{createPaymentsTable, createPaymentsPaidAtIndex} {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate payments: %w", err)
		}
	}
	return nil
}

// Create inserts the payment. Replaying the same payment id is a no-op.
func (r *PaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (payment_id, type, invoice, amount_sats, description, status, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (payment_id) DO NOTHING`

	_, err := r.pool.Exec(ctx, query,
		p.PaymentID, p.Type, p.Invoice, p.Amount, p.Description, p.Status,
		time.Unix(p.Timestamp, 0).UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}
