package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"strike-connect/internal/core/domain"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPayment() *domain.Payment {
	return &domain.Payment{
		PaymentID:   "pay-1",
		Type:        domain.InvoiceTypeOutgoing,
		Invoice:     "lnbc6u1xyz",
		Amount:      600,
		Timestamp:   1714557600,
		Description: "Zap",
		Status:      domain.PaymentStatusSent,
	}
}

func TestPaymentRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPaymentRepo(mock)
	p := newTestPayment()

	mock.ExpectExec("INSERT INTO payments").
		WithArgs(p.PaymentID, p.Type, p.Invoice, p.Amount, p.Description, p.Status,
			time.Unix(p.Timestamp, 0).UTC()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.Create(context.Background(), p))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepo_Create_Duplicate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPaymentRepo(mock)

	mock.ExpectExec("ON CONFLICT \\(payment_id\\) DO NOTHING").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	assert.NoError(t, repo.Create(context.Background(), newTestPayment()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepo_Create_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPaymentRepo(mock)

	mock.ExpectExec("INSERT INTO payments").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))

	err = repo.Create(context.Background(), newTestPayment())
	assert.ErrorContains(t, err, "insert payment")
}

func TestPaymentRepo_Migrate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPaymentRepo(mock)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS payments").
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_payments_paid_at").
		WillReturnResult(pgxmock.NewResult("CREATE INDEX", 0))

	assert.NoError(t, repo.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepo_Migrate_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPaymentRepo(mock)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS payments").
		WillReturnError(errors.New("permission denied"))

	assert.Error(t, repo.Migrate(context.Background()))
}

func TestHealthCheck(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	hc := NewHealthCheck(mock)
	assert.Equal(t, "postgresql", hc.Name())

	mock.ExpectPing()
	assert.NoError(t, hc.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("down"))
	assert.Error(t, hc.Ping(context.Background()))

	assert.NoError(t, mock.ExpectationsWereMet())
}
