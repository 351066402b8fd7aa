package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shadowpay/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Amounts cross the driver as text so no precision is lost to float conversion.
const paymentColumns = `id, amount::text, token, comment, receiver, status,
		sender_address, tx_hash, created_at, updated_at`

// PaymentRepo implements ports.PaymentRepository.
type PaymentRepo struct {
	pool Pool
}

// NewPaymentRepo creates a new PaymentRepo.
func NewPaymentRepo(pool Pool) *PaymentRepo {
	return &PaymentRepo{pool: pool}
}

// Create inserts a new payment row.
func (r *PaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (id, amount, token, comment, receiver, status,
		sender_address, tx_hash, created_at, updated_at)
		VALUES ($1, $2::numeric, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Amount.String(), string(p.Token), p.Comment, p.Receiver, string(p.Status),
		p.SenderAddress, p.TxHash, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID fetches a payment by id.
func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	return scanPayment(r.pool.QueryRow(ctx, query, id))
}

// UpdateStatus changes the status of a pending payment in a single
// conditional statement. A non-pending row is left untouched.
func (r *PaymentRepo) UpdateStatus(ctx context.Context, id string, update domain.StatusUpdate, at time.Time) (*domain.Payment, error) {
	query := `UPDATE payments SET
		status = $2,
		sender_address = COALESCE(NULLIF($3, ''), sender_address),
		tx_hash = COALESCE(NULLIF($4, ''), tx_hash),
		updated_at = $5
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + paymentColumns

	return scanPayment(r.pool.QueryRow(ctx, query,
		id, string(update.Status), update.SenderAddress, update.TxHash, at,
	))
}

// List returns up to limit payments, newest first.
func (r *PaymentRepo) List(ctx context.Context, limit int) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment rows: %w", err)
	}
	return payments, nil
}

// scanPayment reads one row; pgx.ErrNoRows yields nil, nil.
func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var (
		p      domain.Payment
		amount string
	)
	err := row.Scan(
		&p.ID, &amount, &p.Token, &p.Comment, &p.Receiver, &p.Status,
		&p.SenderAddress, &p.TxHash, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan payment: %w", err)
	}

	p.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse payment amount %q: %w", amount, err)
	}
	return &p, nil
}
