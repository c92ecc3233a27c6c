package repository

import (
	"context"
	"errors"

	"StorefrontAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) CreatePending(ctx context.Context, p *model.Payment) error {
	q := `
		INSERT INTO payments
			(reference, session_id, provider, method, amount, status, provider_payload, created_at)
		VALUES
			($1, $2, $3, $4, $5, 'Pending', $6, NOW())
		RETURNING status, created_at
	`
	return r.DB.QueryRow(
		ctx, q,
		p.Reference, p.SessionID, p.Provider, p.Method, p.Amount, p.ProviderPayload,
	).Scan(&p.Status, &p.CreatedAt)
}

// GetByReference returns nil, nil when the reference is unknown.
func (r *PaymentRepository) GetByReference(ctx context.Context, reference string) (*model.Payment, error) {
	var p model.Payment

	q := `
		SELECT reference, session_id, provider, method, amount::text, status,
		       provider_payload, created_at, updated_at
		FROM payments
		WHERE reference=$1
	`

	err := r.DB.QueryRow(ctx, q, reference).Scan(
		&p.Reference,
		&p.SessionID,
		&p.Provider,
		&p.Method,
		&p.Amount,
		&p.Status,
		&p.ProviderPayload,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// MarkStatus moves a pending payment to status. Payments that already left
// Pending are not touched; the returned bool reports whether a row changed.
func (r *PaymentRepository) MarkStatus(ctx context.Context, reference, status string, payload []byte) (bool, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	var current string
	err = tx.QueryRow(ctx, `SELECT status FROM payments WHERE reference=$1 FOR UPDATE`, reference).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	if current != model.PaymentStatusPending {
		return false, nil
	}

	_, err = tx.Exec(ctx, `
		UPDATE payments
		SET status=$2,
		    provider_payload=$3,
		    updated_at=NOW()
		WHERE reference=$1
	`, reference, status, payload)
	if err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}
