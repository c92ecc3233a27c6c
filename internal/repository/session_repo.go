package repository

import (
	"context"
	"errors"
	"time"

	"StorefrontAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SessionRepository struct {
	DB *pgxpool.Pool
}

func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{DB: db}
}

// Save upserts the session row keyed by s.ID.
func (r *SessionRepository) Save(ctx context.Context, s *model.Session) error {
	query := `
		INSERT INTO sessions (id, token, role, full_name, mobile_number, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE
		SET token=EXCLUDED.token,
		    role=EXCLUDED.role,
		    full_name=EXCLUDED.full_name,
		    mobile_number=EXCLUDED.mobile_number,
		    email=EXCLUDED.email,
		    updated_at=NOW()
		RETURNING created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query,
		s.ID, s.Token, s.Role, s.FullName, s.MobileNumber, s.Email,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
}

// Get returns nil, nil when no row exists.
func (r *SessionRepository) Get(ctx context.Context, id string) (*model.Session, error) {
	var s model.Session
	query := `SELECT id, token, role, full_name, mobile_number, email, created_at, updated_at FROM sessions WHERE id=$1`
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Token, &s.Role, &s.FullName, &s.MobileNumber, &s.Email, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM sessions WHERE id=$1`, id)
	return err
}

// DeleteIdle removes sessions not updated since the cutoff.
func (r *SessionRepository) DeleteIdle(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.DB.Exec(ctx, `DELETE FROM sessions WHERE updated_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
