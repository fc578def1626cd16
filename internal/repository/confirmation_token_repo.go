package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ConfirmationTokenRepository struct {
	DB *pgxpool.Pool
}

func NewConfirmationTokenRepository(db *pgxpool.Pool) *ConfirmationTokenRepository {
	return &ConfirmationTokenRepository{DB: db}
}

func (r *ConfirmationTokenRepository) CreateTx(ctx context.Context, tx pgx.Tx, customerID int64, token string, expiresAt time.Time) error {
	query := `INSERT INTO confirmation_tokens (customerid, token, expires_at) VALUES ($1, $2, $3)`
	_, err := tx.Exec(ctx, query, customerID, token, expiresAt)
	return err
}

func (r *ConfirmationTokenRepository) GetByToken(ctx context.Context, token string) (*model.ConfirmationToken, error) {
	var t model.ConfirmationToken
	query := `SELECT id, customerid, token, expires_at, confirmed_at FROM confirmation_tokens WHERE token=$1`
	if err := r.DB.QueryRow(ctx, query, token).Scan(&t.ID, &t.CustomerID, &t.Token, &t.ExpiresAt, &t.ConfirmedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("confirmation token: %w", model.ErrNotFound)
		}
		return nil, err
	}
	return &t, nil
}

func (r *ConfirmationTokenRepository) MarkConfirmed(ctx context.Context, id int64) error {
	query := `UPDATE confirmation_tokens SET confirmed_at=$1 WHERE id=$2`
	_, err := r.DB.Exec(ctx, query, time.Now(), id)
	return err
}

// DeleteExpired removes unconfirmed tokens past their expiry, used by
// the scheduled cleanup endpoint.
func (r *ConfirmationTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM confirmation_tokens WHERE confirmed_at IS NULL AND expires_at < now()`
	tag, err := r.DB.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
