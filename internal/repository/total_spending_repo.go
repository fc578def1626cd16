package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TotalSpendingRepository owns the per-customer spend accumulator rows.
type TotalSpendingRepository struct {
	DB *pgxpool.Pool
}

func NewTotalSpendingRepository(db *pgxpool.Pool) *TotalSpendingRepository {
	return &TotalSpendingRepository{DB: db}
}

// CreateTx seeds the accumulator at registration time.
func (r *TotalSpendingRepository) CreateTx(ctx context.Context, tx pgx.Tx, customerID int64) error {
	query := `INSERT INTO total_spending (customerid, total) VALUES ($1, 0)`
	_, err := tx.Exec(ctx, query, customerID)
	return err
}

func (r *TotalSpendingRepository) Get(ctx context.Context, customerID int64) (float64, error) {
	var total float64
	query := `SELECT total FROM total_spending WHERE customerid=$1`
	if err := r.DB.QueryRow(ctx, query, customerID).Scan(&total); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("total spending for customer %d: %w", customerID, model.ErrNotFound)
		}
		return 0, err
	}
	return total, nil
}

// AddTx adjusts the accumulator and returns the new total, so callers
// can evaluate premium promotion against the committed value.
func (r *TotalSpendingRepository) AddTx(ctx context.Context, tx pgx.Tx, customerID int64, delta float64) (float64, error) {
	var total float64
	query := `UPDATE total_spending SET total = total + $1 WHERE customerid=$2 RETURNING total`
	if err := tx.QueryRow(ctx, query, delta, customerID).Scan(&total); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("total spending for customer %d: %w", customerID, model.ErrNotFound)
		}
		return 0, err
	}
	return total, nil
}
