package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// balanceRowID is the id of the singleton balance row.
const balanceRowID = 1

// BalanceRepository owns the platform-wide revenue accumulator. No
// per-order ledger history is kept, only the running total.
type BalanceRepository struct {
	DB *pgxpool.Pool
}

func NewBalanceRepository(db *pgxpool.Pool) *BalanceRepository {
	return &BalanceRepository{DB: db}
}

// EnsureExists creates the singleton row at startup if absent.
func (r *BalanceRepository) EnsureExists(ctx context.Context) error {
	query := `INSERT INTO webshop_balance (balanceid, total) VALUES ($1, 0) ON CONFLICT (balanceid) DO NOTHING`
	_, err := r.DB.Exec(ctx, query, balanceRowID)
	return err
}

func (r *BalanceRepository) Get(ctx context.Context) (float64, error) {
	var total float64
	query := `SELECT total FROM webshop_balance WHERE balanceid=$1`
	if err := r.DB.QueryRow(ctx, query, balanceRowID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// AddTx moves the balance by delta (negative for debits) as a single
// atomic update on the locked singleton row.
func (r *BalanceRepository) AddTx(ctx context.Context, tx pgx.Tx, delta float64) error {
	query := `UPDATE webshop_balance SET total = total + $1 WHERE balanceid=$2`
	_, err := tx.Exec(ctx, query, delta, balanceRowID)
	return err
}
