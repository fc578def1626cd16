package repository

import (
	"context"
	"errors"
	"time"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) CreatePending(ctx context.Context, orderID int64, amount float64, provider, providerRef string) (int64, error) {
	var id int64
	query := `INSERT INTO payments (orderid, amount, paymentstatus, provider, providerref)
		VALUES ($1, $2, $3, $4, $5) RETURNING paymentid`
	if err := r.DB.QueryRow(ctx, query, orderID, amount, model.PaymentStatusPending, provider, providerRef).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// GetByOrderID returns the latest payment for an order, nil when none
// exists.
func (r *PaymentRepository) GetByOrderID(ctx context.Context, orderID int64) (*model.Payment, error) {
	var p model.Payment
	query := `SELECT paymentid, orderid, amount, paymentstatus, provider, providerref, created_at, paid_at
		FROM payments WHERE orderid=$1 ORDER BY paymentid DESC LIMIT 1`
	if err := r.DB.QueryRow(ctx, query, orderID).Scan(&p.PaymentID, &p.OrderID, &p.Amount,
		&p.PaymentStatus, &p.Provider, &p.ProviderRef, &p.CreatedAt, &p.PaidAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) MarkApprovedTx(ctx context.Context, tx pgx.Tx, orderID int64) error {
	query := `UPDATE payments SET paymentstatus=$1, paid_at=$2 WHERE orderid=$3`
	_, err := tx.Exec(ctx, query, model.PaymentStatusApproved, time.Now(), orderID)
	return err
}

func (r *PaymentRepository) MarkDeclinedTx(ctx context.Context, tx pgx.Tx, orderID int64) error {
	query := `UPDATE payments SET paymentstatus=$1 WHERE orderid=$2`
	_, err := tx.Exec(ctx, query, model.PaymentStatusDeclined, orderID)
	return err
}
