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

type OrderRepository struct {
	DB *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{DB: db}
}

const orderColumns = `orderid, customerid, orderdate, totalprice, comments, orderstatus, shippingmethod, paymentstatus`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	if err := row.Scan(&o.OrderID, &o.CustomerID, &o.OrderDate, &o.TotalPrice,
		&o.Comments, &o.OrderStatus, &o.ShippingMethod, &o.PaymentStatus); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order: %w", model.ErrNotFound)
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, orderID int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE orderid=$1`
	return scanOrder(r.DB.QueryRow(ctx, query, orderID))
}

// GetForUpdateTx locks the order row for the length of the transaction.
func (r *OrderRepository) GetForUpdateTx(ctx context.Context, tx pgx.Tx, orderID int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE orderid=$1 FOR UPDATE`
	return scanOrder(tx.QueryRow(ctx, query, orderID))
}

// FindNewOrderTx locks the customer's NEW order if one exists, which
// serializes concurrent cart mutations for the same customer.
func (r *OrderRepository) FindNewOrderTx(ctx context.Context, tx pgx.Tx, customerID int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE customerid=$1 AND orderstatus=$2 LIMIT 1 FOR UPDATE`
	return scanOrder(tx.QueryRow(ctx, query, customerID, model.OrderStatusNew))
}

func (r *OrderRepository) FindNewOrder(ctx context.Context, customerID int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE customerid=$1 AND orderstatus=$2 LIMIT 1`
	return scanOrder(r.DB.QueryRow(ctx, query, customerID, model.OrderStatusNew))
}

// CreateNewOrderTx opens a cart for the customer.
func (r *OrderRepository) CreateNewOrderTx(ctx context.Context, tx pgx.Tx, customerID int64) (*model.Order, error) {
	query := `INSERT INTO orders (customerid, orderdate, orderstatus, paymentstatus)
		VALUES ($1, $2, $3, $4) RETURNING ` + orderColumns
	return scanOrder(tx.QueryRow(ctx, query, customerID, time.Now(), model.OrderStatusNew, model.PaymentStatusPending))
}

func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE customerid=$1 ORDER BY orderid DESC`
	rows, err := r.DB.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.OrderID, &o.CustomerID, &o.OrderDate, &o.TotalPrice,
			&o.Comments, &o.OrderStatus, &o.ShippingMethod, &o.PaymentStatus); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// FindPendingPaymentOrder returns the customer's completed order still
// awaiting payment approval.
func (r *OrderRepository) FindPendingPaymentOrder(ctx context.Context, customerID int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE customerid=$1 AND orderstatus=$2 AND paymentstatus=$3 ORDER BY orderid DESC LIMIT 1`
	return scanOrder(r.DB.QueryRow(ctx, query, customerID, model.OrderStatusDone, model.PaymentStatusPending))
}

func (r *OrderRepository) GetItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	query := `SELECT orderitemid, orderid, productid, piecesordered, totalprice
		FROM orderitems WHERE orderid=$1 ORDER BY orderitemid`
	rows, err := r.DB.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	return collectItems(rows)
}

func (r *OrderRepository) GetItemsTx(ctx context.Context, tx pgx.Tx, orderID int64) ([]model.OrderItem, error) {
	query := `SELECT orderitemid, orderid, productid, piecesordered, totalprice
		FROM orderitems WHERE orderid=$1 ORDER BY orderitemid`
	rows, err := tx.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	return collectItems(rows)
}

func collectItems(rows pgx.Rows) ([]model.OrderItem, error) {
	defer rows.Close()
	var items []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.OrderItemID, &it.OrderID, &it.ProductID, &it.PiecesOrdered, &it.TotalPrice); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// FindItemTx returns the line item for a product, or nil when the
// product is not in the order.
func (r *OrderRepository) FindItemTx(ctx context.Context, tx pgx.Tx, orderID, productID int64) (*model.OrderItem, error) {
	var it model.OrderItem
	query := `SELECT orderitemid, orderid, productid, piecesordered, totalprice
		FROM orderitems WHERE orderid=$1 AND productid=$2`
	if err := tx.QueryRow(ctx, query, orderID, productID).Scan(&it.OrderItemID, &it.OrderID, &it.ProductID, &it.PiecesOrdered, &it.TotalPrice); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &it, nil
}

func (r *OrderRepository) InsertItemTx(ctx context.Context, tx pgx.Tx, orderID, productID int64, pieces int, totalPrice float64) error {
	query := `INSERT INTO orderitems (orderid, productid, piecesordered, totalprice) VALUES ($1, $2, $3, $4)`
	_, err := tx.Exec(ctx, query, orderID, productID, pieces, totalPrice)
	return err
}

func (r *OrderRepository) UpdateItemTx(ctx context.Context, tx pgx.Tx, orderItemID int64, pieces int, totalPrice float64) error {
	query := `UPDATE orderitems SET piecesordered=$1, totalprice=$2 WHERE orderitemid=$3`
	_, err := tx.Exec(ctx, query, pieces, totalPrice, orderItemID)
	return err
}

func (r *OrderRepository) DeleteItemTx(ctx context.Context, tx pgx.Tx, orderItemID int64) error {
	query := `DELETE FROM orderitems WHERE orderitemid=$1`
	_, err := tx.Exec(ctx, query, orderItemID)
	return err
}

// SumItemTotalsTx recomputes the cached order total from its items.
func (r *OrderRepository) SumItemTotalsTx(ctx context.Context, tx pgx.Tx, orderID int64) (float64, error) {
	var total float64
	query := `SELECT COALESCE(SUM(totalprice), 0) FROM orderitems WHERE orderid=$1`
	if err := tx.QueryRow(ctx, query, orderID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *OrderRepository) UpdateTotalTx(ctx context.Context, tx pgx.Tx, orderID int64, total float64) error {
	query := `UPDATE orders SET totalprice=$1 WHERE orderid=$2`
	_, err := tx.Exec(ctx, query, total, orderID)
	return err
}

func (r *OrderRepository) SetStatusTx(ctx context.Context, tx pgx.Tx, orderID int64, status string) error {
	query := `UPDATE orders SET orderstatus=$1 WHERE orderid=$2`
	_, err := tx.Exec(ctx, query, status, orderID)
	return err
}

// FinishTx moves the order to DONE with its final total, shipping
// method and order date in one statement.
func (r *OrderRepository) FinishTx(ctx context.Context, tx pgx.Tx, orderID int64, method string, total float64) error {
	query := `UPDATE orders SET orderstatus=$1, shippingmethod=$2, totalprice=$3, orderdate=$4 WHERE orderid=$5`
	_, err := tx.Exec(ctx, query, model.OrderStatusDone, method, total, time.Now(), orderID)
	return err
}

func (r *OrderRepository) SetComment(ctx context.Context, orderID int64, comment string) error {
	query := `UPDATE orders SET comments=$1 WHERE orderid=$2`
	_, err := r.DB.Exec(ctx, query, comment, orderID)
	return err
}

func (r *OrderRepository) SetPaymentStatusTx(ctx context.Context, tx pgx.Tx, orderID int64, status string) error {
	query := `UPDATE orders SET paymentstatus=$1 WHERE orderid=$2`
	_, err := tx.Exec(ctx, query, status, orderID)
	return err
}

// DidCustomerOrderProduct reports whether any of the customer's orders
// contains the product; ratings are gated on it.
func (r *OrderRepository) DidCustomerOrderProduct(ctx context.Context, customerID, productID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (
		SELECT 1 FROM orders o JOIN orderitems oi ON oi.orderid = o.orderid
		WHERE o.customerid=$1 AND oi.productid=$2)`
	if err := r.DB.QueryRow(ctx, query, customerID, productID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
