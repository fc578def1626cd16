package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	DB *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{DB: db}
}

const productColumns = `productid, name, vendor, price, instock, category, customertype, promotionstatus, created_at, deleted_at`

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	if err := row.Scan(&p.ProductID, &p.Name, &p.Vendor, &p.Price, &p.InStock,
		&p.Category, &p.CustomerType, &p.PromotionStatus, &p.CreatedAt, &p.DeletedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product: %w", model.ErrNotFound)
		}
		return nil, err
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]model.Product, error) {
	defer rows.Close()
	var list []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Vendor, &p.Price, &p.InStock,
			&p.Category, &p.CustomerType, &p.PromotionStatus, &p.CreatedAt, &p.DeletedAt); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ProductRepository) Create(ctx context.Context, p *model.Product) (int64, error) {
	var id int64
	query := `INSERT INTO products (name, vendor, price, instock, category, customertype, promotionstatus)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING productid`
	if err := r.DB.QueryRow(ctx, query, p.Name, p.Vendor, p.Price, p.InStock, p.Category, p.CustomerType, model.PromotionOff).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, productID int64) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE productid=$1 AND deleted_at IS NULL`
	return scanProduct(r.DB.QueryRow(ctx, query, productID))
}

func (r *ProductRepository) FindByNameAndVendor(ctx context.Context, name, vendor string) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE name=$1 AND vendor=$2 AND deleted_at IS NULL`
	return scanProduct(r.DB.QueryRow(ctx, query, name, vendor))
}

func (r *ProductRepository) List(ctx context.Context) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE deleted_at IS NULL ORDER BY productid`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func (r *ProductRepository) ListByCategory(ctx context.Context, category string) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE category=$1 AND deleted_at IS NULL ORDER BY productid`
	rows, err := r.DB.Query(ctx, query, category)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func (r *ProductRepository) SearchByName(ctx context.Context, name string) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE name ILIKE '%' || $1 || '%' AND deleted_at IS NULL ORDER BY productid`
	rows, err := r.DB.Query(ctx, query, name)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func (r *ProductRepository) ListPromoted(ctx context.Context) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE promotionstatus=$1 AND deleted_at IS NULL ORDER BY productid`
	rows, err := r.DB.Query(ctx, query, model.PromotionOn)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func (r *ProductRepository) CountPromoted(ctx context.Context) (int64, error) {
	var n int64
	query := `SELECT COUNT(*) FROM products WHERE promotionstatus=$1 AND deleted_at IS NULL`
	if err := r.DB.QueryRow(ctx, query, model.PromotionOn).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *model.Product) error {
	query := `UPDATE products SET name=$1, vendor=$2, price=$3, category=$4, customertype=$5
		WHERE productid=$6 AND deleted_at IS NULL`
	tag, err := r.DB.Exec(ctx, query, p.Name, p.Vendor, p.Price, p.Category, p.CustomerType, p.ProductID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %d: %w", p.ProductID, model.ErrNotFound)
	}
	return nil
}

func (r *ProductRepository) SetPromotion(ctx context.Context, productID int64, status string) error {
	query := `UPDATE products SET promotionstatus=$1 WHERE productid=$2 AND deleted_at IS NULL`
	tag, err := r.DB.Exec(ctx, query, status, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %d: %w", productID, model.ErrNotFound)
	}
	return nil
}

func (r *ProductRepository) SoftDelete(ctx context.Context, productID int64) error {
	query := `UPDATE products SET deleted_at=now() WHERE productid=$1 AND deleted_at IS NULL`
	tag, err := r.DB.Exec(ctx, query, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %d: %w", productID, model.ErrNotFound)
	}
	return nil
}

// LockStockTx reads the current stock count under a row lock, so that
// concurrent checkouts against the same product serialize.
func (r *ProductRepository) LockStockTx(ctx context.Context, tx pgx.Tx, productID int64) (int, error) {
	var stock int
	query := `SELECT instock FROM products WHERE productid=$1 AND deleted_at IS NULL FOR UPDATE`
	if err := tx.QueryRow(ctx, query, productID).Scan(&stock); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("product %d: %w", productID, model.ErrNotFound)
		}
		return 0, err
	}
	return stock, nil
}

// AdjustStockTx moves stock by delta; the WHERE clause keeps the count
// non-negative, a zero row count means the adjustment would oversell.
// Increments skip the deleted_at filter so that returning an order
// still restores stock after its product was soft-deleted.
func (r *ProductRepository) AdjustStockTx(ctx context.Context, tx pgx.Tx, productID int64, delta int) error {
	query := `UPDATE products SET instock = instock + $1
		WHERE productid=$2 AND deleted_at IS NULL AND instock + $1 >= 0`
	if delta > 0 {
		query = `UPDATE products SET instock = instock + $1 WHERE productid=$2`
	}
	tag, err := tx.Exec(ctx, query, delta, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %d: %w", productID, model.ErrInsufficientStock)
	}
	return nil
}
