package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EmporiumRepository owns the product-to-seller listing links.
type EmporiumRepository struct {
	DB *pgxpool.Pool
}

func NewEmporiumRepository(db *pgxpool.Pool) *EmporiumRepository {
	return &EmporiumRepository{DB: db}
}

func (r *EmporiumRepository) CreateListing(ctx context.Context, productID, customerID int64) (int64, error) {
	var id int64
	query := `INSERT INTO emporium_listings (productid, customerid) VALUES ($1, $2) RETURNING listingid`
	if err := r.DB.QueryRow(ctx, query, productID, customerID).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *EmporiumRepository) FindByProductID(ctx context.Context, productID int64) (*model.EmporiumListing, error) {
	var l model.EmporiumListing
	query := `SELECT listingid, productid, customerid, created_at FROM emporium_listings WHERE productid=$1`
	if err := r.DB.QueryRow(ctx, query, productID).Scan(&l.ListingID, &l.ProductID, &l.CustomerID, &l.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("emporium listing for product %d: %w", productID, model.ErrNotFound)
		}
		return nil, err
	}
	return &l, nil
}

func (r *EmporiumRepository) ExistsByProductID(ctx context.Context, productID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM emporium_listings WHERE productid=$1)`
	if err := r.DB.QueryRow(ctx, query, productID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *EmporiumRepository) ExistsByCustomerAndProduct(ctx context.Context, customerID, productID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM emporium_listings WHERE customerid=$1 AND productid=$2)`
	if err := r.DB.QueryRow(ctx, query, customerID, productID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ListProducts returns every non-deleted product currently listed in
// the emporium.
func (r *EmporiumRepository) ListProducts(ctx context.Context) ([]model.Product, error) {
	query := `SELECT p.productid, p.name, p.vendor, p.price, p.instock, p.category, p.customertype, p.promotionstatus, p.created_at, p.deleted_at
		FROM emporium_listings l JOIN products p ON p.productid = l.productid
		WHERE p.deleted_at IS NULL ORDER BY p.productid`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}
