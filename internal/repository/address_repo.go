package repository

import (
	"context"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AddressRepository struct {
	DB *pgxpool.Pool
}

func NewAddressRepository(db *pgxpool.Pool) *AddressRepository {
	return &AddressRepository{DB: db}
}

func (r *AddressRepository) Create(ctx context.Context, a *model.Address) (int64, error) {
	var id int64
	query := `INSERT INTO addresses (customerid, city, street, zip, addresstype)
		VALUES ($1, $2, $3, $4, $5) RETURNING addressid`
	if err := r.DB.QueryRow(ctx, query, a.CustomerID, a.City, a.Street, a.Zip, a.AddressType).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *AddressRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.Address, error) {
	query := `SELECT addressid, customerid, city, street, zip, addresstype, created_at
		FROM addresses WHERE customerid=$1 ORDER BY addressid`
	rows, err := r.DB.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Address
	for rows.Next() {
		var a model.Address
		if err := rows.Scan(&a.AddressID, &a.CustomerID, &a.City, &a.Street, &a.Zip, &a.AddressType, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// HasShippingAddress is the emporium checkout precondition.
func (r *AddressRepository) HasShippingAddress(ctx context.Context, customerID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM addresses WHERE customerid=$1 AND addresstype=$2)`
	if err := r.DB.QueryRow(ctx, query, customerID, model.AddressTypeShipping).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
