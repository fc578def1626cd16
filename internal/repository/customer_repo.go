package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerRepository struct {
	DB *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

const customerColumns = `customerid, firstname, lastname, email, passwordhash, roles, customertype, active, confirmed, created_at, deleted_at`

func scanCustomer(row pgx.Row) (*model.Customer, error) {
	var c model.Customer
	if err := row.Scan(&c.CustomerID, &c.FirstName, &c.LastName, &c.Email, &c.PasswordHash,
		&c.Roles, &c.CustomerType, &c.Active, &c.Confirmed, &c.CreatedAt, &c.DeletedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("customer: %w", model.ErrNotFound)
		}
		return nil, err
	}
	return &c, nil
}

// CreateTx inserts the customer inside the registration transaction.
func (r *CustomerRepository) CreateTx(ctx context.Context, tx pgx.Tx, c *model.Customer) (int64, error) {
	var id int64
	query := `INSERT INTO customers (firstname, lastname, email, passwordhash, roles, customertype)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING customerid`
	if err := tx.QueryRow(ctx, query, c.FirstName, c.LastName, c.Email, c.PasswordHash, c.Roles, c.CustomerType).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, customerID int64) (*model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customerid=$1 AND deleted_at IS NULL`
	return scanCustomer(r.DB.QueryRow(ctx, query, customerID))
}

func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE email=$1 AND deleted_at IS NULL`
	return scanCustomer(r.DB.QueryRow(ctx, query, email))
}

func (r *CustomerRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM customers WHERE email=$1)`
	if err := r.DB.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *model.Customer) error {
	query := `UPDATE customers SET firstname=$1, lastname=$2, passwordhash=$3, customertype=$4
		WHERE customerid=$5 AND deleted_at IS NULL`
	tag, err := r.DB.Exec(ctx, query, c.FirstName, c.LastName, c.PasswordHash, c.CustomerType, c.CustomerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("customer %d: %w", c.CustomerID, model.ErrNotFound)
	}
	return nil
}

// SetActive soft-deactivates or reactivates a customer.
func (r *CustomerRepository) SetActive(ctx context.Context, customerID int64, active bool) error {
	query := `UPDATE customers SET active=$1 WHERE customerid=$2 AND deleted_at IS NULL`
	tag, err := r.DB.Exec(ctx, query, active, customerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("customer %d: %w", customerID, model.ErrNotFound)
	}
	return nil
}

// Confirm marks the registration as confirmed and activates the account.
func (r *CustomerRepository) Confirm(ctx context.Context, customerID int64) error {
	query := `UPDATE customers SET confirmed=TRUE, active=TRUE WHERE customerid=$1`
	_, err := r.DB.Exec(ctx, query, customerID)
	return err
}

// GrantRoleTx appends a role unless already held.
func (r *CustomerRepository) GrantRoleTx(ctx context.Context, tx pgx.Tx, customerID int64, role string) error {
	query := `UPDATE customers SET roles = array_append(roles, $1)
		WHERE customerid=$2 AND NOT (roles @> ARRAY[$1])`
	_, err := tx.Exec(ctx, query, role, customerID)
	return err
}
