package services

import (
	"context"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/model"

	"github.com/jackc/pgx/v5"
)

// TxStarter is satisfied by *pgxpool.Pool. Every customer-facing
// mutation runs on a single transaction obtained here.
type TxStarter interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// The order and emporium pipelines are written against these store
// interfaces so their transition logic can be exercised without a
// database; the pgx repositories are the production implementations.

type OrderStore interface {
	GetByID(ctx context.Context, orderID int64) (*model.Order, error)
	GetForUpdateTx(ctx context.Context, tx pgx.Tx, orderID int64) (*model.Order, error)
	FindNewOrder(ctx context.Context, customerID int64) (*model.Order, error)
	FindNewOrderTx(ctx context.Context, tx pgx.Tx, customerID int64) (*model.Order, error)
	CreateNewOrderTx(ctx context.Context, tx pgx.Tx, customerID int64) (*model.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error)
	GetItems(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	GetItemsTx(ctx context.Context, tx pgx.Tx, orderID int64) ([]model.OrderItem, error)
	FindItemTx(ctx context.Context, tx pgx.Tx, orderID, productID int64) (*model.OrderItem, error)
	InsertItemTx(ctx context.Context, tx pgx.Tx, orderID, productID int64, pieces int, totalPrice float64) error
	UpdateItemTx(ctx context.Context, tx pgx.Tx, orderItemID int64, pieces int, totalPrice float64) error
	DeleteItemTx(ctx context.Context, tx pgx.Tx, orderItemID int64) error
	SumItemTotalsTx(ctx context.Context, tx pgx.Tx, orderID int64) (float64, error)
	UpdateTotalTx(ctx context.Context, tx pgx.Tx, orderID int64, total float64) error
	SetStatusTx(ctx context.Context, tx pgx.Tx, orderID int64, status string) error
	FinishTx(ctx context.Context, tx pgx.Tx, orderID int64, method string, total float64) error
	SetComment(ctx context.Context, orderID int64, comment string) error
	DidCustomerOrderProduct(ctx context.Context, customerID, productID int64) (bool, error)
}

type RatingStore interface {
	Create(ctx context.Context, r *model.Rating) (int64, error)
	GetByID(ctx context.Context, ratingID int64) (*model.Rating, error)
	ListByProduct(ctx context.Context, productID int64) ([]model.Rating, error)
}

type ProductStore interface {
	Create(ctx context.Context, p *model.Product) (int64, error)
	GetByID(ctx context.Context, productID int64) (*model.Product, error)
	LockStockTx(ctx context.Context, tx pgx.Tx, productID int64) (int, error)
	AdjustStockTx(ctx context.Context, tx pgx.Tx, productID int64, delta int) error
}

type CustomerStore interface {
	GetByID(ctx context.Context, customerID int64) (*model.Customer, error)
	GrantRoleTx(ctx context.Context, tx pgx.Tx, customerID int64, role string) error
}

type SpendingStore interface {
	Get(ctx context.Context, customerID int64) (float64, error)
	AddTx(ctx context.Context, tx pgx.Tx, customerID int64, delta float64) (float64, error)
}

type BalanceStore interface {
	AddTx(ctx context.Context, tx pgx.Tx, delta float64) error
}

type ListingStore interface {
	CreateListing(ctx context.Context, productID, customerID int64) (int64, error)
	FindByProductID(ctx context.Context, productID int64) (*model.EmporiumListing, error)
	ExistsByProductID(ctx context.Context, productID int64) (bool, error)
	ExistsByCustomerAndProduct(ctx context.Context, customerID, productID int64) (bool, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
}

type AddressStore interface {
	HasShippingAddress(ctx context.Context, customerID int64) (bool, error)
}

// Notifier is the outbound notification collaborator (email today).
// Failures are logged, never surfaced to the customer.
type Notifier interface {
	NotifyPremiumPromotion(ctx context.Context, c *model.Customer) error
	SendConfirmation(ctx context.Context, email, confirmURL string) error
}
