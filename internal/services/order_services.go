package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/model"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// OrderService runs the storefront order pipeline: cart mutations on
// the customer's NEW order, checkout, cancellation and return. Stock is
// only checked while items sit in a cart; it is decremented when the
// order transitions to DONE.
type OrderService struct {
	DB        TxStarter
	Orders    OrderStore
	Products  ProductStore
	Customers CustomerStore
	Spending  SpendingStore
	Balance   BalanceStore
	Notifier  Notifier
	Log       *zap.Logger
}

func NewOrderService(db TxStarter, or OrderStore, pr ProductStore, cr CustomerStore, sp SpendingStore, bl BalanceStore, n Notifier, log *zap.Logger) *OrderService {
	return &OrderService{
		DB:        db,
		Orders:    or,
		Products:  pr,
		Customers: cr,
		Spending:  sp,
		Balance:   bl,
		Notifier:  n,
		Log:       log,
	}
}

func (s *OrderService) requireCustomer(ctx context.Context, customerID int64) (*model.Customer, error) {
	c, err := s.Customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !c.Active {
		return nil, fmt.Errorf("customer %d is deactivated: %w", customerID, model.ErrPermissionDenied)
	}
	return c, nil
}

func checkOwner(actor *model.Customer, order *model.Order) error {
	if order.CustomerID != actor.CustomerID && !actor.IsAdmin() {
		return fmt.Errorf("order %d: %w", order.OrderID, model.ErrNotOwner)
	}
	return nil
}

// AddItem puts qty pieces of a product into the customer's cart,
// creating the cart if needed. A line item for the product is merged,
// never duplicated, and its cached total is extended at the current
// product price.
func (s *OrderService) AddItem(ctx context.Context, customerID, productID int64, qty int) (*model.OrderInfo, error) {
	if qty <= 0 {
		return nil, errors.New("amount must be positive")
	}
	customer, err := s.requireCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	product, err := s.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.CustomerType != customer.CustomerType && !customer.IsAdmin() {
		return nil, fmt.Errorf("customer type %s cannot order %s product %d: %w",
			customer.CustomerType, product.CustomerType, productID, model.ErrPermissionDenied)
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	order, err := s.getOrCreateNewOrderTx(ctx, tx, customer.CustomerID)
	if err != nil {
		return nil, err
	}
	if err := addToCartTx(ctx, tx, s.Orders, s.Products, order, product, qty); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return orderInfo(ctx, s.Orders, order.OrderID)
}

// RemoveItem takes qty pieces of a product out of the cart. Removing
// the full held quantity deletes the line item; removing the last item
// cancels the cart.
func (s *OrderService) RemoveItem(ctx context.Context, customerID, productID int64, qty int) (*model.OrderInfo, error) {
	if qty <= 0 {
		return nil, errors.New("amount must be positive")
	}
	customer, err := s.requireCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	product, err := s.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	order, err := s.Orders.FindNewOrderTx(ctx, tx, customer.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("no open cart: %w", err)
	}
	if err := removeFromCartTx(ctx, tx, s.Orders, order, product, qty); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return orderInfo(ctx, s.Orders, order.OrderID)
}

// Checkout finishes the customer's order: validates the shipping
// method, decrements stock for every line item, records spending,
// credits the balance and evaluates premium promotion, all in one
// transaction. The promotion notification goes out after commit.
func (s *OrderService) Checkout(ctx context.Context, customerID, orderID int64, method string) (*model.OrderInfo, error) {
	methodCost, ok := model.ShippingCost(method)
	if !ok {
		return nil, fmt.Errorf("shipping method %q: %w", method, model.ErrNotFound)
	}
	customer, err := s.requireCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	order, err := s.Orders.GetForUpdateTx(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if err := checkOwner(customer, order); err != nil {
		return nil, err
	}
	if order.OrderStatus != model.OrderStatusNew {
		return nil, fmt.Errorf("checkout from %s: %w", order.OrderStatus, model.ErrInvalidTransition)
	}
	items, err := s.Orders.GetItemsTx(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("order %d: %w", orderID, model.ErrEmptyCart)
	}

	var total float64
	for _, it := range items {
		stock, err := s.Products.LockStockTx(ctx, tx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if stock < it.PiecesOrdered {
			return nil, fmt.Errorf("product %d: %w", it.ProductID, model.ErrInsufficientStock)
		}
		if err := s.Products.AdjustStockTx(ctx, tx, it.ProductID, -it.PiecesOrdered); err != nil {
			return nil, err
		}
		total += it.TotalPrice
	}

	shipping := shippingCharge(total, methodCost)
	if err := s.Orders.FinishTx(ctx, tx, orderID, method, total); err != nil {
		return nil, err
	}
	newSpending, err := s.Spending.AddTx(ctx, tx, customer.CustomerID, total+shipping)
	if err != nil {
		return nil, err
	}
	if err := s.Balance.AddTx(ctx, tx, total+shipping*shippingBalanceShare); err != nil {
		return nil, err
	}

	promoted := false
	if newSpending >= premiumSpendThreshold && !customer.IsPremium() {
		if err := s.Customers.GrantRoleTx(ctx, tx, customer.CustomerID, model.RolePremium); err != nil {
			return nil, err
		}
		promoted = true
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	s.Log.Info("order finished",
		zap.Int64("orderid", orderID),
		zap.Int64("customerid", customer.CustomerID),
		zap.Float64("total", total),
		zap.Float64("shipping", shipping))

	if promoted {
		if err := s.Notifier.NotifyPremiumPromotion(ctx, customer); err != nil {
			s.Log.Warn("premium promotion notification failed",
				zap.Int64("customerid", customer.CustomerID), zap.Error(err))
		}
	}
	return orderInfo(ctx, s.Orders, orderID)
}

// Cancel is only legal from NEW.
func (s *OrderService) Cancel(ctx context.Context, customerID, orderID int64) error {
	customer, err := s.requireCustomer(ctx, customerID)
	if err != nil {
		return err
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	order, err := s.Orders.GetForUpdateTx(ctx, tx, orderID)
	if err != nil {
		return err
	}
	if err := checkOwner(customer, order); err != nil {
		return err
	}
	if order.OrderStatus != model.OrderStatusNew {
		return fmt.Errorf("cancel from %s: %w", order.OrderStatus, model.ErrInvalidTransition)
	}
	if err := s.Orders.SetStatusTx(ctx, tx, orderID, model.OrderStatusCancelled); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Return is only legal from DONE: stock is restored, the customer's
// spending accumulator and the balance both go down by the full total.
func (s *OrderService) Return(ctx context.Context, customerID, orderID int64) error {
	customer, err := s.requireCustomer(ctx, customerID)
	if err != nil {
		return err
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	order, err := s.Orders.GetForUpdateTx(ctx, tx, orderID)
	if err != nil {
		return err
	}
	if err := checkOwner(customer, order); err != nil {
		return err
	}
	if order.OrderStatus != model.OrderStatusDone {
		return fmt.Errorf("return from %s: %w", order.OrderStatus, model.ErrInvalidTransition)
	}
	items, err := s.Orders.GetItemsTx(ctx, tx, orderID)
	if err != nil {
		return err
	}
	for _, it := range items {
		if err := s.Products.AdjustStockTx(ctx, tx, it.ProductID, it.PiecesOrdered); err != nil {
			return err
		}
	}
	if err := s.Orders.SetStatusTx(ctx, tx, orderID, model.OrderStatusReturned); err != nil {
		return err
	}
	if _, err := s.Spending.AddTx(ctx, tx, order.CustomerID, -order.TotalPrice); err != nil {
		return err
	}
	if err := s.Balance.AddTx(ctx, tx, -order.TotalPrice); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	s.Log.Info("order returned",
		zap.Int64("orderid", orderID),
		zap.Float64("total", order.TotalPrice))
	return nil
}

// Comment attaches free text to a DONE order.
func (s *OrderService) Comment(ctx context.Context, customerID, orderID int64, comment string) error {
	customer, err := s.requireCustomer(ctx, customerID)
	if err != nil {
		return err
	}
	order, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if err := checkOwner(customer, order); err != nil {
		return err
	}
	if order.OrderStatus != model.OrderStatusDone {
		return fmt.Errorf("comment on %s order: %w", order.OrderStatus, model.ErrInvalidTransition)
	}
	return s.Orders.SetComment(ctx, orderID, comment)
}

// GetCart returns the customer's NEW order, or an empty cart shape when
// none is open.
func (s *OrderService) GetCart(ctx context.Context, customerID int64) (*model.OrderInfo, error) {
	order, err := s.Orders.FindNewOrder(ctx, customerID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return &model.OrderInfo{Order: model.Order{CustomerID: customerID, OrderStatus: model.OrderStatusNew}, Items: []model.OrderItem{}}, nil
		}
		return nil, err
	}
	return orderInfo(ctx, s.Orders, order.OrderID)
}

func (s *OrderService) GetOrder(ctx context.Context, customerID, orderID int64) (*model.OrderInfo, error) {
	customer, err := s.requireCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	order, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := checkOwner(customer, order); err != nil {
		return nil, err
	}
	return orderInfo(ctx, s.Orders, orderID)
}

func (s *OrderService) ListOrders(ctx context.Context, customerID int64) ([]model.Order, error) {
	return s.Orders.ListByCustomer(ctx, customerID)
}

func (s *OrderService) getOrCreateNewOrderTx(ctx context.Context, tx pgx.Tx, customerID int64) (*model.Order, error) {
	order, err := s.Orders.FindNewOrderTx(ctx, tx, customerID)
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}
	return s.Orders.CreateNewOrderTx(ctx, tx, customerID)
}

