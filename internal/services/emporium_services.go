package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/model"

	"go.uber.org/zap"
)

// EmporiumService is the peer-to-peer marketplace pipeline layered on
// the base order lifecycle. Products become purchasable here by being
// listed; trading requires the premium role, and a service fee of the
// sale total is routed to the webshop balance at checkout.
type EmporiumService struct {
	DB        TxStarter
	Orders    OrderStore
	Products  ProductStore
	Customers CustomerStore
	Spending  SpendingStore
	Balance   BalanceStore
	Listings  ListingStore
	Addresses AddressStore
	Log       *zap.Logger
}

func NewEmporiumService(db TxStarter, or OrderStore, pr ProductStore, cr CustomerStore, sp SpendingStore, bl BalanceStore, ls ListingStore, ad AddressStore, log *zap.Logger) *EmporiumService {
	return &EmporiumService{
		DB:        db,
		Orders:    or,
		Products:  pr,
		Customers: cr,
		Spending:  sp,
		Balance:   bl,
		Listings:  ls,
		Addresses: ad,
		Log:       log,
	}
}

// canTradeInEmporium is the emporium permission rule: premium customers
// only, and administrators are excluded from trading. Note this is a
// different predicate from the product-management rule in
// canManageProduct; see DESIGN.md before unifying them.
func canTradeInEmporium(c *model.Customer) bool {
	return c.IsPremium() && !c.IsAdmin()
}

func (s *EmporiumService) requireTrader(ctx context.Context, customerID int64) (*model.Customer, error) {
	c, err := s.Customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !c.Active {
		return nil, fmt.Errorf("customer %d is deactivated: %w", customerID, model.ErrPermissionDenied)
	}
	if !canTradeInEmporium(c) {
		return nil, fmt.Errorf("customer %d cannot access emporium services: %w", customerID, model.ErrPermissionDenied)
	}
	return c, nil
}

// ListProductForSale creates a product and links it to the selling
// customer, which makes it purchasable through the emporium.
func (s *EmporiumService) ListProductForSale(ctx context.Context, customerID int64, product *model.Product) (*model.Product, error) {
	customer, err := s.requireTrader(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if product.Name == "" || product.Vendor == "" {
		return nil, errors.New("product name and vendor are required")
	}
	if product.Price <= 0 {
		return nil, errors.New("product price must be positive")
	}
	if product.InStock < 0 {
		return nil, errors.New("product stock cannot be negative")
	}
	if !model.ValidCustomerType(product.CustomerType) {
		return nil, fmt.Errorf("unknown customer type %q", product.CustomerType)
	}

	id, err := s.Products.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	if _, err := s.Listings.CreateListing(ctx, id, customer.CustomerID); err != nil {
		return nil, err
	}
	created, err := s.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.Log.Info("product listed in emporium",
		zap.Int64("productid", id),
		zap.Int64("customerid", customer.CustomerID))
	return created, nil
}

// AddToCart puts a listed product into the trader's cart.
func (s *EmporiumService) AddToCart(ctx context.Context, customerID, productID int64, qty int) (*model.OrderInfo, error) {
	if qty <= 0 {
		return nil, errors.New("amount must be positive")
	}
	customer, err := s.requireTrader(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Listings.FindByProductID(ctx, productID); err != nil {
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
	if errors.Is(err, model.ErrNotFound) {
		order, err = s.Orders.CreateNewOrderTx(ctx, tx, customer.CustomerID)
	}
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

// RemoveFromCart takes a listed product out of the trader's cart.
func (s *EmporiumService) RemoveFromCart(ctx context.Context, customerID, productID int64, qty int) (*model.OrderInfo, error) {
	if qty <= 0 {
		return nil, errors.New("amount must be positive")
	}
	customer, err := s.requireTrader(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Listings.FindByProductID(ctx, productID); err != nil {
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

// Checkout finishes the trader's cart: requires a shipping address,
// decrements stock, records the full total as spending, and credits the
// service-fee share of the total to the webshop balance. The remainder
// belongs to the listing owner and is not tracked further here.
func (s *EmporiumService) Checkout(ctx context.Context, customerID int64, method string) (*model.OrderInfo, error) {
	if _, ok := model.ShippingCost(method); !ok {
		return nil, fmt.Errorf("shipping method %q: %w", method, model.ErrNotFound)
	}
	customer, err := s.requireTrader(ctx, customerID)
	if err != nil {
		return nil, err
	}
	hasAddress, err := s.Addresses.HasShippingAddress(ctx, customer.CustomerID)
	if err != nil {
		return nil, err
	}
	if !hasAddress {
		return nil, fmt.Errorf("customer %d: %w", customer.CustomerID, model.ErrNoShippingAddress)
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	order, err := s.Orders.FindNewOrderTx(ctx, tx, customer.CustomerID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("customer %d: %w", customer.CustomerID, model.ErrEmptyCart)
		}
		return nil, err
	}
	items, err := s.Orders.GetItemsTx(ctx, tx, order.OrderID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("order %d: %w", order.OrderID, model.ErrEmptyCart)
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

	if err := s.Orders.FinishTx(ctx, tx, order.OrderID, method, total); err != nil {
		return nil, err
	}
	if _, err := s.Spending.AddTx(ctx, tx, customer.CustomerID, total); err != nil {
		return nil, err
	}
	if err := s.Balance.AddTx(ctx, tx, total*emporiumServiceFee); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	s.Log.Info("emporium order finished",
		zap.Int64("orderid", order.OrderID),
		zap.Int64("customerid", customer.CustomerID),
		zap.Float64("total", total),
		zap.Float64("service_fee", total*emporiumServiceFee))
	return orderInfo(ctx, s.Orders, order.OrderID)
}

// Cancel is only legal from NEW.
func (s *EmporiumService) Cancel(ctx context.Context, customerID, orderID int64) error {
	customer, err := s.requireTrader(ctx, customerID)
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

// Return reverses a DONE emporium order: stock comes back, spending and
// the balance both go down by the full total.
func (s *EmporiumService) Return(ctx context.Context, customerID, orderID int64) error {
	customer, err := s.requireTrader(ctx, customerID)
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

	s.Log.Info("emporium order returned",
		zap.Int64("orderid", orderID),
		zap.Float64("total", order.TotalPrice))
	return nil
}

// GetProduct returns a product by id provided it is listed in the
// emporium.
func (s *EmporiumService) GetProduct(ctx context.Context, productID int64) (*model.Product, error) {
	if _, err := s.Listings.FindByProductID(ctx, productID); err != nil {
		return nil, err
	}
	return s.Products.GetByID(ctx, productID)
}

// ListProducts returns every product currently listed for sale.
func (s *EmporiumService) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.Listings.ListProducts(ctx)
}
