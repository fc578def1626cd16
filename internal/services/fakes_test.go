package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/model"

	"github.com/jackc/pgx/v5"
)

// The fakes below implement the store interfaces in memory so the order
// and emporium pipelines can be exercised without a database. The tx
// value is a no-op; mutations apply immediately. One memStore holds the
// shared state, and small typed views satisfy the individual store
// interfaces.

type fakeTx struct{ pgx.Tx }

func (fakeTx) Commit(ctx context.Context) error   { return nil }
func (fakeTx) Rollback(ctx context.Context) error { return nil }

type memStore struct {
	customers map[int64]*model.Customer
	products  map[int64]*model.Product
	orders    map[int64]*model.Order
	items     map[int64]*model.OrderItem
	spending  map[int64]float64
	listings  map[int64]*model.EmporiumListing
	addresses map[int64]bool // customerID -> has shipping address
	ratings   map[int64]*model.Rating
	balance   float64

	nextID int64

	// notifier call records
	promotionNotices []int64
	confirmations    []string
}

func newMemStore() *memStore {
	return &memStore{
		customers: map[int64]*model.Customer{},
		products:  map[int64]*model.Product{},
		orders:    map[int64]*model.Order{},
		items:     map[int64]*model.OrderItem{},
		spending:  map[int64]float64{},
		listings:  map[int64]*model.EmporiumListing{},
		addresses: map[int64]bool{},
		ratings:   map[int64]*model.Rating{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) Begin(ctx context.Context) (pgx.Tx, error) { return fakeTx{}, nil }

func (m *memStore) addCustomer(ctype string, roles ...string) *model.Customer {
	if len(roles) == 0 {
		roles = []string{model.RoleBasic}
	}
	c := &model.Customer{
		CustomerID:   m.id(),
		FirstName:    "Frodo",
		LastName:     "Baggins",
		Email:        fmt.Sprintf("customer%d@shire.me", m.nextID),
		Roles:        roles,
		CustomerType: ctype,
		Active:       true,
		Confirmed:    true,
	}
	m.customers[c.CustomerID] = c
	return c
}

func (m *memStore) addProduct(price float64, stock int, ctype string) *model.Product {
	p := &model.Product{
		ProductID:       m.id(),
		Name:            fmt.Sprintf("product-%d", m.nextID),
		Vendor:          "Rivendell Forge",
		Price:           price,
		InStock:         stock,
		CustomerType:    ctype,
		PromotionStatus: model.PromotionOff,
	}
	m.products[p.ProductID] = p
	return p
}

func (m *memStore) orderItems(orderID int64) []model.OrderItem {
	var out []model.OrderItem
	for _, it := range m.items {
		if it.OrderID == orderID {
			out = append(out, *it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderItemID < out[j].OrderItemID })
	return out
}

// --- OrderStore view ---

type memOrders struct{ m *memStore }

func (v memOrders) GetByID(ctx context.Context, orderID int64) (*model.Order, error) {
	o, ok := v.m.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("order %d: %w", orderID, model.ErrNotFound)
	}
	cp := *o
	return &cp, nil
}

func (v memOrders) GetForUpdateTx(ctx context.Context, tx pgx.Tx, orderID int64) (*model.Order, error) {
	return v.GetByID(ctx, orderID)
}

func (v memOrders) FindNewOrder(ctx context.Context, customerID int64) (*model.Order, error) {
	for _, o := range v.m.orders {
		if o.CustomerID == customerID && o.OrderStatus == model.OrderStatusNew {
			cp := *o
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("no open order for customer %d: %w", customerID, model.ErrNotFound)
}

func (v memOrders) FindNewOrderTx(ctx context.Context, tx pgx.Tx, customerID int64) (*model.Order, error) {
	return v.FindNewOrder(ctx, customerID)
}

func (v memOrders) CreateNewOrderTx(ctx context.Context, tx pgx.Tx, customerID int64) (*model.Order, error) {
	o := &model.Order{
		OrderID:       v.m.id(),
		CustomerID:    customerID,
		OrderStatus:   model.OrderStatusNew,
		PaymentStatus: model.PaymentStatusPending,
	}
	v.m.orders[o.OrderID] = o
	cp := *o
	return &cp, nil
}

func (v memOrders) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	var out []model.Order
	for _, o := range v.m.orders {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderID < out[j].OrderID })
	return out, nil
}

func (v memOrders) GetItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	return v.m.orderItems(orderID), nil
}

func (v memOrders) GetItemsTx(ctx context.Context, tx pgx.Tx, orderID int64) ([]model.OrderItem, error) {
	return v.m.orderItems(orderID), nil
}

func (v memOrders) FindItemTx(ctx context.Context, tx pgx.Tx, orderID, productID int64) (*model.OrderItem, error) {
	for _, it := range v.m.items {
		if it.OrderID == orderID && it.ProductID == productID {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (v memOrders) InsertItemTx(ctx context.Context, tx pgx.Tx, orderID, productID int64, pieces int, totalPrice float64) error {
	it := &model.OrderItem{
		OrderItemID:   v.m.id(),
		OrderID:       orderID,
		ProductID:     productID,
		PiecesOrdered: pieces,
		TotalPrice:    totalPrice,
	}
	v.m.items[it.OrderItemID] = it
	return nil
}

func (v memOrders) UpdateItemTx(ctx context.Context, tx pgx.Tx, orderItemID int64, pieces int, totalPrice float64) error {
	it, ok := v.m.items[orderItemID]
	if !ok {
		return fmt.Errorf("order item %d: %w", orderItemID, model.ErrNotFound)
	}
	it.PiecesOrdered = pieces
	it.TotalPrice = totalPrice
	return nil
}

func (v memOrders) DeleteItemTx(ctx context.Context, tx pgx.Tx, orderItemID int64) error {
	delete(v.m.items, orderItemID)
	return nil
}

func (v memOrders) SumItemTotalsTx(ctx context.Context, tx pgx.Tx, orderID int64) (float64, error) {
	var sum float64
	for _, it := range v.m.items {
		if it.OrderID == orderID {
			sum += it.TotalPrice
		}
	}
	return sum, nil
}

func (v memOrders) UpdateTotalTx(ctx context.Context, tx pgx.Tx, orderID int64, total float64) error {
	o, ok := v.m.orders[orderID]
	if !ok {
		return fmt.Errorf("order %d: %w", orderID, model.ErrNotFound)
	}
	o.TotalPrice = total
	return nil
}

func (v memOrders) SetStatusTx(ctx context.Context, tx pgx.Tx, orderID int64, status string) error {
	o, ok := v.m.orders[orderID]
	if !ok {
		return fmt.Errorf("order %d: %w", orderID, model.ErrNotFound)
	}
	o.OrderStatus = status
	return nil
}

func (v memOrders) FinishTx(ctx context.Context, tx pgx.Tx, orderID int64, method string, total float64) error {
	o, ok := v.m.orders[orderID]
	if !ok {
		return fmt.Errorf("order %d: %w", orderID, model.ErrNotFound)
	}
	o.OrderStatus = model.OrderStatusDone
	o.ShippingMethod = &method
	o.TotalPrice = total
	return nil
}

func (v memOrders) SetComment(ctx context.Context, orderID int64, comment string) error {
	o, ok := v.m.orders[orderID]
	if !ok {
		return fmt.Errorf("order %d: %w", orderID, model.ErrNotFound)
	}
	o.Comments = &comment
	return nil
}

func (v memOrders) DidCustomerOrderProduct(ctx context.Context, customerID, productID int64) (bool, error) {
	for _, it := range v.m.items {
		o, ok := v.m.orders[it.OrderID]
		if ok && o.CustomerID == customerID && it.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

// --- ProductStore view ---

type memProducts struct{ m *memStore }

func (v memProducts) Create(ctx context.Context, p *model.Product) (int64, error) {
	cp := *p
	cp.ProductID = v.m.id()
	if cp.PromotionStatus == "" {
		cp.PromotionStatus = model.PromotionOff
	}
	v.m.products[cp.ProductID] = &cp
	return cp.ProductID, nil
}

func (v memProducts) GetByID(ctx context.Context, productID int64) (*model.Product, error) {
	p, ok := v.m.products[productID]
	if !ok || p.DeletedAt != nil {
		return nil, fmt.Errorf("product %d: %w", productID, model.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (v memProducts) LockStockTx(ctx context.Context, tx pgx.Tx, productID int64) (int, error) {
	p, ok := v.m.products[productID]
	if !ok || p.DeletedAt != nil {
		return 0, fmt.Errorf("product %d: %w", productID, model.ErrNotFound)
	}
	return p.InStock, nil
}

// AdjustStockTx mirrors the SQL repo: decrements refuse deleted
// products and overselling, increments land regardless of the delete
// flag so returns can always restore stock.
func (v memProducts) AdjustStockTx(ctx context.Context, tx pgx.Tx, productID int64, delta int) error {
	p, ok := v.m.products[productID]
	if !ok {
		return fmt.Errorf("product %d: %w", productID, model.ErrNotFound)
	}
	if delta <= 0 && (p.DeletedAt != nil || p.InStock+delta < 0) {
		return fmt.Errorf("product %d: %w", productID, model.ErrInsufficientStock)
	}
	p.InStock += delta
	return nil
}

// --- CustomerStore view ---

type memCustomers struct{ m *memStore }

func (v memCustomers) GetByID(ctx context.Context, customerID int64) (*model.Customer, error) {
	c, ok := v.m.customers[customerID]
	if !ok {
		return nil, fmt.Errorf("customer %d: %w", customerID, model.ErrNotFound)
	}
	cp := *c
	cp.Roles = append([]string(nil), c.Roles...)
	return &cp, nil
}

func (v memCustomers) GrantRoleTx(ctx context.Context, tx pgx.Tx, customerID int64, role string) error {
	c, ok := v.m.customers[customerID]
	if !ok {
		return fmt.Errorf("customer %d: %w", customerID, model.ErrNotFound)
	}
	if !c.HasRole(role) {
		c.Roles = append(c.Roles, role)
	}
	return nil
}

// --- SpendingStore view ---

type memSpending struct{ m *memStore }

func (v memSpending) Get(ctx context.Context, customerID int64) (float64, error) {
	return v.m.spending[customerID], nil
}

func (v memSpending) AddTx(ctx context.Context, tx pgx.Tx, customerID int64, delta float64) (float64, error) {
	v.m.spending[customerID] += delta
	return v.m.spending[customerID], nil
}

// --- BalanceStore view ---

type memBalance struct{ m *memStore }

func (v memBalance) AddTx(ctx context.Context, tx pgx.Tx, delta float64) error {
	v.m.balance += delta
	return nil
}

// --- ListingStore view ---

type memListings struct{ m *memStore }

func (v memListings) CreateListing(ctx context.Context, productID, customerID int64) (int64, error) {
	l := &model.EmporiumListing{
		ListingID:  v.m.id(),
		ProductID:  productID,
		CustomerID: customerID,
	}
	v.m.listings[l.ListingID] = l
	return l.ListingID, nil
}

func (v memListings) FindByProductID(ctx context.Context, productID int64) (*model.EmporiumListing, error) {
	for _, l := range v.m.listings {
		if l.ProductID == productID {
			cp := *l
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("product %d is not listed: %w", productID, model.ErrNotFound)
}

func (v memListings) ExistsByProductID(ctx context.Context, productID int64) (bool, error) {
	_, err := v.FindByProductID(ctx, productID)
	return err == nil, nil
}

func (v memListings) ExistsByCustomerAndProduct(ctx context.Context, customerID, productID int64) (bool, error) {
	for _, l := range v.m.listings {
		if l.ProductID == productID && l.CustomerID == customerID {
			return true, nil
		}
	}
	return false, nil
}

func (v memListings) ListProducts(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	for _, l := range v.m.listings {
		if p, ok := v.m.products[l.ProductID]; ok {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

// --- AddressStore view ---

type memAddresses struct{ m *memStore }

func (v memAddresses) HasShippingAddress(ctx context.Context, customerID int64) (bool, error) {
	return v.m.addresses[customerID], nil
}

// --- RatingStore view ---

type memRatings struct{ m *memStore }

func (v memRatings) Create(ctx context.Context, r *model.Rating) (int64, error) {
	cp := *r
	cp.RatingID = v.m.id()
	v.m.ratings[cp.RatingID] = &cp
	return cp.RatingID, nil
}

func (v memRatings) GetByID(ctx context.Context, ratingID int64) (*model.Rating, error) {
	r, ok := v.m.ratings[ratingID]
	if !ok {
		return nil, fmt.Errorf("rating %d: %w", ratingID, model.ErrNotFound)
	}
	cp := *r
	return &cp, nil
}

func (v memRatings) ListByProduct(ctx context.Context, productID int64) ([]model.Rating, error) {
	var out []model.Rating
	for _, r := range v.m.ratings {
		if r.ProductID == productID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RatingID < out[j].RatingID })
	return out, nil
}

// --- Notifier ---

type memNotifier struct{ m *memStore }

func (v memNotifier) NotifyPremiumPromotion(ctx context.Context, c *model.Customer) error {
	v.m.promotionNotices = append(v.m.promotionNotices, c.CustomerID)
	return nil
}

func (v memNotifier) SendConfirmation(ctx context.Context, email, confirmURL string) error {
	v.m.confirmations = append(v.m.confirmations, email)
	return nil
}
