package services

import (
	"context"
	"testing"
	"time"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newOrderService(m *memStore) *OrderService {
	return NewOrderService(m, memOrders{m}, memProducts{m}, memCustomers{m}, memSpending{m}, memBalance{m}, memNotifier{m}, zap.NewNop())
}

func TestAddItemMergesLineItem(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := newOrderService(m)
	customer := m.addCustomer(model.CustomerTypeHobbit)
	product := m.addProduct(10, 20, model.CustomerTypeHobbit)

	_, err := svc.AddItem(ctx, customer.CustomerID, product.ProductID, 2)
	require.NoError(t, err)
	info, err := svc.AddItem(ctx, customer.CustomerID, product.ProductID, 3)
	require.NoError(t, err)

	require.Len(t, info.Items, 1, "repeated adds must merge, not duplicate")
	assert.Equal(t, 5, info.Items[0].PiecesOrdered)
	assert.Equal(t, 50.0, info.Items[0].TotalPrice)
	assert.Equal(t, 50.0, info.Order.TotalPrice)
}

func TestAddItemStockCheckCountsCartContents(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := newOrderService(m)
	customer := m.addCustomer(model.CustomerTypeHobbit)
	product := m.addProduct(10, 5, model.CustomerTypeHobbit)

	_, err := svc.AddItem(ctx, customer.CustomerID, product.ProductID, 3)
	require.NoError(t, err)

	// 3 already held, only 2 more fit into a stock of 5
	_, err = svc.AddItem(ctx, customer.CustomerID, product.ProductID, 3)
	require.ErrorIs(t, err, model.ErrInsufficientStock)

	// adding to a cart never touches physical stock
	assert.Equal(t, 5, m.products[product.ProductID].InStock)
}

func TestAddItemPriceLockedAtAddTime(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := newOrderService(m)
	customer := m.addCustomer(model.CustomerTypeElf)
	product := m.addProduct(10, 20, model.CustomerTypeElf)

	_, err := svc.AddItem(ctx, customer.CustomerID, product.ProductID, 2)
	require.NoError(t, err)

	// price change between adds: the cached total extends at the new
	// price but the earlier pieces keep their locked-in price
	m.products[product.ProductID].Price = 15

	info, err := svc.AddItem(ctx, customer.CustomerID, product.ProductID, 1)
	require.NoError(t, err)
	assert.Equal(t, 35.0, info.Items[0].TotalPrice)
	assert.Equal(t, 35.0, info.Order.TotalPrice)
}

func TestAddItemCustomerTypeMismatch(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := newOrderService(m)
	customer := m.addCustomer(model.CustomerTypeHobbit)
	product := m.addProduct(10, 20, model.CustomerTypeDwarf)

	_, err := svc.AddItem(ctx, customer.CustomerID, product.ProductID, 1)
	assert.ErrorIs(t, err, model.ErrPermissionDenied)
}

func TestRemoveItemClampsAndDeletes(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := newOrderService(m)
	customer := m.addCustomer(model.CustomerTypeMan)
	sword := m.addProduct(30, 20, model.CustomerTypeMan)
	shield := m.addProduct(20, 20, model.CustomerTypeMan)

	_, err := svc.AddItem(ctx, customer.CustomerID, sword.ProductID, 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, customer.CustomerID, shield.ProductID, 1)
	require.NoError(t, err)

	// removing more than held clamps to the held amount and deletes
	info, err := svc.RemoveItem(ctx, customer.CustomerID, sword.ProductID, 5)
	require.NoError(t, err)
	require.Len(t, info.Items, 1)
	assert.Equal(t, shield.ProductID, info.Items[0].ProductID)
	assert.Equal(t, 20.0, info.Order.TotalPrice)
	assert.Equal(t, model.OrderStatusNew, info.Order.OrderStatus)
}

func TestRemoveLastItemCancelsCart(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := newOrderService(m)
	customer := m.addCustomer(model.CustomerTypeMan)
	product := m.addProduct(30, 20, model.CustomerTypeMan)

	_, err := svc.AddItem(ctx, customer.CustomerID, product.ProductID, 2)
	require.NoError(t, err)
	info, err := svc.RemoveItem(ctx, customer.CustomerID, product.ProductID, 2)
	require.NoError(t, err)

	assert.Empty(t, info.Items)
	assert.Equal(t, model.OrderStatusCancelled, info.Order.OrderStatus)
	assert.Equal(t, 0.0, info.Order.TotalPrice)
}

func TestRemoveItemNotInCart(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := newOrderService(m)
	customer := m.addCustomer(model.CustomerTypeMan)
	inCart := m.addProduct(30, 20, model.CustomerTypeMan)
	other := m.addProduct(10, 20, model.CustomerTypeMan)

	_, err := svc.AddItem(ctx, customer.CustomerID, inCart.ProductID, 1)
	require.NoError(t, err)
	_, err = svc.RemoveItem(ctx, customer.CustomerID, other.ProductID, 1)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestCheckoutHappyPath(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := newOrderService(m)
	customer := m.addCustomer(model.CustomerTypeDwarf)
	product := m.addProduct(50, 10, model.CustomerTypeDwarf)

	cart, err := svc.AddItem(ctx, customer.CustomerID, product.ProductID, 2)
	require.NoError(t, err)

	info, err := svc.Checkout(ctx, customer.CustomerID, cart.Order.OrderID, model.ShippingShire)
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusDone, info.Order.OrderStatus)
	assert.Equal(t, 100.0, info.Order.TotalPrice)
	require.NotNil(t, info.Order.ShippingMethod)
	assert.Equal(t, model.ShippingShire, *info.Order.ShippingMethod)

	// stock committed only now
	assert.Equal(t, 8, m.products[product.ProductID].InStock)
	// customer pays total + shipping; the balance gets the total plus a
	// tenth of the shipping
	assert.InDelta(t, 101.2, m.spending[customer.CustomerID], 1e-9)
	assert.InDelta(t, 100.12, m.balance, 1e-9)
}

func TestCheckoutFreeShippingAboveThreshold(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := newOrderService(m)
	customer := m.addCustomer(model.CustomerTypeDwarf)
	product := m.addProduct(75, 10, model.CustomerTypeDwarf)

	cart, err := svc.AddItem(ctx, customer.CustomerID, product.ProductID, 2)
	require.NoError(t, err)
	_, err = svc.Checkout(ctx, customer.CustomerID, cart.Order.OrderID, model.ShippingEagleExpress)
	require.NoError(t, err)

	assert.InDelta(t, 150.0, m.spending[customer.CustomerID], 1e-9)
	assert.InDelta(t, 150.0, m.balance, 1e-9)
}

func TestCheckoutEmptyCart(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := newOrderService(m)
	customer := m.addCustomer(model.CustomerTypeDwarf)
	product := m.addProduct(50, 10, model.CustomerTypeDwarf)

	cart, err := svc.AddItem(ctx, customer.CustomerID, product.ProductID, 1)
	require.NoError(t, err)
	_, err = svc.RemoveItem(ctx, customer.CustomerID, product.ProductID, 1)
	require.NoError(t, err)

	// the empty cart auto-cancelled, so checkout is a bad transition
	_, err = svc.Checkout(ctx, customer.CustomerID, cart.Order.OrderID, model.ShippingShire)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)
}

func TestCheckoutInsufficientStockLeavesOrderOpen(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := newOrderService(m)
	customer := m.addCustomer(model.CustomerTypeDwarf)
	product := m.addProduct(50, 10, model.CustomerTypeDwarf)

	cart, err := svc.AddItem(ctx, customer.CustomerID, product.ProductID, 5)
	require.NoError(t, err)

	// stock drained between add and checkout
	m.products[product.ProductID].InStock = 2

	_, err = svc.Checkout(ctx, customer.CustomerID, cart.Order.OrderID, model.ShippingShire)
	require.ErrorIs(t, err, model.ErrInsufficientStock)
	assert.Equal(t, model.OrderStatusNew, m.orders[cart.Order.OrderID].OrderStatus)
}

func TestCheckoutUnknownShippingMethod(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := newOrderService(m)
	customer := m.addCustomer(model.CustomerTypeDwarf)

	_, err := svc.Checkout(ctx, customer.CustomerID, 1, "MORIA_MINECART")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestCheckoutOtherCustomersOrder(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := newOrderService(m)
	owner := m.addCustomer(model.CustomerTypeDwarf)
	intruder := m.addCustomer(model.CustomerTypeDwarf)
	product := m.addProduct(50, 10, model.CustomerTypeDwarf)

	cart, err := svc.AddItem(ctx, owner.CustomerID, product.ProductID, 1)
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, intruder.CustomerID, cart.Order.OrderID, model.ShippingShire)
	assert.ErrorIs(t, err, model.ErrNotOwner)
}

func TestPremiumPromotionAtThreshold(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := newOrderService(m)
	customer := m.addCustomer(model.CustomerTypeWizard)
	staff := m.addProduct(5000, 10, model.CustomerTypeWizard)

	cart, err := svc.AddItem(ctx, customer.CustomerID, staff.ProductID, 2)
	require.NoError(t, err)
	_, err = svc.Checkout(ctx, customer.CustomerID, cart.Order.OrderID, model.ShippingPersonalPickup)
	require.NoError(t, err)

	assert.True(t, m.customers[customer.CustomerID].IsPremium())
	assert.Equal(t, []int64{customer.CustomerID}, m.promotionNotices)

	// a second qualifying checkout must not promote or notify again
	cart2, err := svc.AddItem(ctx, customer.CustomerID, staff.ProductID, 1)
	require.NoError(t, err)
	_, err = svc.Checkout(ctx, customer.CustomerID, cart2.Order.OrderID, model.ShippingPersonalPickup)
	require.NoError(t, err)
	assert.Len(t, m.promotionNotices, 1)
}

func TestCancelOnlyFromNew(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := newOrderService(m)
	customer := m.addCustomer(model.CustomerTypeHobbit)
	product := m.addProduct(10, 20, model.CustomerTypeHobbit)

	cart, err := svc.AddItem(ctx, customer.CustomerID, product.ProductID, 1)
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(ctx, customer.CustomerID, cart.Order.OrderID))
	assert.Equal(t, model.OrderStatusCancelled, m.orders[cart.Order.OrderID].OrderStatus)

	err = svc.Cancel(ctx, customer.CustomerID, cart.Order.OrderID)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)
}

func TestReturnRestoresStockAndReversesMoney(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := newOrderService(m)
	customer := m.addCustomer(model.CustomerTypeHobbit)
	product := m.addProduct(100, 10, model.CustomerTypeHobbit)

	cart, err := svc.AddItem(ctx, customer.CustomerID, product.ProductID, 2)
	require.NoError(t, err)
	_, err = svc.Checkout(ctx, customer.CustomerID, cart.Order.OrderID, model.ShippingNazgulHaulers)
	require.NoError(t, err)
	require.Equal(t, 8, m.products[product.ProductID].InStock)

	require.NoError(t, svc.Return(ctx, customer.CustomerID, cart.Order.OrderID))

	assert.Equal(t, model.OrderStatusReturned, m.orders[cart.Order.OrderID].OrderStatus)
	assert.Equal(t, 10, m.products[product.ProductID].InStock)
	// the order total comes back; the shipping charge does not
	assert.InDelta(t, 0.0, m.spending[customer.CustomerID], 1e-9)
	assert.InDelta(t, 0.0, m.balance, 1e-9)
}

func TestReturnRestoresStockOfDeletedProduct(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := newOrderService(m)
	customer := m.addCustomer(model.CustomerTypeHobbit)
	product := m.addProduct(100, 10, model.CustomerTypeHobbit)

	cart, err := svc.AddItem(ctx, customer.CustomerID, product.ProductID, 2)
	require.NoError(t, err)
	_, err = svc.Checkout(ctx, customer.CustomerID, cart.Order.OrderID, model.ShippingShire)
	require.NoError(t, err)

	// product pulled from the catalog after the sale
	now := time.Now()
	m.products[product.ProductID].DeletedAt = &now

	require.NoError(t, svc.Return(ctx, customer.CustomerID, cart.Order.OrderID))

	assert.Equal(t, model.OrderStatusReturned, m.orders[cart.Order.OrderID].OrderStatus)
	assert.Equal(t, 10, m.products[product.ProductID].InStock)
	assert.InDelta(t, 0.0, m.spending[customer.CustomerID], 1e-9)
	assert.InDelta(t, 0.0, m.balance, 1e-9)
}

func TestReturnOnlyFromDone(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := newOrderService(m)
	customer := m.addCustomer(model.CustomerTypeHobbit)
	product := m.addProduct(10, 20, model.CustomerTypeHobbit)

	cart, err := svc.AddItem(ctx, customer.CustomerID, product.ProductID, 1)
	require.NoError(t, err)
	err = svc.Return(ctx, customer.CustomerID, cart.Order.OrderID)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)
}

func TestCommentOnlyOnDoneOrder(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := newOrderService(m)
	customer := m.addCustomer(model.CustomerTypeHobbit)
	product := m.addProduct(10, 20, model.CustomerTypeHobbit)

	cart, err := svc.AddItem(ctx, customer.CustomerID, product.ProductID, 1)
	require.NoError(t, err)

	err = svc.Comment(ctx, customer.CustomerID, cart.Order.OrderID, "second breakfast arrived cold")
	require.ErrorIs(t, err, model.ErrInvalidTransition)

	_, err = svc.Checkout(ctx, customer.CustomerID, cart.Order.OrderID, model.ShippingShire)
	require.NoError(t, err)
	require.NoError(t, svc.Comment(ctx, customer.CustomerID, cart.Order.OrderID, "second breakfast arrived cold"))
	require.NotNil(t, m.orders[cart.Order.OrderID].Comments)
	assert.Equal(t, "second breakfast arrived cold", *m.orders[cart.Order.OrderID].Comments)
}

func TestGetCartEmptyShapeWhenNoneOpen(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := newOrderService(m)
	customer := m.addCustomer(model.CustomerTypeHobbit)

	info, err := svc.GetCart(ctx, customer.CustomerID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusNew, info.Order.OrderStatus)
	assert.Empty(t, info.Items)
	assert.Equal(t, 0.0, info.Order.TotalPrice)
}

func TestDeactivatedCustomerCannotOrder(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := newOrderService(m)
	customer := m.addCustomer(model.CustomerTypeHobbit)
	product := m.addProduct(10, 20, model.CustomerTypeHobbit)
	m.customers[customer.CustomerID].Active = false

	_, err := svc.AddItem(ctx, customer.CustomerID, product.ProductID, 1)
	assert.ErrorIs(t, err, model.ErrPermissionDenied)
}
