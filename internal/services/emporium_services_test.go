package services

import (
	"context"
	"testing"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEmporiumService(m *memStore) *EmporiumService {
	return NewEmporiumService(m, memOrders{m}, memProducts{m}, memCustomers{m}, memSpending{m}, memBalance{m}, memListings{m}, memAddresses{m}, zap.NewNop())
}

func (m *memStore) listProduct(t *testing.T, svc *EmporiumService, seller *model.Customer, price float64, stock int, ctype string) *model.Product {
	t.Helper()
	created, err := svc.ListProductForSale(context.Background(), seller.CustomerID, &model.Product{
		Name:         "mathom",
		Vendor:       "Bag End Clearout",
		Price:        price,
		InStock:      stock,
		CustomerType: ctype,
	})
	require.NoError(t, err)
	return created
}

func TestEmporiumRequiresPremium(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := newEmporiumService(m)
	basic := m.addCustomer(model.CustomerTypeHobbit)

	_, err := svc.ListProductForSale(ctx, basic.CustomerID, &model.Product{
		Name: "mathom", Vendor: "Bag End Clearout", Price: 10, InStock: 1,
		CustomerType: model.CustomerTypeHobbit,
	})
	assert.ErrorIs(t, err, model.ErrPermissionDenied)

	_, err = svc.AddToCart(ctx, basic.CustomerID, 1, 1)
	assert.ErrorIs(t, err, model.ErrPermissionDenied)
}

func TestEmporiumExcludesAdmins(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := newEmporiumService(m)

	// an admin who also holds premium still cannot trade
	admin := m.addCustomer(model.CustomerTypeMan, model.RoleBasic, model.RolePremium, model.RoleAdmin)

	_, err := svc.ListProductForSale(ctx, admin.CustomerID, &model.Product{
		Name: "mathom", Vendor: "Bag End Clearout", Price: 10, InStock: 1,
		CustomerType: model.CustomerTypeMan,
	})
	assert.ErrorIs(t, err, model.ErrPermissionDenied)
}

func TestEmporiumListAndBrowse(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := newEmporiumService(m)
	seller := m.addCustomer(model.CustomerTypeHobbit, model.RoleBasic, model.RolePremium)

	created := m.listProduct(t, svc, seller, 40, 3, model.CustomerTypeHobbit)

	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, created.ProductID, products[0].ProductID)

	got, err := svc.GetProduct(ctx, created.ProductID)
	require.NoError(t, err)
	assert.Equal(t, created.ProductID, got.ProductID)
}

func TestEmporiumCartRejectsUnlistedProduct(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := newEmporiumService(m)
	buyer := m.addCustomer(model.CustomerTypeHobbit, model.RoleBasic, model.RolePremium)

	// storefront product, never listed in the emporium
	unlisted := m.addProduct(40, 3, model.CustomerTypeHobbit)

	_, err := svc.AddToCart(ctx, buyer.CustomerID, unlisted.ProductID, 1)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestEmporiumCheckoutRequiresShippingAddress(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := newEmporiumService(m)
	seller := m.addCustomer(model.CustomerTypeHobbit, model.RoleBasic, model.RolePremium)
	buyer := m.addCustomer(model.CustomerTypeHobbit, model.RoleBasic, model.RolePremium)
	product := m.listProduct(t, svc, seller, 40, 3, model.CustomerTypeHobbit)

	_, err := svc.AddToCart(ctx, buyer.CustomerID, product.ProductID, 1)
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, buyer.CustomerID, model.ShippingShire)
	assert.ErrorIs(t, err, model.ErrNoShippingAddress)
}

func TestEmporiumCheckoutTakesServiceFee(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := newEmporiumService(m)
	seller := m.addCustomer(model.CustomerTypeHobbit, model.RoleBasic, model.RolePremium)
	buyer := m.addCustomer(model.CustomerTypeHobbit, model.RoleBasic, model.RolePremium)
	product := m.listProduct(t, svc, seller, 100, 5, model.CustomerTypeHobbit)
	m.addresses[buyer.CustomerID] = true

	_, err := svc.AddToCart(ctx, buyer.CustomerID, product.ProductID, 2)
	require.NoError(t, err)

	info, err := svc.Checkout(ctx, buyer.CustomerID, model.ShippingShire)
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusDone, info.Order.OrderStatus)
	assert.Equal(t, 200.0, info.Order.TotalPrice)
	assert.Equal(t, 3, m.products[product.ProductID].InStock)
	// full total counts as spending, only the fee reaches the balance
	assert.InDelta(t, 200.0, m.spending[buyer.CustomerID], 1e-9)
	assert.InDelta(t, 30.0, m.balance, 1e-9)
}

func TestEmporiumCheckoutWithoutCart(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := newEmporiumService(m)
	buyer := m.addCustomer(model.CustomerTypeHobbit, model.RoleBasic, model.RolePremium)
	m.addresses[buyer.CustomerID] = true

	_, err := svc.Checkout(ctx, buyer.CustomerID, model.ShippingShire)
	assert.ErrorIs(t, err, model.ErrEmptyCart)
}

func TestEmporiumReturnReversesFeeAndStock(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := newEmporiumService(m)
	seller := m.addCustomer(model.CustomerTypeHobbit, model.RoleBasic, model.RolePremium)
	buyer := m.addCustomer(model.CustomerTypeHobbit, model.RoleBasic, model.RolePremium)
	product := m.listProduct(t, svc, seller, 100, 5, model.CustomerTypeHobbit)
	m.addresses[buyer.CustomerID] = true

	_, err := svc.AddToCart(ctx, buyer.CustomerID, product.ProductID, 1)
	require.NoError(t, err)
	info, err := svc.Checkout(ctx, buyer.CustomerID, model.ShippingShire)
	require.NoError(t, err)

	require.NoError(t, svc.Return(ctx, buyer.CustomerID, info.Order.OrderID))

	assert.Equal(t, model.OrderStatusReturned, m.orders[info.Order.OrderID].OrderStatus)
	assert.Equal(t, 5, m.products[product.ProductID].InStock)
	assert.InDelta(t, 0.0, m.spending[buyer.CustomerID], 1e-9)
	// the return claws back the full total, not just the fee share
	assert.InDelta(t, -85.0, m.balance, 1e-9)
}
