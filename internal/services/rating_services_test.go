package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRatingService(m *memStore) *RatingService {
	return NewRatingService(memRatings{m}, memOrders{m}, memProducts{m}, memCustomers{m}, zap.NewNop())
}

func TestRatingRequiresPurchase(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := newRatingService(m)
	customer := m.addCustomer(model.CustomerTypeHobbit)
	product := m.addProduct(10, 20, model.CustomerTypeHobbit)

	_, err := svc.Create(ctx, customer.CustomerID, RatingCreateCommand{
		ProductID: product.ProductID,
		Rating:    4,
		Comment:   "never even held it",
	})
	assert.ErrorIs(t, err, model.ErrPermissionDenied)
}

func TestRatingAfterOrder(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	orders := newOrderService(m)
	svc := newRatingService(m)
	customer := m.addCustomer(model.CustomerTypeHobbit)
	product := m.addProduct(10, 20, model.CustomerTypeHobbit)

	cart, err := orders.AddItem(ctx, customer.CustomerID, product.ProductID, 1)
	require.NoError(t, err)
	_, err = orders.Checkout(ctx, customer.CustomerID, cart.Order.OrderID, model.ShippingShire)
	require.NoError(t, err)

	rating, err := svc.Create(ctx, customer.CustomerID, RatingCreateCommand{
		ProductID: product.ProductID,
		Rating:    5,
		Comment:   "sturdy enough for Mordor",
	})
	require.NoError(t, err)
	assert.Equal(t, customer.CustomerID, rating.CustomerID)
	assert.Equal(t, 5, rating.Rating)

	ratings, err := svc.ListForProduct(ctx, product.ProductID)
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, "sturdy enough for Mordor", ratings[0].Comment)
}

func TestRatingValidation(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := newRatingService(m)
	customer := m.addCustomer(model.CustomerTypeHobbit)
	product := m.addProduct(10, 20, model.CustomerTypeHobbit)

	for _, stars := range []int{0, 6, -1} {
		_, err := svc.Create(ctx, customer.CustomerID, RatingCreateCommand{
			ProductID: product.ProductID, Rating: stars, Comment: "ok",
		})
		assert.Error(t, err, "stars=%d", stars)
	}

	_, err := svc.Create(ctx, customer.CustomerID, RatingCreateCommand{
		ProductID: product.ProductID, Rating: 3, Comment: "",
	})
	assert.Error(t, err)

	_, err = svc.Create(ctx, customer.CustomerID, RatingCreateCommand{
		ProductID: product.ProductID, Rating: 3, Comment: strings.Repeat("x", 256),
	})
	assert.Error(t, err)
}

func TestRatingUnknownProduct(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := newRatingService(m)
	customer := m.addCustomer(model.CustomerTypeHobbit)

	_, err := svc.Create(ctx, customer.CustomerID, RatingCreateCommand{
		ProductID: 9999, Rating: 3, Comment: "what product",
	})
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = svc.ListForProduct(ctx, 9999)
	assert.ErrorIs(t, err, model.ErrNotFound)
}
