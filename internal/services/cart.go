package services

import (
	"context"
	"fmt"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/model"

	"github.com/jackc/pgx/v5"
)

// addToCartTx merges qty pieces of a product into the order's line
// items. The stock check counts pieces already held in this cart, so
// repeated add calls cannot over-reserve; stock itself is not touched
// here. The item total is extended at the current product price and
// stays cached from then on.
func addToCartTx(ctx context.Context, tx pgx.Tx, orders OrderStore, products ProductStore, order *model.Order, product *model.Product, qty int) error {
	item, err := orders.FindItemTx(ctx, tx, order.OrderID, product.ProductID)
	if err != nil {
		return err
	}
	inCart := 0
	if item != nil {
		inCart = item.PiecesOrdered
	}

	stock, err := products.LockStockTx(ctx, tx, product.ProductID)
	if err != nil {
		return err
	}
	if stock < inCart+qty {
		return fmt.Errorf("product %d: %w", product.ProductID, model.ErrInsufficientStock)
	}

	if item != nil {
		err = orders.UpdateItemTx(ctx, tx, item.OrderItemID, item.PiecesOrdered+qty, item.TotalPrice+product.Price*float64(qty))
	} else {
		err = orders.InsertItemTx(ctx, tx, order.OrderID, product.ProductID, qty, product.Price*float64(qty))
	}
	if err != nil {
		return err
	}
	return refreshOrderTotalTx(ctx, tx, orders, order.OrderID)
}

// removeFromCartTx takes up to qty pieces of a product out of the cart.
// The removal is clamped to the held amount; deleting the last line
// item cancels the cart.
func removeFromCartTx(ctx context.Context, tx pgx.Tx, orders OrderStore, order *model.Order, product *model.Product, qty int) error {
	item, err := orders.FindItemTx(ctx, tx, order.OrderID, product.ProductID)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("product %d not in cart: %w", product.ProductID, model.ErrNotFound)
	}

	remove := qty
	if remove > item.PiecesOrdered {
		remove = item.PiecesOrdered
	}
	if remove == item.PiecesOrdered {
		if err := orders.DeleteItemTx(ctx, tx, item.OrderItemID); err != nil {
			return err
		}
	} else {
		if err := orders.UpdateItemTx(ctx, tx, item.OrderItemID, item.PiecesOrdered-remove, item.TotalPrice-product.Price*float64(remove)); err != nil {
			return err
		}
	}
	if err := refreshOrderTotalTx(ctx, tx, orders, order.OrderID); err != nil {
		return err
	}

	remaining, err := orders.GetItemsTx(ctx, tx, order.OrderID)
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		return orders.SetStatusTx(ctx, tx, order.OrderID, model.OrderStatusCancelled)
	}
	return nil
}

// refreshOrderTotalTx keeps the cached order total equal to the sum of
// its item totals after every mutation.
func refreshOrderTotalTx(ctx context.Context, tx pgx.Tx, orders OrderStore, orderID int64) error {
	total, err := orders.SumItemTotalsTx(ctx, tx, orderID)
	if err != nil {
		return err
	}
	return orders.UpdateTotalTx(ctx, tx, orderID, total)
}

// orderInfo assembles the API shape for an order with its line items.
func orderInfo(ctx context.Context, orders OrderStore, orderID int64) (*model.OrderInfo, error) {
	order, err := orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	items, err := orders.GetItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.OrderItem{}
	}
	return &model.OrderInfo{Order: *order, Items: items}, nil
}
