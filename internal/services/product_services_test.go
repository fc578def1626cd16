package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStockAmountMustBePositive(t *testing.T) {
	ctx := context.Background()
	svc := &ProductService{}

	// validation rejects before any repository access
	for _, amount := range []int{0, -3} {
		_, err := svc.AddToStock(ctx, 1, amount)
		assert.EqualError(t, err, "amount must be positive", "add amount=%d", amount)

		_, err = svc.RemoveFromStock(ctx, 1, amount)
		assert.EqualError(t, err, "amount must be positive", "remove amount=%d", amount)
	}
}
