package services

import (
	"context"
	"fmt"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/model"

	"go.uber.org/zap"
)

const maxRatingCommentLen = 255

// RatingService lets customers review products, gated on having them in
// an order.
type RatingService struct {
	Ratings   RatingStore
	Orders    OrderStore
	Products  ProductStore
	Customers CustomerStore
	Log       *zap.Logger
}

func NewRatingService(rs RatingStore, or OrderStore, pr ProductStore, cr CustomerStore, log *zap.Logger) *RatingService {
	return &RatingService{
		Ratings:   rs,
		Orders:    or,
		Products:  pr,
		Customers: cr,
		Log:       log,
	}
}

type RatingCreateCommand struct {
	ProductID int64  `json:"productid"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// Create records a rating for a product the customer has ordered.
func (s *RatingService) Create(ctx context.Context, customerID int64, cmd RatingCreateCommand) (*model.Rating, error) {
	if cmd.Rating < 1 || cmd.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5, got %d", cmd.Rating)
	}
	if len(cmd.Comment) == 0 || len(cmd.Comment) > maxRatingCommentLen {
		return nil, fmt.Errorf("comment must be between 1 and %d characters", maxRatingCommentLen)
	}
	customer, err := s.Customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !customer.Active {
		return nil, fmt.Errorf("customer %d is deactivated: %w", customerID, model.ErrPermissionDenied)
	}
	if _, err := s.Products.GetByID(ctx, cmd.ProductID); err != nil {
		return nil, err
	}

	ordered, err := s.Orders.DidCustomerOrderProduct(ctx, customerID, cmd.ProductID)
	if err != nil {
		return nil, err
	}
	if !ordered {
		return nil, fmt.Errorf("customer %d never ordered product %d: %w", customerID, cmd.ProductID, model.ErrPermissionDenied)
	}

	id, err := s.Ratings.Create(ctx, &model.Rating{
		CustomerID: customerID,
		ProductID:  cmd.ProductID,
		Rating:     cmd.Rating,
		Comment:    cmd.Comment,
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("product rated",
		zap.Int64("productid", cmd.ProductID),
		zap.Int64("customerid", customerID),
		zap.Int("rating", cmd.Rating))
	return s.Ratings.GetByID(ctx, id)
}

// ListForProduct returns every rating of a product.
func (s *RatingService) ListForProduct(ctx context.Context, productID int64) ([]model.Rating, error) {
	if _, err := s.Products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	out, err := s.Ratings.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Rating{}
	}
	return out, nil
}
