package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/model"
	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/repository"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	promotedCacheKey = "products:promoted"
	promotedCacheTTL = 30 * time.Second
)

type ProductService struct {
	Repo      *repository.ProductRepository
	Listings  *repository.EmporiumRepository
	Customers *repository.CustomerRepository
	Cache     *redis.Client // nil disables caching
	Log       *zap.Logger

	group singleflight.Group
}

func NewProductService(r *repository.ProductRepository, lr *repository.EmporiumRepository, cr *repository.CustomerRepository, cache *redis.Client, log *zap.Logger) *ProductService {
	return &ProductService{
		Repo:      r,
		Listings:  lr,
		Customers: cr,
		Cache:     cache,
		Log:       log,
	}
}

func validateProduct(p *model.Product) error {
	if p.Name == "" || p.Vendor == "" {
		return errors.New("product name and vendor are required")
	}
	if p.Price <= 0 {
		return errors.New("product price must be positive")
	}
	if p.InStock < 0 {
		return errors.New("product stock cannot be negative")
	}
	if !model.ValidCustomerType(p.CustomerType) {
		return fmt.Errorf("unknown customer type %q", p.CustomerType)
	}
	return nil
}

// canManageProduct is the product update/delete rule: the premium
// customer who listed the product in the emporium, or an admin. This is
// deliberately not the same predicate as canTradeInEmporium.
func canManageProduct(c *model.Customer, listed, listedByCustomer bool) bool {
	return (listed && c.IsPremium() && listedByCustomer) || c.IsAdmin()
}

// Create adds a storefront product. Route-level middleware restricts
// this to admins.
func (s *ProductService) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	if existing, err := s.Repo.FindByNameAndVendor(ctx, p.Name, p.Vendor); err == nil && existing != nil {
		return nil, fmt.Errorf("product %q by %q already exists", p.Name, p.Vendor)
	}
	id, err := s.Repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	return s.Repo.GetByID(ctx, id)
}

func (s *ProductService) Get(ctx context.Context, productID int64) (*model.Product, error) {
	return s.Repo.GetByID(ctx, productID)
}

func (s *ProductService) List(ctx context.Context) ([]model.Product, error) {
	return s.Repo.List(ctx)
}

func (s *ProductService) ListByCategory(ctx context.Context, category string) ([]model.Product, error) {
	return s.Repo.ListByCategory(ctx, category)
}

func (s *ProductService) SearchByName(ctx context.Context, name string) ([]model.Product, error) {
	return s.Repo.SearchByName(ctx, name)
}

func (s *ProductService) Update(ctx context.Context, customerID int64, p *model.Product) (*model.Product, error) {
	if err := s.authorizeManage(ctx, customerID, p.ProductID); err != nil {
		return nil, err
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidatePromotedCache(ctx)
	return s.Repo.GetByID(ctx, p.ProductID)
}

func (s *ProductService) Delete(ctx context.Context, customerID, productID int64) error {
	if err := s.authorizeManage(ctx, customerID, productID); err != nil {
		return err
	}
	if err := s.Repo.SoftDelete(ctx, productID); err != nil {
		return err
	}
	s.invalidatePromotedCache(ctx)
	return nil
}

func (s *ProductService) authorizeManage(ctx context.Context, customerID, productID int64) error {
	customer, err := s.Customers.GetByID(ctx, customerID)
	if err != nil {
		return err
	}
	listed, err := s.Listings.ExistsByProductID(ctx, productID)
	if err != nil {
		return err
	}
	listedByCustomer, err := s.Listings.ExistsByCustomerAndProduct(ctx, customerID, productID)
	if err != nil {
		return err
	}
	if !canManageProduct(customer, listed, listedByCustomer) {
		return fmt.Errorf("customer %d cannot manage product %d: %w", customerID, productID, model.ErrPermissionDenied)
	}
	return nil
}

// AddToStock increases a product's stock count.
func (s *ProductService) AddToStock(ctx context.Context, productID int64, amount int) (*model.Product, error) {
	if amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	return s.adjustStock(ctx, productID, amount)
}

// RemoveFromStock decreases a product's stock count, failing rather
// than going negative.
func (s *ProductService) RemoveFromStock(ctx context.Context, productID int64, amount int) (*model.Product, error) {
	if amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	return s.adjustStock(ctx, productID, -amount)
}

func (s *ProductService) adjustStock(ctx context.Context, productID int64, delta int) (*model.Product, error) {
	tx, err := s.Repo.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := s.Repo.LockStockTx(ctx, tx, productID); err != nil {
		return nil, err
	}
	if err := s.Repo.AdjustStockTx(ctx, tx, productID, delta); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return s.Repo.GetByID(ctx, productID)
}

func (s *ProductService) SetPromotion(ctx context.Context, productID int64, on bool) (*model.Product, error) {
	status := model.PromotionOff
	if on {
		status = model.PromotionOn
	}
	if err := s.Repo.SetPromotion(ctx, productID, status); err != nil {
		return nil, err
	}
	s.invalidatePromotedCache(ctx)
	return s.Repo.GetByID(ctx, productID)
}

// Promoted lists products on promotion through a short-lived cache;
// concurrent misses collapse into one database load.
func (s *ProductService) Promoted(ctx context.Context) ([]model.Product, error) {
	if s.Cache != nil {
		if data, err := s.Cache.Get(ctx, promotedCacheKey).Bytes(); err == nil {
			var products []model.Product
			if err := json.Unmarshal(data, &products); err == nil {
				return products, nil
			}
		}
	}

	v, err, _ := s.group.Do(promotedCacheKey, func() (interface{}, error) {
		products, err := s.Repo.ListPromoted(ctx)
		if err != nil {
			return nil, err
		}
		if s.Cache != nil {
			if data, err := json.Marshal(products); err == nil {
				if err := s.Cache.Set(ctx, promotedCacheKey, data, promotedCacheTTL).Err(); err != nil {
					s.Log.Warn("promoted cache write failed", zap.Error(err))
				}
			}
		}
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.Product), nil
}

func (s *ProductService) CountPromoted(ctx context.Context) (int64, error) {
	return s.Repo.CountPromoted(ctx)
}

func (s *ProductService) invalidatePromotedCache(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, promotedCacheKey).Err(); err != nil {
		s.Log.Warn("promoted cache invalidation failed", zap.Error(err))
	}
}
