package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/model"
	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type CustomerService struct {
	Repo     *repository.CustomerRepository
	Spending *repository.TotalSpendingRepository
	Orders   *repository.OrderRepository
}

func NewCustomerService(r *repository.CustomerRepository, sp *repository.TotalSpendingRepository, or *repository.OrderRepository) *CustomerService {
	return &CustomerService{Repo: r, Spending: sp, Orders: or}
}

// selfOrAdmin allows a customer to act on their own record, or an admin
// on anyone's.
func (s *CustomerService) selfOrAdmin(ctx context.Context, actorID, customerID int64) (*model.Customer, error) {
	actor, err := s.Repo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor.CustomerID != customerID && !actor.IsAdmin() {
		return nil, fmt.Errorf("customer %d cannot act on customer %d: %w", actorID, customerID, model.ErrPermissionDenied)
	}
	return actor, nil
}

// CustomerInfo is a customer together with their order history.
type CustomerInfo struct {
	Customer model.Customer `json:"customer"`
	Orders   []model.Order  `json:"orders"`
}

func (s *CustomerService) Get(ctx context.Context, actorID, customerID int64) (*CustomerInfo, error) {
	if _, err := s.selfOrAdmin(ctx, actorID, customerID); err != nil {
		return nil, err
	}
	customer, err := s.Repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	orders, err := s.Orders.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return &CustomerInfo{Customer: *customer, Orders: orders}, nil
}

type CustomerUpdateCommand struct {
	FirstName    string `json:"firstname"`
	LastName     string `json:"lastname"`
	Password     string `json:"password"`
	CustomerType string `json:"customertype"`
}

func (s *CustomerService) Update(ctx context.Context, actorID, customerID int64, cmd CustomerUpdateCommand) (*model.Customer, error) {
	if _, err := s.selfOrAdmin(ctx, actorID, customerID); err != nil {
		return nil, err
	}
	customer, err := s.Repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if cmd.FirstName != "" {
		customer.FirstName = cmd.FirstName
	}
	if cmd.LastName != "" {
		customer.LastName = cmd.LastName
	}
	if cmd.CustomerType != "" {
		if !model.ValidCustomerType(cmd.CustomerType) {
			return nil, fmt.Errorf("unknown customer type %q", cmd.CustomerType)
		}
		customer.CustomerType = cmd.CustomerType
	}
	if cmd.Password != "" {
		if len(cmd.Password) < MinPasswordLen {
			return nil, fmt.Errorf("password too short: must be at least %d characters", MinPasswordLen)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		customer.PasswordHash = string(hash)
	}
	if err := s.Repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(ctx, customerID)
}

// Deactivate soft-deletes the customer; the record stays and can be
// reactivated.
func (s *CustomerService) Deactivate(ctx context.Context, actorID, customerID int64) error {
	if _, err := s.selfOrAdmin(ctx, actorID, customerID); err != nil {
		return err
	}
	return s.Repo.SetActive(ctx, customerID, false)
}

func (s *CustomerService) Reactivate(ctx context.Context, customerID int64) (*model.Customer, error) {
	customer, err := s.Repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer.Active {
		return nil, errors.New("customer is already active")
	}
	if err := s.Repo.SetActive(ctx, customerID, true); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(ctx, customerID)
}

func (s *CustomerService) GetSpending(ctx context.Context, actorID, customerID int64) (float64, error) {
	if _, err := s.selfOrAdmin(ctx, actorID, customerID); err != nil {
		return 0, err
	}
	return s.Spending.Get(ctx, customerID)
}
