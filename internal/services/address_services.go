package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/model"
	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/repository"
)

type AddressService struct {
	Repo      *repository.AddressRepository
	Customers *repository.CustomerRepository
}

func NewAddressService(r *repository.AddressRepository, cr *repository.CustomerRepository) *AddressService {
	return &AddressService{Repo: r, Customers: cr}
}

type AddressCreateCommand struct {
	City        string `json:"city"`
	Street      string `json:"street"`
	Zip         string `json:"zip"`
	AddressType string `json:"addresstype"`
}

func (s *AddressService) Create(ctx context.Context, customerID int64, cmd AddressCreateCommand) (*model.Address, error) {
	if cmd.City == "" || cmd.Street == "" || cmd.Zip == "" {
		return nil, errors.New("city, street and zip are required")
	}
	if !model.ValidAddressType(cmd.AddressType) {
		return nil, fmt.Errorf("unknown address type %q", cmd.AddressType)
	}
	if _, err := s.Customers.GetByID(ctx, customerID); err != nil {
		return nil, err
	}

	a := &model.Address{
		CustomerID:  customerID,
		City:        cmd.City,
		Street:      cmd.Street,
		Zip:         cmd.Zip,
		AddressType: cmd.AddressType,
	}
	id, err := s.Repo.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	a.AddressID = id
	return a, nil
}

func (s *AddressService) List(ctx context.Context, customerID int64) ([]model.Address, error) {
	out, err := s.Repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Address{}
	}
	return out, nil
}
