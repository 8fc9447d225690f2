package services

import (
	"context"
	"errors"
	"strings"

	"CoffeeStoreAPI/internal/model"
	"CoffeeStoreAPI/internal/repository"
)

type CustomerService struct {
	Repo *repository.CustomerRepository
}

func NewCustomerService(r *repository.CustomerRepository) *CustomerService {
	return &CustomerService{Repo: r}
}

func (s *CustomerService) Get(ctx context.Context, userID int64) (*model.CustomerInfo, error) {
	ci, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if ci == nil {
		return nil, errors.New("customer profile not found")
	}
	return ci, nil
}

func (s *CustomerService) UpdateDeliveryAddress(ctx context.Context, userID int64, address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errors.New("delivery address is required")
	}
	return s.Repo.UpdateDeliveryAddress(ctx, userID, address)
}

func (s *CustomerService) UpdateLegalName(ctx context.Context, userID int64, legalName string) error {
	legalName = strings.TrimSpace(legalName)
	if legalName == "" {
		return errors.New("legal name is required")
	}
	return s.Repo.UpdateLegalName(ctx, userID, legalName)
}
