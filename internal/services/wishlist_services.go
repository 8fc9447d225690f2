package services

import (
	"context"

	"CoffeeStoreAPI/internal/model"
	"CoffeeStoreAPI/internal/repository"
)

type WishlistService struct {
	Repo        *repository.WishlistRepository
	ProductRepo *repository.ProductRepository
}

func NewWishlistService(r *repository.WishlistRepository, pr *repository.ProductRepository) *WishlistService {
	return &WishlistService{Repo: r, ProductRepo: pr}
}

func (s *WishlistService) Add(ctx context.Context, userID, productID int64) error {
	if _, err := s.ProductRepo.GetByID(ctx, productID); err != nil {
		return err
	}
	return s.Repo.Add(ctx, userID, productID)
}

func (s *WishlistService) Remove(ctx context.Context, userID, productID int64) error {
	return s.Repo.Remove(ctx, userID, productID)
}

// List resolves the wishlist into products; ids whose product has been
// removed from the catalog are skipped.
func (s *WishlistService) List(ctx context.Context, userID int64) ([]model.Product, error) {
	ids, err := s.Repo.ListProductIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	products := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		p, err := s.ProductRepo.GetByID(ctx, id)
		if err != nil {
			continue
		}
		products = append(products, *p)
	}
	return products, nil
}
