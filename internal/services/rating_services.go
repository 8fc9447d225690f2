package services

import (
	"context"
	"errors"

	"CoffeeStoreAPI/internal/model"
	"CoffeeStoreAPI/internal/repository"
)

type RatingService struct {
	Repo        *repository.RatingRepository
	ProductRepo *repository.ProductRepository
}

func NewRatingService(r *repository.RatingRepository, pr *repository.ProductRepository) *RatingService {
	return &RatingService{Repo: r, ProductRepo: pr}
}

// Rate upserts a 1-5 score. Ratings feed the popularity recompute on
// the next sale of the product.
func (s *RatingService) Rate(ctx context.Context, userID, productID int64, rate int) error {
	if rate < 1 || rate > 5 {
		return errors.New("rate must be between 1 and 5")
	}
	if _, err := s.ProductRepo.GetByID(ctx, productID); err != nil {
		return err
	}
	return s.Repo.Upsert(ctx, userID, productID, rate)
}

func (s *RatingService) Delete(ctx context.Context, userID, productID int64) error {
	return s.Repo.Delete(ctx, userID, productID)
}

func (s *RatingService) Average(ctx context.Context, productID int64) (float64, error) {
	return s.Repo.AverageByProduct(ctx, productID)
}

func (s *RatingService) ListByUser(ctx context.Context, userID int64) ([]model.Rating, error) {
	return s.Repo.ListByUser(ctx, userID)
}
