package services

import (
	"context"
	"errors"
	"log"

	"CoffeeStoreAPI/internal/model"
	"CoffeeStoreAPI/internal/repository"
)

// BestSellerCount is the size of the "best seller" badge set.
const BestSellerCount = 3

type ProductService struct {
	Repo     *repository.ProductRepository
	Wishlist *repository.WishlistRepository
	Users    UserDirectory
	Mailer   EmailSender
}

func NewProductService(r *repository.ProductRepository, w *repository.WishlistRepository, users UserDirectory, mailer EmailSender) *ProductService {
	return &ProductService{Repo: r, Wishlist: w, Users: users, Mailer: mailer}
}

func (s *ProductService) Get(ctx context.Context, id int64) (*model.Product, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *ProductService) List(ctx context.Context, sortByPopularity bool) ([]model.Product, error) {
	return s.Repo.ListVisible(ctx, sortByPopularity)
}

func (s *ProductService) BestSellers(ctx context.Context) ([]model.Product, error) {
	return s.Repo.TopByPopularity(ctx, BestSellerCount)
}

func (s *ProductService) SetStock(ctx context.Context, id int64, stock int) error {
	if stock < 0 {
		return errors.New("stock cannot be negative")
	}
	return s.Repo.SetStock(ctx, id, stock)
}

// SetPrice updates the price; a zero price deactivates the product and
// a nonzero price reactivates it.
func (s *ProductService) SetPrice(ctx context.Context, id int64, price float64) error {
	if price < 0 {
		return errors.New("price cannot be negative")
	}
	return s.Repo.SetPrice(ctx, id, price)
}

// SetDiscount updates the discount percentage and, when a real
// discount is set, emails every customer holding the product on their
// wishlist. The fan-out is best-effort: a failed send is logged and
// the rest of the recipients still get theirs.
func (s *ProductService) SetDiscount(ctx context.Context, id int64, discount float64) error {
	if discount < 0 || discount > 100 {
		return errors.New("discount must be between 0 and 100")
	}
	if err := s.Repo.SetDiscount(ctx, id, discount); err != nil {
		return err
	}
	if discount == 0 {
		return nil
	}

	product, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil
	}
	userIDs, err := s.Wishlist.UsersWithProduct(ctx, id)
	if err != nil {
		log.Printf("product %d: wishlist fan-out lookup failed: %v", id, err)
		return nil
	}
	subject, body := discountEmail(product.Name, discount)
	for _, userID := range userIDs {
		email, err := s.Users.GetEmail(ctx, userID)
		if err != nil || email == "" {
			continue
		}
		if err := s.Mailer.Send(ctx, email, subject, body, nil); err != nil {
			log.Printf("product %d: discount email to %s failed: %v", id, email, err)
		}
	}
	return nil
}
