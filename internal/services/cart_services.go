package services

import (
	"context"
	"errors"

	"CoffeeStoreAPI/internal/model"
	"CoffeeStoreAPI/internal/repository"
)

type CartService struct {
	Repo         *repository.CartRepository
	ProductRepo  *repository.ProductRepository
	CustomerRepo *repository.CustomerRepository
}

func NewCartService(r *repository.CartRepository, pr *repository.ProductRepository, cr *repository.CustomerRepository) *CartService {
	return &CartService{Repo: r, ProductRepo: pr, CustomerRepo: cr}
}

func (s *CartService) cartID(ctx context.Context, userID int64) (int64, error) {
	id, err := s.CustomerRepo.GetCartIDForUser(ctx, userID)
	if err != nil {
		return 0, ErrCartNotFound
	}
	return id, nil
}

// Add puts qty units of a product into the user's cart, merging with
// an existing line.
func (s *CartService) Add(ctx context.Context, userID, productID int64, qty int) error {
	if qty < 1 {
		qty = 1
	}
	cartID, err := s.cartID(ctx, userID)
	if err != nil {
		return err
	}
	product, err := s.ProductRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if !product.Active || !product.Visible {
		return errors.New("product is not available")
	}
	return s.Repo.AddItem(ctx, cartID, productID, qty)
}

// Remove decrements a line; the line disappears once its quantity
// drops to zero.
func (s *CartService) Remove(ctx context.Context, userID, productID int64, qty int) error {
	if qty < 1 {
		qty = 1
	}
	cartID, err := s.cartID(ctx, userID)
	if err != nil {
		return err
	}
	return s.Repo.RemoveItem(ctx, cartID, productID, qty)
}

func (s *CartService) Clear(ctx context.Context, userID int64) error {
	cartID, err := s.cartID(ctx, userID)
	if err != nil {
		return err
	}
	return s.Repo.Clear(ctx, cartID)
}

// Get materializes the cart with product details and totals.
func (s *CartService) Get(ctx context.Context, userID int64) (*model.CartResponse, error) {
	cartID, err := s.cartID(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, err := s.Repo.GetItems(ctx, cartID)
	if err != nil {
		return nil, err
	}
	resp := &model.CartResponse{CartID: cartID, Items: []model.CartItem{}}
	for _, it := range items {
		it.Subtotal = LineTotal(it.UnitPrice, it.Quantity)
		resp.Items = append(resp.Items, it)
		resp.Total += it.Subtotal
	}
	return resp, nil
}
