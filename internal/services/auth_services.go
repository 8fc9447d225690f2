package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"CoffeeStoreAPI/internal/model"
	"CoffeeStoreAPI/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLen = 8

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type AuthService struct {
	Users    *repository.UserRepository
	Carts    *repository.CartRepository
	Customer *repository.CustomerRepository
}

func NewAuthService(u *repository.UserRepository, carts *repository.CartRepository, cr *repository.CustomerRepository) *AuthService {
	return &AuthService{Users: u, Carts: carts, Customer: cr}
}

func (s *AuthService) validateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}
	if !emailRegex.MatchString(email) {
		return errors.New("invalid email format")
	}
	return nil
}

func (s *AuthService) validatePassword(pw string) error {
	if len(pw) < MinPasswordLen {
		return fmt.Errorf("password too short: must be at least %d characters", MinPasswordLen)
	}
	return nil
}

// Signup creates a customer account together with its empty cart and
// profile row.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (int64, error) {
	if err := s.validateEmail(email); err != nil {
		return 0, err
	}
	if err := s.validatePassword(password); err != nil {
		return 0, err
	}
	exists, err := s.Users.EmailExists(ctx, email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, errors.New("email already registered")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	userID, err := s.Users.CreateUser(ctx, name, email, string(hash), model.RoleCustomer)
	if err != nil {
		return 0, err
	}
	cartID, err := s.Carts.CreateCart(ctx)
	if err != nil {
		return userID, err
	}
	if err := s.Customer.CreateCustomerInfo(ctx, userID, cartID); err != nil {
		return userID, err
	}
	return userID, nil
}

// Login authenticates with email + password and returns the user
// without the password hash.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		// do not reveal whether email exists
		return nil, errors.New("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, errors.New("invalid credentials")
	}
	u.PasswordHash = ""
	return u, nil
}
