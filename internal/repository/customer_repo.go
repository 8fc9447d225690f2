package repository

import (
	"context"
	"errors"

	"CoffeeStoreAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerRepository struct {
	DB *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

// CreateCustomerInfo inserts the profile row created at signup,
// linking the customer to their freshly created cart. Addresses and
// legal name start empty.
func (r *CustomerRepository) CreateCustomerInfo(ctx context.Context, userID, cartID int64) error {
	query := `INSERT INTO customer_info (user_id, cart_id, address, delivery_address, legal_name) VALUES ($1, $2, '', '', '')`
	_, err := r.DB.Exec(ctx, query, userID, cartID)
	return err
}

// GetByUserID returns nil, nil when no profile exists; the checkout
// workflow falls back to its defaults in that case.
func (r *CustomerRepository) GetByUserID(ctx context.Context, userID int64) (*model.CustomerInfo, error) {
	var ci model.CustomerInfo
	query := `SELECT user_id, cart_id, address, delivery_address, legal_name FROM customer_info WHERE user_id=$1`
	if err := r.DB.QueryRow(ctx, query, userID).Scan(&ci.UserID, &ci.CartID, &ci.Address, &ci.DeliveryAddress, &ci.LegalName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &ci, nil
}

func (r *CustomerRepository) GetCartIDForUser(ctx context.Context, userID int64) (int64, error) {
	var cartID int64
	query := `SELECT cart_id FROM customer_info WHERE user_id=$1`
	if err := r.DB.QueryRow(ctx, query, userID).Scan(&cartID); err != nil {
		return 0, errors.New("cart not found")
	}
	return cartID, nil
}

func (r *CustomerRepository) UpdateDeliveryAddress(ctx context.Context, userID int64, address string) error {
	query := `UPDATE customer_info SET delivery_address=$1 WHERE user_id=$2`
	tag, err := r.DB.Exec(ctx, query, address, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("customer profile not found")
	}
	return nil
}

func (r *CustomerRepository) UpdateLegalName(ctx context.Context, userID int64, legalName string) error {
	query := `UPDATE customer_info SET legal_name=$1 WHERE user_id=$2`
	tag, err := r.DB.Exec(ctx, query, legalName, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("customer profile not found")
	}
	return nil
}
