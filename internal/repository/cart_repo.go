package repository

import (
	"context"
	"errors"

	"CoffeeStoreAPI/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CartRepository struct {
	DB *pgxpool.Pool
}

func NewCartRepository(db *pgxpool.Pool) *CartRepository {
	return &CartRepository{DB: db}
}

// CreateCart inserts an empty cart row and returns its id. Called once
// at signup; the cart lives for the customer's lifetime and is emptied,
// never deleted.
func (r *CartRepository) CreateCart(ctx context.Context) (int64, error) {
	var id int64
	if err := r.DB.QueryRow(ctx, `INSERT INTO carts DEFAULT VALUES RETURNING cart_id`).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *CartRepository) Exists(ctx context.Context, cartID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM carts WHERE cart_id=$1)`
	if err := r.DB.QueryRow(ctx, query, cartID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// GetLines returns the raw product/quantity pairs for checkout.
func (r *CartRepository) GetLines(ctx context.Context, cartID int64) ([]model.CartLine, error) {
	query := `SELECT cart_id, product_id, quantity FROM cart_items WHERE cart_id=$1 ORDER BY product_id`
	rows, err := r.DB.Query(ctx, query, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []model.CartLine
	for rows.Next() {
		var l model.CartLine
		if err := rows.Scan(&l.CartID, &l.ProductID, &l.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// GetItems returns cart lines joined with product details, with the
// discounted unit price applied, for GET /cart.
func (r *CartRepository) GetItems(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	query := `
		SELECT ci.product_id, p.name, p.picture, ci.quantity,
		       ROUND((p.price * (1 - p.discount/100))::numeric, 2)
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id=$1
		ORDER BY ci.product_id
	`
	rows, err := r.DB.Query(ctx, query, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.CartItem
	for rows.Next() {
		var it model.CartItem
		if err := rows.Scan(&it.ProductID, &it.Name, &it.Picture, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// AddItem inserts a line or merges the quantity into an existing one.
func (r *CartRepository) AddItem(ctx context.Context, cartID, productID int64, qty int) error {
	query := `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`
	_, err := r.DB.Exec(ctx, query, cartID, productID, qty)
	return err
}

// RemoveItem decrements a line's quantity and deletes the line once it
// reaches zero or below.
func (r *CartRepository) RemoveItem(ctx context.Context, cartID, productID int64, qty int) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE cart_items SET quantity = quantity - $3
		WHERE cart_id=$1 AND product_id=$2
	`, cartID, productID, qty)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("cart item not found")
	}
	_, err = r.DB.Exec(ctx, `DELETE FROM cart_items WHERE cart_id=$1 AND product_id=$2 AND quantity <= 0`, cartID, productID)
	return err
}

// Clear empties the cart but keeps the cart row.
func (r *CartRepository) Clear(ctx context.Context, cartID int64) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM cart_items WHERE cart_id=$1`, cartID)
	return err
}
