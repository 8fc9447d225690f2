package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type WishlistRepository struct {
	DB *pgxpool.Pool
}

func NewWishlistRepository(db *pgxpool.Pool) *WishlistRepository {
	return &WishlistRepository{DB: db}
}

func (r *WishlistRepository) Add(ctx context.Context, userID, productID int64) error {
	query := `
		INSERT INTO wishlist_items (user_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, product_id) DO NOTHING
	`
	_, err := r.DB.Exec(ctx, query, userID, productID)
	return err
}

func (r *WishlistRepository) Remove(ctx context.Context, userID, productID int64) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM wishlist_items WHERE user_id=$1 AND product_id=$2`, userID, productID)
	return err
}

func (r *WishlistRepository) ListProductIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.DB.Query(ctx, `SELECT product_id FROM wishlist_items WHERE user_id=$1 ORDER BY product_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UsersWithProduct drives the discount notification fan-out: every
// customer holding the product on their wishlist.
func (r *WishlistRepository) UsersWithProduct(ctx context.Context, productID int64) ([]int64, error) {
	rows, err := r.DB.Query(ctx, `SELECT user_id FROM wishlist_items WHERE product_id=$1 ORDER BY user_id`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
