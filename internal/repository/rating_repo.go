package repository

import (
	"context"
	"errors"

	"CoffeeStoreAPI/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type RatingRepository struct {
	DB *pgxpool.Pool
}

func NewRatingRepository(db *pgxpool.Pool) *RatingRepository {
	return &RatingRepository{DB: db}
}

// Upsert stores a customer's rating, replacing any previous one for
// the same product.
func (r *RatingRepository) Upsert(ctx context.Context, userID, productID int64, rate int) error {
	query := `
		INSERT INTO rate (user_id, product_id, rate)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET rate = EXCLUDED.rate
	`
	_, err := r.DB.Exec(ctx, query, userID, productID, rate)
	return err
}

func (r *RatingRepository) Delete(ctx context.Context, userID, productID int64) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM rate WHERE user_id=$1 AND product_id=$2`, userID, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("rating not found")
	}
	return nil
}

func (r *RatingRepository) AverageByProduct(ctx context.Context, productID int64) (float64, error) {
	var avg float64
	err := r.DB.QueryRow(ctx, `SELECT COALESCE(AVG(rate), 0) FROM rate WHERE product_id=$1`, productID).Scan(&avg)
	return avg, err
}

func (r *RatingRepository) ListByUser(ctx context.Context, userID int64) ([]model.Rating, error) {
	rows, err := r.DB.Query(ctx, `SELECT user_id, product_id, rate FROM rate WHERE user_id=$1 ORDER BY product_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Rating
	for rows.Next() {
		var rt model.Rating
		if err := rows.Scan(&rt.UserID, &rt.ProductID, &rt.Rate); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}
