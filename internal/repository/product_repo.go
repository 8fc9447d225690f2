package repository

import (
	"context"
	"errors"

	"CoffeeStoreAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	DB *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{DB: db}
}

// ErrProductNotFound distinguishes a missing catalog row from an
// unreachable store. Checkout skips stale cart lines on this sentinel
// only; any other lookup error aborts the workflow.
var ErrProductNotFound = errors.New("product not found")

const productColumns = `id, category_id, name, description, picture, price, discount, stock, sale_count, popularity, visible, status`

func scanProduct(row interface{ Scan(...any) error }) (*model.Product, error) {
	var p model.Product
	if err := row.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Picture, &p.Price, &p.Discount, &p.Stock, &p.SaleCount, &p.Popularity, &p.Visible, &p.Active); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	p, err := scanProduct(r.DB.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListVisible returns active, visible products. sortByPopularity
// orders best sellers first for the storefront's popularity sort.
func (r *ProductRepository) ListVisible(ctx context.Context, sortByPopularity bool) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE status AND visible ORDER BY id`
	if sortByPopularity {
		query = `SELECT ` + productColumns + ` FROM products WHERE status AND visible ORDER BY popularity DESC, id`
	}
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *p)
	}
	return list, rows.Err()
}

// TopByPopularity returns the best-seller badge set (top n scores).
func (r *ProductRepository) TopByPopularity(ctx context.Context, n int) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE status AND visible ORDER BY popularity DESC, id LIMIT $1`
	rows, err := r.DB.Query(ctx, query, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *p)
	}
	return list, rows.Err()
}

func (r *ProductRepository) SetStock(ctx context.Context, id int64, stock int) error {
	query := `UPDATE products SET stock=$1 WHERE id=$2`
	tag, err := r.DB.Exec(ctx, query, stock, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("product not found")
	}
	return nil
}

// SetPrice updates the price and flips status with it: a zero price
// deactivates the product, a nonzero price on an inactive product
// reactivates it.
func (r *ProductRepository) SetPrice(ctx context.Context, id int64, price float64) error {
	query := `UPDATE products SET price=$1, status=($1 > 0) WHERE id=$2`
	tag, err := r.DB.Exec(ctx, query, price, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("product not found")
	}
	return nil
}

func (r *ProductRepository) SetDiscount(ctx context.Context, id int64, discount float64) error {
	query := `UPDATE products SET discount=$1 WHERE id=$2`
	tag, err := r.DB.Exec(ctx, query, discount, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("product not found")
	}
	return nil
}

func (r *ProductRepository) RestoreStock(ctx context.Context, id int64, qty int) error {
	query := `UPDATE products SET stock = stock + $1 WHERE id=$2`
	_, err := r.DB.Exec(ctx, query, qty, id)
	return err
}
