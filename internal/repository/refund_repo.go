package repository

import (
	"context"
	"errors"

	"CoffeeStoreAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RefundRepository struct {
	DB *pgxpool.Pool
}

func NewRefundRepository(db *pgxpool.Pool) *RefundRepository {
	return &RefundRepository{DB: db}
}

// Exists reports whether a refund row already covers the
// (product, order) pair, whatever its status.
func (r *RefundRepository) Exists(ctx context.Context, productID, orderID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM refunds WHERE product_id=$1 AND order_id=$2)`
	if err := r.DB.QueryRow(ctx, query, productID, orderID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *RefundRepository) Create(ctx context.Context, productID int64, qty int, orderID int64, amount float64) (int64, error) {
	var id int64
	query := `
		INSERT INTO refunds (product_id, quantity, order_id, status, amount)
		VALUES ($1, $2, $3, 'pending', $4)
		RETURNING refund_id
	`
	if err := r.DB.QueryRow(ctx, query, productID, qty, orderID, amount).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// RefundDetail carries what the decision path needs in one read: the
// refund row plus the order owner and the product name for the email.
type RefundDetail struct {
	model.Refund
	UserID      int64  `json:"user_id"`
	ProductName string `json:"product_name"`
}

func (r *RefundRepository) GetDetail(ctx context.Context, refundID int64) (*RefundDetail, error) {
	var d RefundDetail
	var status string
	query := `
		SELECT r.refund_id, r.order_id, r.product_id, r.quantity, r.status, r.amount,
		       o.user_id, p.name
		FROM refunds r
		JOIN orders o ON o.order_id = r.order_id
		JOIN products p ON p.id = r.product_id
		WHERE r.refund_id=$1
	`
	err := r.DB.QueryRow(ctx, query, refundID).Scan(
		&d.RefundID, &d.OrderID, &d.ProductID, &d.Quantity, &status, &d.Amount,
		&d.UserID, &d.ProductName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.New("refund request not found")
		}
		return nil, err
	}
	d.Status = model.RefundStatus(status)
	return &d, nil
}

func (r *RefundRepository) ListByUser(ctx context.Context, userID int64) ([]model.Refund, error) {
	query := `
		SELECT r.refund_id, r.order_id, r.product_id, r.quantity, r.status, r.amount
		FROM refunds r
		JOIN orders o ON o.order_id = r.order_id
		WHERE o.user_id=$1
		ORDER BY r.refund_id
	`
	return r.list(ctx, query, userID)
}

// ListAll returns every refund request for the manager queue, the
// undecided ones first.
func (r *RefundRepository) ListAll(ctx context.Context) ([]model.Refund, error) {
	query := `
		SELECT refund_id, order_id, product_id, quantity, status, amount
		FROM refunds ORDER BY (status='pending') DESC, refund_id
	`
	return r.list(ctx, query)
}

func (r *RefundRepository) list(ctx context.Context, query string, args ...any) ([]model.Refund, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Refund
	for rows.Next() {
		var f model.Refund
		var status string
		if err := rows.Scan(&f.RefundID, &f.OrderID, &f.ProductID, &f.Quantity, &status, &f.Amount); err != nil {
			return nil, err
		}
		f.Status = model.RefundStatus(status)
		out = append(out, f)
	}
	return out, rows.Err()
}
