package repository

import (
	"context"
	"errors"

	"CoffeeStoreAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	DB *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{DB: db}
}

// GetOrderByID returns the order row with its item snapshot.
func (r *OrderRepository) GetOrderByID(ctx context.Context, orderID int64) (*model.Order, error) {
	var o model.Order
	var status string
	query := `SELECT order_id, user_id, order_status, total_price, address, date FROM orders WHERE order_id=$1`
	if err := r.DB.QueryRow(ctx, query, orderID).Scan(&o.OrderID, &o.UserID, &status, &o.TotalPrice, &o.Address, &o.Date); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.New("order not found")
		}
		return nil, err
	}
	o.Status = model.OrderStatus(status)

	items, err := r.getItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *OrderRepository) getItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	query := `
		SELECT order_item_id, order_id, product_id, name, COALESCE(image, ''), quantity, unit_price, total_price
		FROM order_items WHERE order_id=$1 ORDER BY order_item_id
	`
	rows, err := r.DB.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.OrderItemID, &it.OrderID, &it.ProductID, &it.Name, &it.Image, &it.Quantity, &it.UnitPrice, &it.TotalPrice); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetOrdersByUser returns a customer's order history, newest first,
// without the invoice blob.
func (r *OrderRepository) GetOrdersByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	query := `SELECT order_id, user_id, order_status, total_price, address, date FROM orders WHERE user_id=$1 ORDER BY date DESC, order_id DESC`
	return r.list(ctx, query, userID)
}

// ListAll returns every order with its items, newest first, for the
// back-office status workflow.
func (r *OrderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	query := `SELECT order_id, user_id, order_status, total_price, address, date FROM orders ORDER BY date DESC, order_id DESC`
	return r.list(ctx, query)
}

func (r *OrderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Order
	for rows.Next() {
		var o model.Order
		var status string
		if err := rows.Scan(&o.OrderID, &o.UserID, &status, &o.TotalPrice, &o.Address, &o.Date); err != nil {
			return nil, err
		}
		o.Status = model.OrderStatus(status)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		items, err := r.getItems(ctx, out[i].OrderID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

// GetInvoicePDF returns the stored base64 invoice and the owning user.
func (r *OrderRepository) GetInvoicePDF(ctx context.Context, orderID int64) (string, int64, error) {
	var pdf string
	var userID int64
	query := `SELECT COALESCE(invoice_pdf, ''), user_id FROM orders WHERE order_id=$1`
	if err := r.DB.QueryRow(ctx, query, orderID).Scan(&pdf, &userID); err != nil {
		return "", 0, errors.New("order not found")
	}
	return pdf, userID, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	tag, err := r.DB.Exec(ctx, `UPDATE orders SET order_status=$1 WHERE order_id=$2`, string(status), orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("order not found")
	}
	return nil
}

// Begin opens a workflow transaction spanning the per-line stock and
// popularity mutations plus the order insert.
func (r *OrderRepository) Begin(ctx context.Context) (WorkflowTx, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &pgxWorkflowTx{tx: tx}, nil
}
