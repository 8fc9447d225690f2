package repository

import (
	"context"
	"time"

	"CoffeeStoreAPI/internal/model"

	"github.com/jackc/pgx/v5"
)

// WorkflowTx is the transactional surface of the order and refund
// workflows: conditional stock decrement, sale-count and popularity
// updates, order insertion and the compensating stock restores. The
// services hold this interface so tests can swap in an in-memory
// implementation.
type WorkflowTx interface {
	// DecrementStock subtracts qty only while stock >= qty and reports
	// whether the row was hit. This is the single oversell guard.
	DecrementStock(ctx context.Context, productID int64, qty int) (bool, error)
	IncrementSaleCount(ctx context.Context, productID int64, qty int) error
	AverageRating(ctx context.Context, productID int64) (float64, error)
	SaleTotals(ctx context.Context, productID int64) (saleCount, totalSales int64, err error)
	SetPopularity(ctx context.Context, productID int64, score float64) error
	InsertOrder(ctx context.Context, o *model.Order) (int64, error)
	SetInvoicePDF(ctx context.Context, orderID int64, pdfBase64 string) error
	RestoreStock(ctx context.Context, productID int64, qty int) error
	SetOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	// SetRefundStatusIfPending flips a pending refund to its decision
	// and reports whether the row was still pending.
	SetRefundStatusIfPending(ctx context.Context, refundID int64, status model.RefundStatus) (bool, error)

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type pgxWorkflowTx struct {
	tx pgx.Tx
}

func (t *pgxWorkflowTx) DecrementStock(ctx context.Context, productID int64, qty int) (bool, error) {
	tag, err := t.tx.Exec(ctx, `UPDATE products SET stock = stock - $1 WHERE id=$2 AND stock >= $1`, qty, productID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (t *pgxWorkflowTx) IncrementSaleCount(ctx context.Context, productID int64, qty int) error {
	_, err := t.tx.Exec(ctx, `UPDATE products SET sale_count = sale_count + $1 WHERE id=$2`, qty, productID)
	return err
}

func (t *pgxWorkflowTx) AverageRating(ctx context.Context, productID int64) (float64, error) {
	var avg float64
	err := t.tx.QueryRow(ctx, `SELECT COALESCE(AVG(rate), 0) FROM rate WHERE product_id=$1`, productID).Scan(&avg)
	return avg, err
}

func (t *pgxWorkflowTx) SaleTotals(ctx context.Context, productID int64) (int64, int64, error) {
	var saleCount, totalSales int64
	query := `
		SELECT COALESCE((SELECT sale_count FROM products WHERE id=$1), 0),
		       COALESCE((SELECT SUM(sale_count) FROM products), 0)
	`
	if err := t.tx.QueryRow(ctx, query, productID).Scan(&saleCount, &totalSales); err != nil {
		return 0, 0, err
	}
	return saleCount, totalSales, nil
}

func (t *pgxWorkflowTx) SetPopularity(ctx context.Context, productID int64, score float64) error {
	_, err := t.tx.Exec(ctx, `UPDATE products SET popularity=$1 WHERE id=$2`, score, productID)
	return err
}

func (t *pgxWorkflowTx) InsertOrder(ctx context.Context, o *model.Order) (int64, error) {
	var orderID int64
	query := `
		INSERT INTO orders (user_id, order_status, total_price, address, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING order_id
	`
	date := o.Date
	if date.IsZero() {
		date = time.Now()
	}
	if err := t.tx.QueryRow(ctx, query, o.UserID, string(o.Status), o.TotalPrice, o.Address, date).Scan(&orderID); err != nil {
		return 0, err
	}

	for i := range o.Items {
		it := &o.Items[i]
		err := t.tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, name, image, quantity, unit_price, total_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING order_item_id
		`, orderID, it.ProductID, it.Name, it.Image, it.Quantity, it.UnitPrice, it.TotalPrice).Scan(&it.OrderItemID)
		if err != nil {
			return 0, err
		}
		it.OrderID = orderID
	}
	return orderID, nil
}

func (t *pgxWorkflowTx) SetInvoicePDF(ctx context.Context, orderID int64, pdfBase64 string) error {
	_, err := t.tx.Exec(ctx, `UPDATE orders SET invoice_pdf=$1 WHERE order_id=$2`, pdfBase64, orderID)
	return err
}

func (t *pgxWorkflowTx) RestoreStock(ctx context.Context, productID int64, qty int) error {
	_, err := t.tx.Exec(ctx, `UPDATE products SET stock = stock + $1 WHERE id=$2`, qty, productID)
	return err
}

func (t *pgxWorkflowTx) SetOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	_, err := t.tx.Exec(ctx, `UPDATE orders SET order_status=$1 WHERE order_id=$2`, string(status), orderID)
	return err
}

func (t *pgxWorkflowTx) SetRefundStatusIfPending(ctx context.Context, refundID int64, status model.RefundStatus) (bool, error) {
	tag, err := t.tx.Exec(ctx, `UPDATE refunds SET status=$1 WHERE refund_id=$2 AND status='pending'`, string(status), refundID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (t *pgxWorkflowTx) Commit(ctx context.Context) error   { return t.tx.Commit(ctx) }
func (t *pgxWorkflowTx) Rollback(ctx context.Context) error { return t.tx.Rollback(ctx) }
