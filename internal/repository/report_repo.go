package repository

import (
	"context"
	"time"

	"CoffeeStoreAPI/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ReportRepository struct {
	DB *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{DB: db}
}

// OrderCostRow is one order joined with the current base-price cost of
// its lines; the revenue report estimates cost at 50% of base price.
type OrderCostRow struct {
	OrderID    int64
	Date       time.Time
	Status     model.OrderStatus
	TotalPrice float64
	BaseCost   float64 // sum(price * quantity) over lines, current catalog price
}

// OrdersInRange returns orders dated within [start, end] inclusive of
// the whole end day.
func (r *ReportRepository) OrdersInRange(ctx context.Context, start, end time.Time) ([]OrderCostRow, error) {
	query := `
		SELECT o.order_id, o.date, o.order_status, o.total_price,
		       COALESCE(SUM(p.price * oi.quantity), 0)
		FROM orders o
		LEFT JOIN order_items oi ON oi.order_id = o.order_id
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE o.date >= $1 AND o.date < $2 + INTERVAL '1 day'
		GROUP BY o.order_id, o.date, o.order_status, o.total_price
		ORDER BY o.date
	`
	rows, err := r.DB.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OrderCostRow
	for rows.Next() {
		var row OrderCostRow
		var status string
		if err := rows.Scan(&row.OrderID, &row.Date, &status, &row.TotalPrice, &row.BaseCost); err != nil {
			return nil, err
		}
		row.Status = model.OrderStatus(status)
		out = append(out, row)
	}
	return out, rows.Err()
}

// RefundCostRow is an approved refund with the data needed to back it
// out of the summary of its order's day.
type RefundCostRow struct {
	OrderDate time.Time
	Amount    float64
	Quantity  int
	BasePrice float64 // current catalog price of the refunded product
}

func (r *ReportRepository) ApprovedRefundsInRange(ctx context.Context, start, end time.Time) ([]RefundCostRow, error) {
	query := `
		SELECT o.date, r.amount, r.quantity, p.price
		FROM refunds r
		JOIN orders o ON o.order_id = r.order_id
		JOIN products p ON p.id = r.product_id
		WHERE r.status = 'approved' AND o.date >= $1 AND o.date < $2 + INTERVAL '1 day'
		ORDER BY o.date
	`
	rows, err := r.DB.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RefundCostRow
	for rows.Next() {
		var row RefundCostRow
		if err := rows.Scan(&row.OrderDate, &row.Amount, &row.Quantity, &row.BasePrice); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
