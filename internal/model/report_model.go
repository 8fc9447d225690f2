package model

// RevenueRow is one day of the sales-manager revenue report.
// Cancelled orders and approved refunds subtract from revenue and
// estimated cost; cost is estimated at 50% of current base price.
type RevenueRow struct {
	Date          string  `json:"date"` // YYYY-MM-DD
	Revenue       float64 `json:"revenue"`
	EstimatedCost float64 `json:"estimated_cost"`
	Profit        float64 `json:"profit"`
}
