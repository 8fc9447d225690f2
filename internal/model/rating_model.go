package model

// Rating is one customer's 1-5 score for a product, upserted on
// re-rate. Feeds the popularity recompute.
type Rating struct {
	UserID    int64 `json:"user_id"`
	ProductID int64 `json:"product_id"`
	Rate      int   `json:"rate"`
}
