package services

// PopularityScore blends the average rating (0-5) with the product's
// share of all sales (scaled to 0-5) into a 0-100 display score:
//
//	((0.3 * avg_rating) + (0.7 * sale_share * 5)) * 20
//
// The divisor is guarded to at least 1 so a catalog with no sales
// yields a zero sale component instead of dividing by zero. Both
// inputs live in [0,5], so the result is bounded to [0,100] by
// construction.
func PopularityScore(avgRating float64, saleCount, totalSales int64) float64 {
	if totalSales < 1 {
		totalSales = 1
	}
	normalizedSaleScore := float64(saleCount) / float64(totalSales) * 5
	return ((0.3 * avgRating) + (0.7 * normalizedSaleScore)) * 20
}
