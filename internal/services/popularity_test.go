package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPopularityScore(t *testing.T) {
	tests := []struct {
		name       string
		avgRating  float64
		saleCount  int64
		totalSales int64
		want       float64
	}{
		{"no ratings, no sales", 0, 0, 0, 0},
		{"perfect product owns the market", 5, 100, 100, 100},
		{"rating only", 4, 0, 0, 24},
		{"sales only, half the market", 0, 50, 100, 35},
		{"zero total sales does not divide by zero", 4, 0, 0, 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PopularityScore(tt.avgRating, tt.saleCount, tt.totalSales), 1e-9)
		})
	}
}

func TestPopularityScoreBounds(t *testing.T) {
	for _, avg := range []float64{0, 1, 2.5, 4.9, 5} {
		for _, sales := range []int64{0, 1, 7, 100} {
			score := PopularityScore(avg, sales, 100)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 100.0)
		}
	}
}
