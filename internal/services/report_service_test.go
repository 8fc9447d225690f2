package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CoffeeStoreAPI/internal/model"
	"CoffeeStoreAPI/internal/repository"
)

func day(d int) time.Time {
	return time.Date(2025, 3, d, 10, 0, 0, 0, time.UTC)
}

func TestSummarize(t *testing.T) {
	orders := []repository.OrderCostRow{
		{OrderID: 1, Date: day(1), Status: model.StatusDelivered, TotalPrice: 100, BaseCost: 80},
		{OrderID: 2, Date: day(1), Status: model.StatusProcessing, TotalPrice: 50, BaseCost: 40},
		{OrderID: 3, Date: day(2), Status: model.StatusCancelled, TotalPrice: 30, BaseCost: 20},
	}
	refunds := []repository.RefundCostRow{
		{OrderDate: day(1), Amount: 20, Quantity: 1, BasePrice: 16},
	}

	rows := summarize(orders, refunds)
	require.Len(t, rows, 2)

	// day 1: two orders minus one approved refund
	assert.Equal(t, "2025-03-01", rows[0].Date)
	assert.InDelta(t, 130.0, rows[0].Revenue, 1e-9)       // 100 + 50 - 20
	assert.InDelta(t, 52.0, rows[0].EstimatedCost, 1e-9)  // (80+40)*0.5 - 16*0.5
	assert.InDelta(t, 78.0, rows[0].Profit, 1e-9)

	// day 2: the cancelled order subtracts its full amounts
	assert.Equal(t, "2025-03-02", rows[1].Date)
	assert.InDelta(t, -30.0, rows[1].Revenue, 1e-9)
	assert.InDelta(t, -10.0, rows[1].EstimatedCost, 1e-9)
	assert.InDelta(t, -20.0, rows[1].Profit, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Empty(t, summarize(nil, nil))
}

func TestSummarizeSortsByDate(t *testing.T) {
	orders := []repository.OrderCostRow{
		{Date: day(9), Status: model.StatusDelivered, TotalPrice: 1},
		{Date: day(2), Status: model.StatusDelivered, TotalPrice: 1},
		{Date: day(5), Status: model.StatusDelivered, TotalPrice: 1},
	}
	rows := summarize(orders, nil)
	require.Len(t, rows, 3)
	assert.Equal(t, "2025-03-02", rows[0].Date)
	assert.Equal(t, "2025-03-05", rows[1].Date)
	assert.Equal(t, "2025-03-09", rows[2].Date)
}
