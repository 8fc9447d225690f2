package services

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"time"

	"CoffeeStoreAPI/internal/model"
	"CoffeeStoreAPI/internal/repository"

	"github.com/tealeg/xlsx"
)

// costFactor estimates cost of goods at half the current base price.
const costFactor = 0.5

type ReportService struct {
	Repo *repository.ReportRepository
}

func NewReportService(r *repository.ReportRepository) *ReportService {
	return &ReportService{Repo: r}
}

// Revenue builds the per-day revenue/cost/profit summary for the
// range. Cancelled orders subtract their full amounts; approved
// refunds subtract their amount and cost share from the day the order
// was placed.
func (s *ReportService) Revenue(ctx context.Context, start, end time.Time) ([]model.RevenueRow, error) {
	if end.Before(start) {
		return nil, errors.New("end date before start date")
	}
	orders, err := s.Repo.OrdersInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	refunds, err := s.Repo.ApprovedRefundsInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return summarize(orders, refunds), nil
}

type daily struct {
	revenue float64
	cost    float64
}

func summarize(orders []repository.OrderCostRow, refunds []repository.RefundCostRow) []model.RevenueRow {
	days := map[string]*daily{}
	bucket := func(t time.Time) *daily {
		key := t.Format("2006-01-02")
		if days[key] == nil {
			days[key] = &daily{}
		}
		return days[key]
	}

	for _, o := range orders {
		d := bucket(o.Date)
		revenue := o.TotalPrice
		cost := o.BaseCost * costFactor
		if o.Status == model.StatusCancelled {
			revenue, cost = -revenue, -cost
		}
		d.revenue += revenue
		d.cost += cost
	}
	for _, r := range refunds {
		d := bucket(r.OrderDate)
		d.revenue -= r.Amount
		d.cost -= r.BasePrice * float64(r.Quantity) * costFactor
	}

	rows := make([]model.RevenueRow, 0, len(days))
	for date, d := range days {
		rows = append(rows, model.RevenueRow{
			Date:          date,
			Revenue:       d.revenue,
			EstimatedCost: d.cost,
			Profit:        d.revenue - d.cost,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })
	return rows
}

// RevenueXLSX renders the same summary as a spreadsheet for download.
func (s *ReportService) RevenueXLSX(ctx context.Context, start, end time.Time) ([]byte, error) {
	rows, err := s.Revenue(ctx, start, end)
	if err != nil {
		return nil, err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Revenue")
	if err != nil {
		return nil, err
	}

	header := sheet.AddRow()
	for _, h := range []string{"Date", "Revenue", "EstimatedCost", "Profit"} {
		header.AddCell().SetValue(h)
	}
	for _, r := range rows {
		row := sheet.AddRow()
		row.AddCell().SetValue(r.Date)
		row.AddCell().SetValue(r.Revenue)
		row.AddCell().SetValue(r.EstimatedCost)
		row.AddCell().SetValue(r.Profit)
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
