package service

import (
	"context"
	"time"

	"github.com/bottegasoft/bottega-api/internal/domain/repository"
)

// DashboardService aggregates sales figures for the dashboard
type DashboardService struct {
	saleRepo repository.SaleRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(saleRepo repository.SaleRepository) *DashboardService {
	return &DashboardService{saleRepo: saleRepo}
}

// DashboardStats is the daily and monthly sales summary
type DashboardStats struct {
	Today DashboardPeriod `json:"today"`
	Month DashboardPeriod `json:"month"`
}

// DashboardPeriod aggregates sales over one period
type DashboardPeriod struct {
	SaleCount   int64   `json:"sale_count"`
	TotalAmount float64 `json:"total_amount"`
	TaxAmount   float64 `json:"tax_amount"`
}

// GetStats returns sales totals for today and the current month
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	today, err := s.saleRepo.SummarizeRange(ctx, dayStart, now)
	if err != nil {
		return nil, err
	}

	month, err := s.saleRepo.SummarizeRange(ctx, monthStart, now)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		Today: periodFromSummary(today),
		Month: periodFromSummary(month),
	}, nil
}

func periodFromSummary(summary *repository.SaleSummary) DashboardPeriod {
	return DashboardPeriod{
		SaleCount:   summary.SaleCount,
		TotalAmount: float64(summary.TotalCents) / 100,
		TaxAmount:   float64(summary.TaxCents) / 100,
	}
}
