package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartbill/backend/internal/domain/report"
	"github.com/smartbill/backend/internal/domain/shared"
)

// dashboardRecentLimit caps the recent invoice/payment lists on the dashboard
const dashboardRecentLimit = 5

// ReportService aggregates read-side figures for reports and the dashboard
type ReportService struct {
	reportRepo report.Repository
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo report.Repository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// RevenueByPeriod buckets collected revenue by day, ISO week (Monday) or
// month over payment dates in [start, end], ascending
func (s *ReportService) RevenueByPeriod(ctx context.Context, req RevenueByPeriodRequest) ([]report.RevenueBucket, error) {
	granularity := report.Granularity(req.Granularity)
	if !granularity.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Granularity must be one of day, week, month")
	}
	if err := validateRange(req.Start, req.End); err != nil {
		return nil, err
	}

	return s.reportRepo.RevenueByPeriod(ctx, granularity, req.Start, req.End)
}

// ServicePerformance reports billing counts and revenue per catalog service
// for invoices dated in [start, end], revenue descending, zero-usage included
func (s *ReportService) ServicePerformance(ctx context.Context, req PeriodRequest) ([]report.ServicePerformance, error) {
	if err := validateRange(req.Start, req.End); err != nil {
		return nil, err
	}

	return s.reportRepo.ServicePerformance(ctx, req.Start, req.End)
}

// BusinessReport composes the full reporting view for a period:
// invoice and payment listings, per-service breakdown and overall totals
func (s *ReportService) BusinessReport(ctx context.Context, req PeriodRequest) (*report.BusinessReport, error) {
	if err := validateRange(req.Start, req.End); err != nil {
		return nil, err
	}

	invoices, err := s.reportRepo.InvoicesInRange(ctx, req.Start, req.End)
	if err != nil {
		return nil, err
	}

	payments, err := s.reportRepo.PaymentsInRange(ctx, req.Start, req.End)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.reportRepo.ServicePerformance(ctx, req.Start, req.End)
	if err != nil {
		return nil, err
	}

	result := &report.BusinessReport{
		PeriodStart:      req.Start,
		PeriodEnd:        req.End,
		InvoiceCount:     int64(len(invoices)),
		TotalBilled:      decimal.Zero,
		TotalTax:         decimal.Zero,
		TotalCollected:   decimal.Zero,
		TotalOutstanding: decimal.Zero,
		Invoices:         invoices,
		Payments:         payments,
		ServiceBreakdown: breakdown,
	}

	for _, inv := range invoices {
		result.TotalBilled = result.TotalBilled.Add(inv.GrandTotal)
		result.TotalTax = result.TotalTax.Add(inv.TaxAmount)
		if inv.Status == "PAID" {
			result.PaidInvoiceCount++
		} else {
			result.TotalOutstanding = result.TotalOutstanding.Add(inv.GrandTotal)
		}
	}
	for _, p := range payments {
		result.TotalCollected = result.TotalCollected.Add(p.Amount)
	}

	return result, nil
}

// DashboardSummary gathers the at-a-glance business counters
func (s *ReportService) DashboardSummary(ctx context.Context) (*report.DashboardSummary, error) {
	return s.reportRepo.DashboardSummary(ctx, dashboardRecentLimit)
}

func validateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return shared.NewDomainError("INVALID_INPUT", "Start and end dates are required")
	}
	if end.Before(start) {
		return shared.NewDomainError("INVALID_INPUT", "End date cannot be before start date")
	}
	return nil
}
