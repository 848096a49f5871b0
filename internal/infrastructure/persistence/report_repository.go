package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/smartbill/backend/internal/domain/billing"
	"github.com/smartbill/backend/internal/domain/report"
)

// GormReportRepository implements report.Repository using GORM.
// All methods aggregate in SQL and never mutate state.
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// RevenueByPeriod buckets collected payments by payment date.
// Postgres DATE_TRUNC('week', ...) truncates to the ISO 8601 week
// start, so weekly buckets begin on Monday.
func (r *GormReportRepository) RevenueByPeriod(ctx context.Context, granularity report.Granularity, start, end time.Time) ([]report.RevenueBucket, error) {
	type bucketResult struct {
		PeriodStart  time.Time
		PaymentCount int64
		Revenue      decimal.Decimal
	}

	var results []bucketResult

	// Granularity is a closed enum, validated before it reaches the
	// repository, so interpolating it here cannot inject SQL.
	trunc := fmt.Sprintf("DATE_TRUNC('%s', p.payment_date)", granularity.String())

	err := r.db.WithContext(ctx).Table("payments p").
		Select(trunc + ` as period_start,
			COUNT(p.id) as payment_count,
			COALESCE(SUM(p.amount), 0) as revenue
		`).
		Where("p.payment_date BETWEEN ? AND ?", start, end).
		Group(trunc).
		Order("period_start ASC").
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	buckets := make([]report.RevenueBucket, len(results))
	for i, row := range results {
		buckets[i] = report.RevenueBucket{
			PeriodStart:  row.PeriodStart,
			PaymentCount: row.PaymentCount,
			Revenue:      row.Revenue,
		}
	}
	return buckets, nil
}

// ServicePerformance reports billing counts and revenue per catalog service
// for invoices dated in the range. The LEFT JOIN keeps services that were
// never billed in the range, with zero counts.
func (r *GormReportRepository) ServicePerformance(ctx context.Context, start, end time.Time) ([]report.ServicePerformance, error) {
	type perfResult struct {
		ServiceID      uuid.UUID
		ServiceName    string
		TimesBilled    int64
		QuantityBilled int64
		Revenue        decimal.Decimal
	}

	var results []perfResult

	// The date restriction lives inside the joined line-item set, so a
	// service billed only outside the range still comes back with zeros.
	inRangeItems := r.db.Table("invoice_line_items items").
		Select("items.id, items.service_id, items.quantity, items.amount").
		Joins("JOIN invoices i ON i.id = items.invoice_id").
		Where("i.invoice_date BETWEEN ? AND ?", start, end)

	err := r.db.WithContext(ctx).Table("services s").
		Select(`
			s.id as service_id,
			s.name as service_name,
			COUNT(li.id) as times_billed,
			COALESCE(SUM(li.quantity), 0) as quantity_billed,
			COALESCE(SUM(li.amount), 0) as revenue
		`).
		Joins("LEFT JOIN (?) li ON li.service_id = s.id", inRangeItems).
		Group("s.id, s.name").
		Order("revenue DESC, s.name ASC").
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	performances := make([]report.ServicePerformance, len(results))
	for i, row := range results {
		performances[i] = report.ServicePerformance{
			ServiceID:      row.ServiceID,
			ServiceName:    row.ServiceName,
			TimesBilled:    row.TimesBilled,
			QuantityBilled: row.QuantityBilled,
			Revenue:        row.Revenue,
		}
	}
	return performances, nil
}

// InvoicesInRange lists invoice summary rows dated in the range
func (r *GormReportRepository) InvoicesInRange(ctx context.Context, start, end time.Time) ([]report.InvoiceSummary, error) {
	type invoiceResult struct {
		InvoiceID    uuid.UUID
		Number       string
		CustomerName string
		InvoiceDate  time.Time
		TaxAmount    decimal.Decimal
		GrandTotal   decimal.Decimal
		Status       string
	}

	var results []invoiceResult

	err := r.db.WithContext(ctx).Table("invoices i").
		Select(`
			i.id as invoice_id,
			i.number,
			i.customer_name,
			i.invoice_date,
			i.tax_amount,
			i.grand_total,
			i.status
		`).
		Where("i.invoice_date BETWEEN ? AND ?", start, end).
		Order("i.invoice_date ASC, i.number ASC").
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	summaries := make([]report.InvoiceSummary, len(results))
	for i, row := range results {
		summaries[i] = report.InvoiceSummary{
			InvoiceID:    row.InvoiceID,
			Number:       row.Number,
			CustomerName: row.CustomerName,
			InvoiceDate:  row.InvoiceDate,
			TaxAmount:    row.TaxAmount,
			GrandTotal:   row.GrandTotal,
			Status:       row.Status,
		}
	}
	return summaries, nil
}

// PaymentsInRange lists payment summary rows dated in the range,
// newest payment first
func (r *GormReportRepository) PaymentsInRange(ctx context.Context, start, end time.Time) ([]report.PaymentSummary, error) {
	results, err := r.queryPayments(
		r.db.WithContext(ctx).
			Where("p.payment_date BETWEEN ? AND ?", start, end),
	)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// paymentResult is the scan target for payment summary rows
type paymentResult struct {
	PaymentID     uuid.UUID
	InvoiceID     uuid.UUID
	InvoiceNumber string
	CustomerName  string
	Amount        decimal.Decimal
	GrandTotal    decimal.Decimal
	Method        string
	PaymentDate   time.Time
}

// queryPayments runs the payment summary projection over a prepared query.
// The caller supplies range or limit conditions.
func (r *GormReportRepository) queryPayments(query *gorm.DB) ([]report.PaymentSummary, error) {
	var results []paymentResult

	err := query.Table("payments p").
		Select(`
			p.id as payment_id,
			p.invoice_id,
			i.number as invoice_number,
			i.customer_name,
			p.amount,
			i.grand_total,
			p.method,
			p.payment_date
		`).
		Joins("JOIN invoices i ON i.id = p.invoice_id").
		Order("p.payment_date DESC").
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	summaries := make([]report.PaymentSummary, len(results))
	for i, row := range results {
		summaries[i] = report.PaymentSummary{
			PaymentID:     row.PaymentID,
			InvoiceID:     row.InvoiceID,
			InvoiceNumber: row.InvoiceNumber,
			CustomerName:  row.CustomerName,
			Amount:        row.Amount,
			GrandTotal:    row.GrandTotal,
			Method:        row.Method,
			PaymentDate:   row.PaymentDate,
		}
	}
	return summaries, nil
}

// DashboardSummary gathers the at-a-glance counters
func (r *GormReportRepository) DashboardSummary(ctx context.Context, recentLimit int) (*report.DashboardSummary, error) {
	db := r.db.WithContext(ctx)
	summary := &report.DashboardSummary{
		TotalRevenue:      decimal.Zero,
		OutstandingAmount: decimal.Zero,
	}

	if err := db.Table("customers").Count(&summary.TotalCustomers).Error; err != nil {
		return nil, err
	}
	if err := db.Table("services").Count(&summary.TotalServices).Error; err != nil {
		return nil, err
	}
	if err := db.Table("invoices").Count(&summary.TotalInvoices).Error; err != nil {
		return nil, err
	}
	if err := db.Table("invoices").
		Where("status = ?", billing.InvoiceStatusUnpaid).
		Count(&summary.UnpaidInvoices).Error; err != nil {
		return nil, err
	}

	var revenue struct{ Total decimal.Decimal }
	if err := db.Table("payments").
		Select("COALESCE(SUM(amount), 0) as total").
		Scan(&revenue).Error; err != nil {
		return nil, err
	}
	summary.TotalRevenue = revenue.Total

	var outstanding struct{ Total decimal.Decimal }
	if err := db.Table("invoices").
		Select("COALESCE(SUM(grand_total), 0) as total").
		Where("status = ?", billing.InvoiceStatusUnpaid).
		Scan(&outstanding).Error; err != nil {
		return nil, err
	}
	summary.OutstandingAmount = outstanding.Total

	recentInvoices, err := r.recentInvoices(ctx, recentLimit)
	if err != nil {
		return nil, err
	}
	summary.RecentInvoices = recentInvoices

	recentPayments, err := r.queryPayments(db.Limit(recentLimit))
	if err != nil {
		return nil, err
	}
	summary.RecentPayments = recentPayments

	return summary, nil
}

// recentInvoices lists the most recently created invoices
func (r *GormReportRepository) recentInvoices(ctx context.Context, limit int) ([]report.InvoiceSummary, error) {
	type invoiceResult struct {
		InvoiceID    uuid.UUID
		Number       string
		CustomerName string
		InvoiceDate  time.Time
		TaxAmount    decimal.Decimal
		GrandTotal   decimal.Decimal
		Status       string
	}

	var results []invoiceResult

	err := r.db.WithContext(ctx).Table("invoices i").
		Select(`
			i.id as invoice_id,
			i.number,
			i.customer_name,
			i.invoice_date,
			i.tax_amount,
			i.grand_total,
			i.status
		`).
		Order("i.created_at DESC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	summaries := make([]report.InvoiceSummary, len(results))
	for i, row := range results {
		summaries[i] = report.InvoiceSummary{
			InvoiceID:    row.InvoiceID,
			Number:       row.Number,
			CustomerName: row.CustomerName,
			InvoiceDate:  row.InvoiceDate,
			TaxAmount:    row.TaxAmount,
			GrandTotal:   row.GrandTotal,
			Status:       row.Status,
		}
	}
	return summaries, nil
}

// Ensure GormReportRepository implements the report query interface
var _ report.Repository = (*GormReportRepository)(nil)
