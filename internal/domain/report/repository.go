package report

import (
	"context"
	"time"
)

// Repository defines the read-side query interface backing reports.
// Implementations aggregate directly in SQL and never mutate state.
type Repository interface {
	// RevenueByPeriod buckets collected payments by payment date,
	// ascending by period start
	RevenueByPeriod(ctx context.Context, granularity Granularity, start, end time.Time) ([]RevenueBucket, error)

	// ServicePerformance reports billing counts and revenue per catalog
	// service for invoices dated in [start, end], revenue descending.
	// Services with no usage in the range are included with zeros.
	ServicePerformance(ctx context.Context, start, end time.Time) ([]ServicePerformance, error)

	// InvoicesInRange lists invoice summary rows dated in [start, end]
	InvoicesInRange(ctx context.Context, start, end time.Time) ([]InvoiceSummary, error)

	// PaymentsInRange lists payment summary rows dated in [start, end],
	// newest payment first
	PaymentsInRange(ctx context.Context, start, end time.Time) ([]PaymentSummary, error)

	// DashboardSummary gathers the at-a-glance counters
	DashboardSummary(ctx context.Context, recentLimit int) (*DashboardSummary, error)
}
