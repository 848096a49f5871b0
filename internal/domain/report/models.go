package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Granularity controls how revenue buckets are keyed
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// IsValid checks if the granularity is supported
func (g Granularity) IsValid() bool {
	switch g {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return true
	}
	return false
}

// String returns the string representation of Granularity
func (g Granularity) String() string {
	return string(g)
}

// RevenueBucket is a read model for revenue aggregated over one period.
// Week buckets start on Monday, month buckets on the first of the month.
type RevenueBucket struct {
	PeriodStart  time.Time       `json:"period_start"`
	PaymentCount int64           `json:"payment_count"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// ServicePerformance is a read model for how often a catalog service was
// billed and how much revenue it produced. Services never billed appear
// with zero counts.
type ServicePerformance struct {
	ServiceID      uuid.UUID       `json:"service_id"`
	ServiceName    string          `json:"service_name"`
	TimesBilled    int64           `json:"times_billed"`
	QuantityBilled int64           `json:"quantity_billed"`
	Revenue        decimal.Decimal `json:"revenue"`
}

// InvoiceSummary is a read model row for invoice listings inside reports
type InvoiceSummary struct {
	InvoiceID    uuid.UUID       `json:"invoice_id"`
	Number       string          `json:"number"`
	CustomerName string          `json:"customer_name"`
	InvoiceDate  time.Time       `json:"invoice_date"`
	TaxAmount    decimal.Decimal `json:"tax_amount"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
	Status       string          `json:"status"`
}

// PaymentSummary is a read model row joining a payment with its invoice
// grand total and customer name
type PaymentSummary struct {
	PaymentID     uuid.UUID       `json:"payment_id"`
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	CustomerName  string          `json:"customer_name"`
	Amount        decimal.Decimal `json:"amount"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	Method        string          `json:"method"`
	PaymentDate   time.Time       `json:"payment_date"`
}

// BusinessReport composes the figures for a reporting period.
// It feeds the printable report document.
type BusinessReport struct {
	PeriodStart       time.Time            `json:"period_start"`
	PeriodEnd         time.Time            `json:"period_end"`
	InvoiceCount      int64                `json:"invoice_count"`
	PaidInvoiceCount  int64                `json:"paid_invoice_count"`
	TotalBilled       decimal.Decimal      `json:"total_billed"`
	TotalTax          decimal.Decimal      `json:"total_tax"`
	TotalCollected    decimal.Decimal      `json:"total_collected"`
	TotalOutstanding  decimal.Decimal      `json:"total_outstanding"`
	Invoices          []InvoiceSummary     `json:"invoices"`
	Payments          []PaymentSummary     `json:"payments"`
	ServiceBreakdown  []ServicePerformance `json:"service_breakdown"`
}

// DashboardSummary provides at-a-glance business counters
type DashboardSummary struct {
	TotalCustomers     int64            `json:"total_customers"`
	TotalServices      int64            `json:"total_services"`
	TotalInvoices      int64            `json:"total_invoices"`
	UnpaidInvoices     int64            `json:"unpaid_invoices"`
	TotalRevenue       decimal.Decimal  `json:"total_revenue"`
	OutstandingAmount  decimal.Decimal  `json:"outstanding_amount"`
	RecentInvoices     []InvoiceSummary `json:"recent_invoices"`
	RecentPayments     []PaymentSummary `json:"recent_payments"`
}
