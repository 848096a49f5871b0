package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/smartbill/backend/internal/domain/shared"
)

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// FindByID finds an invoice by ID with its line items loaded
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindAll finds invoices with filtering and pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]*Invoice, error)

	// FindUnpaidByCustomer finds unpaid invoices for a customer,
	// oldest invoice date first
	FindUnpaidByCustomer(ctx context.Context, customerID uuid.UUID) ([]*Invoice, error)

	// FindByCustomer finds invoices for a customer with filtering
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]*Invoice, error)

	// ExistsForCustomerOnDate checks whether the customer already has an
	// invoice dated on the given day
	ExistsForCustomerOnDate(ctx context.Context, customerID uuid.UUID, date time.Time) (bool, error)

	// CountByCustomer counts invoices for a customer
	CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)

	// CountByService counts line items referencing a catalog service,
	// used to block deletion of services that appear on invoices
	CountByService(ctx context.Context, serviceID uuid.UUID) (int64, error)

	// Save creates or updates an invoice together with its line items
	Save(ctx context.Context, invoice *Invoice) error

	// Count counts invoices matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// GenerateNumber generates the next unique invoice number
	GenerateNumber(ctx context.Context) (string, error)
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	// FindByID finds a payment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindByInvoice finds payments for an invoice, newest first
	FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]*Payment, error)

	// FindAll finds payments with filtering, ordered by payment date descending
	FindAll(ctx context.Context, filter shared.Filter) ([]*Payment, error)

	// SaveWithInvoice persists the payment and the updated invoice in a
	// single transaction so the status flip and the payment row commit together
	SaveWithInvoice(ctx context.Context, payment *Payment, invoice *Invoice) error

	// Count counts payments matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
