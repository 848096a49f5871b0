package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/smartbill/backend/internal/domain/billing"
	"github.com/smartbill/backend/internal/domain/catalog"
	"github.com/smartbill/backend/internal/domain/partner"
	"github.com/smartbill/backend/internal/domain/shared"
)

// InvoiceService handles invoice business operations
type InvoiceService struct {
	invoiceRepo  billing.InvoiceRepository
	customerRepo partner.CustomerRepository
	serviceRepo  catalog.ServiceRepository
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo billing.InvoiceRepository, customerRepo partner.CustomerRepository, serviceRepo catalog.ServiceRepository) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		serviceRepo:  serviceRepo,
	}
}

// Create creates a new invoice for a customer
// Service names and unit prices are captured on the line items at creation
// time. A customer can have at most one invoice per calendar day.
func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	exists, err := s.invoiceRepo.ExistsForCustomerOnDate(ctx, req.CustomerID, req.InvoiceDate)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_INVOICE", "Customer already has an invoice on this date")
	}

	number, err := s.invoiceRepo.GenerateNumber(ctx)
	if err != nil {
		return nil, err
	}

	invoice, err := billing.NewInvoice(number, customer.ID, customer.Name, req.InvoiceDate)
	if err != nil {
		return nil, err
	}

	for _, item := range req.Items {
		service, err := s.serviceRepo.FindByID(ctx, item.ServiceID)
		if err != nil {
			return nil, err
		}
		if _, err := invoice.AddItem(service.ID, service.Name, item.Quantity, service.UnitPriceMoney()); err != nil {
			return nil, err
		}
	}

	if req.MarkPaid {
		if err := invoice.MarkPaid(time.Now()); err != nil {
			return nil, err
		}
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetByID retrieves an invoice with its line items
func (s *InvoiceService) GetByID(ctx context.Context, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// List retrieves invoice summaries with optional status and date filters
func (s *InvoiceService) List(ctx context.Context, filter InvoiceListFilter) ([]InvoiceListItemResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.DateFrom != nil {
		domainFilter.Filters["start_date"] = *filter.DateFrom
	}
	if filter.DateTo != nil {
		domainFilter.Filters["end_date"] = *filter.DateTo
	}

	invoices, err := s.invoiceRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.invoiceRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToInvoiceListItemResponses(invoices), total, nil
}

// ListUnpaidByCustomer retrieves a customer's unpaid invoices,
// oldest invoice date first. It feeds the payment entry form.
func (s *InvoiceService) ListUnpaidByCustomer(ctx context.Context, customerID uuid.UUID) ([]InvoiceListItemResponse, error) {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return nil, err
	}

	invoices, err := s.invoiceRepo.FindUnpaidByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return ToInvoiceListItemResponses(invoices), nil
}
