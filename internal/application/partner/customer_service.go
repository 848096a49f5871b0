package partner

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbill/backend/internal/domain/billing"
	"github.com/smartbill/backend/internal/domain/partner"
	"github.com/smartbill/backend/internal/domain/shared"
	csvimport "github.com/smartbill/backend/internal/infrastructure/import"
)

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	invoiceRepo  billing.InvoiceRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, invoiceRepo billing.InvoiceRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
	}
}

// Create creates a new customer
// A customer is a duplicate only when both email and phone match an
// existing record
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	existing, err := s.customerRepo.FindByEmailAndPhone(ctx, req.Email, req.Phone)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this email and phone already exists")
	}

	customer, err := partner.NewCustomer(req.Name, req.Email, req.Phone, req.Address)
	if err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves a list of customers with filtering and pagination
func (s *CustomerService) List(ctx context.Context, filter CustomerListFilter) ([]CustomerResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search

	customers, err := s.customerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.customerRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToCustomerResponses(customers), total, nil
}

// Update updates a customer's details
func (s *CustomerService) Update(ctx context.Context, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	name := customer.Name
	if req.Name != nil {
		name = *req.Name
	}
	email := customer.Email
	if req.Email != nil {
		email = *req.Email
	}
	phone := customer.Phone
	if req.Phone != nil {
		phone = *req.Phone
	}
	address := customer.Address
	if req.Address != nil {
		address = *req.Address
	}

	if email != customer.Email || phone != customer.Phone {
		existing, err := s.customerRepo.FindByEmailAndPhone(ctx, email, phone)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != customer.ID {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this email and phone already exists")
		}
	}

	if err := customer.Update(name, email, phone, address); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Delete removes a customer
// Deletion is blocked while any invoice references the customer
func (s *CustomerService) Delete(ctx context.Context, customerID uuid.UUID) error {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return err
	}

	count, err := s.invoiceRepo.CountByCustomer(ctx, customerID)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("REFERENCED", "Customer has invoices and cannot be deleted")
	}

	return s.customerRepo.Delete(ctx, customerID)
}

// Import bulk-creates customers from a CSV stream with columns
// name, email, phone, address. Rows failing validation or colliding
// with an existing customer are skipped and reported, the rest are
// saved.
func (s *CustomerService) Import(ctx context.Context, reader io.Reader) (*csvimport.Report, error) {
	rules := []csvimport.FieldRule{
		csvimport.Field("name").Required().MaxLength(200).Build(),
		csvimport.Field("email").Required().Email().Unique().MaxLength(200).Build(),
		csvimport.Field("phone").MaxLength(20).Build(),
		csvimport.Field("address").MaxLength(500).Build(),
	}

	report, err := csvimport.NewProcessor().Process(ctx, reader, rules, func(row *csvimport.Row) error {
		email := row.Get("email")
		phone := row.Get("phone")

		existing, err := s.customerRepo.FindByEmailAndPhone(ctx, email, phone)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if existing != nil {
			return errors.New("customer with this email and phone already exists")
		}

		customer, err := partner.NewCustomer(row.Get("name"), email, phone, row.Get("address"))
		if err != nil {
			return err
		}

		return s.customerRepo.Save(ctx, customer)
	})
	if err != nil {
		return nil, wrapImportError(err)
	}

	return report, nil
}

func wrapImportError(err error) error {
	switch {
	case errors.Is(err, csvimport.ErrEmptyFile),
		errors.Is(err, csvimport.ErrInvalidEncoding),
		errors.Is(err, csvimport.ErrMissingHeader):
		return shared.NewDomainError("INVALID_INPUT", err.Error())
	}
	return err
}

// History returns the customer's invoices with billed and outstanding totals
func (s *CustomerService) History(ctx context.Context, customerID uuid.UUID) (*CustomerHistoryResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	filter := shared.DefaultFilter()
	filter.OrderBy = "invoice_date"
	filter.OrderDir = "desc"
	filter.PageSize = 0 // full history, no pagination

	invoices, err := s.invoiceRepo.FindByCustomer(ctx, customerID, filter)
	if err != nil {
		return nil, err
	}

	rows := make([]CustomerInvoiceResponse, len(invoices))
	totalBilled := decimal.Zero
	unpaid := decimal.Zero
	for i, inv := range invoices {
		rows[i] = ToCustomerInvoiceResponse(inv)
		totalBilled = totalBilled.Add(inv.GrandTotal)
		if inv.IsUnpaid() {
			unpaid = unpaid.Add(inv.GrandTotal)
		}
	}

	return &CustomerHistoryResponse{
		Customer:     ToCustomerResponse(customer),
		Invoices:     rows,
		TotalBilled:  totalBilled,
		UnpaidAmount: unpaid,
	}, nil
}
