package catalog

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbill/backend/internal/domain/billing"
	"github.com/smartbill/backend/internal/domain/catalog"
	"github.com/smartbill/backend/internal/domain/shared"
	"github.com/smartbill/backend/internal/domain/shared/valueobject"
	csvimport "github.com/smartbill/backend/internal/infrastructure/import"
)

// ServiceService handles catalog service business operations
type ServiceService struct {
	serviceRepo catalog.ServiceRepository
	invoiceRepo billing.InvoiceRepository
}

// NewServiceService creates a new ServiceService
func NewServiceService(serviceRepo catalog.ServiceRepository, invoiceRepo billing.InvoiceRepository) *ServiceService {
	return &ServiceService{
		serviceRepo: serviceRepo,
		invoiceRepo: invoiceRepo,
	}
}

// Create creates a new catalog service
// Service names are unique ignoring case
func (s *ServiceService) Create(ctx context.Context, req CreateServiceRequest) (*ServiceResponse, error) {
	existing, err := s.serviceRepo.FindByNameInsensitive(ctx, req.Name)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Service with this name already exists")
	}

	service, err := catalog.NewService(req.Name, req.Description, valueobject.NewMoneyINR(req.UnitPrice))
	if err != nil {
		return nil, err
	}

	if err := s.serviceRepo.Save(ctx, service); err != nil {
		return nil, err
	}

	response := ToServiceResponse(service)
	return &response, nil
}

// GetByID retrieves a catalog service by ID
func (s *ServiceService) GetByID(ctx context.Context, serviceID uuid.UUID) (*ServiceResponse, error) {
	service, err := s.serviceRepo.FindByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	response := ToServiceResponse(service)
	return &response, nil
}

// List retrieves catalog services with filtering and pagination
func (s *ServiceService) List(ctx context.Context, filter ServiceListFilter) ([]ServiceResponse, int64, error) {
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

	services, err := s.serviceRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.serviceRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToServiceResponses(services), total, nil
}

// Update updates a catalog service
func (s *ServiceService) Update(ctx context.Context, serviceID uuid.UUID, req UpdateServiceRequest) (*ServiceResponse, error) {
	service, err := s.serviceRepo.FindByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	name := service.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := service.Description
	if req.Description != nil {
		description = *req.Description
	}
	unitPrice := service.UnitPriceMoney()
	if req.UnitPrice != nil {
		unitPrice = valueobject.NewMoneyINR(*req.UnitPrice)
	}

	if !service.NameEqualsFold(name) {
		existing, err := s.serviceRepo.FindByNameInsensitive(ctx, name)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != service.ID {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Service with this name already exists")
		}
	}

	if err := service.Update(name, description, unitPrice); err != nil {
		return nil, err
	}

	if err := s.serviceRepo.Save(ctx, service); err != nil {
		return nil, err
	}

	response := ToServiceResponse(service)
	return &response, nil
}

// Import bulk-creates catalog services from a CSV stream with columns
// name, description, unit_price. Name uniqueness is checked per row
// against the catalog, so a file can be re-imported after fixing the
// reported rows.
func (s *ServiceService) Import(ctx context.Context, reader io.Reader) (*csvimport.Report, error) {
	rules := []csvimport.FieldRule{
		csvimport.Field("name").Required().Unique().MaxLength(200).Build(),
		csvimport.Field("description").MaxLength(300).Build(),
		csvimport.Field("unit_price").Required().Decimal().MinValue(decimal.NewFromFloat(0.01)).Build(),
	}

	report, err := csvimport.NewProcessor().Process(ctx, reader, rules, func(row *csvimport.Row) error {
		name := row.Get("name")

		existing, err := s.serviceRepo.FindByNameInsensitive(ctx, name)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if existing != nil {
			return errors.New("service with this name already exists")
		}

		price, err := decimal.NewFromString(row.Get("unit_price"))
		if err != nil {
			return err
		}

		service, err := catalog.NewService(name, row.Get("description"), valueobject.NewMoneyINR(price))
		if err != nil {
			return err
		}

		return s.serviceRepo.Save(ctx, service)
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

// Delete removes a catalog service
// Deletion is blocked while any invoice line item references the service
func (s *ServiceService) Delete(ctx context.Context, serviceID uuid.UUID) error {
	if _, err := s.serviceRepo.FindByID(ctx, serviceID); err != nil {
		return err
	}

	count, err := s.invoiceRepo.CountByService(ctx, serviceID)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("REFERENCED", "Service is billed on invoices and cannot be deleted")
	}

	return s.serviceRepo.Delete(ctx, serviceID)
}
