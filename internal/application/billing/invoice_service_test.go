package billing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/smartbill/backend/internal/domain/billing"
	"github.com/smartbill/backend/internal/domain/catalog"
	"github.com/smartbill/backend/internal/domain/partner"
	"github.com/smartbill/backend/internal/domain/report"
	"github.com/smartbill/backend/internal/domain/shared"
	"github.com/smartbill/backend/internal/domain/shared/valueobject"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockInvoiceRepository is a mock implementation of InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*billing.Invoice, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindUnpaidByCustomer(ctx context.Context, customerID uuid.UUID) ([]*billing.Invoice, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]*billing.Invoice, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ExistsForCustomerOnDate(ctx context.Context, customerID uuid.UUID, date time.Time) (bool, error) {
	args := m.Called(ctx, customerID, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvoiceRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) CountByService(ctx context.Context, serviceID uuid.UUID) (int64, error) {
	args := m.Called(ctx, serviceID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) GenerateNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockPaymentRepository is a mock implementation of PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]*billing.Payment, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).([]*billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*billing.Payment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SaveWithInvoice(ctx context.Context, payment *billing.Payment, invoice *billing.Invoice) error {
	args := m.Called(ctx, payment, invoice)
	return args.Error(0)
}

func (m *MockPaymentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockCustomerRepository is a mock implementation of partner.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByEmailAndPhone(ctx context.Context, email, phone string) (*partner.Customer, error) {
	args := m.Called(ctx, email, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockServiceRepository is a mock implementation of catalog.ServiceRepository
type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Service), args.Error(1)
}

func (m *MockServiceRepository) FindByNameInsensitive(ctx context.Context, name string) (*catalog.Service, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Service), args.Error(1)
}

func (m *MockServiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*catalog.Service, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*catalog.Service), args.Error(1)
}

func (m *MockServiceRepository) Save(ctx context.Context, service *catalog.Service) error {
	args := m.Called(ctx, service)
	return args.Error(0)
}

func (m *MockServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockServiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockReportRepository is a mock implementation of report.Repository
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) RevenueByPeriod(ctx context.Context, granularity report.Granularity, start, end time.Time) ([]report.RevenueBucket, error) {
	args := m.Called(ctx, granularity, start, end)
	return args.Get(0).([]report.RevenueBucket), args.Error(1)
}

func (m *MockReportRepository) ServicePerformance(ctx context.Context, start, end time.Time) ([]report.ServicePerformance, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]report.ServicePerformance), args.Error(1)
}

func (m *MockReportRepository) InvoicesInRange(ctx context.Context, start, end time.Time) ([]report.InvoiceSummary, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]report.InvoiceSummary), args.Error(1)
}

func (m *MockReportRepository) PaymentsInRange(ctx context.Context, start, end time.Time) ([]report.PaymentSummary, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]report.PaymentSummary), args.Error(1)
}

func (m *MockReportRepository) DashboardSummary(ctx context.Context, recentLimit int) (*report.DashboardSummary, error) {
	args := m.Called(ctx, recentLimit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.DashboardSummary), args.Error(1)
}

// =============================================================================
// Test Fixtures
// =============================================================================

func newTestCustomer(t *testing.T) *partner.Customer {
	t.Helper()
	c, err := partner.NewCustomer("Asha Rao", "asha@example.com", "9876543210", "")
	require.NoError(t, err)
	return c
}

func newTestCatalogService(t *testing.T, name string, price float64) *catalog.Service {
	t.Helper()
	svc, err := catalog.NewService(name, "", valueobject.NewMoneyINRFromFloat(price))
	require.NoError(t, err)
	return svc
}

func newInvoiceService(mockInvoices *MockInvoiceRepository, mockCustomers *MockCustomerRepository, mockServices *MockServiceRepository) *InvoiceService {
	return NewInvoiceService(mockInvoices, mockCustomers, mockServices)
}

var testDate = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

// =============================================================================
// Invoice Creation Tests
// =============================================================================

func TestInvoiceService_Create_Success(t *testing.T) {
	mockInvoices := new(MockInvoiceRepository)
	mockCustomers := new(MockCustomerRepository)
	mockServices := new(MockServiceRepository)
	service := newInvoiceService(mockInvoices, mockCustomers, mockServices)

	ctx := context.Background()
	customer := newTestCustomer(t)
	grooming := newTestCatalogService(t, "Grooming", 450)
	boarding := newTestCatalogService(t, "Boarding", 1200)

	req := CreateInvoiceRequest{
		CustomerID:  customer.ID,
		InvoiceDate: testDate,
		Items: []InvoiceItemRequest{
			{ServiceID: grooming.ID, Quantity: 2},
			{ServiceID: boarding.ID, Quantity: 1},
		},
	}

	mockCustomers.On("FindByID", ctx, customer.ID).Return(customer, nil)
	mockInvoices.On("ExistsForCustomerOnDate", ctx, customer.ID, testDate).Return(false, nil)
	mockInvoices.On("GenerateNumber", ctx).Return("INV-2026-00042", nil)
	mockServices.On("FindByID", ctx, grooming.ID).Return(grooming, nil)
	mockServices.On("FindByID", ctx, boarding.ID).Return(boarding, nil)
	mockInvoices.On("Save", ctx, mock.AnythingOfType("*billing.Invoice")).Return(nil)

	result, err := service.Create(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, "INV-2026-00042", result.Number)
	assert.Equal(t, "Asha Rao", result.CustomerName)
	assert.Equal(t, "UNPAID", result.Status)
	assert.Len(t, result.Items, 2)
	// subtotal 2100, tax 210, grand 2310, split 105/105
	assert.True(t, decimal.NewFromFloat(2100).Equal(result.Subtotal))
	assert.True(t, decimal.NewFromFloat(210).Equal(result.TaxAmount))
	assert.True(t, decimal.NewFromFloat(105).Equal(result.CGST))
	assert.True(t, decimal.NewFromFloat(105).Equal(result.SGST))
	assert.True(t, decimal.NewFromFloat(2310).Equal(result.GrandTotal))
	mockInvoices.AssertExpectations(t)
}

func TestInvoiceService_Create_MarkPaid(t *testing.T) {
	mockInvoices := new(MockInvoiceRepository)
	mockCustomers := new(MockCustomerRepository)
	mockServices := new(MockServiceRepository)
	service := newInvoiceService(mockInvoices, mockCustomers, mockServices)

	ctx := context.Background()
	customer := newTestCustomer(t)
	grooming := newTestCatalogService(t, "Grooming", 450)

	req := CreateInvoiceRequest{
		CustomerID:  customer.ID,
		InvoiceDate: testDate,
		Items:       []InvoiceItemRequest{{ServiceID: grooming.ID, Quantity: 1}},
		MarkPaid:    true,
	}

	mockCustomers.On("FindByID", ctx, customer.ID).Return(customer, nil)
	mockInvoices.On("ExistsForCustomerOnDate", ctx, customer.ID, testDate).Return(false, nil)
	mockInvoices.On("GenerateNumber", ctx).Return("INV-2026-00043", nil)
	mockServices.On("FindByID", ctx, grooming.ID).Return(grooming, nil)
	mockInvoices.On("Save", ctx, mock.AnythingOfType("*billing.Invoice")).Return(nil)

	result, err := service.Create(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, "PAID", result.Status)
	assert.NotNil(t, result.PaidAt)
}

func TestInvoiceService_Create_DuplicateDay(t *testing.T) {
	mockInvoices := new(MockInvoiceRepository)
	mockCustomers := new(MockCustomerRepository)
	mockServices := new(MockServiceRepository)
	service := newInvoiceService(mockInvoices, mockCustomers, mockServices)

	ctx := context.Background()
	customer := newTestCustomer(t)

	req := CreateInvoiceRequest{
		CustomerID:  customer.ID,
		InvoiceDate: testDate,
		Items:       []InvoiceItemRequest{{ServiceID: uuid.New(), Quantity: 1}},
	}

	mockCustomers.On("FindByID", ctx, customer.ID).Return(customer, nil)
	mockInvoices.On("ExistsForCustomerOnDate", ctx, customer.ID, testDate).Return(true, nil)

	result, err := service.Create(ctx, req)

	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DUPLICATE_INVOICE")
	mockInvoices.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestInvoiceService_Create_CustomerNotFound(t *testing.T) {
	mockInvoices := new(MockInvoiceRepository)
	mockCustomers := new(MockCustomerRepository)
	mockServices := new(MockServiceRepository)
	service := newInvoiceService(mockInvoices, mockCustomers, mockServices)

	ctx := context.Background()
	customerID := uuid.New()

	mockCustomers.On("FindByID", ctx, customerID).Return(nil, shared.ErrNotFound)

	result, err := service.Create(ctx, CreateInvoiceRequest{
		CustomerID:  customerID,
		InvoiceDate: testDate,
		Items:       []InvoiceItemRequest{{ServiceID: uuid.New(), Quantity: 1}},
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestInvoiceService_Create_ServiceNotFound(t *testing.T) {
	mockInvoices := new(MockInvoiceRepository)
	mockCustomers := new(MockCustomerRepository)
	mockServices := new(MockServiceRepository)
	service := newInvoiceService(mockInvoices, mockCustomers, mockServices)

	ctx := context.Background()
	customer := newTestCustomer(t)
	missingID := uuid.New()

	mockCustomers.On("FindByID", ctx, customer.ID).Return(customer, nil)
	mockInvoices.On("ExistsForCustomerOnDate", ctx, customer.ID, testDate).Return(false, nil)
	mockInvoices.On("GenerateNumber", ctx).Return("INV-2026-00044", nil)
	mockServices.On("FindByID", ctx, missingID).Return(nil, shared.ErrNotFound)

	result, err := service.Create(ctx, CreateInvoiceRequest{
		CustomerID:  customer.ID,
		InvoiceDate: testDate,
		Items:       []InvoiceItemRequest{{ServiceID: missingID, Quantity: 1}},
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	mockInvoices.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestInvoiceService_Create_RepeatedService(t *testing.T) {
	mockInvoices := new(MockInvoiceRepository)
	mockCustomers := new(MockCustomerRepository)
	mockServices := new(MockServiceRepository)
	service := newInvoiceService(mockInvoices, mockCustomers, mockServices)

	ctx := context.Background()
	customer := newTestCustomer(t)
	grooming := newTestCatalogService(t, "Grooming", 450)

	mockCustomers.On("FindByID", ctx, customer.ID).Return(customer, nil)
	mockInvoices.On("ExistsForCustomerOnDate", ctx, customer.ID, testDate).Return(false, nil)
	mockInvoices.On("GenerateNumber", ctx).Return("INV-2026-00045", nil)
	mockServices.On("FindByID", ctx, grooming.ID).Return(grooming, nil)

	result, err := service.Create(ctx, CreateInvoiceRequest{
		CustomerID:  customer.ID,
		InvoiceDate: testDate,
		Items: []InvoiceItemRequest{
			{ServiceID: grooming.ID, Quantity: 1},
			{ServiceID: grooming.ID, Quantity: 2},
		},
	})

	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DUPLICATE_SERVICE")
	mockInvoices.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// =============================================================================
// Invoice Query Tests
// =============================================================================

func TestInvoiceService_GetByID_NotFound(t *testing.T) {
	mockInvoices := new(MockInvoiceRepository)
	mockCustomers := new(MockCustomerRepository)
	mockServices := new(MockServiceRepository)
	service := newInvoiceService(mockInvoices, mockCustomers, mockServices)

	ctx := context.Background()
	id := uuid.New()

	mockInvoices.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

	result, err := service.GetByID(ctx, id)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestInvoiceService_List_DateRange(t *testing.T) {
	mockInvoices := new(MockInvoiceRepository)
	mockCustomers := new(MockCustomerRepository)
	mockServices := new(MockServiceRepository)
	service := newInvoiceService(mockInvoices, mockCustomers, mockServices)

	ctx := context.Background()
	from := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)

	// The repository layer only recognizes start_date and end_date keys.
	withDateBounds := mock.MatchedBy(func(f shared.Filter) bool {
		start, okStart := f.Filters["start_date"].(time.Time)
		end, okEnd := f.Filters["end_date"].(time.Time)
		return okStart && okEnd && start.Equal(from) && end.Equal(to)
	})
	mockInvoices.On("FindAll", ctx, withDateBounds).Return([]*billing.Invoice{}, nil)
	mockInvoices.On("Count", ctx, withDateBounds).Return(int64(0), nil)

	_, total, err := service.List(ctx, InvoiceListFilter{DateFrom: &from, DateTo: &to})

	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	mockInvoices.AssertExpectations(t)
}

func TestInvoiceService_ListUnpaidByCustomer(t *testing.T) {
	mockInvoices := new(MockInvoiceRepository)
	mockCustomers := new(MockCustomerRepository)
	mockServices := new(MockServiceRepository)
	service := newInvoiceService(mockInvoices, mockCustomers, mockServices)

	ctx := context.Background()
	customer := newTestCustomer(t)

	inv, err := billing.NewInvoice("INV-1", customer.ID, customer.Name, testDate)
	require.NoError(t, err)
	_, err = inv.AddItem(uuid.New(), "Grooming", 1, valueobject.NewMoneyINRFromFloat(450))
	require.NoError(t, err)

	mockCustomers.On("FindByID", ctx, customer.ID).Return(customer, nil)
	mockInvoices.On("FindUnpaidByCustomer", ctx, customer.ID).Return([]*billing.Invoice{inv}, nil)

	result, err := service.ListUnpaidByCustomer(ctx, customer.ID)

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "UNPAID", result[0].Status)
	assert.True(t, decimal.NewFromFloat(495).Equal(result[0].GrandTotal))
}
