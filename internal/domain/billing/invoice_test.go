package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartbill/backend/internal/domain/shared/valueobject"
)

func newTestInvoice(t *testing.T) *Invoice {
	t.Helper()
	inv, err := NewInvoice("INV-2026-00001", uuid.New(), "Asha Rao", time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	return inv
}

// ============================================================================
// Invoice Creation Tests
// ============================================================================

func TestNewInvoice(t *testing.T) {
	customerID := uuid.New()
	inv, err := NewInvoice("INV-2026-00001", customerID, "Asha Rao", time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, "INV-2026-00001", inv.Number)
	assert.Equal(t, customerID, inv.CustomerID)
	assert.Equal(t, InvoiceStatusUnpaid, inv.Status)
	assert.True(t, inv.IsUnpaid())
	assert.Nil(t, inv.PaidAt)
	assert.Equal(t, 0, inv.ItemCount())
	assert.True(t, inv.Subtotal.IsZero())
}

func TestNewInvoice_TruncatesDateToDay(t *testing.T) {
	inv := newTestInvoice(t)

	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), inv.InvoiceDate)
}

func TestNewInvoice_Validation(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		number       string
		customerID   uuid.UUID
		customerName string
		date         time.Time
		wantCode     string
	}{
		{"empty number", "", uuid.New(), "Asha", date, "INVALID_NUMBER"},
		{"nil customer", "INV-1", uuid.Nil, "Asha", date, "INVALID_CUSTOMER"},
		{"empty customer name", "INV-1", uuid.New(), "", date, "INVALID_CUSTOMER_NAME"},
		{"zero date", "INV-1", uuid.New(), "Asha", time.Time{}, "INVALID_DATE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInvoice(tt.number, tt.customerID, tt.customerName, tt.date)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantCode)
		})
	}
}

// ============================================================================
// Line Item Tests
// ============================================================================

func TestInvoice_AddItem_RecalculatesTotals(t *testing.T) {
	inv := newTestInvoice(t)

	_, err := inv.AddItem(uuid.New(), "Grooming", 2, valueobject.NewMoneyINRFromFloat(450))
	require.NoError(t, err)
	_, err = inv.AddItem(uuid.New(), "Vaccination", 1, valueobject.NewMoneyINRFromFloat(800))
	require.NoError(t, err)

	assert.Equal(t, 2, inv.ItemCount())
	assert.True(t, decimal.NewFromFloat(1700).Equal(inv.Subtotal), "subtotal %s", inv.Subtotal)
	assert.True(t, decimal.NewFromFloat(170).Equal(inv.TaxAmount), "tax %s", inv.TaxAmount)
	assert.True(t, decimal.NewFromFloat(1870).Equal(inv.GrandTotal), "grand total %s", inv.GrandTotal)
}

func TestInvoice_AddItem_RoundsTax(t *testing.T) {
	inv := newTestInvoice(t)

	_, err := inv.AddItem(uuid.New(), "Nail Trim", 1, valueobject.NewMoneyINRFromFloat(99.99))
	require.NoError(t, err)

	// 10% of 99.99 is 9.999, rounded to 10.00
	assert.True(t, decimal.NewFromFloat(10.00).Equal(inv.TaxAmount), "tax %s", inv.TaxAmount)
	assert.True(t, decimal.NewFromFloat(109.99).Equal(inv.GrandTotal), "grand total %s", inv.GrandTotal)
}

func TestInvoice_AddItem_RejectsDuplicateService(t *testing.T) {
	inv := newTestInvoice(t)
	serviceID := uuid.New()

	_, err := inv.AddItem(serviceID, "Grooming", 1, valueobject.NewMoneyINRFromFloat(450))
	require.NoError(t, err)

	_, err = inv.AddItem(serviceID, "Grooming", 2, valueobject.NewMoneyINRFromFloat(450))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DUPLICATE_SERVICE")
	assert.Equal(t, 1, inv.ItemCount())
}

func TestInvoice_AddItem_Validation(t *testing.T) {
	inv := newTestInvoice(t)
	price := valueobject.NewMoneyINRFromFloat(450)

	_, err := inv.AddItem(uuid.Nil, "Grooming", 1, price)
	assert.Contains(t, err.Error(), "INVALID_SERVICE")

	_, err = inv.AddItem(uuid.New(), "", 1, price)
	assert.Contains(t, err.Error(), "INVALID_SERVICE_NAME")

	_, err = inv.AddItem(uuid.New(), "Grooming", 0, price)
	assert.Contains(t, err.Error(), "INVALID_QUANTITY")

	_, err = inv.AddItem(uuid.New(), "Grooming", 1, valueobject.ZeroINR())
	assert.Contains(t, err.Error(), "INVALID_PRICE")
}

func TestInvoice_RemoveItem(t *testing.T) {
	inv := newTestInvoice(t)

	item, err := inv.AddItem(uuid.New(), "Grooming", 1, valueobject.NewMoneyINRFromFloat(450))
	require.NoError(t, err)
	_, err = inv.AddItem(uuid.New(), "Boarding", 1, valueobject.NewMoneyINRFromFloat(1200))
	require.NoError(t, err)

	require.NoError(t, inv.RemoveItem(item.ID))

	assert.Equal(t, 1, inv.ItemCount())
	assert.True(t, decimal.NewFromFloat(1200).Equal(inv.Subtotal))
	assert.True(t, decimal.NewFromFloat(120).Equal(inv.TaxAmount))
}

func TestInvoice_RemoveItem_NotFound(t *testing.T) {
	inv := newTestInvoice(t)

	err := inv.RemoveItem(uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ITEM_NOT_FOUND")
}

// ============================================================================
// Status Transition Tests
// ============================================================================

func TestInvoice_MarkPaid(t *testing.T) {
	inv := newTestInvoice(t)
	_, err := inv.AddItem(uuid.New(), "Grooming", 1, valueobject.NewMoneyINRFromFloat(450))
	require.NoError(t, err)

	paidAt := time.Now()
	require.NoError(t, inv.MarkPaid(paidAt))

	assert.True(t, inv.IsPaid())
	require.NotNil(t, inv.PaidAt)
	assert.Equal(t, paidAt, *inv.PaidAt)
}

func TestInvoice_MarkPaid_EmptyInvoice(t *testing.T) {
	inv := newTestInvoice(t)

	err := inv.MarkPaid(time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NO_ITEMS")
	assert.True(t, inv.IsUnpaid())
}

func TestInvoice_MarkPaid_AlreadyPaid(t *testing.T) {
	inv := newTestInvoice(t)
	_, err := inv.AddItem(uuid.New(), "Grooming", 1, valueobject.NewMoneyINRFromFloat(450))
	require.NoError(t, err)
	require.NoError(t, inv.MarkPaid(time.Now()))

	err = inv.MarkPaid(time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_STATE")
}

func TestInvoice_PaidInvoiceRejectsItemChanges(t *testing.T) {
	inv := newTestInvoice(t)
	item, err := inv.AddItem(uuid.New(), "Grooming", 1, valueobject.NewMoneyINRFromFloat(450))
	require.NoError(t, err)
	require.NoError(t, inv.MarkPaid(time.Now()))

	_, err = inv.AddItem(uuid.New(), "Boarding", 1, valueobject.NewMoneyINRFromFloat(1200))
	assert.Contains(t, err.Error(), "INVALID_STATE")

	err = inv.RemoveItem(item.ID)
	assert.Contains(t, err.Error(), "INVALID_STATE")
}

func TestInvoiceStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, InvoiceStatusUnpaid.CanTransitionTo(InvoiceStatusPaid))
	assert.False(t, InvoiceStatusPaid.CanTransitionTo(InvoiceStatusUnpaid))
	assert.False(t, InvoiceStatusPaid.CanTransitionTo(InvoiceStatusPaid))
}

// ============================================================================
// Tax Split Tests
// ============================================================================

func TestInvoice_TaxHalves_SplitsEvenly(t *testing.T) {
	inv := newTestInvoice(t)
	_, err := inv.AddItem(uuid.New(), "Grooming", 1, valueobject.NewMoneyINRFromFloat(450))
	require.NoError(t, err)

	cgst, sgst := inv.TaxHalves()

	assert.Equal(t, "22.50", cgst.StringFixed(2))
	assert.Equal(t, "22.50", sgst.StringFixed(2))
}

func TestInvoice_TaxHalves_OddCentGoesToFirstHalf(t *testing.T) {
	inv := newTestInvoice(t)
	// 10% of 24.30 is 2.43, which splits 1.22 / 1.21
	_, err := inv.AddItem(uuid.New(), "Nail Trim", 1, valueobject.NewMoneyINRFromFloat(24.30))
	require.NoError(t, err)

	cgst, sgst := inv.TaxHalves()

	assert.Equal(t, "1.22", cgst.StringFixed(2))
	assert.Equal(t, "1.21", sgst.StringFixed(2))

	total, err := cgst.Add(sgst)
	require.NoError(t, err)
	assert.True(t, total.Amount().Equal(inv.TaxAmount))
}

// ============================================================================
// Payment Amount Validation Tests
// ============================================================================

func TestInvoice_ValidatePaymentAmount(t *testing.T) {
	inv := newTestInvoice(t)
	_, err := inv.AddItem(uuid.New(), "Grooming", 1, valueobject.NewMoneyINRFromFloat(450))
	require.NoError(t, err)
	// grand total is 495.00

	assert.NoError(t, inv.ValidatePaymentAmount(valueobject.NewMoneyINRFromFloat(495)))
	assert.NoError(t, inv.ValidatePaymentAmount(valueobject.NewMoneyINRFromFloat(100)))

	err = inv.ValidatePaymentAmount(valueobject.ZeroINR())
	assert.Contains(t, err.Error(), "INVALID_AMOUNT")

	err = inv.ValidatePaymentAmount(valueobject.NewMoneyINRFromFloat(495.01))
	assert.Contains(t, err.Error(), "INVALID_AMOUNT")
}
