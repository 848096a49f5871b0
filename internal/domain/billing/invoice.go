package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbill/backend/internal/domain/shared"
	"github.com/smartbill/backend/internal/domain/shared/valueobject"
)

// TaxRate is the flat tax rate applied to every invoice subtotal.
// The resulting tax amount is presented as two equal CGST and SGST halves.
var TaxRate = decimal.NewFromFloat(0.10)

// InvoiceStatus represents the payment status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusUnpaid InvoiceStatus = "UNPAID"
	InvoiceStatusPaid   InvoiceStatus = "PAID"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusUnpaid, InvoiceStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	switch s {
	case InvoiceStatusUnpaid:
		return target == InvoiceStatusPaid
	case InvoiceStatusPaid:
		return false // Terminal state
	}
	return false
}

// InvoiceLineItem represents a billed service line on an invoice
type InvoiceLineItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ServiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ServiceName string          `gorm:"type:varchar(200);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (InvoiceLineItem) TableName() string {
	return "invoice_line_items"
}

// NewInvoiceLineItem creates a new invoice line item
func NewInvoiceLineItem(invoiceID, serviceID uuid.UUID, serviceName string, quantity int, unitPrice valueobject.Money) (*InvoiceLineItem, error) {
	if serviceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SERVICE", "Service ID cannot be empty")
	}
	if serviceName == "" {
		return nil, shared.NewDomainError("INVALID_SERVICE_NAME", "Service name cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if !unitPrice.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price must be positive")
	}

	now := time.Now()
	amount := unitPrice.Amount().Mul(decimal.NewFromInt(int64(quantity)))

	return &InvoiceLineItem{
		ID:          uuid.New(),
		InvoiceID:   invoiceID,
		ServiceID:   serviceID,
		ServiceName: serviceName,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		Amount:      amount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// GetAmountMoney returns the line amount as a Money value object
func (i *InvoiceLineItem) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(i.Amount)
}

// GetUnitPriceMoney returns the unit price as a Money value object
func (i *InvoiceLineItem) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyINR(i.UnitPrice)
}

// Invoice represents an invoice aggregate root
// It manages line items, tax derivation and the payment status lifecycle
type Invoice struct {
	shared.BaseAggregateRoot
	Number       string            `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	CustomerName string            `gorm:"type:varchar(200);not null"`
	InvoiceDate  time.Time         `gorm:"type:date;not null;index"`
	Items        []InvoiceLineItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	Subtotal     decimal.Decimal   `gorm:"type:decimal(18,2);not null"`
	TaxAmount    decimal.Decimal   `gorm:"type:decimal(18,2);not null"`
	GrandTotal   decimal.Decimal   `gorm:"type:decimal(18,2);not null"`
	Status       InvoiceStatus     `gorm:"type:varchar(20);not null;index"`
	PaidAt       *time.Time
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice creates a new unpaid invoice with no line items
func NewInvoice(number string, customerID uuid.UUID, customerName string, invoiceDate time.Time) (*Invoice, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Invoice number cannot be empty")
	}
	if len(number) > 50 {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Invoice number cannot exceed 50 characters")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if invoiceDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Invoice date cannot be empty")
	}

	return &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		CustomerID:        customerID,
		CustomerName:      customerName,
		InvoiceDate:       truncateToDate(invoiceDate),
		Items:             make([]InvoiceLineItem, 0),
		Subtotal:          decimal.Zero,
		TaxAmount:         decimal.Zero,
		GrandTotal:        decimal.Zero,
		Status:            InvoiceStatusUnpaid,
	}, nil
}

// AddItem adds a service line to the invoice
// Only allowed while the invoice is unpaid
func (inv *Invoice) AddItem(serviceID uuid.UUID, serviceName string, quantity int, unitPrice valueobject.Money) (*InvoiceLineItem, error) {
	if inv.Status != InvoiceStatusUnpaid {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a paid invoice")
	}

	// Each service appears at most once per invoice
	for _, item := range inv.Items {
		if item.ServiceID == serviceID {
			return nil, shared.NewDomainError("DUPLICATE_SERVICE", "Service already billed on this invoice, adjust quantity instead")
		}
	}

	item, err := NewInvoiceLineItem(inv.ID, serviceID, serviceName, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	inv.Items = append(inv.Items, *item)
	inv.recalculateTotals()
	inv.UpdatedAt = time.Now()

	return item, nil
}

// RemoveItem removes a service line from the invoice
// Only allowed while the invoice is unpaid
func (inv *Invoice) RemoveItem(itemID uuid.UUID) error {
	if inv.Status != InvoiceStatusUnpaid {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove items from a paid invoice")
	}

	for idx, item := range inv.Items {
		if item.ID == itemID {
			inv.Items = append(inv.Items[:idx], inv.Items[idx+1:]...)
			inv.recalculateTotals()
			inv.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Invoice item not found")
}

// MarkPaid transitions the invoice from UNPAID to PAID
// This is the only path that flips the payment status
func (inv *Invoice) MarkPaid(paidAt time.Time) error {
	if !inv.Status.CanTransitionTo(InvoiceStatusPaid) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark invoice as paid in %s status", inv.Status))
	}
	if len(inv.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot mark an empty invoice as paid")
	}

	inv.Status = InvoiceStatusPaid
	inv.PaidAt = &paidAt
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	return nil
}

// ValidatePaymentAmount checks a proposed payment amount against the invoice
func (inv *Invoice) ValidatePaymentAmount(amount valueobject.Money) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.Amount().GreaterThan(inv.GrandTotal) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount cannot exceed the invoice grand total")
	}
	return nil
}

// recalculateTotals recalculates subtotal, tax and grand total from line items
// Tax is rounded to 2 decimal places before it is added to the subtotal
func (inv *Invoice) recalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range inv.Items {
		subtotal = subtotal.Add(item.Amount)
	}
	inv.Subtotal = subtotal
	inv.TaxAmount = subtotal.Mul(TaxRate).Round(2)
	inv.GrandTotal = inv.Subtotal.Add(inv.TaxAmount)
}

// TaxHalves splits the tax amount into CGST and SGST portions
// The halves always sum back to the full tax amount
func (inv *Invoice) TaxHalves() (cgst, sgst valueobject.Money) {
	parts, _ := valueobject.NewMoneyINR(inv.TaxAmount).Allocate(2)
	return parts[0], parts[1]
}

// GetSubtotalMoney returns the subtotal as Money
func (inv *Invoice) GetSubtotalMoney() valueobject.Money {
	return valueobject.NewMoneyINR(inv.Subtotal)
}

// GetTaxAmountMoney returns the tax amount as Money
func (inv *Invoice) GetTaxAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(inv.TaxAmount)
}

// GetGrandTotalMoney returns the grand total as Money
func (inv *Invoice) GetGrandTotalMoney() valueobject.Money {
	return valueobject.NewMoneyINR(inv.GrandTotal)
}

// ItemCount returns the number of line items on the invoice
func (inv *Invoice) ItemCount() int {
	return len(inv.Items)
}

// IsUnpaid returns true if the invoice has not been paid
func (inv *Invoice) IsUnpaid() bool {
	return inv.Status == InvoiceStatusUnpaid
}

// IsPaid returns true if the invoice has been paid
func (inv *Invoice) IsPaid() bool {
	return inv.Status == InvoiceStatusPaid
}

// GetItem returns a line item by its ID
func (inv *Invoice) GetItem(itemID uuid.UUID) *InvoiceLineItem {
	for idx := range inv.Items {
		if inv.Items[idx].ID == itemID {
			return &inv.Items[idx]
		}
	}
	return nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
