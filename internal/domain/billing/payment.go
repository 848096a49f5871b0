package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbill/backend/internal/domain/shared"
	"github.com/smartbill/backend/internal/domain/shared/valueobject"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "CASH"
	PaymentMethodCard   PaymentMethod = "CARD"
	PaymentMethodOnline PaymentMethod = "ONLINE"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodOnline:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// Payment records money received against an invoice
type Payment struct {
	shared.BaseEntity
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Method      PaymentMethod   `gorm:"type:varchar(20);not null"`
	PaymentDate time.Time       `gorm:"not null;index"`
	Notes       string          `gorm:"type:varchar(300)"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a new payment against an invoice
// The amount must be positive and must not exceed the invoice grand total
func NewPayment(invoice *Invoice, amount valueobject.Money, method PaymentMethod, paymentDate time.Time, notes string) (*Payment, error) {
	if invoice == nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Invoice cannot be nil")
	}
	if !invoice.IsUnpaid() {
		return nil, shared.NewDomainError("INVALID_STATE", "Invoice has already been paid")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Payment method must be one of CASH, CARD, ONLINE")
	}
	if err := invoice.ValidatePaymentAmount(amount); err != nil {
		return nil, err
	}
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	return &Payment{
		BaseEntity:  shared.NewBaseEntity(),
		InvoiceID:   invoice.GetID(),
		Amount:      amount.Amount(),
		Method:      method,
		PaymentDate: paymentDate,
		Notes:       notes,
	}, nil
}

// GetAmountMoney returns the payment amount as Money
func (p *Payment) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(p.Amount)
}
