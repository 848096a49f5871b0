package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbill/backend/internal/domain/billing"
)

// =============================================================================
// Invoice DTOs
// =============================================================================

// InvoiceItemRequest is one service line in an invoice creation request
type InvoiceItemRequest struct {
	ServiceID uuid.UUID `json:"service_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CreateInvoiceRequest represents a request to create an invoice
type CreateInvoiceRequest struct {
	CustomerID  uuid.UUID            `json:"customer_id" binding:"required"`
	InvoiceDate time.Time            `json:"invoice_date" binding:"required" time_format:"2006-01-02"`
	Items       []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
	MarkPaid    bool                 `json:"mark_paid"`
}

// InvoiceItemResponse is one line item in an invoice response
type InvoiceItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ServiceID   uuid.UUID       `json:"service_id"`
	ServiceName string          `json:"service_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse represents a full invoice in API responses
// CGST and SGST are the two halves of the tax amount, derived for display
type InvoiceResponse struct {
	ID           uuid.UUID             `json:"id"`
	Number       string                `json:"number"`
	CustomerID   uuid.UUID             `json:"customer_id"`
	CustomerName string                `json:"customer_name"`
	InvoiceDate  time.Time             `json:"invoice_date"`
	Items        []InvoiceItemResponse `json:"items"`
	Subtotal     decimal.Decimal       `json:"subtotal"`
	TaxAmount    decimal.Decimal       `json:"tax_amount"`
	CGST         decimal.Decimal       `json:"cgst"`
	SGST         decimal.Decimal       `json:"sgst"`
	GrandTotal   decimal.Decimal       `json:"grand_total"`
	Status       string                `json:"status"`
	PaidAt       *time.Time            `json:"paid_at,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
}

// InvoiceListItemResponse is a summary row for invoice listings
type InvoiceListItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	Number       string          `json:"number"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	InvoiceDate  time.Time       `json:"invoice_date"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
	Status       string          `json:"status"`
}

// InvoiceListFilter represents filter options for invoice listings
type InvoiceListFilter struct {
	Status   string     `form:"status" binding:"omitempty,oneof=UNPAID PAID"`
	DateFrom *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo   *time.Time `form:"date_to" time_format:"2006-01-02"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// =============================================================================
// Payment DTOs
// =============================================================================

// LogPaymentRequest represents a request to record a payment
type LogPaymentRequest struct {
	InvoiceID   uuid.UUID       `json:"invoice_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Method      string          `json:"method" binding:"required,oneof=CASH CARD ONLINE"`
	PaymentDate time.Time       `json:"payment_date" time_format:"2006-01-02"`
	Notes       string          `json:"notes" binding:"max=300"`
}

// PaymentResponse represents a recorded payment
type PaymentResponse struct {
	ID          uuid.UUID       `json:"id"`
	InvoiceID   uuid.UUID       `json:"invoice_id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	PaymentDate time.Time       `json:"payment_date"`
	Notes       string          `json:"notes,omitempty"`
}

// PaymentListItemResponse is a payment row joined with invoice and customer
type PaymentListItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	CustomerName  string          `json:"customer_name"`
	Amount        decimal.Decimal `json:"amount"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	Method        string          `json:"method"`
	PaymentDate   time.Time       `json:"payment_date"`
}

// PaymentListFilter represents filter options for payment listings
type PaymentListFilter struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// ToInvoiceResponse converts a domain Invoice to InvoiceResponse
func ToInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = InvoiceItemResponse{
			ID:          item.ID,
			ServiceID:   item.ServiceID,
			ServiceName: item.ServiceName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		}
	}

	cgst, sgst := inv.TaxHalves()

	return InvoiceResponse{
		ID:           inv.ID,
		Number:       inv.Number,
		CustomerID:   inv.CustomerID,
		CustomerName: inv.CustomerName,
		InvoiceDate:  inv.InvoiceDate,
		Items:        items,
		Subtotal:     inv.Subtotal,
		TaxAmount:    inv.TaxAmount,
		CGST:         cgst.Amount(),
		SGST:         sgst.Amount(),
		GrandTotal:   inv.GrandTotal,
		Status:       inv.Status.String(),
		PaidAt:       inv.PaidAt,
		CreatedAt:    inv.CreatedAt,
	}
}

// ToInvoiceListItemResponse converts a domain Invoice to a summary row
func ToInvoiceListItemResponse(inv *billing.Invoice) InvoiceListItemResponse {
	return InvoiceListItemResponse{
		ID:           inv.ID,
		Number:       inv.Number,
		CustomerID:   inv.CustomerID,
		CustomerName: inv.CustomerName,
		InvoiceDate:  inv.InvoiceDate,
		GrandTotal:   inv.GrandTotal,
		Status:       inv.Status.String(),
	}
}

// ToInvoiceListItemResponses converts a slice of domain Invoices
func ToInvoiceListItemResponses(invoices []*billing.Invoice) []InvoiceListItemResponse {
	responses := make([]InvoiceListItemResponse, len(invoices))
	for i, inv := range invoices {
		responses[i] = ToInvoiceListItemResponse(inv)
	}
	return responses
}

// ToPaymentResponse converts a domain Payment to PaymentResponse
func ToPaymentResponse(p *billing.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		InvoiceID:   p.InvoiceID,
		Amount:      p.Amount,
		Method:      p.Method.String(),
		PaymentDate: p.PaymentDate,
		Notes:       p.Notes,
	}
}
