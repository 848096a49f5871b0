package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbill/backend/internal/domain/billing"
	"github.com/smartbill/backend/internal/domain/partner"
)

// =============================================================================
// Customer DTOs
// =============================================================================

// CreateCustomerRequest represents a request to create a new customer
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Email   string `json:"email" binding:"required,email,max=200"`
	Phone   string `json:"phone" binding:"max=50"`
	Address string `json:"address" binding:"max=500"`
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=200"`
	Email   *string `json:"email" binding:"omitempty,email,max=200"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Address *string `json:"address" binding:"omitempty,max=500"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// CustomerListFilter represents filter options for customer list
type CustomerListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CustomerInvoiceResponse is one invoice row in a customer's billing history
type CustomerInvoiceResponse struct {
	ID          uuid.UUID       `json:"id"`
	Number      string          `json:"number"`
	InvoiceDate time.Time       `json:"invoice_date"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
	Status      string          `json:"status"`
}

// CustomerHistoryResponse represents a customer's billing history
type CustomerHistoryResponse struct {
	Customer     CustomerResponse          `json:"customer"`
	Invoices     []CustomerInvoiceResponse `json:"invoices"`
	TotalBilled  decimal.Decimal           `json:"total_billed"`
	UnpaidAmount decimal.Decimal           `json:"unpaid_amount"`
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Version:   c.Version,
	}
}

// ToCustomerResponses converts a slice of domain Customers
func ToCustomerResponses(customers []partner.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses
}

// ToCustomerInvoiceResponse converts a domain Invoice to a history row
func ToCustomerInvoiceResponse(inv *billing.Invoice) CustomerInvoiceResponse {
	return CustomerInvoiceResponse{
		ID:          inv.ID,
		Number:      inv.Number,
		InvoiceDate: inv.InvoiceDate,
		GrandTotal:  inv.GrandTotal,
		Status:      inv.Status.String(),
	}
}
