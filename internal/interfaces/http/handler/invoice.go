package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	billingapp "github.com/smartbill/backend/internal/application/billing"
)

// InvoiceHandler handles invoice-related API endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *billingapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *billingapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
	}
}

// Create godoc
// @ID           createInvoice
// @Summary      Create a new invoice
// @Description  Create an invoice for a customer. Line items snapshot the current
// @Description  service names and prices, totals carry a 10% tax split into equal
// @Description  CGST and SGST halves, and the invoice number is assigned by the server.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body billingapp.CreateInvoiceRequest true "Invoice creation request"
// @Success      201 {object} APIResponse[billingapp.InvoiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req billingapp.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, invoice)
}

// GetByID godoc
// @ID           getInvoiceById
// @Summary      Get invoice by ID
// @Description  Retrieve an invoice with its line items and derived CGST/SGST breakdown
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} APIResponse[billingapp.InvoiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// List godoc
// @ID           listInvoices
// @Summary      List invoices
// @Description  Retrieve a paginated list of invoices, newest invoice date first
// @Tags         invoices
// @Produce      json
// @Param        status query string false "Invoice status" Enums(UNPAID, PAID)
// @Param        date_from query string false "Earliest invoice date (YYYY-MM-DD)"
// @Param        date_to query string false "Latest invoice date (YYYY-MM-DD)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]billingapp.InvoiceListItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter billingapp.InvoiceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	// Set defaults
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, invoices, total, filter.Page, filter.PageSize)
}

// ListUnpaidByCustomer godoc
// @ID           listUnpaidInvoicesByCustomer
// @Summary      List a customer's unpaid invoices
// @Description  Retrieve the unpaid invoices of a customer, oldest invoice date first.
// @Description  Feeds the invoice picker on the payment entry form.
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Customer ID" format(uuid)
// @Success      200 {object} APIResponse[[]billingapp.InvoiceListItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /customers/{id}/unpaid-invoices [get]
func (h *InvoiceHandler) ListUnpaidByCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	invoices, err := h.invoiceService.ListUnpaidByCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoices)
}
