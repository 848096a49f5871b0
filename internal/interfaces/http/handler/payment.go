package handler

import (
	"github.com/gin-gonic/gin"

	billingapp "github.com/smartbill/backend/internal/application/billing"
)

// PaymentHandler handles payment-related API endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *billingapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *billingapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// Log godoc
// @ID           logPayment
// @Summary      Log a payment
// @Description  Record a payment against an unpaid invoice. The invoice flips to PAID
// @Description  in the same transaction; a single payment settles the invoice.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body billingapp.LogPaymentRequest true "Payment log request"
// @Success      201 {object} APIResponse[billingapp.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /payments [post]
func (h *PaymentHandler) Log(c *gin.Context) {
	var req billingapp.LogPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payment, err := h.paymentService.Log(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, payment)
}

// List godoc
// @ID           listPayments
// @Summary      List payments
// @Description  Retrieve payments newest first, each joined with the invoice number,
// @Description  customer name and invoice grand total
// @Tags         payments
// @Produce      json
// @Param        from query string false "Earliest payment date (YYYY-MM-DD)"
// @Param        to query string false "Latest payment date (YYYY-MM-DD)"
// @Success      200 {object} APIResponse[[]billingapp.PaymentListItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	var filter billingapp.PaymentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payments, err := h.paymentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payments)
}
