package billing

import (
	"context"
	"time"

	"github.com/smartbill/backend/internal/domain/billing"
	"github.com/smartbill/backend/internal/domain/report"
	"github.com/smartbill/backend/internal/domain/shared/valueobject"
)

// PaymentService handles payment recording and listing
type PaymentService struct {
	paymentRepo billing.PaymentRepository
	invoiceRepo billing.InvoiceRepository
	reportRepo  report.Repository
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(paymentRepo billing.PaymentRepository, invoiceRepo billing.InvoiceRepository, reportRepo report.Repository) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		reportRepo:  reportRepo,
	}
}

// Log records a payment against an unpaid invoice.
// The payment row and the invoice status flip commit in one transaction.
// A single payment settles the invoice regardless of the amount paid.
func (s *PaymentService) Log(ctx context.Context, req LogPaymentRequest) (*PaymentResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, req.InvoiceID)
	if err != nil {
		return nil, err
	}

	payment, err := billing.NewPayment(
		invoice,
		valueobject.NewMoneyINR(req.Amount),
		billing.PaymentMethod(req.Method),
		req.PaymentDate,
		req.Notes,
	)
	if err != nil {
		return nil, err
	}

	if err := invoice.MarkPaid(payment.PaymentDate); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.SaveWithInvoice(ctx, payment, invoice); err != nil {
		return nil, err
	}

	response := ToPaymentResponse(payment)
	return &response, nil
}

// List retrieves payments ordered by payment date descending, each row
// joined with the customer name and invoice grand total
func (s *PaymentService) List(ctx context.Context, filter PaymentListFilter) ([]PaymentListItemResponse, error) {
	var start, end time.Time
	if filter.From != nil {
		start = *filter.From
	}
	if filter.To != nil {
		end = *filter.To
	}

	rows, err := s.reportRepo.PaymentsInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	responses := make([]PaymentListItemResponse, len(rows))
	for i, row := range rows {
		responses[i] = PaymentListItemResponse{
			ID:            row.PaymentID,
			InvoiceID:     row.InvoiceID,
			InvoiceNumber: row.InvoiceNumber,
			CustomerName:  row.CustomerName,
			Amount:        row.Amount,
			GrandTotal:    row.GrandTotal,
			Method:        row.Method,
			PaymentDate:   row.PaymentDate,
		}
	}

	return responses, nil
}
