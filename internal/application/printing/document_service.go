package printing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appreport "github.com/smartbill/backend/internal/application/report"
	"github.com/smartbill/backend/internal/domain/billing"
	"github.com/smartbill/backend/internal/domain/partner"
	"github.com/smartbill/backend/internal/domain/report"
	"github.com/smartbill/backend/internal/domain/shared"
	"github.com/smartbill/backend/internal/domain/shared/valueobject"
	infra "github.com/smartbill/backend/internal/infrastructure/printing"
)

// DocumentService renders invoices and business reports to PDF
type DocumentService struct {
	invoiceRepo    billing.InvoiceRepository
	customerRepo   partner.CustomerRepository
	reportService  *appreport.ReportService
	templateEngine *infra.TemplateEngine
	pdfRenderer    infra.PDFRenderer
	pdfStorage     infra.PDFStorage
	logger         *zap.Logger
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	invoiceRepo billing.InvoiceRepository,
	customerRepo partner.CustomerRepository,
	reportService *appreport.ReportService,
	templateEngine *infra.TemplateEngine,
	pdfRenderer infra.PDFRenderer,
	pdfStorage infra.PDFStorage,
	logger *zap.Logger,
) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentService{
		invoiceRepo:    invoiceRepo,
		customerRepo:   customerRepo,
		reportService:  reportService,
		templateEngine: templateEngine,
		pdfRenderer:    pdfRenderer,
		pdfStorage:     pdfStorage,
		logger:         logger,
	}
}

// RenderInvoice generates a PDF for the given invoice and stores it
func (s *DocumentService) RenderInvoice(ctx context.Context, invoiceID uuid.UUID) (*DocumentResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Invoice not found")
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	customer, err := s.customerRepo.FindByID(ctx, invoice.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice customer: %w", err)
	}

	doc := buildInvoiceDocument(invoice, customer)

	html, err := s.templateEngine.RenderString(ctx, "invoice", infra.InvoiceTemplateHTML, doc)
	if err != nil {
		s.logger.Error("invoice template rendering failed",
			zap.Error(err), zap.String("invoiceId", invoiceID.String()))
		return nil, shared.NewDomainError("DEPENDENCY_FAILED", "Document rendering failed. Please try again later.")
	}

	fileName := fmt.Sprintf("invoice-%s.pdf", invoice.Number)
	return s.renderAndStore(ctx, invoice.ID, fileName, html, "Invoice "+invoice.Number)
}

// RenderReport generates a business report PDF for the given period and stores it
func (s *DocumentService) RenderReport(ctx context.Context, req RenderReportRequest) (*DocumentResponse, error) {
	rpt, err := s.reportService.BusinessReport(ctx, appreport.PeriodRequest{
		Start: req.StartDate,
		End:   req.EndDate,
	})
	if err != nil {
		return nil, err
	}

	doc := buildReportDocument(rpt)

	html, err := s.templateEngine.RenderString(ctx, "report", infra.ReportTemplateHTML, doc)
	if err != nil {
		s.logger.Error("report template rendering failed", zap.Error(err))
		return nil, shared.NewDomainError("DEPENDENCY_FAILED", "Document rendering failed. Please try again later.")
	}

	fileName := fmt.Sprintf("report-%s-to-%s.pdf",
		rpt.PeriodStart.Format("2006-01-02"), rpt.PeriodEnd.Format("2006-01-02"))
	title := fmt.Sprintf("Business Report %s to %s",
		rpt.PeriodStart.Format("2006-01-02"), rpt.PeriodEnd.Format("2006-01-02"))
	return s.renderAndStore(ctx, uuid.New(), fileName, html, title)
}

// GetDocument opens a stored PDF by its relative path
func (s *DocumentService) GetDocument(ctx context.Context, path string) (io.ReadCloser, error) {
	reader, err := s.pdfStorage.Get(ctx, path)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Document not found")
	}
	return reader, nil
}

// renderAndStore converts HTML to PDF and persists the result
func (s *DocumentService) renderAndStore(ctx context.Context, documentID uuid.UUID, fileName, html, title string) (*DocumentResponse, error) {
	pdfResult, err := s.pdfRenderer.Render(ctx, &infra.RenderRequest{
		HTML:    html,
		Title:   title,
		Margins: infra.DefaultMargins(),
	})
	if err != nil {
		s.logger.Error("PDF rendering failed",
			zap.Error(err), zap.String("documentId", documentID.String()))
		return nil, shared.NewDomainError("DEPENDENCY_FAILED", "PDF generation failed. Please try again later.")
	}

	storeResult, err := s.pdfStorage.Store(ctx, &infra.StoreRequest{
		DocumentID: documentID,
		PDFData:    pdfResult.PDFData,
	})
	if err != nil {
		s.logger.Error("PDF storage failed",
			zap.Error(err), zap.String("documentId", documentID.String()))
		return nil, shared.NewDomainError("DEPENDENCY_FAILED", "Failed to save PDF file. Please try again later.")
	}

	s.logger.Info("PDF generated",
		zap.String("documentId", documentID.String()),
		zap.String("fileName", fileName),
		zap.String("url", storeResult.URL))

	return &DocumentResponse{
		DocumentID:  documentID,
		FileName:    fileName,
		Path:        storeResult.Path,
		URL:         storeResult.URL,
		SizeBytes:   storeResult.Size,
		GeneratedAt: time.Now(),
	}, nil
}

// buildInvoiceDocument maps an invoice and its customer into template data
func buildInvoiceDocument(invoice *billing.Invoice, customer *partner.Customer) infra.InvoiceDocument {
	items := make([]infra.InvoiceDocumentItem, len(invoice.Items))
	for i, item := range invoice.Items {
		items[i] = infra.InvoiceDocumentItem{
			Name:      item.ServiceName,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Total:     item.Amount,
		}
	}

	cgst, sgst := invoice.TaxHalves()

	return infra.InvoiceDocument{
		Number:          invoice.Number,
		InvoiceDate:     invoice.InvoiceDate,
		Status:          string(invoice.Status),
		CustomerName:    customer.Name,
		CustomerEmail:   customer.Email,
		CustomerPhone:   customer.Phone,
		CustomerAddress: customer.Address,
		Items:           items,
		Subtotal:        invoice.Subtotal,
		CGST:            cgst.Amount(),
		SGST:            sgst.Amount(),
		TaxAmount:       invoice.TaxAmount,
		GrandTotal:      invoice.GrandTotal,
	}
}

// buildReportDocument maps the business report figures into template data
func buildReportDocument(rpt *report.BusinessReport) infra.ReportDocument {
	invoices := make([]infra.ReportInvoiceRow, len(rpt.Invoices))
	for i, inv := range rpt.Invoices {
		invoices[i] = infra.ReportInvoiceRow{
			Number:       inv.Number,
			InvoiceDate:  inv.InvoiceDate,
			CustomerName: inv.CustomerName,
			GrandTotal:   inv.GrandTotal,
			Status:       inv.Status,
		}
	}

	payments := make([]infra.ReportPaymentRow, len(rpt.Payments))
	for i, p := range rpt.Payments {
		payments[i] = infra.ReportPaymentRow{
			InvoiceNumber: p.InvoiceNumber,
			PaymentDate:   p.PaymentDate,
			CustomerName:  p.CustomerName,
			Method:        p.Method,
			Amount:        p.Amount,
		}
	}

	services := make([]infra.ReportServiceRow, 0, len(rpt.ServiceBreakdown))
	for _, svc := range rpt.ServiceBreakdown {
		if svc.TimesBilled == 0 {
			continue
		}
		services = append(services, infra.ReportServiceRow{
			ServiceName: svc.ServiceName,
			TimesBilled: int(svc.TimesBilled),
			Revenue:     svc.Revenue,
		})
	}

	halves, _ := valueobject.NewMoneyINR(rpt.TotalTax).Allocate(2)

	return infra.ReportDocument{
		PeriodStart:  rpt.PeriodStart,
		PeriodEnd:    rpt.PeriodEnd,
		TotalRevenue: rpt.TotalBilled,
		TotalTax:     rpt.TotalTax,
		CGST:         halves[0].Amount(),
		SGST:         halves[1].Amount(),
		InvoiceCount: int(rpt.InvoiceCount),
		PaymentCount: len(rpt.Payments),
		Invoices:     invoices,
		Payments:     payments,
		Services:     services,
	}
}
