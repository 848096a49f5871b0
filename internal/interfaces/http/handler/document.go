package handler

import (
	"io"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	printingapp "github.com/smartbill/backend/internal/application/printing"
)

// DocumentHandler handles PDF document API endpoints
type DocumentHandler struct {
	BaseHandler
	documentService *printingapp.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService *printingapp.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
	}
}

// RenderInvoice godoc
// @ID           renderInvoicePdf
// @Summary      Render an invoice PDF
// @Description  Generate and store the printable A4 PDF for an invoice. The response
// @Description  carries the URL the stored file is served from.
// @Tags         documents
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      201 {object} APIResponse[printingapp.DocumentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Router       /invoices/{id}/pdf [post]
func (h *DocumentHandler) RenderInvoice(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	doc, err := h.documentService.RenderInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, doc)
}

// RenderReport godoc
// @ID           renderReportPdf
// @Summary      Render a business report PDF
// @Description  Generate and store the printable A4 PDF of the business report for a date range
// @Tags         documents
// @Produce      json
// @Param        start_date query string true "Range start (YYYY-MM-DD)"
// @Param        end_date query string true "Range end (YYYY-MM-DD)"
// @Success      201 {object} APIResponse[printingapp.DocumentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Router       /reports/business/pdf [post]
func (h *DocumentHandler) RenderReport(c *gin.Context) {
	var req printingapp.RenderReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	doc, err := h.documentService.RenderReport(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, doc)
}

// Download godoc
// @ID           downloadDocument
// @Summary      Download a stored PDF
// @Description  Stream a previously generated PDF by its stored path
// @Tags         documents
// @Produce      application/pdf
// @Param        path path string true "Stored document path"
// @Success      200 {file} binary
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /documents/files/{path} [get]
func (h *DocumentHandler) Download(c *gin.Context) {
	relPath := strings.TrimPrefix(c.Param("path"), "/")
	if relPath == "" {
		h.BadRequest(c, "Document path is required")
		return
	}

	// Reject traversal outside the storage root
	if strings.Contains(relPath, "..") {
		h.BadRequest(c, "Invalid document path")
		return
	}

	reader, err := h.documentService.GetDocument(c.Request.Context(), relPath)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	defer func() {
		_ = reader.Close()
	}()

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "inline; filename=\""+path.Base(relPath)+"\"")

	if _, err := io.Copy(c.Writer, reader); err != nil {
		// Headers are already written, nothing left to do but abort
		c.Abort()
	}
}
