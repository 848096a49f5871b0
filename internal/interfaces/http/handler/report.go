package handler

import (
	"github.com/gin-gonic/gin"

	reportapp "github.com/smartbill/backend/internal/application/report"
)

// ReportHandler handles report-related API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// RevenueByPeriod godoc
// @ID           getRevenueByPeriod
// @Summary      Get revenue buckets
// @Description  Bucket collected payments by payment date at day, week or month
// @Description  granularity. Buckets with no payments are omitted.
// @Tags         reports
// @Produce      json
// @Param        granularity query string true "Bucket granularity" Enums(day, week, month)
// @Param        start query string true "Range start (YYYY-MM-DD)"
// @Param        end query string true "Range end (YYYY-MM-DD)"
// @Success      200 {object} APIResponse[[]report.RevenueBucket]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /reports/revenue [get]
func (h *ReportHandler) RevenueByPeriod(c *gin.Context) {
	var req reportapp.RevenueByPeriodRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	buckets, err := h.reportService.RevenueByPeriod(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, buckets)
}

// ServicePerformance godoc
// @ID           getServicePerformance
// @Summary      Get service performance
// @Description  Report billing counts and revenue per catalog service for invoices
// @Description  dated in the range, highest revenue first. Services with no usage
// @Description  appear with zeros.
// @Tags         reports
// @Produce      json
// @Param        start query string true "Range start (YYYY-MM-DD)"
// @Param        end query string true "Range end (YYYY-MM-DD)"
// @Success      200 {object} APIResponse[[]report.ServicePerformance]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /reports/services [get]
func (h *ReportHandler) ServicePerformance(c *gin.Context) {
	var req reportapp.PeriodRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rows, err := h.reportService.ServicePerformance(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, rows)
}

// BusinessReport godoc
// @ID           getBusinessReport
// @Summary      Get the business report
// @Description  Aggregate invoices, collections and service performance for a date
// @Description  range into a single report document
// @Tags         reports
// @Produce      json
// @Param        start query string true "Range start (YYYY-MM-DD)"
// @Param        end query string true "Range end (YYYY-MM-DD)"
// @Success      200 {object} APIResponse[report.BusinessReport]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /reports/business [get]
func (h *ReportHandler) BusinessReport(c *gin.Context) {
	var req reportapp.PeriodRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rpt, err := h.reportService.BusinessReport(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, rpt)
}

// DashboardSummary godoc
// @ID           getDashboardSummary
// @Summary      Get dashboard summary
// @Description  At-a-glance counters: customers, services, invoices, unpaid invoices,
// @Description  revenue collected, outstanding amount and recent activity
// @Tags         reports
// @Produce      json
// @Success      200 {object} APIResponse[report.DashboardSummary]
// @Failure      500 {object} ErrorResponse
// @Router       /reports/dashboard [get]
func (h *ReportHandler) DashboardSummary(c *gin.Context) {
	summary, err := h.reportService.DashboardSummary(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}
