package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	reportapp "github.com/smartbill/backend/internal/application/report"
	"github.com/smartbill/backend/internal/domain/report"
)

func setupReportTestRouter() (*gin.Engine, *MockReportRepository, *ReportHandler) {
	gin.SetMode(gin.TestMode)

	reportRepo := new(MockReportRepository)
	service := reportapp.NewReportService(reportRepo)
	handler := NewReportHandler(service)

	router := gin.New()
	return router, reportRepo, handler
}

func TestReportHandler_RevenueByPeriod(t *testing.T) {
	t.Run("returns monthly revenue buckets", func(t *testing.T) {
		router, reportRepo, handler := setupReportTestRouter()
		router.GET("/reports/revenue", handler.RevenueByPeriod)

		buckets := []report.RevenueBucket{
			{
				PeriodStart:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
				PaymentCount: 4,
				Revenue:      decimal.NewFromInt(5400),
			},
			{
				PeriodStart:  time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
				PaymentCount: 2,
				Revenue:      decimal.NewFromInt(1980),
			},
		}
		reportRepo.On("RevenueByPeriod", mock.Anything, report.GranularityMonth,
			time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)).
			Return(buckets, nil)

		req, _ := http.NewRequest(http.MethodGet,
			"/reports/revenue?granularity=month&start=2026-03-01&end=2026-04-30", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Success bool                   `json:"success"`
			Data    []report.RevenueBucket `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.Data, 2)
		assert.Equal(t, int64(4), response.Data[0].PaymentCount)
		reportRepo.AssertExpectations(t)
	})

	t.Run("rejects unknown granularity", func(t *testing.T) {
		router, _, handler := setupReportTestRouter()
		router.GET("/reports/revenue", handler.RevenueByPeriod)

		req, _ := http.NewRequest(http.MethodGet,
			"/reports/revenue?granularity=quarter&start=2026-03-01&end=2026-04-30", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects missing date range", func(t *testing.T) {
		router, _, handler := setupReportTestRouter()
		router.GET("/reports/revenue", handler.RevenueByPeriod)

		req, _ := http.NewRequest(http.MethodGet, "/reports/revenue?granularity=day", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects end before start", func(t *testing.T) {
		router, _, handler := setupReportTestRouter()
		router.GET("/reports/revenue", handler.RevenueByPeriod)

		req, _ := http.NewRequest(http.MethodGet,
			"/reports/revenue?granularity=day&start=2026-04-30&end=2026-03-01", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestReportHandler_ServicePerformance(t *testing.T) {
	t.Run("returns per-service figures including unused services", func(t *testing.T) {
		router, reportRepo, handler := setupReportTestRouter()
		router.GET("/reports/services", handler.ServicePerformance)

		rows := []report.ServicePerformance{
			{
				ServiceID:      uuid.New(),
				ServiceName:    "Grooming",
				TimesBilled:    3,
				QuantityBilled: 5,
				Revenue:        decimal.NewFromInt(2250),
			},
			{
				ServiceID:      uuid.New(),
				ServiceName:    "Training",
				TimesBilled:    0,
				QuantityBilled: 0,
				Revenue:        decimal.Zero,
			},
		}
		reportRepo.On("ServicePerformance", mock.Anything,
			time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)).
			Return(rows, nil)

		req, _ := http.NewRequest(http.MethodGet,
			"/reports/services?start=2026-04-01&end=2026-04-30", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Grooming")
		assert.Contains(t, w.Body.String(), "Training")
	})
}

func TestReportHandler_BusinessReport(t *testing.T) {
	t.Run("composes totals from invoices and payments", func(t *testing.T) {
		router, reportRepo, handler := setupReportTestRouter()
		router.GET("/reports/business", handler.BusinessReport)

		start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)

		invoices := []report.InvoiceSummary{
			{
				InvoiceID:    uuid.New(),
				Number:       "INV-2026-00010",
				CustomerName: "Asha Rao",
				InvoiceDate:  start.AddDate(0, 0, 4),
				TaxAmount:    decimal.NewFromInt(90),
				GrandTotal:   decimal.NewFromInt(990),
				Status:       "PAID",
			},
			{
				InvoiceID:    uuid.New(),
				Number:       "INV-2026-00011",
				CustomerName: "Vikram Shah",
				InvoiceDate:  start.AddDate(0, 0, 10),
				TaxAmount:    decimal.NewFromInt(120),
				GrandTotal:   decimal.NewFromInt(1320),
				Status:       "UNPAID",
			},
		}
		payments := []report.PaymentSummary{
			{
				PaymentID:     uuid.New(),
				InvoiceNumber: "INV-2026-00010",
				CustomerName:  "Asha Rao",
				Amount:        decimal.NewFromInt(990),
				GrandTotal:    decimal.NewFromInt(990),
				Method:        "CARD",
				PaymentDate:   start.AddDate(0, 0, 5),
			},
		}

		reportRepo.On("InvoicesInRange", mock.Anything, start, end).Return(invoices, nil)
		reportRepo.On("PaymentsInRange", mock.Anything, start, end).Return(payments, nil)
		reportRepo.On("ServicePerformance", mock.Anything, start, end).
			Return([]report.ServicePerformance{}, nil)

		req, _ := http.NewRequest(http.MethodGet,
			"/reports/business?start=2026-04-01&end=2026-04-30", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Data report.BusinessReport `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, int64(2), response.Data.InvoiceCount)
		assert.Equal(t, int64(1), response.Data.PaidInvoiceCount)
		assert.Equal(t, "2310", response.Data.TotalBilled.String())
		assert.Equal(t, "210", response.Data.TotalTax.String())
		assert.Equal(t, "990", response.Data.TotalCollected.String())
		assert.Equal(t, "1320", response.Data.TotalOutstanding.String())
		reportRepo.AssertExpectations(t)
	})
}

func TestReportHandler_DashboardSummary(t *testing.T) {
	t.Run("returns business counters", func(t *testing.T) {
		router, reportRepo, handler := setupReportTestRouter()
		router.GET("/reports/dashboard", handler.DashboardSummary)

		summary := &report.DashboardSummary{
			TotalCustomers:    12,
			TotalServices:     6,
			TotalInvoices:     40,
			UnpaidInvoices:    7,
			TotalRevenue:      decimal.NewFromInt(52000),
			OutstandingAmount: decimal.NewFromInt(9300),
		}
		reportRepo.On("DashboardSummary", mock.Anything, 5).Return(summary, nil)

		req, _ := http.NewRequest(http.MethodGet, "/reports/dashboard", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Data report.DashboardSummary `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, int64(12), response.Data.TotalCustomers)
		assert.Equal(t, int64(7), response.Data.UnpaidInvoices)
		reportRepo.AssertExpectations(t)
	})
}
