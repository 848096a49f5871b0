package report

import (
	"time"
)

// RevenueByPeriodRequest represents a revenue bucket query
type RevenueByPeriodRequest struct {
	Granularity string    `form:"granularity" binding:"required,oneof=day week month"`
	Start       time.Time `form:"start" binding:"required" time_format:"2006-01-02"`
	End         time.Time `form:"end" binding:"required" time_format:"2006-01-02"`
}

// PeriodRequest represents a plain date-range query
type PeriodRequest struct {
	Start time.Time `form:"start" binding:"required" time_format:"2006-01-02"`
	End   time.Time `form:"end" binding:"required" time_format:"2006-01-02"`
}
