package printing

import (
	"time"

	"github.com/google/uuid"
)

// RenderReportRequest represents a request to render the business report PDF
type RenderReportRequest struct {
	StartDate time.Time `form:"start_date" time_format:"2006-01-02" binding:"required"`
	EndDate   time.Time `form:"end_date" time_format:"2006-01-02" binding:"required"`
}

// DocumentResponse represents a generated PDF document
type DocumentResponse struct {
	DocumentID  uuid.UUID `json:"document_id"`
	FileName    string    `json:"file_name"`
	Path        string    `json:"path"`
	URL         string    `json:"url"`
	SizeBytes   int64     `json:"size_bytes"`
	GeneratedAt time.Time `json:"generated_at"`
}
