package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbill/backend/internal/domain/catalog"
)

// =============================================================================
// Service DTOs
// =============================================================================

// CreateServiceRequest represents a request to create a catalog service
type CreateServiceRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=300"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// UpdateServiceRequest represents a request to update a catalog service
type UpdateServiceRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=300"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
}

// ServiceResponse represents a catalog service in API responses
type ServiceResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// ServiceListFilter represents filter options for service list
type ServiceListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToServiceResponse converts a domain Service to ServiceResponse
func ToServiceResponse(s *catalog.Service) ServiceResponse {
	return ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		UnitPrice:   s.UnitPrice,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		Version:     s.Version,
	}
}

// ToServiceResponses converts a slice of domain Services
func ToServiceResponses(services []*catalog.Service) []ServiceResponse {
	responses := make([]ServiceResponse, len(services))
	for i, s := range services {
		responses[i] = ToServiceResponse(s)
	}
	return responses
}
