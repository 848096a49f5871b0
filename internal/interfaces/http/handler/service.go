package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/smartbill/backend/internal/application/catalog"
)

// ServiceHandler handles service catalog API endpoints
type ServiceHandler struct {
	BaseHandler
	serviceService *catalogapp.ServiceService
}

// NewServiceHandler creates a new ServiceHandler
func NewServiceHandler(serviceService *catalogapp.ServiceService) *ServiceHandler {
	return &ServiceHandler{
		serviceService: serviceService,
	}
}

// Create godoc
// @ID           createService
// @Summary      Create a new service
// @Description  Create a new service in the catalog. Service names are unique ignoring case.
// @Tags         services
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateServiceRequest true "Service creation request"
// @Success      201 {object} APIResponse[catalogapp.ServiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /services [post]
func (h *ServiceHandler) Create(c *gin.Context) {
	var req catalogapp.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	service, err := h.serviceService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, service)
}

// GetByID godoc
// @ID           getServiceById
// @Summary      Get service by ID
// @Description  Retrieve a catalog service by its ID
// @Tags         services
// @Produce      json
// @Param        id path string true "Service ID" format(uuid)
// @Success      200 {object} APIResponse[catalogapp.ServiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /services/{id} [get]
func (h *ServiceHandler) GetByID(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid service ID format")
		return
	}

	service, err := h.serviceService.GetByID(c.Request.Context(), serviceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, service)
}

// List godoc
// @ID           listServices
// @Summary      List services
// @Description  Retrieve a paginated list of catalog services with optional filtering
// @Tags         services
// @Produce      json
// @Param        search query string false "Search term (name, description)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Order by field" default(name)
// @Param        order_dir query string false "Order direction" Enums(asc, desc) default(asc)
// @Success      200 {object} APIResponse[[]catalogapp.ServiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /services [get]
func (h *ServiceHandler) List(c *gin.Context) {
	var filter catalogapp.ServiceListFilter
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

	services, total, err := h.serviceService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, services, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateService
// @Summary      Update a service
// @Description  Update an existing catalog service. Price changes do not touch already issued invoices.
// @Tags         services
// @Accept       json
// @Produce      json
// @Param        id path string true "Service ID" format(uuid)
// @Param        request body catalogapp.UpdateServiceRequest true "Service update request"
// @Success      200 {object} APIResponse[catalogapp.ServiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /services/{id} [put]
func (h *ServiceHandler) Update(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid service ID format")
		return
	}

	var req catalogapp.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	service, err := h.serviceService.Update(c.Request.Context(), serviceID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, service)
}

// Import godoc
// @ID           importServices
// @Summary      Import catalog services from CSV
// @Description  Bulk-create services from an uploaded CSV file with columns name, description, unit_price
// @Tags         services
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "CSV file"
// @Success      200 {object} APIResponse[csvimport.Report]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /services/import [post]
func (h *ServiceHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing CSV file upload")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Cannot read uploaded file")
		return
	}
	defer file.Close()

	report, err := h.serviceService.Import(c.Request.Context(), file)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, report)
}

// Delete godoc
// @ID           deleteService
// @Summary      Delete a service
// @Description  Delete a catalog service that does not appear on any invoice
// @Tags         services
// @Produce      json
// @Param        id path string true "Service ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /services/{id} [delete]
func (h *ServiceHandler) Delete(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid service ID format")
		return
	}

	if err := h.serviceService.Delete(c.Request.Context(), serviceID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
