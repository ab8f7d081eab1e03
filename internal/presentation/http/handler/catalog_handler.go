package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/maghsala/maghsala-api/internal/application/service"
	"github.com/maghsala/maghsala-api/internal/presentation/http/dto/response"
)

// CatalogHandler handles service catalog HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListServices handles listing catalog services
func (h *CatalogHandler) ListServices(c *gin.Context) {
	activeOnly := c.DefaultQuery("active", "") == "true"

	services, err := h.catalogService.ListServices(c.Request.Context(), GetLaundryID(c), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Services retrieved successfully", services)
}

// CreateService handles creating a catalog service
func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req struct {
		CategoryID *string `json:"category_id" binding:"omitempty,uuid"`
		Name       string  `json:"name" binding:"required"`
		NameAr     *string `json:"name_ar"`
		Price      float64 `json:"price" binding:"gte=0"`
		Unit       string  `json:"unit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateServiceInput{
		LaundryID: GetLaundryID(c),
		Name:      req.Name,
		NameAr:    req.NameAr,
		Price:     req.Price,
		Unit:      req.Unit,
	}
	if req.CategoryID != nil {
		categoryID, _ := uuid.Parse(*req.CategoryID)
		input.CategoryID = &categoryID
	}

	svc, err := h.catalogService.CreateService(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Service created successfully", svc)
}

// GetService handles retrieving a single catalog service
func (h *CatalogHandler) GetService(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	svc, err := h.catalogService.GetService(c.Request.Context(), GetLaundryID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service retrieved successfully", svc)
}

// UpdateService handles updating a catalog service
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	var req struct {
		CategoryID *string  `json:"category_id" binding:"omitempty,uuid"`
		Name       *string  `json:"name"`
		NameAr     *string  `json:"name_ar"`
		Price      *float64 `json:"price" binding:"omitempty,gte=0"`
		Unit       *string  `json:"unit"`
		IsActive   *bool    `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateServiceInput{
		Name:     req.Name,
		NameAr:   req.NameAr,
		Price:    req.Price,
		Unit:     req.Unit,
		IsActive: req.IsActive,
	}
	if req.CategoryID != nil {
		categoryID, _ := uuid.Parse(*req.CategoryID)
		input.CategoryID = &categoryID
	}

	svc, err := h.catalogService.UpdateService(c.Request.Context(), GetLaundryID(c), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service updated successfully", svc)
}

// DeleteService handles deleting a catalog service
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	if err := h.catalogService.DeleteService(c.Request.Context(), GetLaundryID(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service deleted successfully", nil)
}

// ListCategories handles listing service categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context(), GetLaundryID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Categories retrieved successfully", categories)
}

// CreateCategory handles creating a service category
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name      string  `json:"name" binding:"required"`
		NameAr    *string `json:"name_ar"`
		SortOrder int     `json:"sort_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), &service.CreateCategoryInput{
		LaundryID: GetLaundryID(c),
		Name:      req.Name,
		NameAr:    req.NameAr,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Category created successfully", category)
}

// DeleteCategory handles deleting a service category
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.catalogService.DeleteCategory(c.Request.Context(), GetLaundryID(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category deleted successfully", nil)
}
