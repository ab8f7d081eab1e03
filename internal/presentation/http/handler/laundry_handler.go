package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/maghsala/maghsala-api/internal/application/service"
	"github.com/maghsala/maghsala-api/internal/presentation/http/dto/response"
)

// LaundryHandler handles laundry profile and settings HTTP requests
type LaundryHandler struct {
	laundryService *service.LaundryService
}

// NewLaundryHandler creates a new laundry handler
func NewLaundryHandler(laundryService *service.LaundryService) *LaundryHandler {
	return &LaundryHandler{laundryService: laundryService}
}

// Get returns the laundry profile with its settings
func (h *LaundryHandler) Get(c *gin.Context) {
	laundry, err := h.laundryService.GetLaundry(c.Request.Context(), GetLaundryID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Laundry retrieved successfully", laundry)
}

// Update changes the laundry profile
func (h *LaundryHandler) Update(c *gin.Context) {
	var req struct {
		Name *string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	laundry, err := h.laundryService.UpdateLaundry(c.Request.Context(), GetLaundryID(c), &service.UpdateLaundryInput{
		Name: req.Name,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Laundry updated successfully", laundry)
}

// UpdateSettings merges changes into the settings document. Fiscal identity
// fields feed every future receipt QR, so changes there are audit-logged.
func (h *LaundryHandler) UpdateSettings(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		DisplayName   *string  `json:"laundry_name"`
		TaxNumber     *string  `json:"tax_number"`
		Currency      *string  `json:"currency"`
		Timezone      *string  `json:"timezone"`
		Locale        *string  `json:"locale"`
		TaxRate       *float64 `json:"tax_rate"`
		InvoicePrefix *string  `json:"invoice_prefix"`
		Address       *string  `json:"address"`
		Phone         *string  `json:"phone"`
		Footer        *string  `json:"footer"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	laundry, err := h.laundryService.UpdateSettings(c.Request.Context(), GetLaundryID(c), *userID, &service.UpdateSettingsInput{
		DisplayName:   req.DisplayName,
		TaxNumber:     req.TaxNumber,
		Currency:      req.Currency,
		Timezone:      req.Timezone,
		Locale:        req.Locale,
		TaxRate:       req.TaxRate,
		InvoicePrefix: req.InvoicePrefix,
		Address:       req.Address,
		Phone:         req.Phone,
		Footer:        req.Footer,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", laundry)
}
