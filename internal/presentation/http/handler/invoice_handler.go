package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/maghsala/maghsala-api/internal/application/service"
	"github.com/maghsala/maghsala-api/internal/domain/enum"
	"github.com/maghsala/maghsala-api/internal/domain/repository"
	"github.com/maghsala/maghsala-api/internal/presentation/http/dto/request"
	"github.com/maghsala/maghsala-api/internal/presentation/http/dto/response"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Create rings up a new sale
// @Summary Create invoice
// @Description Create an invoice from catalog items, numbered per laundry
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body request.CreateInvoiceRequest true "Invoice data"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	branchID := GetBranchID(c)
	if userID == nil || branchID == nil {
		response.Unauthorized(c, "User is not assigned to a branch")
		return
	}

	var req request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateInvoiceInput{
		LaundryID:       GetLaundryID(c),
		BranchID:        *branchID,
		CreatedByID:     *userID,
		DiscountPercent: req.DiscountPercent,
		DeliveryFee:     req.DeliveryFee,
		Notes:           req.Notes,
	}

	if req.CustomerID != nil {
		customerID, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		input.CustomerID = &customerID
	}

	for _, item := range req.Items {
		serviceID, err := uuid.Parse(item.ServiceID)
		if err != nil {
			response.BadRequest(c, "Invalid service ID")
			return
		}
		input.Items = append(input.Items, service.InvoiceItemInput{
			ServiceID: serviceID,
			Quantity:  item.Quantity,
			Notes:     item.Notes,
		})
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// List handles listing invoices with filters
func (h *InvoiceHandler) List(c *gin.Context) {
	params := &repository.InvoiceFilterParams{
		Pagination: PageParams(c),
		Search:     c.Query("search"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
		StartDate:  parseTimeQuery(c, "start_date"),
		EndDate:    parseTimeQuery(c, "end_date"),
	}

	if raw := c.Query("status"); raw != "" {
		status := enum.InvoiceStatus(raw)
		params.Status = &status
	}
	if raw := c.Query("payment_status"); raw != "" {
		ps := enum.PaymentStatus(raw)
		params.PaymentStatus = &ps
	}
	if raw := c.Query("branch_id"); raw != "" {
		branchID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid branch ID")
			return
		}
		params.BranchID = &branchID
	}
	if raw := c.Query("customer_id"); raw != "" {
		customerID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		params.CustomerID = &customerID
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), GetLaundryID(c), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Get returns an invoice with its items and QR payload
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), GetLaundryID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Stats returns invoice counts per status plus today's takings
func (h *InvoiceHandler) Stats(c *gin.Context) {
	var branchID *uuid.UUID
	if raw := c.Query("branch_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid branch ID")
			return
		}
		branchID = &id
	}

	stats, err := h.invoiceService.GetStats(c.Request.Context(), GetLaundryID(c), branchID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice stats retrieved", stats)
}

// UpdateStatus moves an invoice through the workflow
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.UpdateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	status := enum.InvoiceStatus(req.Status)
	if !status.IsValid() {
		response.BadRequest(c, "Invalid invoice status")
		return
	}

	invoice, err := h.invoiceService.UpdateInvoiceStatus(c.Request.Context(), GetLaundryID(c), id, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice status updated", invoice)
}

// ApplyDiscount changes the discount on an invoice, audit-logged
func (h *InvoiceHandler) ApplyDiscount(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.ApplyDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.ApplyDiscount(c.Request.Context(), GetLaundryID(c), id, *userID, req.DiscountPercent)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount applied", invoice)
}

// RecordPayment marks an invoice as paid
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.RecordPayment(c.Request.Context(), GetLaundryID(c), id, enum.NormalizePaymentMethod(req.Method))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded", invoice)
}

// Cancel voids an invoice
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.CancelInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.CancelInvoice(c.Request.Context(), GetLaundryID(c), id, *userID, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice cancelled", invoice)
}
