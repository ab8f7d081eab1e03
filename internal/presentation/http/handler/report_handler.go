package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/maghsala/maghsala-api/internal/application/service"
	"github.com/maghsala/maghsala-api/internal/presentation/http/dto/response"
)

// ReportHandler handles back-office report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// reportWindow reads from/to query params, defaulting to the last 30 days
func reportWindow(c *gin.Context) (time.Time, time.Time) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)
	if t := parseTimeQuery(c, "from"); t != nil {
		from = *t
	}
	if t := parseTimeQuery(c, "to"); t != nil {
		to = *t
	}
	return from, to
}

// SalesSummary returns revenue, method breakdown, and daily totals
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	from, to := reportWindow(c)

	var branchID *uuid.UUID
	if raw := c.Query("branch_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid branch ID")
			return
		}
		branchID = &id
	}

	summary, err := h.reportService.GetSalesSummary(c.Request.Context(), GetLaundryID(c), branchID, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales summary retrieved", summary)
}

// TopServices returns the best selling catalog services in a window
func (h *ReportHandler) TopServices(c *gin.Context) {
	from, to := reportWindow(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	results, err := h.reportService.GetTopServices(c.Request.Context(), GetLaundryID(c), from, to, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Top services retrieved", results)
}

// TopCustomers returns the highest spending customers
func (h *ReportHandler) TopCustomers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	results, err := h.reportService.GetTopCustomers(c.Request.Context(), GetLaundryID(c), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Top customers retrieved", results)
}
