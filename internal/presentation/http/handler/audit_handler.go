package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/maghsala/maghsala-api/internal/application/service"
	"github.com/maghsala/maghsala-api/internal/domain/enum"
	"github.com/maghsala/maghsala-api/internal/domain/repository"
	"github.com/maghsala/maghsala-api/internal/presentation/http/dto/response"
)

// AuditHandler handles audit log HTTP requests
type AuditHandler struct {
	auditService *service.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// List returns audit log entries, newest first
func (h *AuditHandler) List(c *gin.Context) {
	params := &repository.AuditFilterParams{
		Pagination: PageParams(c),
		Action:     c.Query("action"),
		StartDate:  parseTimeQuery(c, "start_date"),
		EndDate:    parseTimeQuery(c, "end_date"),
	}

	if raw := c.Query("branch_id"); raw != "" {
		branchID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid branch ID")
			return
		}
		params.BranchID = &branchID
	}
	if raw := c.Query("user_id"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid user ID")
			return
		}
		params.UserID = &userID
	}
	if raw := c.Query("risk_level"); raw != "" {
		risk := enum.RiskLevel(raw)
		params.RiskLevel = &risk
	}

	result, err := h.auditService.ListAuditLogs(c.Request.Context(), GetLaundryID(c), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Audit logs retrieved successfully", result)
}

// Flagged returns only entries flagged for review, newest first
func (h *AuditHandler) Flagged(c *gin.Context) {
	flagged := true
	params := &repository.AuditFilterParams{
		Pagination: PageParams(c),
		Flagged:    &flagged,
		StartDate:  parseTimeQuery(c, "start_date"),
		EndDate:    parseTimeQuery(c, "end_date"),
	}

	result, err := h.auditService.ListAuditLogs(c.Request.Context(), GetLaundryID(c), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Flagged audit logs retrieved successfully", result)
}
