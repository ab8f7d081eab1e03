package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/maghsala/maghsala-api/internal/application/service"
	"github.com/maghsala/maghsala-api/internal/domain/repository"
	"github.com/maghsala/maghsala-api/internal/presentation/http/dto/request"
	"github.com/maghsala/maghsala-api/internal/presentation/http/dto/response"
	"github.com/maghsala/maghsala-api/pkg/apperror"
)

// CashDrawerHandler handles cash drawer session HTTP requests
type CashDrawerHandler struct {
	drawerService *service.CashDrawerService
}

// NewCashDrawerHandler creates a new cash drawer handler
func NewCashDrawerHandler(drawerService *service.CashDrawerService) *CashDrawerHandler {
	return &CashDrawerHandler{drawerService: drawerService}
}

// Open starts a drawer session for the authenticated cashier
// @Summary Open shift
// @Description Open a cash drawer session with a counted opening float
// @Tags cash-sessions
// @Accept json
// @Produce json
// @Param request body request.OpenShiftRequest true "Opening float"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /cash-sessions/open [post]
func (h *CashDrawerHandler) Open(c *gin.Context) {
	userID := GetUserID(c)
	branchID := GetBranchID(c)
	if userID == nil || branchID == nil {
		response.Unauthorized(c, "User is not assigned to a branch")
		return
	}

	var req request.OpenShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	session, err := h.drawerService.OpenShift(c.Request.Context(), &service.OpenShiftInput{
		LaundryID:   GetLaundryID(c),
		BranchID:    *branchID,
		UserID:      *userID,
		OpeningCash: req.OpeningCash,
		Notes:       req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Shift opened", session)
}

// Close reconciles and closes the cashier's open session
// @Summary Close shift
// @Description Close the open session, reconciling counted against expected takings
// @Tags cash-sessions
// @Accept json
// @Produce json
// @Param request body request.CloseShiftRequest true "Counted amounts"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /cash-sessions/close [post]
func (h *CashDrawerHandler) Close(c *gin.Context) {
	userID := GetUserID(c)
	branchID := GetBranchID(c)
	if userID == nil || branchID == nil {
		response.Unauthorized(c, "User is not assigned to a branch")
		return
	}

	var req request.CloseShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.drawerService.CloseShift(c.Request.Context(), GetLaundryID(c), *branchID, *userID, service.CountedAmounts{
		Cash:     req.CountedCash,
		Card:     req.CountedCard,
		Transfer: req.CountedTransfer,
	}, req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shift closed", result)
}

// Current returns the cashier's open session, if any. No open session is a
// normal state for the POS, not an error.
func (h *CashDrawerHandler) Current(c *gin.Context) {
	userID := GetUserID(c)
	branchID := GetBranchID(c)
	if userID == nil || branchID == nil {
		response.Unauthorized(c, "User is not assigned to a branch")
		return
	}

	session, err := h.drawerService.GetCurrentSession(c.Request.Context(), GetLaundryID(c), *branchID, *userID)
	if err != nil {
		if apperror.GetAppError(err).Code == http.StatusNotFound {
			response.OK(c, "No open session", gin.H{"active": false})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Current session retrieved", gin.H{
		"active":  true,
		"session": session,
	})
}

// Expected previews the expected takings for the open session so far
func (h *CashDrawerHandler) Expected(c *gin.Context) {
	userID := GetUserID(c)
	branchID := GetBranchID(c)
	if userID == nil || branchID == nil {
		response.Unauthorized(c, "User is not assigned to a branch")
		return
	}

	laundryID := GetLaundryID(c)
	session, err := h.drawerService.GetCurrentSession(c.Request.Context(), laundryID, *branchID, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	expected, err := h.drawerService.ComputeExpected(c.Request.Context(), laundryID, *branchID, *userID, session.OpenedAt, time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expected takings computed", gin.H{
		"session_id": session.ID,
		"opened_at":  session.OpenedAt,
		"expected":   expected,
	})
}

// List returns past sessions for back-office review
func (h *CashDrawerHandler) List(c *gin.Context) {
	params := &repository.CashSessionFilterParams{
		Pagination: PageParams(c),
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
		cashierID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid user ID")
			return
		}
		params.UserID = &cashierID
	}
	if raw := c.Query("status"); raw != "" {
		params.Status = &raw
	}

	result, err := h.drawerService.ListSessions(c.Request.Context(), GetLaundryID(c), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sessions retrieved successfully", result)
}
