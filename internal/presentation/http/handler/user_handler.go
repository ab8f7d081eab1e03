package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/maghsala/maghsala-api/internal/application/service"
	"github.com/maghsala/maghsala-api/internal/presentation/http/dto/response"
)

// UserHandler handles staff management HTTP requests
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List handles listing the laundry's staff
func (h *UserHandler) List(c *gin.Context) {
	result, err := h.userService.ListStaff(c.Request.Context(), GetLaundryID(c), PageParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Staff retrieved successfully", result)
}

// Create handles creating a staff member, subject to the plan's user limit
func (h *UserHandler) Create(c *gin.Context) {
	var req struct {
		FirstName string  `json:"first_name" binding:"required"`
		LastName  string  `json:"last_name" binding:"required"`
		Email     string  `json:"email" binding:"required,email"`
		Password  string  `json:"password" binding:"required,min=8"`
		Phone     *string `json:"phone"`
		Role      string  `json:"role"`
		BranchID  *string `json:"branch_id" binding:"omitempty,uuid"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateStaffInput{
		LaundryID: GetLaundryID(c),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
		RoleName:  req.Role,
	}
	if req.BranchID != nil {
		branchID, _ := uuid.Parse(*req.BranchID)
		input.BranchID = &branchID
	}

	user, err := h.userService.CreateStaff(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Staff member created successfully", user)
}

// Get handles retrieving a staff member
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.GetStaff(c.Request.Context(), GetLaundryID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staff member retrieved successfully", user)
}

// Update handles updating a staff member
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	var req struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Phone     *string `json:"phone"`
		BranchID  *string `json:"branch_id" binding:"omitempty,uuid"`
		IsActive  *bool   `json:"is_active"`
		Role      *string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateStaffInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		IsActive:  req.IsActive,
		RoleName:  req.Role,
	}
	if req.BranchID != nil {
		branchID, _ := uuid.Parse(*req.BranchID)
		input.BranchID = &branchID
	}

	user, err := h.userService.UpdateStaff(c.Request.Context(), GetLaundryID(c), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staff member updated successfully", user)
}

// Delete handles removing a staff member
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.userService.DeleteStaff(c.Request.Context(), GetLaundryID(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staff member removed successfully", nil)
}
