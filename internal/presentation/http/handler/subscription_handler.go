package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/maghsala/maghsala-api/internal/application/service"
	"github.com/maghsala/maghsala-api/internal/presentation/http/dto/response"
)

// SubscriptionHandler handles subscription plan HTTP requests
type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// ListPlans returns the available plans
func (h *SubscriptionHandler) ListPlans(c *gin.Context) {
	plans, err := h.subscriptionService.ListPlans(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Plans retrieved successfully", plans)
}

// Current returns the laundry's active subscription
func (h *SubscriptionHandler) Current(c *gin.Context) {
	sub, err := h.subscriptionService.GetActiveSubscription(c.Request.Context(), GetLaundryID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Subscription retrieved successfully", sub)
}

// Subscribe switches the laundry to a plan
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req struct {
		PlanID string `json:"plan_id" binding:"required,uuid"`
		Months int    `json:"months" binding:"required,gte=1,lte=24"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	planID, err := uuid.Parse(req.PlanID)
	if err != nil {
		response.BadRequest(c, "Invalid plan ID")
		return
	}

	sub, err := h.subscriptionService.Subscribe(c.Request.Context(), GetLaundryID(c), planID, req.Months)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Subscribed successfully", sub)
}
