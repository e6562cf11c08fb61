package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swisspay/swisspay_backend/internal/apperrors"
	"github.com/swisspay/swisspay_backend/internal/core/domain"
	portssvc "github.com/swisspay/swisspay_backend/internal/core/ports/services"
	"github.com/swisspay/swisspay_backend/internal/dto"
	"github.com/swisspay/swisspay_backend/internal/middleware"
)

// subscriptionHandler handles the plan catalog and purchases.
type subscriptionHandler struct {
	subscriptionService portssvc.SubscriptionSvcFacade
}

func newSubscriptionHandler(subscriptionService portssvc.SubscriptionSvcFacade) *subscriptionHandler {
	return &subscriptionHandler{subscriptionService: subscriptionService}
}

// registerSubscriptionRoutes registers subscription-related routes.
func registerSubscriptionRoutes(rg *gin.RouterGroup, subscriptionService portssvc.SubscriptionSvcFacade) {
	h := newSubscriptionHandler(subscriptionService)

	rg.GET("/plans", h.listPlans)
	subs := rg.Group("/subscriptions")
	{
		subs.GET("/me", h.getStatus)
		subs.POST("", h.purchasePlan)
	}
}

// listPlans godoc
// @Summary List subscription plans
// @Tags subscriptions
// @Produce json
// @Success 200 {array} dto.PlanResponse
// @Security BearerAuth
// @Router /plans [get]
func (h *subscriptionHandler) listPlans(c *gin.Context) {
	plans := h.subscriptionService.ListPlans(c.Request.Context())
	c.JSON(http.StatusOK, dto.ToPlanResponses(plans))
}

// getStatus godoc
// @Summary Get subscription status
// @Description Returns the active plan, its purchase date and whether the 30-day validity has lapsed
// @Tags subscriptions
// @Produce json
// @Success 200 {object} dto.SubscriptionStatusResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /subscriptions/me [get]
func (h *subscriptionHandler) getStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	status, err := h.subscriptionService.GetStatus(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to get subscription status", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve subscription status"})
		return
	}

	c.JSON(http.StatusOK, dto.SubscriptionStatusResponse{
		Plan:        string(status.Plan),
		PurchasedAt: status.PurchasedAt,
		ExpiresAt:   status.ExpiresAt,
		Expired:     status.Expired,
	})
}

// purchasePlan godoc
// @Summary Purchase a subscription plan
// @Description Debits the plan price and activates the plan atomically
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param purchase body dto.PurchasePlanRequest true "Plan selection"
// @Success 201 {object} dto.SubscriptionStatusResponse
// @Failure 400 {object} map[string]string "Unknown plan"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} map[string]string "Insufficient balance"
// @Security BearerAuth
// @Router /subscriptions [post]
func (h *subscriptionHandler) purchasePlan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.PurchasePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if _, err := h.subscriptionService.PurchasePlan(c.Request.Context(), accountID, domain.PlanID(req.PlanID)); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown plan"})
		case errors.Is(err, apperrors.ErrInsufficientBalance):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Insufficient balance"})
		case errors.Is(err, apperrors.ErrConcurrentModification):
			c.JSON(http.StatusConflict, gin.H{"error": "Purchase conflicted with a concurrent operation, please retry"})
		case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrSenderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		default:
			logger.Error("Failed to purchase plan", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to purchase plan"})
		}
		return
	}

	status, err := h.subscriptionService.GetStatus(c.Request.Context(), accountID)
	if err != nil {
		logger.Error("Failed to reload subscription status", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve subscription status"})
		return
	}

	c.JSON(http.StatusCreated, dto.SubscriptionStatusResponse{
		Plan:        string(status.Plan),
		PurchasedAt: status.PurchasedAt,
		ExpiresAt:   status.ExpiresAt,
		Expired:     status.Expired,
	})
}
