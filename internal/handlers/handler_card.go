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

// cardHandler handles card profile and limit management.
type cardHandler struct {
	cardService portssvc.CardSvcFacade
}

func newCardHandler(cardService portssvc.CardSvcFacade) *cardHandler {
	return &cardHandler{cardService: cardService}
}

// registerCardRoutes registers card-related routes.
func registerCardRoutes(rg *gin.RouterGroup, cardService portssvc.CardSvcFacade) {
	h := newCardHandler(cardService)

	cards := rg.Group("/cards")
	{
		cards.GET("/me", h.getCard)
		cards.PUT("/me", h.updateCard)
	}
}

// getCard godoc
// @Summary Get own card profile
// @Tags cards
// @Produce json
// @Success 200 {object} dto.CardResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /cards/me [get]
func (h *cardHandler) getCard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	card, err := h.cardService.GetCard(c.Request.Context(), accountID)
	if err != nil {
		logger.Error("Failed to get card", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve card"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCardResponse(card))
}

// updateCard godoc
// @Summary Update own card profile
// @Description Applies the provided fields, including the maxLimit/dayLimit transfer limits
// @Tags cards
// @Accept json
// @Produce json
// @Param update body dto.UpdateCardRequest true "Fields to update"
// @Success 200 {object} dto.CardResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /cards/me [put]
func (h *cardHandler) updateCard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	update := domain.CardUpdate{
		Holder:       req.Holder,
		MaskedNumber: req.MaskedNumber,
		ExpiryDate:   req.ExpiryDate,
		DesignID:     req.DesignID,
		MaxLimit:     req.MaxLimit,
		DayLimit:     req.DayLimit,
	}

	card, err := h.cardService.UpdateCard(c.Request.Context(), accountID, update)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to update card", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update card"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCardResponse(card))
}
