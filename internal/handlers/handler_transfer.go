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

// transferHandler handles money transfers. The card limit check runs here,
// before the ledger engine is invoked: limits are policy of the caller, not of
// the atomic transfer itself.
type transferHandler struct {
	ledgerService portssvc.LedgerSvcFacade
	cardService   portssvc.CardSvcFacade
}

func newTransferHandler(ledgerService portssvc.LedgerSvcFacade, cardService portssvc.CardSvcFacade) *transferHandler {
	return &transferHandler{ledgerService: ledgerService, cardService: cardService}
}

// registerTransferRoutes registers the transfer route.
func registerTransferRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, cardService portssvc.CardSvcFacade) {
	h := newTransferHandler(ledgerService, cardService)
	rg.POST("/transfers", h.createTransfer)
}

// createTransfer godoc
// @Summary Transfer money
// @Description Moves the amount from the authenticated account to the receiver, identified by username (transfer screen) or external id (QR scan)
// @Tags transfers
// @Accept json
// @Produce json
// @Param transfer body dto.TransferRequest true "Transfer details"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} map[string]string "Invalid amount or self transfer"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Sender or receiver not found"
// @Failure 409 {object} map[string]string "Concurrent modification"
// @Failure 422 {object} map[string]string "Insufficient balance or limit exceeded"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Security BearerAuth
// @Router /transfers [post]
func (h *transferHandler) createTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if (req.ReceiverUsername == "") == (req.ReceiverExternalID == 0) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide exactly one of receiverUsername or receiverExternalID"})
		return
	}

	// Advisory limit pre-check against the sender's card
	if err := h.cardService.CheckLimit(c.Request.Context(), accountID, req.Amount); err != nil {
		if errors.Is(err, apperrors.ErrLimitExceeded) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Amount exceeds the configured max limit"})
			return
		}
		logger.Error("Failed to check card limit", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to execute transfer"})
		return
	}

	var txn *domain.Transaction
	var err error
	if req.ReceiverUsername != "" {
		txn, err = h.ledgerService.TransferToUsername(c.Request.Context(), accountID, req.ReceiverUsername, req.Amount)
	} else {
		txn, err = h.ledgerService.Transfer(c.Request.Context(), accountID, req.ReceiverExternalID, req.Amount)
	}
	if err != nil {
		respondTransferError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransferResponse(txn))
}

// respondTransferError maps the transfer failure taxonomy to HTTP statuses
// with specific user-facing messages.
func respondTransferError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be positive"})
	case errors.Is(err, apperrors.ErrSelfTransfer):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot transfer to your own account"})
	case errors.Is(err, apperrors.ErrSenderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Sender account not found"})
	case errors.Is(err, apperrors.ErrReceiverNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Receiver account not found"})
	case errors.Is(err, apperrors.ErrInsufficientBalance):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Insufficient balance"})
	case errors.Is(err, apperrors.ErrLimitExceeded):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Amount exceeds the configured max limit"})
	case errors.Is(err, apperrors.ErrConcurrentModification):
		c.JSON(http.StatusConflict, gin.H{"error": "Transfer conflicted with a concurrent operation, please retry"})
	case errors.Is(err, apperrors.ErrStorageUnavailable):
		logger.Error("Storage unavailable during transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
	default:
		logger.Error("Transfer failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to execute transfer"})
	}
}
