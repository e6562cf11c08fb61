package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swisspay/swisspay_backend/internal/apperrors"
	portssvc "github.com/swisspay/swisspay_backend/internal/core/ports/services"
	"github.com/swisspay/swisspay_backend/internal/dto"
	"github.com/swisspay/swisspay_backend/internal/middleware"
)

// historyHandler serves the transaction history view.
type historyHandler struct {
	historyService portssvc.HistorySvcFacade
	accountService portssvc.AccountSvcFacade
}

func newHistoryHandler(historyService portssvc.HistorySvcFacade, accountService portssvc.AccountSvcFacade) *historyHandler {
	return &historyHandler{historyService: historyService, accountService: accountService}
}

// registerHistoryRoutes registers the history route.
func registerHistoryRoutes(rg *gin.RouterGroup, historyService portssvc.HistorySvcFacade, accountService portssvc.AccountSvcFacade) {
	h := newHistoryHandler(historyService, accountService)
	rg.GET("/transactions", h.listTransactions)
}

// listTransactions godoc
// @Summary List transaction history
// @Description Returns entries where the account is sender or receiver, newest first, enriched with current display names
// @Tags transactions
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid pagination token"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /transactions [get]
func (h *historyHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to get account for history", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	txns, next, err := h.historyService.ListTransactions(c.Request.Context(), accountID, params.Limit, params.NextToken)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination token"})
		case errors.Is(err, apperrors.ErrStorageUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
		default:
			logger.Error("Failed to list transactions", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		}
		return
	}

	resp := dto.ListTransactionsResponse{
		Transactions: make([]dto.TransactionResponse, len(txns)),
		NextToken:    next,
	}
	for i, txn := range txns {
		resp.Transactions[i] = dto.ToTransactionResponse(txn, account.ExternalID)
	}

	c.JSON(http.StatusOK, resp)
}
