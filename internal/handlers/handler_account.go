package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/swisspay/swisspay_backend/internal/apperrors"
	portssvc "github.com/swisspay/swisspay_backend/internal/core/ports/services"
	"github.com/swisspay/swisspay_backend/internal/dto"
	"github.com/swisspay/swisspay_backend/internal/middleware"
)

// accountHandler handles account profile, recipient search and QR payload
// requests.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func newAccountHandler(accountService portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: accountService}
}

// registerAccountRoutes registers account-related routes.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/me", h.getOwnAccount)
		accounts.PATCH("/me/username", h.updateUsername)
		accounts.DELETE("/me", h.deactivateAccount)
		accounts.GET("/me/qr", h.getQRPayload)
		accounts.GET("/external/:externalID", h.resolveExternalID)
	}
	rg.GET("/recipients", h.searchRecipients)
}

// getOwnAccount godoc
// @Summary Get own account
// @Description Returns the authenticated account including its current balance
// @Tags accounts
// @Produce json
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/me [get]
func (h *accountHandler) getOwnAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to get account", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// updateUsername godoc
// @Summary Change username
// @Tags accounts
// @Accept json
// @Produce json
// @Param update body dto.UpdateUsernameRequest true "New username"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Username already taken"
// @Security BearerAuth
// @Router /accounts/me/username [patch]
func (h *accountHandler) updateUsername(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.UpdateUsername(c.Request.Context(), accountID, req.Username)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		default:
			logger.Error("Failed to update username", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update username"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deactivateAccount godoc
// @Summary Deactivate own account
// @Tags accounts
// @Produce json
// @Success 204 "Deactivated"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/me [delete]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.accountService.DeactivateAccount(c.Request.Context(), accountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate account"})
		return
	}

	c.Status(http.StatusNoContent)
}

// getQRPayload godoc
// @Summary Get QR payload
// @Description Returns the external id and username the request-money screen encodes
// @Tags accounts
// @Produce json
// @Success 200 {object} dto.QRPayloadResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /accounts/me/qr [get]
func (h *accountHandler) getQRPayload(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		logger.Error("Failed to get account for QR payload", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
		return
	}

	c.JSON(http.StatusOK, dto.QRPayloadResponse{
		ExternalID: account.ExternalID,
		Username:   account.Username,
	})
}

// resolveExternalID godoc
// @Summary Resolve a transfer number
// @Description Resolves a scanned external id to the recipient view
// @Tags accounts
// @Produce json
// @Param externalID path int true "External id"
// @Success 200 {object} dto.RecipientResponse
// @Failure 400 {object} map[string]string "Invalid external id"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/external/{externalID} [get]
func (h *accountHandler) resolveExternalID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	externalID, err := strconv.ParseInt(c.Param("externalID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid external id"})
		return
	}

	account, err := h.accountService.GetAccountByExternalID(c.Request.Context(), externalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to resolve external id", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve account"})
		return
	}

	c.JSON(http.StatusOK, dto.RecipientResponse{
		ExternalID: account.ExternalID,
		Username:   account.Username,
	})
}

// searchRecipients godoc
// @Summary Search transfer recipients
// @Description Prefix search over usernames for the transfer autocomplete
// @Tags accounts
// @Produce json
// @Param q query string true "Username prefix"
// @Param limit query int false "Max results" default(10)
// @Success 200 {array} dto.RecipientResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /recipients [get]
func (h *accountHandler) searchRecipients(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	prefix := c.Query("q")
	if prefix == "" {
		c.JSON(http.StatusOK, []dto.RecipientResponse{})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}

	accounts, err := h.accountService.SearchRecipients(c.Request.Context(), accountID, prefix, limit)
	if err != nil {
		logger.Error("Failed to search recipients", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search recipients"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRecipientResponses(accounts))
}
