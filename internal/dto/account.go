package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/swisspay/swisspay_backend/internal/core/domain"
)

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID               string          `json:"accountID"`
	ExternalID              int64           `json:"externalID"`
	Username                string          `json:"username"`
	Email                   string          `json:"email"`
	Balance                 decimal.Decimal `json:"balance"`
	SubscriptionPlan        string          `json:"subscriptionPlan"`
	SubscriptionPurchasedAt *time.Time      `json:"subscriptionPurchasedAt,omitempty"`
	CreatedAt               time.Time       `json:"createdAt"`
}

// RecipientResponse is the trimmed account view returned by recipient search:
// enough to render an autocomplete entry and address a transfer, nothing more.
type RecipientResponse struct {
	ExternalID int64  `json:"externalID"`
	Username   string `json:"username"`
}

// QRPayloadResponse is what the request-money screen encodes into a QR code.
type QRPayloadResponse struct {
	ExternalID int64  `json:"externalID"`
	Username   string `json:"username"`
}

// UpdateUsernameRequest changes the account display name.
type UpdateUsernameRequest struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:               acc.AccountID,
		ExternalID:              acc.ExternalID,
		Username:                acc.Username,
		Email:                   acc.Email,
		Balance:                 acc.Balance,
		SubscriptionPlan:        string(acc.SubscriptionPlan),
		SubscriptionPurchasedAt: acc.SubscriptionPurchasedAt,
		CreatedAt:               acc.CreatedAt,
	}
}

// ToRecipientResponses converts search results to the trimmed recipient view.
func ToRecipientResponses(accounts []domain.Account) []RecipientResponse {
	res := make([]RecipientResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = RecipientResponse{ExternalID: acc.ExternalID, Username: acc.Username}
	}
	return res
}
