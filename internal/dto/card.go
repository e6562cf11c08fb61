package dto

import (
	"github.com/shopspring/decimal"

	"github.com/swisspay/swisspay_backend/internal/core/domain"
)

// CardResponse defines the data returned for a card profile.
type CardResponse struct {
	Holder       string          `json:"holder"`
	MaskedNumber string          `json:"maskedNumber"`
	ExpiryDate   string          `json:"expiryDate"`
	DesignID     int             `json:"designID"`
	MaxLimit     decimal.Decimal `json:"maxLimit"`
	DayLimit     decimal.Decimal `json:"dayLimit"`
}

// UpdateCardRequest updates card details. Pointers distinguish "not provided"
// from zero values.
type UpdateCardRequest struct {
	Holder       *string          `json:"holder"`
	MaskedNumber *string          `json:"maskedNumber"`
	ExpiryDate   *string          `json:"expiryDate"`
	DesignID     *int             `json:"designID" binding:"omitempty,min=1,max=4"`
	MaxLimit     *decimal.Decimal `json:"maxLimit"`
	DayLimit     *decimal.Decimal `json:"dayLimit"`
}

// ToCardResponse converts a domain.CardProfile.
func ToCardResponse(card *domain.CardProfile) CardResponse {
	return CardResponse{
		Holder:       card.Holder,
		MaskedNumber: card.MaskedNumber,
		ExpiryDate:   card.ExpiryDate,
		DesignID:     card.DesignID,
		MaxLimit:     card.MaxLimit,
		DayLimit:     card.DayLimit,
	}
}
