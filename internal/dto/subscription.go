package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/swisspay/swisspay_backend/internal/core/domain"
)

// PlanResponse describes one purchasable plan.
type PlanResponse struct {
	ID    string          `json:"id"`
	Price decimal.Decimal `json:"price"`
}

// PurchasePlanRequest selects a plan to buy.
type PurchasePlanRequest struct {
	PlanID string `json:"planID" binding:"required,oneof=basic premium elite"`
}

// SubscriptionStatusResponse reports the active plan and its expiry.
type SubscriptionStatusResponse struct {
	Plan        string     `json:"plan"`
	PurchasedAt *time.Time `json:"purchasedAt,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	Expired     bool       `json:"expired"`
}

// ToPlanResponses converts the plan catalog for display.
func ToPlanResponses(plans []domain.Plan) []PlanResponse {
	res := make([]PlanResponse, len(plans))
	for i, p := range plans {
		res[i] = PlanResponse{ID: string(p.ID), Price: p.Price}
	}
	return res
}
