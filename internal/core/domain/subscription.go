package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlanID identifies a subscription plan.
type PlanID string

const (
	PlanBasic   PlanID = "basic"
	PlanPremium PlanID = "premium"
	PlanElite   PlanID = "elite"
)

// PlanValidity is how long a purchased plan stays active.
const PlanValidity = 30 * 24 * time.Hour

// Plan describes a purchasable subscription tier.
type Plan struct {
	ID    PlanID          `json:"id"`
	Price decimal.Decimal `json:"price"` // CHF per month
}

// Plans is the static plan catalog.
var Plans = map[PlanID]Plan{
	PlanBasic:   {ID: PlanBasic, Price: decimal.Zero},
	PlanPremium: {ID: PlanPremium, Price: decimal.NewFromInt(40)},
	PlanElite:   {ID: PlanElite, Price: decimal.NewFromInt(80)},
}

// PlanExpiry returns when a plan purchased at the given time lapses.
func PlanExpiry(purchasedAt time.Time) time.Time {
	return purchasedAt.Add(PlanValidity)
}
