package ports

import (
	"context"
	"time"

	"github.com/swisspay/swisspay_backend/internal/core/domain"
)

// SubscriptionStatus reports the plan currently attached to an account.
type SubscriptionStatus struct {
	Plan        domain.PlanID
	PurchasedAt *time.Time
	ExpiresAt   *time.Time
	Expired     bool
}

// SubscriptionSvcFacade defines plan catalog and purchase operations.
type SubscriptionSvcFacade interface {
	// ListPlans returns the purchasable plans, cheapest first.
	ListPlans(ctx context.Context) []domain.Plan
	// PurchasePlan debits the plan price from the account and activates the
	// plan atomically. Buying the free basic plan resets to basic.
	PurchasePlan(ctx context.Context, accountID string, planID domain.PlanID) (*domain.Transaction, error)
	// GetStatus reports the account's current plan and whether it has lapsed.
	GetStatus(ctx context.Context, accountID string) (*SubscriptionStatus, error)
}
