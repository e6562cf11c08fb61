package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/swisspay/swisspay_backend/internal/core/domain"
)

// CardSvcFacade defines card profile and spending limit operations.
type CardSvcFacade interface {
	// GetCard returns the card profile for the account, creating the default
	// profile on first access.
	GetCard(ctx context.Context, accountID string) (*domain.CardProfile, error)
	// UpdateCard applies the non-nil fields and returns the updated profile.
	UpdateCard(ctx context.Context, accountID string, update domain.CardUpdate) (*domain.CardProfile, error)
	// CheckLimit reports whether a prospective debit stays within the card's
	// maximum limit. It never blocks a transfer by itself.
	CheckLimit(ctx context.Context, accountID string, amount decimal.Decimal) error
}
