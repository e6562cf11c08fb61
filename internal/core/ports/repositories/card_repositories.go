package repositories

import (
	"context"

	"github.com/swisspay/swisspay_backend/internal/core/domain"
)

// CardRepositoryFacade defines storage operations for card profiles and their
// transfer limits.
type CardRepositoryFacade interface {
	// FindCardByAccountID retrieves the card profile for an account.
	FindCardByAccountID(ctx context.Context, accountID string) (*domain.CardProfile, error)

	// UpsertCard creates or replaces the card profile for an account.
	UpsertCard(ctx context.Context, card domain.CardProfile) error
}
