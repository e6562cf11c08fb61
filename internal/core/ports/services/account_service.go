package ports

import (
	"context"

	"github.com/swisspay/swisspay_backend/internal/core/domain"
)

// AccountSvcFacade defines account lifecycle and lookup operations.
type AccountSvcFacade interface {
	// Register opens a new account with a fresh external id and a zero balance.
	Register(ctx context.Context, username, email, password string) (*domain.Account, error)
	// Authenticate verifies credentials and returns the account on success.
	Authenticate(ctx context.Context, username, password string) (*domain.Account, error)
	// GetAccountByID fetches an account by its internal id.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	// GetAccountByExternalID fetches an account by its public transfer number.
	GetAccountByExternalID(ctx context.Context, externalID int64) (*domain.Account, error)
	// SearchRecipients returns active accounts whose username starts with the
	// given prefix, excluding the searching account itself.
	SearchRecipients(ctx context.Context, selfAccountID, prefix string, limit int) ([]domain.Account, error)
	// UpdateUsername changes the account display name.
	UpdateUsername(ctx context.Context, accountID, username string) (*domain.Account, error)
	// DeactivateAccount soft-deletes the account.
	DeactivateAccount(ctx context.Context, accountID string) error
}
