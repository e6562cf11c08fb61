package repositories

import (
	"context"
	"time"

	"github.com/swisspay/swisspay_backend/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves an account by its internal identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByExternalID retrieves an account by its short human-shareable id.
	FindAccountByExternalID(ctx context.Context, externalID int64) (*domain.Account, error)

	// FindAccountsByExternalIDs retrieves multiple accounts keyed by external id.
	FindAccountsByExternalIDs(ctx context.Context, externalIDs []int64) (map[int64]domain.Account, error)

	// FindAccountsByUsernamePrefix retrieves accounts whose username falls in the
	// range [prefix, prefix-with-last-character-incremented).
	FindAccountsByUsernamePrefix(ctx context.Context, prefix string, limit int) ([]domain.Account, error)

	// FindCredentialByUsername retrieves the stored credential for login checks.
	FindCredentialByUsername(ctx context.Context, username string) (*domain.Credential, error)
}

// AccountWriter defines write operations for account data. Balances are
// deliberately absent: only the ledger repository mutates them.
type AccountWriter interface {
	// SaveAccount persists a new account together with its credential.
	SaveAccount(ctx context.Context, account domain.Account, passwordHash string) error

	// UpdateUsername changes an account's display name.
	UpdateUsername(ctx context.Context, accountID string, username string, now time.Time) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
