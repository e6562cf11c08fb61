package repositories

import (
	"context"
	"time"

	"github.com/swisspay/swisspay_backend/internal/core/domain"
)

// LedgerWriter is the storage side of the ledger engine. Both operations are
// single atomic commits: the balance mutation(s) and the appended log entry
// apply together or not at all, and concurrent writers touching the same
// account serialize against each other.
type LedgerWriter interface {
	// ExecuteTransfer re-reads both balances under lock, validates the sender can
	// cover the amount, writes both new balances and appends exactly one log
	// entry. Returns apperrors.ErrSenderNotFound, ErrReceiverNotFound,
	// ErrInsufficientBalance, ErrConcurrentModification or ErrStorageUnavailable.
	ExecuteTransfer(ctx context.Context, txn domain.Transaction) error

	// ExecutePlanPurchase debits the buyer (no counterparty credit), sets the
	// subscription plan and purchase date, and appends one PLAN_PURCHASE log
	// entry, all in one commit. Free plans pass a zero amount.
	ExecutePlanPurchase(ctx context.Context, txn domain.Transaction, plan domain.PlanID, purchasedAt time.Time) error
}

// TransactionReader defines read operations over the append-only log.
type TransactionReader interface {
	// ListTransactionsByExternalID returns the union of entries where the account
	// is sender or receiver, newest first, with cursor pagination.
	ListTransactionsByExternalID(ctx context.Context, externalID int64, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// CountTransactionsByExternalID returns the total number of entries involving
	// the account.
	CountTransactionsByExternalID(ctx context.Context, externalID int64) (int64, error)
}

// LedgerRepositoryFacade combines the ledger engine storage with log reads.
type LedgerRepositoryFacade interface {
	LedgerWriter
	TransactionReader
}
