package ports

import (
	"context"

	"github.com/swisspay/swisspay_backend/internal/core/domain"
)

// HistorySvcFacade defines read access to the transaction log.
type HistorySvcFacade interface {
	// ListTransactions returns a page of log entries where the account is
	// sender or receiver, newest first, with counterparty names resolved.
	ListTransactions(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}
