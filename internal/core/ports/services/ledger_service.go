package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/swisspay/swisspay_backend/internal/core/domain"
)

// LedgerSvcFacade defines balance-mutating operations. Every method commits
// atomically: balances and the log entry move together or not at all.
type LedgerSvcFacade interface {
	// Transfer moves amount from the sender to the receiver identified by
	// external id and returns the committed log entry.
	Transfer(ctx context.Context, senderAccountID string, receiverExternalID int64, amount decimal.Decimal) (*domain.Transaction, error)
	// TransferToUsername resolves the receiver by exact username, then
	// behaves like Transfer.
	TransferToUsername(ctx context.Context, senderAccountID, receiverUsername string, amount decimal.Decimal) (*domain.Transaction, error)
}
