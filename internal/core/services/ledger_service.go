package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/swisspay/swisspay_backend/internal/apperrors"
	"github.com/swisspay/swisspay_backend/internal/core/domain"
	portsrepo "github.com/swisspay/swisspay_backend/internal/core/ports/repositories"
	portssvc "github.com/swisspay/swisspay_backend/internal/core/ports/services"
	"github.com/swisspay/swisspay_backend/internal/middleware"
)

type LedgerService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
}

func NewLedgerService(accountRepo portsrepo.AccountRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade) *LedgerService {
	return &LedgerService{accountRepo: accountRepo, ledgerRepo: ledgerRepo}
}

var _ portssvc.LedgerSvcFacade = (*LedgerService)(nil)

// Transfer moves amount from the authenticated sender to the receiver
// identified by external id. Preconditions are checked here; the balance check
// itself happens inside the repository against the locked rows.
func (s *LedgerService) Transfer(ctx context.Context, senderAccountID string, receiverExternalID int64, amount decimal.Decimal) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}

	sender, err := s.accountRepo.FindAccountByID(ctx, senderAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrSenderNotFound
		}
		logger.Error("Failed to resolve sender", slog.String("error", err.Error()), slog.String("account_id", senderAccountID))
		return nil, err
	}
	if !sender.IsActive {
		return nil, apperrors.ErrSenderNotFound
	}

	if sender.ExternalID == receiverExternalID {
		return nil, apperrors.ErrSelfTransfer
	}

	txn := domain.Transaction{
		TransactionID:      uuid.NewString(),
		Kind:               domain.KindTransfer,
		SenderExternalID:   sender.ExternalID,
		ReceiverExternalID: receiverExternalID,
		Amount:             amount,
		CreatedAt:          time.Now().UTC(),
	}

	if err := s.ledgerRepo.ExecuteTransfer(ctx, txn); err != nil {
		if isTransferFailure(err) {
			logger.Info("Transfer rejected", slog.String("transaction_id", txn.TransactionID), slog.String("reason", err.Error()))
		} else {
			logger.Error("Transfer failed", slog.String("transaction_id", txn.TransactionID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Transfer committed",
		slog.String("transaction_id", txn.TransactionID),
		slog.Int64("sender_external_id", txn.SenderExternalID),
		slog.Int64("receiver_external_id", txn.ReceiverExternalID),
		slog.String("amount", amount.String()),
	)
	return &txn, nil
}

// TransferToUsername resolves the receiver by exact username, reusing the
// range lookup the autocomplete uses, and executes the transfer. A prefix-only
// match is not good enough to move money.
func (s *LedgerService) TransferToUsername(ctx context.Context, senderAccountID, receiverUsername string, amount decimal.Decimal) (*domain.Transaction, error) {
	if !amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}
	if receiverUsername == "" {
		return nil, apperrors.ErrReceiverNotFound
	}

	matches, err := s.accountRepo.FindAccountsByUsernamePrefix(ctx, receiverUsername, 1)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 || matches[0].Username != receiverUsername {
		return nil, apperrors.ErrReceiverNotFound
	}

	return s.Transfer(ctx, senderAccountID, matches[0].ExternalID, amount)
}

// isTransferFailure reports whether the error is an expected business
// rejection rather than an infrastructure failure.
func isTransferFailure(err error) bool {
	return errors.Is(err, apperrors.ErrSenderNotFound) ||
		errors.Is(err, apperrors.ErrReceiverNotFound) ||
		errors.Is(err, apperrors.ErrInsufficientBalance) ||
		errors.Is(err, apperrors.ErrSelfTransfer) ||
		errors.Is(err, apperrors.ErrInvalidAmount) ||
		errors.Is(err, apperrors.ErrConcurrentModification)
}
