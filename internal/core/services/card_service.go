package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/swisspay/swisspay_backend/internal/apperrors"
	"github.com/swisspay/swisspay_backend/internal/core/domain"
	portsrepo "github.com/swisspay/swisspay_backend/internal/core/ports/repositories"
	portssvc "github.com/swisspay/swisspay_backend/internal/core/ports/services"
	"github.com/swisspay/swisspay_backend/internal/middleware"
)

// Default limits for a freshly issued card, CHF.
var (
	defaultMaxLimit = decimal.NewFromInt(1000)
	defaultDayLimit = decimal.NewFromInt(500)
)

type CardService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	cardRepo    portsrepo.CardRepositoryFacade
}

func NewCardService(accountRepo portsrepo.AccountRepositoryFacade, cardRepo portsrepo.CardRepositoryFacade) *CardService {
	return &CardService{accountRepo: accountRepo, cardRepo: cardRepo}
}

var _ portssvc.CardSvcFacade = (*CardService)(nil)

// GetCard returns the account's card profile. Accounts created before cards
// existed get the default profile materialized on first access.
func (s *CardService) GetCard(ctx context.Context, accountID string) (*domain.CardProfile, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	card, err := s.cardRepo.FindCardByAccountID(ctx, accountID)
	if err == nil {
		return card, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to find card", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	defaultCard := domain.CardProfile{
		AccountID: accountID,
		Holder:    account.Username,
		DesignID:  1,
		MaxLimit:  defaultMaxLimit,
		DayLimit:  defaultDayLimit,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.cardRepo.UpsertCard(ctx, defaultCard); err != nil {
		logger.Error("Failed to create default card", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}
	return &defaultCard, nil
}

// UpdateCard applies the non-nil fields of the update to the card profile.
func (s *CardService) UpdateCard(ctx context.Context, accountID string, update domain.CardUpdate) (*domain.CardProfile, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	card, err := s.GetCard(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if update.Holder != nil {
		card.Holder = *update.Holder
	}
	if update.MaskedNumber != nil {
		card.MaskedNumber = *update.MaskedNumber
	}
	if update.ExpiryDate != nil {
		card.ExpiryDate = *update.ExpiryDate
	}
	if update.DesignID != nil {
		card.DesignID = *update.DesignID
	}
	if update.MaxLimit != nil {
		if update.MaxLimit.IsNegative() {
			return nil, fmt.Errorf("%w: max limit cannot be negative", apperrors.ErrValidation)
		}
		card.MaxLimit = *update.MaxLimit
	}
	if update.DayLimit != nil {
		if update.DayLimit.IsNegative() {
			return nil, fmt.Errorf("%w: day limit cannot be negative", apperrors.ErrValidation)
		}
		card.DayLimit = *update.DayLimit
	}
	card.LastUpdatedAt = time.Now().UTC()

	if err := s.cardRepo.UpsertCard(ctx, *card); err != nil {
		logger.Error("Failed to update card", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	logger.Info("Card updated", slog.String("account_id", accountID))
	return card, nil
}

// CheckLimit rejects amounts above the card's max limit. A zero max limit
// means no limit is configured. This is an advisory pre-check on the caller
// side of the transfer: the atomic engine itself never consults card limits.
func (s *CardService) CheckLimit(ctx context.Context, accountID string, amount decimal.Decimal) error {
	card, err := s.GetCard(ctx, accountID)
	if err != nil {
		return err
	}
	if card.MaxLimit.IsPositive() && amount.GreaterThan(card.MaxLimit) {
		return apperrors.ErrLimitExceeded
	}
	return nil
}
