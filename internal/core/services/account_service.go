package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/swisspay/swisspay_backend/internal/apperrors"
	"github.com/swisspay/swisspay_backend/internal/core/domain"
	portsrepo "github.com/swisspay/swisspay_backend/internal/core/ports/repositories"
	portssvc "github.com/swisspay/swisspay_backend/internal/core/ports/services"
	"github.com/swisspay/swisspay_backend/internal/middleware"
	"github.com/swisspay/swisspay_backend/internal/platform/cache"
	"github.com/swisspay/swisspay_backend/internal/utils"
)

// maxExternalIDAttempts bounds how often registration redraws a transfer
// number after a uniqueness collision.
const maxExternalIDAttempts = 5

type AccountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	nameCache   *cache.NameCache
}

func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, nameCache *cache.NameCache) *AccountService {
	return &AccountService{accountRepo: accountRepo, nameCache: nameCache}
}

var _ portssvc.AccountSvcFacade = (*AccountService)(nil)

// Register opens a new account with balance zero and a freshly drawn external
// id, retrying the draw when it collides with an existing account.
func (s *AccountService) Register(ctx context.Context, username, email, password string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:        uuid.NewString(),
		Username:         username,
		Email:            email,
		IsActive:         true,
		SubscriptionPlan: domain.PlanBasic,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	for attempt := 0; attempt < maxExternalIDAttempts; attempt++ {
		externalID, err := utils.GenerateExternalID()
		if err != nil {
			logger.Error("Failed to draw external id", slog.String("error", err.Error()))
			return nil, err
		}
		account.ExternalID = externalID

		err = s.accountRepo.SaveAccount(ctx, account, passwordHash)
		if errors.Is(err, apperrors.ErrExternalIDTaken) {
			logger.Debug("External id collision, redrawing", slog.Int64("external_id", externalID))
			continue
		}
		if err != nil {
			if !errors.Is(err, apperrors.ErrDuplicate) {
				logger.Error("Failed to save account in repository", slog.String("error", err.Error()))
			}
			return nil, err
		}

		logger.Info("Account registered", slog.String("account_id", account.AccountID), slog.Int64("external_id", externalID))
		return &account, nil
	}

	logger.Error("Exhausted external id draws", slog.Int("attempts", maxExternalIDAttempts))
	return nil, apperrors.NewAppError(500, "could not allocate a unique external id", apperrors.ErrExternalIDTaken)
}

// Authenticate verifies the username/password pair. It returns ErrNotFound for
// both unknown usernames and wrong passwords so callers cannot tell them apart.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	cred, err := s.accountRepo.FindCredentialByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find credential", slog.String("error", err.Error()))
			return nil, err
		}
		return nil, apperrors.ErrNotFound
	}

	if !utils.CheckPasswordHash(password, cred.PasswordHash) {
		return nil, apperrors.ErrNotFound
	}

	return s.accountRepo.FindAccountByID(ctx, cred.AccountID)
}

func (s *AccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by ID in repository", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *AccountService) GetAccountByExternalID(ctx context.Context, externalID int64) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	account, err := s.accountRepo.FindAccountByExternalID(ctx, externalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by external id in repository", slog.String("error", err.Error()), slog.Int64("external_id", externalID))
		}
		return nil, err
	}
	return account, nil
}

// SearchRecipients returns active accounts matching the username prefix,
// without the searching account itself.
func (s *AccountService) SearchRecipients(ctx context.Context, selfAccountID, prefix string, limit int) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.FindAccountsByUsernamePrefix(ctx, prefix, limit)
	if err != nil {
		logger.Error("Failed to search accounts by prefix", slog.String("error", err.Error()))
		return nil, err
	}

	results := make([]domain.Account, 0, len(accounts))
	for _, acc := range accounts {
		if acc.AccountID == selfAccountID {
			continue
		}
		results = append(results, acc)
	}
	return results, nil
}

// UpdateUsername changes the display name and drops the stale cache entry.
func (s *AccountService) UpdateUsername(ctx context.Context, accountID, username string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.accountRepo.UpdateUsername(ctx, accountID, username, now); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) && !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to update username", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}

	s.nameCache.Invalidate(ctx, account.ExternalID)
	logger.Info("Username updated", slog.String("account_id", accountID))

	account.Username = username
	account.LastUpdatedAt = now
	return account, nil
}

func (s *AccountService) DeactivateAccount(ctx context.Context, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, now); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return err
	}
	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}
