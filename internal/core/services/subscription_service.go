package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/swisspay/swisspay_backend/internal/apperrors"
	"github.com/swisspay/swisspay_backend/internal/core/domain"
	portsrepo "github.com/swisspay/swisspay_backend/internal/core/ports/repositories"
	portssvc "github.com/swisspay/swisspay_backend/internal/core/ports/services"
	"github.com/swisspay/swisspay_backend/internal/middleware"
)

type SubscriptionService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
}

func NewSubscriptionService(accountRepo portsrepo.AccountRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade) *SubscriptionService {
	return &SubscriptionService{accountRepo: accountRepo, ledgerRepo: ledgerRepo}
}

var _ portssvc.SubscriptionSvcFacade = (*SubscriptionService)(nil)

// ListPlans returns the static catalog, cheapest first.
func (s *SubscriptionService) ListPlans(ctx context.Context) []domain.Plan {
	plans := make([]domain.Plan, 0, len(domain.Plans))
	for _, p := range domain.Plans {
		plans = append(plans, p)
	}
	sort.Slice(plans, func(i, j int) bool {
		return plans[i].Price.LessThan(plans[j].Price)
	})
	return plans
}

// PurchasePlan debits the plan price and activates the plan in one atomic
// commit. The log entry has no counterparty: the money leaves the system.
func (s *SubscriptionService) PurchasePlan(ctx context.Context, accountID string, planID domain.PlanID) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	plan, ok := domain.Plans[planID]
	if !ok {
		return nil, fmt.Errorf("%w: unknown plan %q", apperrors.ErrValidation, planID)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:    uuid.NewString(),
		Kind:             domain.KindPlanPurchase,
		SenderExternalID: account.ExternalID,
		Amount:           plan.Price,
		CreatedAt:        now,
	}

	if err := s.ledgerRepo.ExecutePlanPurchase(ctx, txn, planID, now); err != nil {
		if errors.Is(err, apperrors.ErrInsufficientBalance) {
			logger.Info("Plan purchase rejected", slog.String("account_id", accountID), slog.String("plan", string(planID)), slog.String("reason", err.Error()))
		} else {
			logger.Error("Plan purchase failed", slog.String("account_id", accountID), slog.String("plan", string(planID)), slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Plan purchased", slog.String("account_id", accountID), slog.String("plan", string(planID)), slog.String("amount", plan.Price.String()))
	return &txn, nil
}

// GetStatus reports the account's current plan and whether the 30-day
// validity window has lapsed.
func (s *SubscriptionService) GetStatus(ctx context.Context, accountID string) (*portssvc.SubscriptionStatus, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	status := &portssvc.SubscriptionStatus{
		Plan: account.SubscriptionPlan,
	}
	if status.Plan == "" {
		status.Plan = domain.PlanBasic
	}
	if account.SubscriptionPurchasedAt != nil {
		expiresAt := domain.PlanExpiry(*account.SubscriptionPurchasedAt)
		status.PurchasedAt = account.SubscriptionPurchasedAt
		status.ExpiresAt = &expiresAt
		status.Expired = time.Now().UTC().After(expiresAt)
	}
	return status, nil
}
