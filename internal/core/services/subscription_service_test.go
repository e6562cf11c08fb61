package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/swisspay/swisspay_backend/internal/apperrors"
	"github.com/swisspay/swisspay_backend/internal/core/domain"
	"github.com/swisspay/swisspay_backend/internal/core/services"
)

type SubscriptionServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockLedgerRepo  *MockLedgerRepository
	service         *services.SubscriptionService
}

func (suite *SubscriptionServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewSubscriptionService(suite.mockAccountRepo, suite.mockLedgerRepo)
}

func (suite *SubscriptionServiceTestSuite) TestListPlans_CheapestFirst() {
	plans := suite.service.ListPlans(context.Background())

	suite.Require().Len(plans, 3)
	suite.Equal(domain.PlanBasic, plans[0].ID)
	suite.Equal(domain.PlanPremium, plans[1].ID)
	suite.Equal(domain.PlanElite, plans[2].ID)
	suite.True(plans[0].Price.IsZero())
	suite.True(plans[1].Price.Equal(chf(40)))
	suite.True(plans[2].Price.Equal(chf(80)))
}

func (suite *SubscriptionServiceTestSuite) TestPurchasePlan_Premium() {
	ctx := context.Background()
	account := &domain.Account{AccountID: uuid.NewString(), ExternalID: 111111, Balance: chf(100), IsActive: true}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockLedgerRepo.On("ExecutePlanPurchase", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Kind == domain.KindPlanPurchase &&
			txn.SenderExternalID == 111111 &&
			txn.ReceiverExternalID == 0 &&
			txn.Amount.Equal(chf(40))
	}), domain.PlanPremium, mock.AnythingOfType("time.Time")).Return(nil).Once()

	txn, err := suite.service.PurchasePlan(ctx, account.AccountID, domain.PlanPremium)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal(domain.KindPlanPurchase, txn.Kind)
	suite.True(txn.Amount.Equal(chf(40)))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestPurchasePlan_FreeBasicPlan() {
	ctx := context.Background()
	account := &domain.Account{AccountID: uuid.NewString(), ExternalID: 111111, Balance: chf(0), IsActive: true}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockLedgerRepo.On("ExecutePlanPurchase", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Amount.IsZero()
	}), domain.PlanBasic, mock.AnythingOfType("time.Time")).Return(nil).Once()

	txn, err := suite.service.PurchasePlan(ctx, account.AccountID, domain.PlanBasic)

	suite.Require().NoError(err)
	suite.True(txn.Amount.IsZero())
}

func (suite *SubscriptionServiceTestSuite) TestPurchasePlan_UnknownPlan() {
	txn, err := suite.service.PurchasePlan(context.Background(), uuid.NewString(), domain.PlanID("platinum"))

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "ExecutePlanPurchase", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestPurchasePlan_InsufficientBalance() {
	ctx := context.Background()
	account := &domain.Account{AccountID: uuid.NewString(), ExternalID: 111111, Balance: chf(10), IsActive: true}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockLedgerRepo.On("ExecutePlanPurchase", ctx, mock.AnythingOfType("domain.Transaction"), domain.PlanElite, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrInsufficientBalance).Once()

	txn, err := suite.service.PurchasePlan(ctx, account.AccountID, domain.PlanElite)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrInsufficientBalance)
}

func (suite *SubscriptionServiceTestSuite) TestGetStatus_ActivePlan() {
	ctx := context.Background()
	purchasedAt := time.Now().UTC().Add(-24 * time.Hour)
	account := &domain.Account{
		AccountID:               uuid.NewString(),
		SubscriptionPlan:        domain.PlanPremium,
		SubscriptionPurchasedAt: &purchasedAt,
		IsActive:                true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()

	status, err := suite.service.GetStatus(ctx, account.AccountID)

	suite.Require().NoError(err)
	suite.Equal(domain.PlanPremium, status.Plan)
	suite.False(status.Expired)
	suite.Require().NotNil(status.ExpiresAt)
	suite.Equal(purchasedAt.Add(domain.PlanValidity), *status.ExpiresAt)
}

func (suite *SubscriptionServiceTestSuite) TestGetStatus_LapsedPlan() {
	ctx := context.Background()
	purchasedAt := time.Now().UTC().Add(-31 * 24 * time.Hour)
	account := &domain.Account{
		AccountID:               uuid.NewString(),
		SubscriptionPlan:        domain.PlanElite,
		SubscriptionPurchasedAt: &purchasedAt,
		IsActive:                true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()

	status, err := suite.service.GetStatus(ctx, account.AccountID)

	suite.Require().NoError(err)
	suite.True(status.Expired)
}

func (suite *SubscriptionServiceTestSuite) TestGetStatus_NeverPurchased() {
	ctx := context.Background()
	account := &domain.Account{AccountID: uuid.NewString(), SubscriptionPlan: domain.PlanBasic, IsActive: true}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()

	status, err := suite.service.GetStatus(ctx, account.AccountID)

	suite.Require().NoError(err)
	suite.Equal(domain.PlanBasic, status.Plan)
	suite.Nil(status.PurchasedAt)
	suite.Nil(status.ExpiresAt)
	suite.False(status.Expired)
}

func TestSubscriptionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SubscriptionServiceTestSuite))
}
