package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/swisspay/swisspay_backend/internal/apperrors"
	"github.com/swisspay/swisspay_backend/internal/core/domain"
	"github.com/swisspay/swisspay_backend/internal/core/services"
)

type CardServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockCardRepo    *MockCardRepository
	service         *services.CardService
}

func (suite *CardServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockCardRepo = new(MockCardRepository)
	suite.service = services.NewCardService(suite.mockAccountRepo, suite.mockCardRepo)
}

func (suite *CardServiceTestSuite) TestGetCard_Existing() {
	ctx := context.Background()
	accountID := uuid.NewString()
	card := &domain.CardProfile{AccountID: accountID, Holder: "Anna", MaxLimit: chf(1000), DayLimit: chf(500)}

	suite.mockCardRepo.On("FindCardByAccountID", ctx, accountID).Return(card, nil).Once()

	got, err := suite.service.GetCard(ctx, accountID)

	suite.Require().NoError(err)
	suite.Equal("Anna", got.Holder)
	suite.mockCardRepo.AssertExpectations(suite.T())
}

func (suite *CardServiceTestSuite) TestGetCard_CreatesDefaultOnFirstAccess() {
	ctx := context.Background()
	account := &domain.Account{AccountID: uuid.NewString(), Username: "anna", IsActive: true}

	suite.mockCardRepo.On("FindCardByAccountID", ctx, account.AccountID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockCardRepo.On("UpsertCard", ctx, mock.MatchedBy(func(card domain.CardProfile) bool {
		return card.AccountID == account.AccountID &&
			card.Holder == "anna" &&
			card.MaxLimit.Equal(chf(1000)) &&
			card.DayLimit.Equal(chf(500))
	})).Return(nil).Once()

	got, err := suite.service.GetCard(ctx, account.AccountID)

	suite.Require().NoError(err)
	suite.Equal("anna", got.Holder)
	suite.True(got.MaxLimit.Equal(chf(1000)))
	suite.mockCardRepo.AssertExpectations(suite.T())
}

func (suite *CardServiceTestSuite) TestUpdateCard_AppliesPartialUpdate() {
	ctx := context.Background()
	accountID := uuid.NewString()
	card := &domain.CardProfile{AccountID: accountID, Holder: "Anna", DesignID: 1, MaxLimit: chf(1000), DayLimit: chf(500)}

	newLimit := chf(250)
	design := 3

	suite.mockCardRepo.On("FindCardByAccountID", ctx, accountID).Return(card, nil).Once()
	suite.mockCardRepo.On("UpsertCard", ctx, mock.MatchedBy(func(updated domain.CardProfile) bool {
		return updated.MaxLimit.Equal(newLimit) &&
			updated.DesignID == 3 &&
			updated.Holder == "Anna" // untouched
	})).Return(nil).Once()

	got, err := suite.service.UpdateCard(ctx, accountID, domain.CardUpdate{MaxLimit: &newLimit, DesignID: &design})

	suite.Require().NoError(err)
	suite.True(got.MaxLimit.Equal(newLimit))
	suite.Equal(3, got.DesignID)
	suite.mockCardRepo.AssertExpectations(suite.T())
}

func (suite *CardServiceTestSuite) TestUpdateCard_RejectsNegativeLimit() {
	ctx := context.Background()
	accountID := uuid.NewString()
	card := &domain.CardProfile{AccountID: accountID, MaxLimit: chf(1000)}

	negative := chf(-5)
	suite.mockCardRepo.On("FindCardByAccountID", ctx, accountID).Return(card, nil).Once()

	got, err := suite.service.UpdateCard(ctx, accountID, domain.CardUpdate{MaxLimit: &negative})

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCardRepo.AssertNotCalled(suite.T(), "UpsertCard", mock.Anything, mock.Anything)
}

func (suite *CardServiceTestSuite) TestCheckLimit_WithinLimit() {
	ctx := context.Background()
	accountID := uuid.NewString()
	card := &domain.CardProfile{AccountID: accountID, MaxLimit: chf(100)}

	suite.mockCardRepo.On("FindCardByAccountID", ctx, accountID).Return(card, nil).Once()

	suite.NoError(suite.service.CheckLimit(ctx, accountID, chf(100)))
}

func (suite *CardServiceTestSuite) TestCheckLimit_Exceeded() {
	ctx := context.Background()
	accountID := uuid.NewString()
	card := &domain.CardProfile{AccountID: accountID, MaxLimit: chf(100)}

	suite.mockCardRepo.On("FindCardByAccountID", ctx, accountID).Return(card, nil).Once()

	err := suite.service.CheckLimit(ctx, accountID, chf(101))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrLimitExceeded)
}

func (suite *CardServiceTestSuite) TestCheckLimit_ZeroLimitMeansUnlimited() {
	ctx := context.Background()
	accountID := uuid.NewString()
	card := &domain.CardProfile{AccountID: accountID, MaxLimit: chf(0)}

	suite.mockCardRepo.On("FindCardByAccountID", ctx, accountID).Return(card, nil).Once()

	suite.NoError(suite.service.CheckLimit(ctx, accountID, chf(1000000)))
}

func TestCardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CardServiceTestSuite))
}
