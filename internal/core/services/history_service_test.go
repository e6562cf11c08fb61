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

type HistoryServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockLedgerRepo  *MockLedgerRepository
	service         *services.HistoryService
}

func (suite *HistoryServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewHistoryService(suite.mockAccountRepo, suite.mockLedgerRepo, nil)
}

func (suite *HistoryServiceTestSuite) TestListTransactions_EnrichesNames() {
	ctx := context.Background()
	viewer := &domain.Account{AccountID: uuid.NewString(), ExternalID: 111111, Username: "anna", IsActive: true}
	now := time.Now().UTC()

	txns := []domain.Transaction{
		{TransactionID: uuid.NewString(), Kind: domain.KindTransfer, SenderExternalID: 111111, ReceiverExternalID: 222222, Amount: chf(30), CreatedAt: now},
		{TransactionID: uuid.NewString(), Kind: domain.KindTransfer, SenderExternalID: 333333, ReceiverExternalID: 111111, Amount: chf(10), CreatedAt: now.Add(-time.Hour)},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, viewer.AccountID).Return(viewer, nil).Once()
	suite.mockLedgerRepo.On("ListTransactionsByExternalID", ctx, int64(111111), 20, (*string)(nil)).Return(txns, nil, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByExternalIDs", ctx, mock.MatchedBy(func(ids []int64) bool {
		return len(ids) == 3
	})).Return(map[int64]domain.Account{
		111111: {ExternalID: 111111, Username: "anna"},
		222222: {ExternalID: 222222, Username: "maria"},
		333333: {ExternalID: 333333, Username: "jonas"},
	}, nil).Once()

	got, next, err := suite.service.ListTransactions(ctx, viewer.AccountID, 20, nil)

	suite.Require().NoError(err)
	suite.Nil(next)
	suite.Require().Len(got, 2)
	suite.Equal("anna", got[0].SenderName)
	suite.Equal("maria", got[0].ReceiverName)
	suite.Equal("jonas", got[1].SenderName)
	suite.Equal("anna", got[1].ReceiverName)
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *HistoryServiceTestSuite) TestListTransactions_PlanPurchaseHasNoReceiverName() {
	ctx := context.Background()
	viewer := &domain.Account{AccountID: uuid.NewString(), ExternalID: 111111, Username: "anna", IsActive: true}

	txns := []domain.Transaction{
		{TransactionID: uuid.NewString(), Kind: domain.KindPlanPurchase, SenderExternalID: 111111, Amount: chf(40), CreatedAt: time.Now().UTC()},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, viewer.AccountID).Return(viewer, nil).Once()
	suite.mockLedgerRepo.On("ListTransactionsByExternalID", ctx, int64(111111), 20, (*string)(nil)).Return(txns, nil, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByExternalIDs", ctx, []int64{111111}).Return(map[int64]domain.Account{
		111111: {ExternalID: 111111, Username: "anna"},
	}, nil).Once()

	got, _, err := suite.service.ListTransactions(ctx, viewer.AccountID, 20, nil)

	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Equal("anna", got[0].SenderName)
	suite.Empty(got[0].ReceiverName)
}

func (suite *HistoryServiceTestSuite) TestListTransactions_PropagatesNextToken() {
	ctx := context.Background()
	viewer := &domain.Account{AccountID: uuid.NewString(), ExternalID: 111111, IsActive: true}
	token := "b3BhcXVl"

	suite.mockAccountRepo.On("FindAccountByID", ctx, viewer.AccountID).Return(viewer, nil).Once()
	suite.mockLedgerRepo.On("ListTransactionsByExternalID", ctx, int64(111111), 5, (*string)(nil)).
		Return([]domain.Transaction{}, &token, nil).Once()

	_, next, err := suite.service.ListTransactions(ctx, viewer.AccountID, 5, nil)

	suite.Require().NoError(err)
	suite.Require().NotNil(next)
	suite.Equal(token, *next)
}

func (suite *HistoryServiceTestSuite) TestListTransactions_AccountNotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.ListTransactions(ctx, accountID, 20, nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "ListTransactionsByExternalID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHistoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(HistoryServiceTestSuite))
}
