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
	"github.com/swisspay/swisspay_backend/internal/utils"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  *services.AccountService
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo, nil)
}

func (suite *AccountServiceTestSuite) TestRegister_Success() {
	ctx := context.Background()

	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.Username == "anna" &&
			acc.Email == "anna@example.com" &&
			acc.Balance.IsZero() &&
			acc.IsActive &&
			acc.SubscriptionPlan == domain.PlanBasic &&
			acc.ExternalID >= 100000 && acc.ExternalID <= 999999
	}), mock.AnythingOfType("string")).Return(nil).Once()

	account, err := suite.service.Register(ctx, "anna", "anna@example.com", "s3cretpass")

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.True(account.Balance.IsZero())
	suite.WithinDuration(time.Now().UTC(), account.CreatedAt, time.Second)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestRegister_RetriesOnExternalIDCollision() {
	ctx := context.Background()

	// First draw collides, second succeeds
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account"), mock.AnythingOfType("string")).
		Return(apperrors.ErrExternalIDTaken).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account"), mock.AnythingOfType("string")).
		Return(nil).Once()

	account, err := suite.service.Register(ctx, "bela", "bela@example.com", "s3cretpass")

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "SaveAccount", 2)
}

func (suite *AccountServiceTestSuite) TestRegister_DuplicateUsername() {
	ctx := context.Background()

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account"), mock.AnythingOfType("string")).
		Return(apperrors.ErrDuplicate).Once()

	account, err := suite.service.Register(ctx, "anna", "other@example.com", "s3cretpass")

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	hash, err := utils.HashPassword("s3cretpass")
	suite.Require().NoError(err)

	cred := &domain.Credential{AccountID: accountID, PasswordHash: hash}
	account := &domain.Account{AccountID: accountID, Username: "anna", IsActive: true}

	suite.mockRepo.On("FindCredentialByUsername", ctx, "anna").Return(cred, nil).Once()
	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()

	got, err := suite.service.Authenticate(ctx, "anna", "s3cretpass")

	suite.Require().NoError(err)
	suite.Equal(accountID, got.AccountID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("rightpass")
	suite.Require().NoError(err)

	cred := &domain.Credential{AccountID: uuid.NewString(), PasswordHash: hash}
	suite.mockRepo.On("FindCredentialByUsername", ctx, "anna").Return(cred, nil).Once()

	got, err := suite.service.Authenticate(ctx, "anna", "wrongpass")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestAuthenticate_UnknownUsername() {
	ctx := context.Background()

	suite.mockRepo.On("FindCredentialByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.Authenticate(ctx, "ghost", "whatever")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestSearchRecipients_ExcludesSelf() {
	ctx := context.Background()
	selfID := uuid.NewString()
	matches := []domain.Account{
		{AccountID: selfID, ExternalID: 111111, Username: "mar", IsActive: true},
		{AccountID: uuid.NewString(), ExternalID: 222222, Username: "maria", IsActive: true},
	}

	suite.mockRepo.On("FindAccountsByUsernamePrefix", ctx, "mar", 10).Return(matches, nil).Once()

	results, err := suite.service.SearchRecipients(ctx, selfID, "mar", 10)

	suite.Require().NoError(err)
	suite.Require().Len(results, 1)
	suite.Equal("maria", results[0].Username)
}

func (suite *AccountServiceTestSuite) TestUpdateUsername_Success() {
	ctx := context.Background()
	account := &domain.Account{AccountID: uuid.NewString(), ExternalID: 111111, Username: "old", IsActive: true}

	suite.mockRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockRepo.On("UpdateUsername", ctx, account.AccountID, "new", mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.UpdateUsername(ctx, account.AccountID, "new")

	suite.Require().NoError(err)
	suite.Equal("new", updated.Username)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateUsername_Duplicate() {
	ctx := context.Background()
	account := &domain.Account{AccountID: uuid.NewString(), ExternalID: 111111, Username: "old", IsActive: true}

	suite.mockRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockRepo.On("UpdateUsername", ctx, account.AccountID, "taken", mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrDuplicate).Once()

	updated, err := suite.service.UpdateUsername(ctx, account.AccountID, "taken")

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
