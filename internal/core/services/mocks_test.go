package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/swisspay/swisspay_backend/internal/core/domain"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByExternalID(ctx context.Context, externalID int64) (*domain.Account, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByExternalIDs(ctx context.Context, externalIDs []int64) (map[int64]domain.Account, error) {
	args := m.Called(ctx, externalIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByUsernamePrefix(ctx context.Context, prefix string, limit int) ([]domain.Account, error) {
	args := m.Called(ctx, prefix, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindCredentialByUsername(ctx context.Context, username string) (*domain.Credential, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account, passwordHash string) error {
	args := m.Called(ctx, account, passwordHash)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateUsername(ctx context.Context, accountID string, username string, now time.Time) error {
	args := m.Called(ctx, accountID, username, now)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, now time.Time) error {
	args := m.Called(ctx, accountID, now)
	return args.Error(0)
}

// MockLedgerRepository is a mock type for the LedgerRepositoryFacade interface
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) ExecuteTransfer(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockLedgerRepository) ExecutePlanPurchase(ctx context.Context, txn domain.Transaction, plan domain.PlanID, purchasedAt time.Time) error {
	args := m.Called(ctx, txn, plan, purchasedAt)
	return args.Error(0)
}

func (m *MockLedgerRepository) ListTransactionsByExternalID(ctx context.Context, externalID int64, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, externalID, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return txns, next, args.Error(2)
}

func (m *MockLedgerRepository) CountTransactionsByExternalID(ctx context.Context, externalID int64) (int64, error) {
	args := m.Called(ctx, externalID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCardRepository is a mock type for the CardRepositoryFacade interface
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) FindCardByAccountID(ctx context.Context, accountID string) (*domain.CardProfile, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CardProfile), args.Error(1)
}

func (m *MockCardRepository) UpsertCard(ctx context.Context, card domain.CardProfile) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

// chf is a test helper for decimal amounts.
func chf(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}
