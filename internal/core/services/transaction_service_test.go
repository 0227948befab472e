package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/boa-bank/transaction-service/internal/apperrors"
	"github.com/boa-bank/transaction-service/internal/core/domain"
	portsclients "github.com/boa-bank/transaction-service/internal/core/ports/clients"
	portsrepo "github.com/boa-bank/transaction-service/internal/core/ports/repositories"
	portssvc "github.com/boa-bank/transaction-service/internal/core/ports/services"
	"github.com/boa-bank/transaction-service/internal/core/services"
	"github.com/boa-bank/transaction-service/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

// Ensure MockTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID int64) (bool, error) {
	args := m.Called(ctx, transactionID)
	return args.Bool(0), args.Error(1)
}

// --- Mock AccountResolver ---
type MockAccountResolver struct {
	mock.Mock
}

var _ portsclients.AccountResolver = (*MockAccountResolver)(nil)

func (m *MockAccountResolver) ResolveAccount(ctx context.Context, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Test Suite ---
type TransactionServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockTransactionRepository
	mockResolver *MockAccountResolver
	service      portssvc.TransactionSvcFacade
	ctx          context.Context
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTransactionRepository)
	suite.mockResolver = new(MockAccountResolver)
	suite.service = services.NewTransactionService(suite.mockRepo, suite.mockResolver)
	suite.ctx = context.Background()
}

func intPtr(i int) *int {
	return &i
}

// --- CreateTransaction ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	account := &domain.Account{
		AccountID:     7,
		AccountNumber: "ACC-007",
		Balance:       decimal.NewFromInt(500),
	}
	req := dto.CreateTransactionRequest{
		Account:         dto.AccountRef{AccountID: 7},
		TransactionType: "DEPOSIT",
		Amount:          decimal.NewFromFloat(100.0),
		Description:     "salary",
	}

	suite.mockResolver.On("ResolveAccount", mock.Anything, int64(7)).Return(account, nil).Once()
	suite.mockRepo.On("SaveTransaction", mock.Anything, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.AccountID == 7 &&
			txn.AccountNumber == "ACC-007" &&
			txn.AccountBalance.Equal(decimal.NewFromInt(500)) &&
			txn.TransactionType == "DEPOSIT" &&
			txn.Amount.Equal(decimal.NewFromFloat(100.0)) &&
			txn.Description == "salary" &&
			txn.Version == 0 &&
			!txn.CreatedAt.IsZero()
	})).Return(&domain.Transaction{
		TransactionID:   1,
		AccountID:       7,
		AccountNumber:   "ACC-007",
		AccountBalance:  decimal.NewFromInt(500),
		TransactionType: "DEPOSIT",
		Amount:          decimal.NewFromFloat(100.0),
		Description:     "salary",
		CreatedAt:       time.Now().UTC(),
		Version:         0,
	}, nil).Once()

	created, err := suite.service.CreateTransaction(suite.ctx, req)

	suite.NoError(err)
	suite.NotNil(created)
	suite.Equal(int64(1), created.TransactionID)
	suite.Equal(int64(7), created.AccountID)
	suite.True(created.Amount.Equal(decimal.NewFromFloat(100.0)))
	suite.False(created.CreatedAt.IsZero())
	suite.mockResolver.AssertExpectations(suite.T())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_OverridesCallerSuppliedAccount() {
	// The server-resolved snapshot is authoritative; whatever the caller knew
	// about the account is discarded.
	resolved := &domain.Account{
		AccountID:     7,
		AccountNumber: "ACC-REAL",
		Balance:       decimal.NewFromInt(42),
	}
	req := dto.CreateTransactionRequest{
		Account:         dto.AccountRef{AccountID: 7},
		TransactionType: "WITHDRAWAL",
		Amount:          decimal.NewFromInt(10),
	}

	suite.mockResolver.On("ResolveAccount", mock.Anything, int64(7)).Return(resolved, nil).Once()
	suite.mockRepo.On("SaveTransaction", mock.Anything, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.AccountNumber == "ACC-REAL" && txn.AccountBalance.Equal(decimal.NewFromInt(42))
	})).Return(&domain.Transaction{TransactionID: 2, AccountID: 7, AccountNumber: "ACC-REAL"}, nil).Once()

	created, err := suite.service.CreateTransaction(suite.ctx, req)

	suite.NoError(err)
	suite.Equal("ACC-REAL", created.AccountNumber)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RejectsNonPositiveAmount() {
	account := &domain.Account{AccountID: 7, AccountNumber: "ACC-007", Balance: decimal.NewFromInt(500)}

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-50)} {
		suite.SetupTest()
		suite.mockResolver.On("ResolveAccount", mock.Anything, int64(7)).Return(account, nil).Once()

		req := dto.CreateTransactionRequest{
			Account:         dto.AccountRef{AccountID: 7},
			TransactionType: "DEPOSIT",
			Amount:          amount,
		}

		created, err := suite.service.CreateTransaction(suite.ctx, req)

		suite.Nil(created)
		suite.ErrorIs(err, apperrors.ErrValidation)
		suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
	}
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RejectsUnresolvedAccount() {
	suite.mockResolver.On("ResolveAccount", mock.Anything, int64(999)).
		Return(nil, apperrors.ErrAccountUnavailable).Once()

	req := dto.CreateTransactionRequest{
		Account:         dto.AccountRef{AccountID: 999},
		TransactionType: "DEPOSIT",
		Amount:          decimal.NewFromInt(50),
	}

	created, err := suite.service.CreateTransaction(suite.ctx, req)

	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrAccountUnavailable)
	// Nothing must be persisted when the account does not resolve.
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

// --- Reads ---

func (suite *TransactionServiceTestSuite) TestGetTransactionByID_Success() {
	expected := &domain.Transaction{TransactionID: 42, AccountID: 7}
	suite.mockRepo.On("FindTransactionByID", mock.Anything, int64(42)).Return(expected, nil).Once()

	txn, err := suite.service.GetTransactionByID(suite.ctx, 42)

	suite.NoError(err)
	suite.Equal(expected, txn)
}

func (suite *TransactionServiceTestSuite) TestGetTransactionByID_NotFound() {
	suite.mockRepo.On("FindTransactionByID", mock.Anything, int64(42)).Return(nil, apperrors.ErrNotFound).Once()

	txn, err := suite.service.GetTransactionByID(suite.ctx, 42)

	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_Empty() {
	suite.mockRepo.On("ListTransactions", mock.Anything).Return([]domain.Transaction{}, nil).Once()

	txns, err := suite.service.ListTransactions(suite.ctx)

	suite.NoError(err)
	suite.NotNil(txns)
	suite.Empty(txns)
}

func (suite *TransactionServiceTestSuite) TestListTransactionsByAccountID() {
	expected := []domain.Transaction{
		{TransactionID: 1, AccountID: 7},
		{TransactionID: 3, AccountID: 7},
	}
	suite.mockRepo.On("FindTransactionsByAccountID", mock.Anything, int64(7)).Return(expected, nil).Once()

	txns, err := suite.service.ListTransactionsByAccountID(suite.ctx, 7)

	suite.NoError(err)
	suite.Len(txns, 2)
	suite.Equal(int64(7), txns[0].AccountID)
}

// --- UpdateTransaction ---

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_Success() {
	createdAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	existing := &domain.Transaction{
		TransactionID:   42,
		AccountID:       7,
		AccountNumber:   "ACC-007",
		AccountBalance:  decimal.NewFromInt(500),
		TransactionType: "DEPOSIT",
		Amount:          decimal.NewFromInt(100),
		Description:     "salary",
		CreatedAt:       createdAt,
		Version:         2,
	}
	req := dto.UpdateTransactionRequest{
		TransactionType: "ADJUSTMENT",
		Amount:          decimal.NewFromInt(75),
		Description:     "corrected",
		Version:         intPtr(2),
	}

	suite.mockRepo.On("FindTransactionByID", mock.Anything, int64(42)).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateTransaction", mock.Anything, mock.MatchedBy(func(txn domain.Transaction) bool {
		// Mutable fields overwritten, immutable ones untouched, caller version carried.
		return txn.TransactionID == 42 &&
			txn.AccountID == 7 &&
			txn.CreatedAt.Equal(createdAt) &&
			txn.TransactionType == "ADJUSTMENT" &&
			txn.Amount.Equal(decimal.NewFromInt(75)) &&
			txn.Description == "corrected" &&
			txn.Version == 2
	})).Return(&domain.Transaction{
		TransactionID:   42,
		AccountID:       7,
		TransactionType: "ADJUSTMENT",
		Amount:          decimal.NewFromInt(75),
		Description:     "corrected",
		CreatedAt:       createdAt,
		Version:         3,
	}, nil).Once()

	updated, err := suite.service.UpdateTransaction(suite.ctx, 42, req)

	suite.NoError(err)
	suite.Equal(3, updated.Version)
	suite.Equal(int64(7), updated.AccountID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_NotFound() {
	suite.mockRepo.On("FindTransactionByID", mock.Anything, int64(42)).Return(nil, apperrors.ErrNotFound).Once()

	req := dto.UpdateTransactionRequest{TransactionType: "DEPOSIT", Amount: decimal.NewFromInt(10), Version: intPtr(0)}
	updated, err := suite.service.UpdateTransaction(suite.ctx, 42, req)

	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_StaleVersionConflict() {
	existing := &domain.Transaction{TransactionID: 42, AccountID: 7, Version: 5}
	suite.mockRepo.On("FindTransactionByID", mock.Anything, int64(42)).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateTransaction", mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrConflict).Once()

	req := dto.UpdateTransactionRequest{TransactionType: "DEPOSIT", Amount: decimal.NewFromInt(10), Version: intPtr(4)}
	updated, err := suite.service.UpdateTransaction(suite.ctx, 42, req)

	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

// --- DeleteTransaction ---

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_Removed() {
	suite.mockRepo.On("DeleteTransaction", mock.Anything, int64(42)).Return(true, nil).Once()

	removed, err := suite.service.DeleteTransaction(suite.ctx, 42)

	suite.NoError(err)
	suite.True(removed)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_Missing() {
	suite.mockRepo.On("DeleteTransaction", mock.Anything, int64(42)).Return(false, nil).Once()

	removed, err := suite.service.DeleteTransaction(suite.ctx, 42)

	suite.NoError(err)
	suite.False(removed)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_RepoError() {
	suite.mockRepo.On("DeleteTransaction", mock.Anything, int64(42)).Return(false, errors.New("boom")).Once()

	removed, err := suite.service.DeleteTransaction(suite.ctx, 42)

	suite.Error(err)
	suite.False(removed)
}

// --- Run Test Suite ---
func TestTransactionService(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
