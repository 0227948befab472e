package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/boa-bank/transaction-service/internal/apperrors"
	"github.com/boa-bank/transaction-service/internal/core/domain"
	portsclients "github.com/boa-bank/transaction-service/internal/core/ports/clients"
	portsrepo "github.com/boa-bank/transaction-service/internal/core/ports/repositories"
	portssvc "github.com/boa-bank/transaction-service/internal/core/ports/services"
	"github.com/boa-bank/transaction-service/internal/dto"
	"github.com/boa-bank/transaction-service/internal/middleware"
	"github.com/shopspring/decimal"
)

// transactionService provides the core transaction workflow operations.
type transactionService struct {
	transactionRepo portsrepo.TransactionRepositoryFacade
	accountResolver portsclients.AccountResolver
}

// NewTransactionService creates a new transaction service over the given
// repository and account resolver.
func NewTransactionService(transactionRepo portsrepo.TransactionRepositoryFacade, accountResolver portsclients.AccountResolver) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		accountResolver: accountResolver,
	}
}

// Ensure transactionService implements the portssvc.TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateTransaction resolves the owning account from the external account
// service, validates the request and persists a new transaction record.
//
// The account fetch happens before, and outside of, the storage transaction
// boundary; its result is trusted for the remainder of the operation even
// though the external account's true state may change concurrently.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountResolver.ResolveAccount(ctx, req.Account.AccountID)
	if err != nil {
		logger.Warn("Account resolution failed for CreateTransaction",
			slog.Int64("account_id", req.Account.AccountID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("resolving account %d: %w", req.Account.AccountID, err)
	}

	// Already checked by binding, but good practice: the service is the
	// authoritative gate for the positive-amount rule.
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: transaction amount must be greater than zero", apperrors.ErrValidation)
	}

	logger.Info("Creating transaction",
		slog.Int64("account_id", account.AccountID),
		slog.String("transaction_type", req.TransactionType),
		slog.String("amount", req.Amount.String()))

	now := time.Now().UTC()
	txn := domain.Transaction{
		AccountID:       account.AccountID,
		AccountNumber:   account.AccountNumber,
		AccountBalance:  account.Balance,
		TransactionType: req.TransactionType,
		Amount:          req.Amount,
		Description:     req.Description,
		CreatedAt:       now,
		Version:         0,
	}

	saved, err := s.transactionRepo.SaveTransaction(ctx, txn)
	if err != nil {
		return nil, fmt.Errorf("saving transaction for account %d: %w", account.AccountID, err)
	}

	logger.Info("Transaction created successfully", slog.Int64("transaction_id", saved.TransactionID))
	return saved, nil
}

// GetTransactionByID retrieves a transaction by its ID.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	return s.transactionRepo.FindTransactionByID(ctx, transactionID)
}

// ListTransactions retrieves every transaction. An empty store yields an
// empty slice, not an error; the boundary layer decides the wire-level status.
func (s *transactionService) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	return s.transactionRepo.ListTransactions(ctx)
}

// ListTransactionsByAccountID retrieves all transactions owned by an account.
func (s *transactionService) ListTransactionsByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	return s.transactionRepo.FindTransactionsByAccountID(ctx, accountID)
}

// UpdateTransaction overwrites the mutable fields (type, amount, description)
// of an existing transaction. The owning account, identifier and creation
// timestamp never change. Amount is deliberately not re-validated for
// positivity here, an asymmetry with create that existing consumers rely on.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID int64, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		logger.Warn("Transaction not found for update", slog.Int64("transaction_id", transactionID))
		return nil, err
	}

	logger.Info("Updating transaction",
		slog.Int64("transaction_id", transactionID),
		slog.String("amount", req.Amount.String()))

	updated := *existing
	updated.TransactionType = req.TransactionType
	updated.Amount = req.Amount
	updated.Description = req.Description
	// The caller's version token drives the store's compare-and-increment.
	updated.Version = *req.Version

	saved, err := s.transactionRepo.UpdateTransaction(ctx, updated)
	if err != nil {
		return nil, fmt.Errorf("updating transaction %d: %w", transactionID, err)
	}
	return saved, nil
}

// DeleteTransaction removes a transaction by ID, reporting whether a row was
// actually removed. Deleting a missing ID is a no-op.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID int64) (bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	removed, err := s.transactionRepo.DeleteTransaction(ctx, transactionID)
	if err != nil {
		return false, fmt.Errorf("deleting transaction %d: %w", transactionID, err)
	}
	if !removed {
		logger.Warn("Transaction not found for deletion", slog.Int64("transaction_id", transactionID))
		return false, nil
	}

	logger.Info("Deleted transaction", slog.Int64("transaction_id", transactionID))
	return true, nil
}
