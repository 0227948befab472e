package repositories

import (
	"context"

	"github.com/boa-bank/transaction-service/internal/core/domain"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its unique identifier.
	// Returns apperrors.ErrNotFound when no row exists.
	FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error)

	// ListTransactions retrieves every transaction in the table, ordered by id.
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)

	// FindTransactionsByAccountID retrieves all transactions owned by the given account.
	FindTransactionsByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransaction persists a new transaction within a database transaction.
	// The store assigns the identifier; the returned record is the persisted one.
	SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error)

	// UpdateTransaction overwrites the mutable fields of an existing transaction,
	// comparing-and-incrementing the version in the same statement. A stale
	// version yields apperrors.ErrConflict, a missing row apperrors.ErrNotFound.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction row, reporting whether one existed.
	DeleteTransaction(ctx context.Context, transactionID int64) (bool, error)
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
// This is a facade for clients that need access to all operations.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
