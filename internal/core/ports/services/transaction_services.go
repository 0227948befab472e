package services

import (
	"context"

	"github.com/boa-bank/transaction-service/internal/core/domain"
	"github.com/boa-bank/transaction-service/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a specific transaction by its ID.
	GetTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error)

	// ListTransactions retrieves every transaction (no pagination).
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)

	// ListTransactionsByAccountID retrieves all transactions for an account.
	ListTransactionsByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error)
}

// TransactionWriterSvc defines write operations for transaction data
type TransactionWriterSvc interface {
	// CreateTransaction resolves the owning account, validates the request and
	// persists a new transaction.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// UpdateTransaction overwrites the mutable fields of an existing
	// transaction, relying on the store's optimistic-concurrency check.
	UpdateTransaction(ctx context.Context, transactionID int64, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction, reporting whether one existed.
	DeleteTransaction(ctx context.Context, transactionID int64) (bool, error)
}

// TransactionSvcFacade combines all transaction service interfaces.
// This is a facade for clients that need access to all operations.
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Transaction TransactionSvcFacade
}
