package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/boa-bank/transaction-service/internal/apperrors"
	"github.com/boa-bank/transaction-service/internal/core/domain"
	portsrepo "github.com/boa-bank/transaction-service/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	pool *pgxpool.Pool
}

// NewPgxTransactionRepository creates a new repository for transaction data.
func NewPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{pool: pool}
}

// Ensure PgxTransactionRepository implements the facade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, account_id, account_number, account_balance, transaction_type, amount, description, created_at, version`

// SaveTransaction inserts a new transaction within a DB transaction. The
// database assigns the identifier; created_at and the initial version come
// from the caller.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Defer rollback in case of error
	defer func() {
		_ = tx.Rollback(ctx) // Ignore rollback error
	}()

	query := `
		INSERT INTO transactions (account_id, account_number, account_balance, transaction_type, amount, description, created_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING transaction_id;
	`
	err = tx.QueryRow(ctx, query,
		txn.AccountID,
		txn.AccountNumber,
		txn.AccountBalance,
		txn.TransactionType,
		txn.Amount,
		txn.Description,
		txn.CreatedAt,
		txn.Version,
	).Scan(&txn.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction for account %d: %w", txn.AccountID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction %d: %w", txn.TransactionID, err)
	}

	return &txn, nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1;
	`
	txn, err := scanTransaction(r.pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Map db not found error to application specific error
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %d: %w", transactionID, err)
	}
	return txn, nil
}

// ListTransactions retrieves the full transactions table, ordered by id.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		ORDER BY transaction_id;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// FindTransactionsByAccountID retrieves all transactions owned by the given account.
func (r *PgxTransactionRepository) FindTransactionsByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id = $1
		ORDER BY transaction_id;
	`
	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for account %d: %w", accountID, err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// UpdateTransaction overwrites the mutable fields of an existing transaction
// and increments its version, both guarded by the caller's version token in a
// single UPDATE. Zero affected rows means either the row is gone or the token
// is stale; the two are disambiguated by an existence probe inside the same
// DB transaction.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // Ignore rollback error
	}()

	query := `
		UPDATE transactions
		SET transaction_type = $1, amount = $2, description = $3, version = version + 1
		WHERE transaction_id = $4 AND version = $5
		RETURNING ` + transactionColumns + `;
	`
	updated, err := scanTransaction(tx.QueryRow(ctx, query,
		txn.TransactionType,
		txn.Amount,
		txn.Description,
		txn.TransactionID,
		txn.Version,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			probeErr := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM transactions WHERE transaction_id = $1);`, txn.TransactionID).Scan(&exists)
			if probeErr != nil {
				return nil, fmt.Errorf("failed to probe transaction %d after stale update: %w", txn.TransactionID, probeErr)
			}
			if exists {
				return nil, fmt.Errorf("stale version %d for transaction %d: %w", txn.Version, txn.TransactionID, apperrors.ErrConflict)
			}
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update transaction %d: %w", txn.TransactionID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit update of transaction %d: %w", txn.TransactionID, err)
	}

	return updated, nil
}

// DeleteTransaction removes a transaction row, reporting whether one existed.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return false, fmt.Errorf("failed to delete transaction %d: %w", transactionID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// scanTransaction scans a single row in transactionColumns order.
func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	err := row.Scan(
		&txn.TransactionID,
		&txn.AccountID,
		&txn.AccountNumber,
		&txn.AccountBalance,
		&txn.TransactionType,
		&txn.Amount,
		&txn.Description,
		&txn.CreatedAt,
		&txn.Version,
	)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// collectTransactions drains rows into a slice, never returning nil on success.
func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading transaction rows: %w", err)
	}
	return transactions, nil
}
