package dto

import (
	"time"

	"github.com/boa-bank/transaction-service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountRef identifies the owning account on a create request. Any other
// account fields the caller supplies are untrusted and discarded; the
// server-resolved snapshot is authoritative.
type AccountRef struct {
	AccountID int64 `json:"accountId" binding:"required,gt=0"`
}

// CreateTransactionRequest defines the data needed to create a new transaction.
type CreateTransactionRequest struct {
	Account         AccountRef      `json:"account" binding:"required"`
	TransactionType string          `json:"transactionType" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Description     string          `json:"description"`
}

// UpdateTransactionRequest defines the data allowed for updating a transaction.
// The owning account and identifier are immutable and cannot be changed here.
// Version carries the optimistic-concurrency token read by the caller; a stale
// value is rejected by the store. Note that amount is not re-validated for
// positivity on update.
type UpdateTransactionRequest struct {
	TransactionType string          `json:"transactionType" binding:"required"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	Version         *int            `json:"version" binding:"required"`
}

// AccountSnapshot mirrors the denormalized account state embedded in a
// transaction at creation time.
type AccountSnapshot struct {
	AccountID     int64           `json:"accountId"`
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID   int64           `json:"transactionId"`
	Account         AccountSnapshot `json:"account"`
	TransactionType string          `json:"transactionType"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	CreatedAt       time.Time       `json:"createdAt"`
	Version         int             `json:"version"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		Account: AccountSnapshot{
			AccountID:     txn.AccountID,
			AccountNumber: txn.AccountNumber,
			Balance:       txn.AccountBalance,
		},
		TransactionType: txn.TransactionType,
		Amount:          txn.Amount,
		Description:     txn.Description,
		CreatedAt:       txn.CreatedAt,
		Version:         txn.Version,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}
