package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single financial movement record tied to one account.
//
// The account reference is resolved and fixed at creation time; the
// denormalized AccountNumber/AccountBalance columns carry the snapshot of the
// owning account as it was when the transaction was created. There is no
// back-reference from Account to Transaction: listing an account's
// transactions goes through the repository's account-id lookup instead.
type Transaction struct {
	TransactionID   int64           `json:"transactionId"` // Primary key (bigserial)
	AccountID       int64           `json:"accountId"`     // Owning account; immutable after creation
	AccountNumber   string          `json:"accountNumber"`
	AccountBalance  decimal.Decimal `json:"accountBalance"`
	TransactionType string          `json:"transactionType"` // Free-form tag, e.g. DEPOSIT
	Amount          decimal.Decimal `json:"amount"`          // Strictly positive at creation
	Description     string          `json:"description"`
	CreatedAt       time.Time       `json:"createdAt"` // Server-assigned once, UTC
	Version         int             `json:"version"`   // Optimistic concurrency token, starts at 0
}

// AccountSnapshot returns the embedded snapshot of the owning account.
func (t *Transaction) AccountSnapshot() Account {
	return Account{
		AccountID:     t.AccountID,
		AccountNumber: t.AccountNumber,
		Balance:       t.AccountBalance,
	}
}
