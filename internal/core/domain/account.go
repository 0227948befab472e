package domain

import (
	"github.com/shopspring/decimal"
)

// Account is the snapshot of an account as served by the external account
// service. Accounts are mastered externally; this service only reads them at
// transaction-creation time and never writes back. The snapshot reflects the
// account state at fetch time and must not be assumed current afterwards.
type Account struct {
	AccountID     int64           `json:"accountId"`
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
}
