package clients

import (
	"context"

	"github.com/boa-bank/transaction-service/internal/core/domain"
)

// AccountResolver fetches account snapshots from the external account service.
type AccountResolver interface {
	// ResolveAccount returns the current snapshot of the account, or an error
	// wrapping apperrors.ErrAccountUnavailable when the lookup does not yield
	// one. Absence and transport failure are not distinguished.
	ResolveAccount(ctx context.Context, accountID int64) (*domain.Account, error)
}
