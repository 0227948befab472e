package domain_test

import (
	"testing"

	"github.com/boa-bank/transaction-service/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_AccountSnapshot(t *testing.T) {
	tests := []struct {
		name        string
		transaction domain.Transaction
		want        domain.Account
	}{
		{
			name: "populated snapshot",
			transaction: domain.Transaction{
				TransactionID:  1,
				AccountID:      7,
				AccountNumber:  "ACC-007",
				AccountBalance: decimal.NewFromFloat(512.75),
			},
			want: domain.Account{
				AccountID:     7,
				AccountNumber: "ACC-007",
				Balance:       decimal.NewFromFloat(512.75),
			},
		},
		{
			name:        "zero value transaction",
			transaction: domain.Transaction{},
			want:        domain.Account{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.transaction.AccountSnapshot()
			assert.Equal(t, tt.want.AccountID, got.AccountID)
			assert.Equal(t, tt.want.AccountNumber, got.AccountNumber)
			assert.True(t, tt.want.Balance.Equal(got.Balance))
		})
	}
}
