package accountsvc_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/boa-bank/transaction-service/internal/adapters/accountsvc"
	"github.com/boa-bank/transaction-service/internal/apperrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAccount_Success(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"accountId":7,"accountNumber":"ACC-007","balance":512.75}`))
	}))
	defer server.Close()

	client := accountsvc.NewClient(server.URL, 5*time.Second)
	account, err := client.ResolveAccount(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "/accounts/7", gotPath)
	assert.Equal(t, int64(7), account.AccountID)
	assert.Equal(t, "ACC-007", account.AccountNumber)
	assert.True(t, account.Balance.Equal(decimal.NewFromFloat(512.75)))
}

func TestResolveAccount_CollapsesFailures(t *testing.T) {
	// Absence, server failure and a garbage body all look the same to the
	// caller: account unavailable.
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"accountId": not-json`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := accountsvc.NewClient(server.URL, 5*time.Second)
			account, err := client.ResolveAccount(context.Background(), 999)

			assert.Nil(t, account)
			assert.ErrorIs(t, err, apperrors.ErrAccountUnavailable)
		})
	}
}

func TestResolveAccount_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // Closed server forces a connection failure

	client := accountsvc.NewClient(server.URL, 1*time.Second)
	account, err := client.ResolveAccount(context.Background(), 7)

	assert.Nil(t, account)
	assert.ErrorIs(t, err, apperrors.ErrAccountUnavailable)
}
