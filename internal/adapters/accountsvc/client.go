// Package accountsvc is the HTTP client for the external account service.
package accountsvc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/boa-bank/transaction-service/internal/apperrors"
	"github.com/boa-bank/transaction-service/internal/core/domain"
	portsclients "github.com/boa-bank/transaction-service/internal/core/ports/clients"
)

// Client resolves accounts against the external account service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the account service at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Ensure Client implements the AccountResolver port
var _ portsclients.AccountResolver = (*Client)(nil)

// ResolveAccount issues GET {baseURL}/accounts/{accountID} and decodes the
// account document. A non-2xx response, a transport error and a malformed body
// all collapse to apperrors.ErrAccountUnavailable: the caller cannot tell
// "account does not exist" apart from "account service failed". That
// conflation is part of the contract, not an accident.
func (c *Client) ResolveAccount(ctx context.Context, accountID int64) (*domain.Account, error) {
	url := fmt.Sprintf("%s/accounts/%d", c.baseURL, accountID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build account request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching account %d: %v", apperrors.ErrAccountUnavailable, accountID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: account service returned status %d for account %d", apperrors.ErrAccountUnavailable, resp.StatusCode, accountID)
	}

	var account domain.Account
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return nil, fmt.Errorf("%w: decoding account %d: %v", apperrors.ErrAccountUnavailable, accountID, err)
	}

	return &account, nil
}
