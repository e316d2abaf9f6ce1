package payrollfeed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/sitecrew/labortrack-backend-go/internal/config"
)

// Client pushes payroll batches to the external payroll provider.
// Authentication is OAuth2 client credentials; the underlying HTTP client
// fetches and refreshes tokens on its own.
type Client struct {
	httpClient *http.Client
	feedURL    string
}

// NewClient builds a feed client from configuration. Returns nil when the
// feed is disabled; all Client methods are safe to call on a nil receiver.
func NewClient(cfg config.PayrollFeedConfig) *Client {
	if !cfg.Enabled {
		return nil
	}

	creds := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}

	return &Client{
		// The token source is shared across requests so tokens are reused
		// until they expire.
		httpClient: creds.Client(context.Background()),
		feedURL:    cfg.FeedURL,
	}
}

// Enabled reports whether a provider is configured.
func (c *Client) Enabled() bool {
	return c != nil
}

// APIError represents an error response from the payroll provider.
type APIError struct {
	StatusCode int
	ErrorCode  string `json:"error_code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("payroll feed error [%d] %s: %s", e.StatusCode, e.ErrorCode, e.Message)
}

// PushReceipt is the provider's acknowledgement of a delivered batch.
type PushReceipt struct {
	BatchID    string `json:"batch_id"`
	Status     string `json:"status"`
	ReceivedAt string `json:"received_at"`
}

// PushBatch delivers one payroll batch to the provider.
func (c *Client) PushBatch(ctx context.Context, batch PayrollBatch) (*PushReceipt, error) {
	if c == nil {
		return nil, fmt.Errorf("payroll feed is not configured")
	}

	body, err := json.Marshal(batch)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payroll batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.feedURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", batch.BatchID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to push payroll batch: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read feed response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(respBody, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = string(respBody)
		}
		return nil, apiErr
	}

	receipt := &PushReceipt{}
	if err := json.Unmarshal(respBody, receipt); err != nil {
		// Some providers return an empty 2xx body; treat it as accepted.
		receipt = &PushReceipt{
			BatchID:    batch.BatchID,
			Status:     "accepted",
			ReceivedAt: time.Now().UTC().Format(time.RFC3339),
		}
	}
	if receipt.BatchID == "" {
		receipt.BatchID = batch.BatchID
	}

	return receipt, nil
}
