// Package client provides the consumer side of the transfer approval
// flow: an HTTP fetcher for the reconciliation feed, a fixed-interval
// poller, and the de-duplication step that merges the polling path with
// events received over the live channel.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"arcbank/internal/services/transfer"
)

// Client fetches transfer updates from the server's polling endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient creates a new updates client. baseURL is the server root,
// e.g. "http://localhost:3000".
func NewClient(baseURL, token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		token:      token,
	}
}

type updatesEnvelope struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Data    transfer.UpdatesPage `json:"data"`
}

// FetchUpdates calls GET /api/transfers/updates with the given
// watermark and page limit.
func (c *Client) FetchUpdates(ctx context.Context, since *time.Time, limit int) (*transfer.UpdatesPage, error) {
	endpoint := c.baseURL + "/api/transfers/updates"

	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if since != nil && !since.IsZero() {
		q.Set("since", since.UTC().Format(time.RFC3339))
	}
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build updates request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch updates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch updates: unexpected status %d", resp.StatusCode)
	}

	var envelope updatesEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode updates response: %w", err)
	}
	if !envelope.Success {
		return nil, errors.New("fetch updates: " + envelope.Message)
	}
	return &envelope.Data, nil
}
