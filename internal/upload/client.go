package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ImportSummary mirrors the import endpoint's response without importing the
// service package.
type ImportSummary struct {
	Received     int   `json:"sessions_received"`
	Logged       int   `json:"sessions_logged"`
	Duplicates   int   `json:"sessions_duplicate"`
	Rejected     int   `json:"sessions_rejected"`
	SetsImported int64 `json:"sets_imported"`
}

// Client sends CSV exports to the LiftLog server over HTTP.
type Client struct {
	serverURL  string
	apiKey     string
	httpClient *http.Client
	backoff    time.Duration
}

// NewClient creates a new HTTP client for the LiftLog server.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		serverURL: strings.TrimRight(serverURL, "/"),
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		backoff: time.Second,
	}
}

// SendCSV POSTs one export file to the server's import endpoint.
// Retries up to 3 times with exponential backoff on transport errors and 5xx
// responses. A 4xx response is returned immediately.
func (c *Client) SendCSV(ctx context.Context, data []byte) (ImportSummary, error) {
	var lastErr error
	for attempt := range 3 {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ImportSummary{}, ctx.Err()
			case <-time.After(c.backoff << uint(attempt-1)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.serverURL+"/api/v1/import/alpha", bytes.NewReader(data))
		if err != nil {
			return ImportSummary{}, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "text/csv")
		if c.apiKey != "" {
			req.Header.Set("X-API-Key", c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			var sum ImportSummary
			if err := json.Unmarshal(body, &sum); err != nil {
				return ImportSummary{}, fmt.Errorf("decoding import response: %w", err)
			}
			return sum, nil
		case resp.StatusCode < 500:
			return ImportSummary{}, fmt.Errorf("import rejected (status %d): %s", resp.StatusCode, body)
		}
		lastErr = fmt.Errorf("import failed (status %d): %s", resp.StatusCode, body)
	}

	return ImportSummary{}, fmt.Errorf("after 3 attempts: %w", lastErr)
}
