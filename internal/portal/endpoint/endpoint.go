// Package endpoint posts payloads to the configurable remote compute
// endpoint. The shipped configuration carries a placeholder URL; until an
// operator replaces it, every call fails fast without touching the network.
package endpoint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// PlaceholderURL is the unconfigured sentinel shipped in example
// configuration files.
const PlaceholderURL = "https://YOUR_REGION-YOUR_PROJECT.example.invalid/api/data"

// ErrNotConfigured is returned when the endpoint URL is absent or still the
// placeholder. The check runs before any network I/O.
var ErrNotConfigured = errors.New("endpoint: remote endpoint not configured")

// Client posts JSON payloads to the remote endpoint.
type Client struct {
	URL        string
	HTTPClient *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		URL: strings.TrimSpace(url),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Configured reports whether a real endpoint URL is set.
func (c *Client) Configured() bool {
	return c.URL != "" && c.URL != PlaceholderURL
}

// Post sends the payload and returns the decoded JSON response. An
// unconfigured endpoint fails with ErrNotConfigured before any request is
// made; a non-2xx answer is an error carrying the status.
func (c *Client) Post(ctx context.Context, payload map[string]any) (map[string]any, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("endpoint: failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("endpoint: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("endpoint: failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("endpoint: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("endpoint: request failed: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var out map[string]any
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("endpoint: failed to decode response: %w", err)
	}
	return out, nil
}
