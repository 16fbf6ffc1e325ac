// Package fetcher performs bounded HTTP fetches of monitored pages.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxBodySize = 5 * 1024 * 1024

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher downloads page bodies with a bounded timeout.
type Fetcher struct {
	client  HTTPClient
	timeout time.Duration
}

// New creates a Fetcher with the given HTTP client.
func New(client HTTPClient) *Fetcher {
	return &Fetcher{
		client:  client,
		timeout: 10 * time.Second,
	}
}

// Fetch downloads url and returns the raw body bytes and HTTP status code.
// Non-2xx statuses are returned as data, not errors: status transitions are
// tracked as page changes. Only transport failures and timeouts error.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, int, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "WebWatchBot/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("http get: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, 0, fmt.Errorf("read body: %w", err)
	}
	return body, resp.StatusCode, nil
}
