package seed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/citytransit-view/internal/common/logger"
)

const (
	httpTimeout  = 30 * time.Second
	maxSeedBytes = 4 << 20
	maxRetries   = 3
)

// HTTPFetcher downloads remote seed documents
type HTTPFetcher struct {
	client     *http.Client
	logger     logger.Logger
	newBackOff func() backoff.BackOff
}

func NewHTTPFetcher(logger logger.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: httpTimeout,
		},
		logger:     logger,
		newBackOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
	}
}

// Fetch downloads url, retrying network failures, 429 and 5xx responses
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var data []byte
	attempt := 0
	operation := func() error {
		attempt++
		var err error
		data, err = f.fetchOnce(ctx, url)
		if err != nil && attempt <= maxRetries {
			f.logger.Warn("Seed fetch attempt failed", "url", url, "attempt", attempt, "error", err)
		}
		return err
	}

	b := backoff.WithContext(backoff.WithMaxRetries(f.newBackOff(), maxRetries), ctx)
	if err := backoff.Retry(operation, b); err != nil {
		return nil, err
	}
	return data, nil
}

func (f *HTTPFetcher) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Accept", "application/yaml, text/yaml, */*")

	f.logger.Debug("Fetching seed document", "url", url)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request to %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		f.logger.Debug("Seed source returned error status",
			"status_code", resp.StatusCode,
			"url", url,
			"response_body", string(body))
		err := fmt.Errorf("seed source returned status %d", resp.StatusCode)
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			return nil, err
		}
		return nil, backoff.Permanent(err)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSeedBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if len(data) > maxSeedBytes {
		return nil, backoff.Permanent(fmt.Errorf("seed document exceeds %d bytes", maxSeedBytes))
	}

	return data, nil
}
