package htclient

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"
)

// URLFetcher sends requests to the configured HTTP endpoint.
type URLFetcher struct {
	ctx     context.Context
	url     string
	timeout time.Duration
	client  *HTTPClient
}

// NewURLFetcher initializes URL fetcher.
//
// Parameters:
//   - ctx to pass to the HTTP request.
//   - client to perform an actual HTTP request.
//   - url - HTTP URL.
//   - timeout - HTTP request timeout.
func NewURLFetcher(
	ctx context.Context,
	client *HTTPClient,
	url string,
	timeout time.Duration,
) *URLFetcher {
	return &URLFetcher{
		ctx:     ctx,
		url:     url,
		timeout: timeout,
		client:  client,
	}
}

// Fetch fetches data from the HTTP resource.
func (f *URLFetcher) Fetch() ([]byte, error) {
	return f.FetchQuery("")
}

// FetchQuery fetches data from the HTTP resource with the raw query appended to the URL.
func (f *URLFetcher) FetchQuery(query string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(f.ctx, f.timeout)
	defer cancel()

	url := f.url
	if query != "" {
		url += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, body, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("url-fetcher: failed to fetch data: code=%v body=%s",
			resp.StatusCode, bytes.TrimSpace(body))
	}

	return body, nil
}
