package htclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// TimeClient reads and anchors the UNIX time of a remote time-anchor service.
type TimeClient struct {
	fetcher *URLFetcher
}

// NewTimeClient initializes the client for the time endpoint.
//
// Parameters:
//   - ctx to pass to the HTTP requests.
//   - client to perform an actual HTTP request.
//   - url - time endpoint URL, e.g. "http://localhost:8080/api/v1/time".
//   - timeout - HTTP request timeout.
func NewTimeClient(
	ctx context.Context,
	client *HTTPClient,
	url string,
	timeout time.Duration,
) *TimeClient {
	return &TimeClient{
		fetcher: NewURLFetcher(ctx, client, url, timeout),
	}
}

// GetTimestamp returns the remote UNIX time estimate.
func (c *TimeClient) GetTimestamp() (int64, error) {
	buf, err := c.fetcher.Fetch()
	if err != nil {
		return -1, err
	}

	timestamp, err := strconv.ParseInt(strings.TrimSpace(string(buf)), 10, 64)
	if err != nil {
		return -1, fmt.Errorf("time-client: invalid timestamp: %w", err)
	}

	return timestamp, nil
}

// SetTimestamp anchors the remote service to the UNIX time.
func (c *TimeClient) SetTimestamp(timestamp int64) error {
	query := url.Values{}
	query.Set("value", strconv.FormatInt(timestamp, 10))

	buf, err := c.fetcher.FetchQuery(query.Encode())
	if err != nil {
		return err
	}

	if resp := strings.TrimSpace(string(buf)); resp != "OK" {
		return fmt.Errorf("time-client: unexpected response: %s", resp)
	}

	return nil
}
