package solve

import (
	"context"
	"errors"
	"fmt"
	"github.com/cenkalti/backoff/v5"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotFound is returned when there is no precomputed result for the requested inputs.
var ErrNotFound = errors.New("no precomputed result")

// Client fetches precomputed solve results from a static file server.
type Client struct {
	base       *url.URL
	solvePath  string
	httpClient *http.Client
	// MaxElapsedTime bounds the retries of a single fetch (transport errors and 5xx responses).
	MaxElapsedTime time.Duration
}

// NewClient builds a client for results stored below server/solvePath.
func NewClient(server, solvePath string) (*Client, error) {
	base, err := url.Parse(server)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL %q: %w", server, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid server URL %q: unsupported scheme", server)
	}
	return &Client{
		base:           base,
		solvePath:      strings.Trim(solvePath, "/"),
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		MaxElapsedTime: 10 * time.Second,
	}, nil
}

// URL returns the location of the result file with the given name.
func (c *Client) URL(filename string) *url.URL {
	return c.base.JoinPath(c.solvePath, filename)
}

// Fetch downloads and decodes the result file with the given name.
func (c *Client) Fetch(ctx context.Context, filename string) (*Response, error) {
	u := c.URL(filename).String()
	operation := func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, backoff.Permanent(ctx.Err())
			}
			return nil, err
		}
		defer resp.Body.Close()
		switch {
		case resp.StatusCode == http.StatusNotFound:
			return nil, backoff.Permanent(fmt.Errorf("%s: %w", filename, ErrNotFound))
		case resp.StatusCode >= 500:
			return nil, fmt.Errorf("%s: server error: %s", filename, resp.Status)
		case resp.StatusCode != http.StatusOK:
			return nil, backoff.Permanent(fmt.Errorf("%s: unexpected status: %s", filename, resp.Status))
		}
		return io.ReadAll(resp.Body)
	}
	bs, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(c.MaxElapsedTime),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Println("[Viewer] Fetch failed, retrying in", next, ":", err)
		}))
	if err != nil {
		return nil, err
	}
	return ParseResponse(bs)
}
