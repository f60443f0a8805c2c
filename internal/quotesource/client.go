package quotesource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/olivier-w/quotebox/internal/logger"
	"github.com/olivier-w/quotebox/internal/quote"
)

// DefaultEndpoint serves a JSON array of 50 {author, quote} records.
const DefaultEndpoint = "https://api.breakingbadquotes.xyz/v1/quotes/50"

const (
	DefaultTimeout = 10 * time.Second
	maxBodySize    = 1 << 20
	userAgent      = "quotebox"
)

var (
	// ErrFetch wraps every failure to obtain a batch.
	ErrFetch = errors.New("fetching quotes failed")
	// ErrUnsupportedScheme is returned for endpoints that are not http(s).
	ErrUnsupportedScheme = errors.New("unsupported URL scheme")
)

// StatusError reports a non-2xx response from the quote API.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("quote API returned %s", e.Status)
}

func (e *StatusError) Unwrap() error { return ErrFetch }

// Client fetches quote batches from a fixed endpoint.
type Client struct {
	endpoint string
	http     *http.Client
	log      *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds the whole request, body included.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New validates endpoint and returns a Client for it.
func New(endpoint string, opts ...Option) (*Client, error) {
	normalized, err := ValidateEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	c := &Client{
		endpoint: normalized,
		http: &http.Client{
			Timeout: DefaultTimeout,
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				ResponseHeaderTimeout: DefaultTimeout,
			},
		},
		log: logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ValidateEndpoint trims raw and checks that it is an absolute http(s) URL.
func ValidateEndpoint(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("quote endpoint is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing quote endpoint: %w", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("quote endpoint %q has no host", raw)
	}
	return u.String(), nil
}

// Endpoint returns the URL the client fetches from.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Fetch performs one GET and decodes the batch. Records without text are
// dropped. Every error wraps ErrFetch.
func (c *Client) Fetch(ctx context.Context) (quote.Batch, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %w", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	var records []quote.Quote
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %w", ErrFetch, err)
	}

	batch := make(quote.Batch, 0, len(records))
	for _, r := range records {
		if r.IsZero() {
			continue
		}
		batch = append(batch, quote.Quote{
			Text:   strings.TrimSpace(r.Text),
			Author: strings.TrimSpace(r.Author),
		})
	}
	c.log.Debug("quotes fetched",
		"endpoint", c.endpoint,
		"received", len(records),
		"kept", len(batch),
		"elapsed", time.Since(start),
	)
	return batch, nil
}
