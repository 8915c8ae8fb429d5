// Package scryfall fetches card data and reference imagery from the
// Scryfall API, with rate limiting and bounded retries.
package scryfall

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.scryfall.com"
	rateLimitDelay = 100 * time.Millisecond // 100ms between requests (10 req/sec)
	requestTimeout = 30 * time.Second
	maxRetries     = 3
	initialBackoff = 1 * time.Second
	maxBackoff     = 16 * time.Second

	// Reference scans can be large; allow more than the API timeout.
	imageTimeout = 60 * time.Second
)

// Client is a Scryfall API client with rate limiting.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	userAgent   string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API host, used by tests.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = base }
}

// NewClient creates a new Scryfall API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		// Rate limiter: 1 request per 100ms = 10 req/sec
		rateLimiter: rate.NewLimiter(rate.Every(rateLimitDelay), 1),
		userAgent:   "ProxyForge/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NamedCard retrieves a card print by fuzzy name match, optionally
// narrowed to a set code.
func (c *Client) NamedCard(ctx context.Context, name, set string) (*Card, error) {
	q := url.Values{}
	q.Set("fuzzy", name)
	if set != "" {
		q.Set("set", set)
	}
	endpoint := fmt.Sprintf("%s/cards/named?%s", c.baseURL, q.Encode())

	var card Card
	if err := c.doRequest(ctx, endpoint, &card); err != nil {
		return nil, fmt.Errorf("get card %q: %w", name, err)
	}
	return &card, nil
}

// CardBySetNumber retrieves an exact print by set code and collector
// number. A non-empty lang requests a localized print.
func (c *Client) CardBySetNumber(ctx context.Context, set, number, lang string) (*Card, error) {
	endpoint := fmt.Sprintf("%s/cards/%s/%s", c.baseURL, url.PathEscape(set), url.PathEscape(number))
	if lang != "" {
		endpoint += "/" + url.PathEscape(lang)
	}

	var card Card
	if err := c.doRequest(ctx, endpoint, &card); err != nil {
		return nil, fmt.Errorf("get card %s/%s: %w", set, number, err)
	}
	return &card, nil
}

// GetCard retrieves a card by its Scryfall ID or API URI. Meld results
// and other related parts are referenced this way.
func (c *Client) GetCard(ctx context.Context, idOrURI string) (*Card, error) {
	endpoint := idOrURI
	if !isAbsoluteURL(idOrURI) {
		endpoint = fmt.Sprintf("%s/cards/%s", c.baseURL, url.PathEscape(idOrURI))
	}

	var card Card
	if err := c.doRequest(ctx, endpoint, &card); err != nil {
		return nil, fmt.Errorf("get card %s: %w", idOrURI, err)
	}
	return &card, nil
}

// GetSet retrieves set information by set code.
func (c *Client) GetSet(ctx context.Context, code string) (*Set, error) {
	endpoint := fmt.Sprintf("%s/sets/%s", c.baseURL, url.PathEscape(code))

	var set Set
	if err := c.doRequest(ctx, endpoint, &set); err != nil {
		return nil, fmt.Errorf("get set %s: %w", code, err)
	}
	return &set, nil
}

// FetchScan downloads a card scan image. Callers treat failure as
// non-fatal; the render continues without the reference scan.
func (c *Client) FetchScan(ctx context.Context, imageURL string) ([]byte, error) {
	if imageURL == "" {
		return nil, fmt.Errorf("no scan image available")
	}
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	client := &http.Client{Timeout: imageTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download scan: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &NotFoundError{URL: imageURL}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download scan: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read scan body: %w", err)
	}
	return data, nil
}

// doRequest performs an HTTP request with rate limiting and retry logic.
func (c *Client) doRequest(ctx context.Context, endpoint string, result interface{}) error {
	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt <= maxRetries; attempt++ {
		// Wait for rate limiter
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("HTTP request failed: %w", err)

			// Retry on network errors
			if attempt < maxRetries {
				time.Sleep(backoff)
				backoff = minDuration(backoff*2, maxBackoff)
				continue
			}
			return lastErr
		}

		switch resp.StatusCode {
		case http.StatusOK:
			body, err := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			if err != nil {
				return fmt.Errorf("read response body: %w", err)
			}
			if err := json.Unmarshal(body, result); err != nil {
				return fmt.Errorf("parse JSON response: %w", err)
			}
			return nil

		case http.StatusTooManyRequests:
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("rate limited (HTTP 429)")

			if attempt < maxRetries {
				// Honor a Retry-After header when present.
				if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
					if duration, err := time.ParseDuration(retryAfter + "s"); err == nil {
						time.Sleep(duration)
					} else {
						time.Sleep(backoff)
					}
				} else {
					time.Sleep(backoff)
				}
				backoff = minDuration(backoff*2, maxBackoff)
				continue
			}
			return lastErr

		case http.StatusNotFound:
			_ = resp.Body.Close()
			return &NotFoundError{URL: endpoint}

		default:
			body, _ := io.ReadAll(resp.Body)
			_ = resp.Body.Close()

			var apiErr APIError
			if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Details != "" {
				return &apiErr
			}
			return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
		}
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// minDuration returns the smaller of two durations.
func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
