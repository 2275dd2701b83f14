// Package yalidine implements the courier gateway against the courier's
// REST API. All requests are authenticated with API-key headers, throttled
// through a client-side rate limiter and retried with exponential backoff
// on rate limits and server errors.
package yalidine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// Authentication header names used by the courier API.
const (
	headerAPIID    = "X-API-ID"
	headerAPIToken = "X-API-TOKEN"
)

// Retry parameters.
const (
	maxAttempts    = 4
	baseDelay      = 500 * time.Millisecond
	maxDelay       = 10 * time.Second
	jitterFraction = 0.2
)

// APIError represents a non-2xx response from the courier API.
// RetryAfter carries the parsed Retry-After header when the courier sent one.
type APIError struct {
	Status     int
	Body       string
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	return fmt.Sprintf("courier API error (status %d): %s", e.Status, e.Body)
}

// Client talks to the courier's REST API and implements ports.CourierGateway.
type Client struct {
	baseURL    string
	apiID      string
	apiToken   string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger

	// sleep is the retry delay primitive, injectable for tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient creates a courier API client.
// The limiter defaults to 5 requests per second, below the courier's
// documented quota, so bursts from the poller and the admin panel combined
// stay inside the limit.
func NewClient(baseURL, apiID, apiToken string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:  baseURL,
		apiID:    apiID,
		apiToken: apiToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Limit(5), 10),
		logger:  logger.With("component", "yalidine_client"),
		sleep:   sleepWithContext,
	}
}

// WithHTTPClient overrides the underlying HTTP client. Used by tests to
// point the gateway at a local test server.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	c.httpClient = httpClient
	return c
}

// WithSleep overrides the retry delay primitive.
func (c *Client) WithSleep(sleep func(ctx context.Context, d time.Duration) error) *Client {
	c.sleep = sleep
	return c
}

// WithLimiter overrides the client-side rate limiter.
func (c *Client) WithLimiter(limiter *rate.Limiter) *Client {
	c.limiter = limiter
	return c
}

// doRequest performs one API call with rate limiting and retries.
// Rate limits (429) and server errors (5xx) are retried with exponential
// backoff, honoring the Retry-After header when present. Any other non-2xx
// status fails immediately with the response body as the error.
func (c *Client) doRequest(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		responseBody, err := c.send(ctx, method, url, body)
		if err == nil {
			return responseBody, nil
		}

		apiErr, ok := err.(*APIError)
		if ok && !isRetriable(apiErr.Status) {
			return nil, err
		}

		lastErr = err
		if attempt == maxAttempts-1 {
			break
		}

		delay := backoffDuration(attempt)
		if ok && apiErr.RetryAfter > 0 {
			delay = min(apiErr.RetryAfter, maxDelay)
		}

		c.logger.Warn("courier request failed, retrying",
			"method", method, "url", url, "attempt", attempt+1, "delay", delay, "error", err)

		if err := c.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}

	return nil, fmt.Errorf("courier request failed after %d attempts: %w", maxAttempts, lastErr)
}

func (c *Client) send(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set(headerAPIID, c.apiID)
	req.Header.Set(headerAPIToken, c.apiToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	responseBody, readErr := io.ReadAll(resp.Body)
	if closeErr := resp.Body.Close(); closeErr != nil {
		c.logger.Warn("failed to close response body", "error", closeErr)
	}
	if readErr != nil {
		return nil, fmt.Errorf("read response body: %w", readErr)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return responseBody, nil
	}

	apiErr := &APIError{Status: resp.StatusCode, Body: string(responseBody)}
	if ra := resp.Header.Get("Retry-After"); ra != "" {
		if d, parseErr := parseRetryAfter(ra); parseErr == nil {
			apiErr.RetryAfter = d
		}
	}

	return nil, apiErr
}

func isRetriable(status int) bool {
	return status == http.StatusTooManyRequests || (status >= 500 && status <= 599)
}

func backoffDuration(attempt int) time.Duration {
	d := float64(baseDelay) * math.Pow(2, float64(attempt))
	if d > float64(maxDelay) {
		d = float64(maxDelay)
	}
	j := 1 - jitterFraction + rand.Float64()*(2*jitterFraction) //nolint:gosec //jitter needs no crypto rand
	return time.Duration(d * j)
}

// parseRetryAfter parses a Retry-After header; supports seconds or HTTP-date.
func parseRetryAfter(h string) (time.Duration, error) {
	if secs, err := strconv.Atoi(h); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	if t, err := http.ParseTime(h); err == nil {
		d := time.Until(t)
		if d < 0 {
			return 0, nil
		}
		return d, nil
	}
	return 0, fmt.Errorf("unparsable Retry-After %q", h)
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
