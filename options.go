package pincho

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Pincho-App/pincho-go/pkg/backoff"
)

// DeliveryResult describes one delivery attempt, successful or not.
type DeliveryResult struct {
	// Attempt is 1-based.
	Attempt    int
	StatusCode int
	Duration   time.Duration
	Err        error
}

// DeliveryHook is called after every delivery attempt.
type DeliveryHook func(DeliveryResult)

// Option configures a Client at construction.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, e.g. for a self-hosted instance.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithTimeout sets the per-attempt timeout. Every attempt gets this full
// budget regardless of time spent on earlier attempts or waits.
// Default is 10 seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithMaxRetries sets how many times a retryable failure is retried before
// it is surfaced. Default is 3; 0 disables retries.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

// WithHTTPClient sets a custom HTTP client. Useful for custom transports,
// proxies, or testing.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// WithLogger sets the structured logger. Attempts and waits are logged at
// Debug, retries at Warn. Default discards everything.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithBackoff sets the schedule for generic retryable failures (network,
// timeout, server errors).
func WithBackoff(strategy backoff.Strategy) Option {
	return func(c *Client) {
		if strategy != nil {
			c.retryBackoff = strategy
		}
	}
}

// WithRateLimitBackoff sets the schedule used when the service reports
// rate limiting without a Retry-After hint. A parsed hint always wins.
func WithRateLimitBackoff(strategy backoff.Strategy) Option {
	return func(c *Client) {
		if strategy != nil {
			c.rateLimitBackoff = strategy
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithOnDelivery sets a callback invoked after each delivery attempt.
// Useful for logging, metrics, or alerting on repeated failures.
func WithOnDelivery(hook DeliveryHook) Option {
	return func(c *Client) {
		c.onDelivery = hook
	}
}
