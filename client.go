package pincho

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Pincho-App/pincho-go/pkg/apierr"
	"github.com/Pincho-App/pincho-go/pkg/backoff"
	"github.com/Pincho-App/pincho-go/pkg/ratelimit"
)

// Version is reported in the User-Agent header.
const Version = "1.0.0"

const (
	defaultBaseURL    = "https://api.pincho.app"
	defaultTimeout    = 10 * time.Second
	defaultMaxRetries = 3

	sendPath    = "/send"
	notifaiPath = "/notifai"

	// 64KB cap on response bodies; error details never need more
	maxResponseBytes = 64 * 1024
)

// Client delivers notifications to the Pincho API with retries, failure
// classification and rate-limit tracking. Safe for concurrent use.
// Zero value is not usable; use New or NewFromEnv.
type Client struct {
	token      string
	baseURL    string
	timeout    time.Duration
	maxRetries int
	userAgent  string

	client           *http.Client
	log              *slog.Logger
	retryBackoff     backoff.Strategy
	rateLimitBackoff backoff.Strategy
	onDelivery       DeliveryHook

	limits ratelimit.Tracker

	// sleep is swappable so retry timing is testable without real delays
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a client with the given API token.
func New(token string, opts ...Option) *Client {
	c := &Client{
		token:      token,
		baseURL:    defaultBaseURL,
		timeout:    defaultTimeout,
		maxRetries: defaultMaxRetries,
		userAgent:  "pincho-go/" + Version,
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		log:              slog.New(slog.DiscardHandler),
		retryBackoff:     backoff.Default(),
		rateLimitBackoff: backoff.DefaultRateLimit(),
		sleep:            sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send delivers a notification. Retryable failures are retried internally;
// the terminal failure is a single *apierr.Error.
func (c *Client) Send(ctx context.Context, n Notification) (*SendResponse, error) {
	body, err := n.body()
	if err != nil {
		return nil, apierr.Unknown(fmt.Errorf("build request: %w", err))
	}

	raw, err := c.post(ctx, sendPath, body)
	if err != nil {
		return nil, err
	}

	var resp SendResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, apierr.Unknown(fmt.Errorf("decode response: %w", err))
	}
	return &resp, nil
}

// Notifai asks the service to compose and deliver a notification from a
// free-form prompt. notificationType may be empty for the service default.
func (c *Client) Notifai(ctx context.Context, text, notificationType string) (*NotifaiResponse, error) {
	raw, err := c.post(ctx, notifaiPath, notifaiBody{Text: text, Type: notificationType})
	if err != nil {
		return nil, err
	}

	var resp NotifaiResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, apierr.Unknown(fmt.Errorf("decode response: %w", err))
	}
	return &resp, nil
}

// RateLimit returns the most recent quota the service advertised, or false
// if no successful response has carried one yet.
func (c *Client) RateLimit() (ratelimit.Snapshot, bool) {
	return c.limits.Last()
}

// post runs the delivery loop: attempt, classify, wait, retry. Attempts
// are strictly sequential and each gets a fresh timeout budget.
func (c *Client) post(ctx context.Context, path string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, apierr.Unknown(fmt.Errorf("encode request: %w", err))
	}

	requestID := uuid.NewString()
	log := c.log.With(
		slog.String("path", path),
		slog.String("request_id", requestID),
	)

	var last *apierr.Error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.delay(last, attempt)
			log.Warn("retrying delivery",
				slog.Int("attempt", attempt+1),
				slog.String("kind", string(last.Kind)),
				slog.Duration("delay", delay),
			)
			if err := c.sleep(ctx, delay); err != nil {
				return nil, err
			}
		}

		data, apiErr := c.attempt(ctx, path, payload, requestID, attempt)
		if apiErr == nil {
			return data, nil
		}

		log.Debug("delivery attempt failed",
			slog.Int("attempt", attempt+1),
			slog.String("kind", string(apiErr.Kind)),
			slog.Bool("retryable", apiErr.Retryable),
			slog.Int("status", apiErr.Status),
		)

		last = apiErr
		if !apiErr.Retryable {
			break
		}
	}

	return nil, last
}

// delay computes the wait before retry number attempt (1-based). A parsed
// Retry-After hint overrides the rate-limit schedule verbatim.
func (c *Client) delay(last *apierr.Error, attempt int) time.Duration {
	if last.Kind == apierr.KindRateLimit {
		if last.RetryAfter > 0 {
			return last.RetryAfter
		}
		return c.rateLimitBackoff.NextInterval(attempt)
	}
	return c.retryBackoff.NextInterval(attempt)
}

// attempt issues one bounded network call and classifies its outcome.
func (c *Client) attempt(ctx context.Context, path string, payload []byte, requestID string, attempt int) ([]byte, *apierr.Error) {
	start := time.Now()

	notify := func(status int, apiErr *apierr.Error) {
		if c.onDelivery == nil {
			return
		}
		result := DeliveryResult{
			Attempt:    attempt + 1,
			StatusCode: status,
			Duration:   time.Since(start),
		}
		if apiErr != nil {
			result.Err = apiErr
		}
		c.onDelivery(result)
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		apiErr := apierr.Unknown(fmt.Errorf("create request: %w", err))
		notify(0, apiErr)
		return nil, apiErr
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", requestID)

	resp, err := c.client.Do(req)
	if err != nil {
		apiErr := apierr.FromTransport(err)
		notify(0, apiErr)
		return nil, apiErr
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		apiErr := apierr.FromTransport(fmt.Errorf("read response: %w", err))
		notify(resp.StatusCode, apiErr)
		return nil, apiErr
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if c.limits.Observe(resp.Header) {
			if snap, ok := c.limits.Last(); ok {
				c.log.Debug("rate limit observed",
					slog.Int("limit", snap.Limit),
					slog.Int("remaining", snap.Remaining),
					slog.Time("reset", snap.Reset),
				)
			}
		}
		notify(resp.StatusCode, nil)
		return data, nil
	}

	apiErr := apierr.FromResponse(resp.StatusCode, resp.Header, data)
	notify(resp.StatusCode, apiErr)
	return nil, apiErr
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
