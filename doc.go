// Package pincho is the official Go client for the Pincho push-notification
// API.
//
// The client turns a notification into an HTTPS call to the service,
// classifies every failure into a fixed taxonomy (pkg/apierr), retries
// retryable failures with exponential backoff (pkg/backoff), honors the
// server's Retry-After guidance, and tracks the most recent rate-limit
// quota advertised by the service (pkg/ratelimit).
//
// # Basic usage
//
//	client := pincho.New(os.Getenv("PINCHO_TOKEN"))
//
//	resp, err := client.Send(ctx, pincho.Notification{
//	    Title:   "Deploy finished",
//	    Message: "v2.4.1 is live",
//	    Tags:    []string{"deploys", "Production"},
//	})
//
// Or load configuration from the environment (PINCHO_TOKEN,
// PINCHO_BASE_URL, PINCHO_TIMEOUT, PINCHO_MAX_RETRIES, with optional .env
// support):
//
//	client, err := pincho.NewFromEnv()
//
// # Error handling
//
// Every failed call surfaces exactly one *apierr.Error carrying the kind,
// its retryability, the richest message the response allowed, and the
// Retry-After hint when the service sent one:
//
//	resp, err := client.Send(ctx, n)
//	if err != nil {
//	    var apiErr *apierr.Error
//	    if errors.As(err, &apiErr) && apiErr.Kind == apierr.KindAuthInvalid {
//	        // rotate the token
//	    }
//	}
//
// Retryable failures (network, timeout, server, rate limit) are retried
// internally up to the configured maximum before being surfaced.
//
// # Message encryption
//
// Setting Notification.Password encrypts the message with the scheme the
// Pincho mobile app decrypts (pkg/msgcrypto): the ciphertext replaces the
// message field and the hex-encoded IV travels alongside it. The service
// forwards both verbatim.
//
// # Concurrency
//
// A Client is safe for concurrent use. Each call runs its own attempt
// sequence; the rate-limit snapshot is the only state shared across calls
// and is replaced wholesale under a lock.
package pincho
