package asr

import (
	"context"
	"errors"
	"io"
	"net"
	"time"
)

// DefaultMaxAttempts is the default number of transcription attempts.
const DefaultMaxAttempts = 3

// DefaultBaseDelay is the delay unit for linear backoff between attempts.
const DefaultBaseDelay = 1 * time.Second

// SourceOpener yields a fresh, independently readable view of the audio
// bytes. The transport consumes its input exactly once per call, so every
// attempt needs its own reader.
type SourceOpener func() (io.ReadCloser, error)

// Retrier drives a Client through up to maxAttempts attempts with linear
// backoff between retryable failures.
type Retrier struct {
	client      Client
	maxAttempts int
	baseDelay   time.Duration
}

// RetryOption configures the Retrier.
type RetryOption func(*Retrier)

// WithMaxAttempts sets the total number of attempts (not extra retries).
func WithMaxAttempts(n int) RetryOption {
	return func(r *Retrier) {
		r.maxAttempts = n
	}
}

// WithBaseDelay sets the linear backoff unit.
func WithBaseDelay(d time.Duration) RetryOption {
	return func(r *Retrier) {
		r.baseDelay = d
	}
}

// NewRetrier wraps client with retry behavior.
func NewRetrier(client Client, opts ...RetryOption) *Retrier {
	r := &Retrier{
		client:      client,
		maxAttempts: DefaultMaxAttempts,
		baseDelay:   DefaultBaseDelay,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Transcribe runs attempts 1..maxAttempts, obtaining a fresh source per
// attempt. Non-retryable failures abort immediately; after exhausting all
// attempts the last observed error is returned unchanged. Cancellation is
// checked at the top of each attempt and during backoff, never mid-call.
func (r *Retrier) Transcribe(ctx context.Context, open SourceOpener, filename string) (*Result, error) {
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		src, err := open()
		if err != nil {
			return nil, err
		}

		result, err := r.client.Transcribe(ctx, src, filename)
		src.Close()
		if err == nil {
			return result, nil
		}
		if !retryable(err) {
			return nil, err
		}
		lastErr = err

		if attempt == r.maxAttempts {
			break
		}

		// linear backoff: baseDelay, 2*baseDelay, ...
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * r.baseDelay):
		}
	}

	return nil, lastErr
}

// retryableStatuses is the closed set of transient HTTP responses.
var retryableStatuses = map[int]bool{
	408: true, 429: true, 500: true, 502: true, 503: true, 504: true,
}

// retryable classifies an error by type, never by message text.
func retryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return retryableStatuses[apiErr.Status]
	}

	// transport-level failures: timeouts, resets, resolution errors
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	return false
}
