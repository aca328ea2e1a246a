package api

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryConfig controls the backoff behavior of the retry decorator.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetryConfig is tuned for interactive use: fail fast enough that the
// UI can surface a blocking error state instead of hanging.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 300 * time.Millisecond,
		MaxWait:     3 * time.Second,
		Multiplier:  2.0,
	}
}

// RetryClient is a decorator that retries transient read failures with
// exponential backoff and jitter. SubmitTest is deliberately NOT retried:
// the submission pipeline owns the single-call contract and surfaces
// failures to the student for an explicit manual retry.
type RetryClient struct {
	inner  Client
	config RetryConfig
}

// WithRetry wraps a Client with retry logic for idempotent reads.
func WithRetry(c Client, cfg RetryConfig) *RetryClient {
	return &RetryClient{inner: c, config: cfg}
}

func (r *RetryClient) GetTest(ctx context.Context, testID string) (*Test, error) {
	return retry(ctx, r.config, func() (*Test, error) {
		return r.inner.GetTest(ctx, testID)
	})
}

func (r *RetryClient) GetQuestions(ctx context.Context, q QuestionQuery) (*QuestionPage, error) {
	return retry(ctx, r.config, func() (*QuestionPage, error) {
		return r.inner.GetQuestions(ctx, q)
	})
}

func (r *RetryClient) SubmitTest(ctx context.Context, testID, userID string) error {
	return r.inner.SubmitTest(ctx, testID, userID)
}

func (r *RetryClient) ListTests(ctx context.Context, userID string) ([]Test, error) {
	return retry(ctx, r.config, func() ([]Test, error) {
		return r.inner.ListTests(ctx, userID)
	})
}

func (r *RetryClient) ListResults(ctx context.Context, userID string) ([]Result, error) {
	return retry(ctx, r.config, func() ([]Result, error) {
		return r.inner.ListResults(ctx, userID)
	})
}

func retry[T any](ctx context.Context, cfg RetryConfig, call func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := range cfg.MaxAttempts {
		result, err := call()
		if err == nil {
			return result, nil
		}
		lastErr = err

		// Context errors and client errors are never retried.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return zero, err
		}
		if !IsRetryable(err) {
			return zero, err
		}

		// Last attempt — don't sleep, just return the error.
		if attempt == cfg.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(backoff(cfg, attempt)):
		}
	}

	return zero, lastErr
}

// backoff computes the wait for the given attempt with ±20% jitter.
func backoff(cfg RetryConfig, attempt int) time.Duration {
	wait := float64(cfg.InitialWait) * math.Pow(cfg.Multiplier, float64(attempt))
	if wait > float64(cfg.MaxWait) {
		wait = float64(cfg.MaxWait)
	}

	jitter := wait * 0.2 * (2*rand.Float64() - 1)
	wait += jitter

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
