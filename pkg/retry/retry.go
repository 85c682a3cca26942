// Package retry provides utilities for retrying operations that may fail due to transient errors.
package retry

import (
	"context"
	"math/rand"
	"time"

	"github.com/auriora/tusup/pkg/errors"
	"github.com/auriora/tusup/pkg/logging"
)

// RetryableFunc is a function that can be retried.
type RetryableFunc func() error

// RetryableFuncWithResult is a function that returns a result and can be retried.
type RetryableFuncWithResult[T any] func() (T, error)

// Config holds configuration for retry operations.
type Config struct {
	// MaxRetries is the maximum number of retry attempts.
	MaxRetries int

	// InitialDelay is the initial delay between retries.
	InitialDelay time.Duration

	// MaxDelay is the maximum delay between retries.
	MaxDelay time.Duration

	// Multiplier is the factor by which the delay increases after each retry.
	Multiplier float64

	// Jitter is the maximum random jitter added to the delay, as a fraction
	// of the current delay. Zero disables jitter, giving a deterministic
	// delay sequence.
	Jitter float64

	// RetryableErrors is a list of predicates; an error is retried if any
	// of them returns true.
	RetryableErrors []RetryableError
}

// RetryableError defines a function that determines if an error should be retried.
type RetryableError func(error) bool

// DefaultConfig returns a default retry configuration.
func DefaultConfig() Config {
	return Config{
		MaxRetries:   3,
		InitialDelay: 1 * time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
		Jitter:       0.2,
		RetryableErrors: []RetryableError{
			errors.IsRetryable,
		},
	}
}

// DeterministicConfig returns a retry configuration with jitter disabled, so
// the delay before attempt r is exactly min(initialDelay*2^(r-1), maxDelay).
func DeterministicConfig(maxRetries int, initialDelay, maxDelay time.Duration) Config {
	cfg := DefaultConfig()
	cfg.MaxRetries = maxRetries
	cfg.InitialDelay = initialDelay
	cfg.MaxDelay = maxDelay
	cfg.Jitter = 0
	return cfg
}

// Do retries the given function with exponential backoff.
func Do(ctx context.Context, op RetryableFunc, config Config) error {
	var err error
	delay := config.InitialDelay

	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		// Execute the operation
		err = op()
		if err == nil {
			return nil
		}

		// Check if we should retry this error
		shouldRetry := false
		for _, retryableError := range config.RetryableErrors {
			if retryableError(err) {
				shouldRetry = true
				break
			}
		}

		// If we shouldn't retry or we've reached the maximum number of retries, return the error
		if !shouldRetry || attempt == config.MaxRetries {
			return err
		}

		actualDelay := delay
		if config.Jitter > 0 {
			jitterRange := float64(delay) * config.Jitter
			actualDelay += time.Duration(rand.Float64() * jitterRange)
		}

		logging.Info().
			Err(err).
			Int("attempt", attempt+1).
			Int("maxRetries", config.MaxRetries).
			Dur("delay", actualDelay).
			Msg("operation failed, retrying after delay")

		// Wait for the delay or until the context is canceled
		select {
		case <-time.After(actualDelay):
			// Continue to the next retry
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "retry canceled by context")
		}

		// Increase the delay for the next retry, but don't exceed the maximum delay
		delay = time.Duration(float64(delay) * config.Multiplier)
		if delay > config.MaxDelay {
			delay = config.MaxDelay
		}
	}

	return err
}

// DoWithResult retries the given function with exponential backoff and returns a result.
func DoWithResult[T any](ctx context.Context, op RetryableFuncWithResult[T], config Config) (T, error) {
	var result T
	var err error
	delay := config.InitialDelay

	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		result, err = op()
		if err == nil {
			return result, nil
		}

		shouldRetry := false
		for _, retryableError := range config.RetryableErrors {
			if retryableError(err) {
				shouldRetry = true
				break
			}
		}

		if !shouldRetry || attempt == config.MaxRetries {
			return result, err
		}

		actualDelay := delay
		if config.Jitter > 0 {
			jitterRange := float64(delay) * config.Jitter
			actualDelay += time.Duration(rand.Float64() * jitterRange)
		}

		logging.Info().
			Err(err).
			Int("attempt", attempt+1).
			Int("maxRetries", config.MaxRetries).
			Dur("delay", actualDelay).
			Msg("operation failed, retrying after delay")

		select {
		case <-time.After(actualDelay):
		case <-ctx.Done():
			var zero T
			return zero, errors.Wrap(ctx.Err(), "retry canceled by context")
		}

		delay = time.Duration(float64(delay) * config.Multiplier)
		if delay > config.MaxDelay {
			delay = config.MaxDelay
		}
	}

	return result, err
}

// Delay returns the deterministic backoff delay before retry attempt r
// (1-indexed), using the worker's capped-exponential formula with no
// jitter: min(initialDelay * 2^(r-1), maxDelay).
func Delay(r int, initialDelay, maxDelay time.Duration) time.Duration {
	if r <= 0 {
		return 0
	}
	d := initialDelay
	for i := 1; i < r; i++ {
		d *= 2
		if d >= maxDelay {
			return maxDelay
		}
	}
	if d > maxDelay {
		return maxDelay
	}
	return d
}
