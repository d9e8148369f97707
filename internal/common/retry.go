package common

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// RetryableFunc is the operation to retry. Return nil to stop retrying.
type RetryableFunc func() error

// Config holds retry behavior. Zero value is not usable; use Do with options.
type Config struct {
	maxRetries   int
	initialDelay time.Duration
	maxDelay     time.Duration
	multiplier   float64
	jitter       bool
}

// Option configures retry behavior.
type Option func(*Config)

// WithMaxRetries sets how many times to retry after the first attempt.
// Default is 3.
func WithMaxRetries(n int) Option {
	return func(c *Config) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

// WithInitialDelay sets the delay before the first retry. Default 1s.
func WithInitialDelay(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.initialDelay = d
		}
	}
}

// WithMaxDelay caps the backoff delay. Default 30s.
func WithMaxDelay(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.maxDelay = d
		}
	}
}

// WithMultiplier sets the backoff multiplier. Default 2.0.
func WithMultiplier(m float64) Option {
	return func(c *Config) {
		if m > 0 {
			c.multiplier = m
		}
	}
}

// WithJitter adds up to 20% random jitter to each delay,
// so that parallel probes don't hammer a recovering site in lockstep.
func WithJitter() Option {
	return func(c *Config) {
		c.jitter = true
	}
}

func defaultConfig() *Config {
	return &Config{
		maxRetries:   3,
		initialDelay: 1 * time.Second,
		maxDelay:     30 * time.Second,
		multiplier:   2.0,
	}
}

// Do runs fn, retrying with exponential backoff until it succeeds,
// retries are exhausted, or ctx is cancelled.
//
//	err := common.Do(ctx, func() error { return post(url) },
//	    common.WithMaxRetries(3),
//	    common.WithInitialDelay(500*time.Millisecond))
func Do(ctx context.Context, fn RetryableFunc, opts ...Option) error {
	if fn == nil {
		return errors.New("retry: function cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	var lastErr error
	for attempt := 0; attempt <= cfg.maxRetries; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(cfg.delayFor(attempt))
			select {
			case <-ctx.Done():
				timer.Stop()
				return fmt.Errorf("retry aborted during backoff (attempt %d/%d): %w", attempt, cfg.maxRetries, ctx.Err())
			case <-timer.C:
			}
		}

		if lastErr = fn(); lastErr == nil {
			return nil
		}

		// 失败后先看 context，避免做无谓的下一轮
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("retry aborted after %d attempts: %w", attempt+1, err)
		}
	}

	return fmt.Errorf("retry failed after %d attempts: %w", cfg.maxRetries+1, lastErr)
}

// delayFor computes the backoff delay for the given retry attempt (1-based).
func (c *Config) delayFor(attempt int) time.Duration {
	delay := float64(c.initialDelay) * math.Pow(c.multiplier, float64(attempt-1))
	if c.jitter {
		delay += delay * 0.2 * rand.Float64()
	}
	if time.Duration(delay) > c.maxDelay {
		return c.maxDelay
	}
	return time.Duration(delay)
}
