package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// retrier re-issues failed requests with exponential backoff and jitter.
type retrier struct {
	inner Provider
	cfg   RetryConfig
}

// WithRetry wraps a Provider so transient failures are retried, up to
// cfg.MaxAttempts calls in total. Malformed structured output gets exactly
// one retry; context and token-budget errors fail immediately.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &retrier{inner: p, cfg: cfg}
}

func (r *retrier) ModelID() string { return r.inner.ModelID() }

func (r *retrier) Generate(ctx context.Context, req Request) (*Response, error) {
	wait := r.cfg.InitialWait
	retriedInvalid := false

	for attempt := 1; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		switch classify(err) {
		case failPermanent:
			return nil, err
		case failRetryOnce:
			if retriedInvalid {
				return nil, err
			}
			retriedInvalid = true
		}

		if attempt >= r.cfg.MaxAttempts {
			return nil, err
		}

		pause := jittered(wait)
		var rl *ErrRateLimit
		if errors.As(err, &rl) && rl.RetryAfter > 0 {
			pause = rl.RetryAfter
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(pause):
		}

		wait = time.Duration(float64(wait) * r.cfg.Multiplier)
		if wait > r.cfg.MaxWait {
			wait = r.cfg.MaxWait
		}
	}
}

type failureClass int

const (
	failTransient failureClass = iota
	failRetryOnce
	failPermanent
)

// classify buckets an error by how the retry loop treats it. Unrecognized
// errors count as transient, which is how plain network failures surface.
func classify(err error) failureClass {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return failPermanent
	}
	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return failPermanent
	}
	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		return failRetryOnce
	}
	return failTransient
}

// jittered spreads d over [0.8d, 1.2d) so concurrent clients drift apart.
func jittered(d time.Duration) time.Duration {
	span := d / 5
	if span <= 0 {
		return d
	}
	return d - span + rand.N(2*span)
}
