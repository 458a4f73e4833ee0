package poller

import (
	"context"
	"errors"
	"time"
)

const (
	defaultInterval    = 1 * time.Second
	defaultMaxAttempts = 60
)

// ErrExhausted is returned when all attempts ran without the condition being met.
var ErrExhausted = errors.New("polling attempts exhausted")

// Poller calls a check function at a fixed interval, a bounded number of times.
type Poller struct {
	interval    time.Duration
	maxAttempts int
}

// Option defines a function to configure the Poller.
type Option func(*Poller)

// WithInterval sets the pause between attempts.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithMaxAttempts sets the maximum number of checks.
func WithMaxAttempts(n int) Option {
	return func(p *Poller) {
		if n > 0 {
			p.maxAttempts = n
		}
	}
}

// New creates a new Poller with default values and optional overrides.
func New(opts ...Option) *Poller {
	p := &Poller{
		interval:    defaultInterval,
		maxAttempts: defaultMaxAttempts,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Interval returns the pause between attempts.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// MaxAttempts returns the maximum number of checks.
func (p *Poller) MaxAttempts() int {
	return p.maxAttempts
}

// Poll calls fn until it reports done or fails. It returns the number of calls made.
// fn errors are returned as is, without further attempts. There is no pause after
// the last attempt.
func (p *Poller) Poll(ctx context.Context, fn func(ctx context.Context) (bool, error)) (int, error) {
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		done, err := fn(ctx)
		if err != nil {
			return attempt, err
		}
		if done {
			return attempt, nil
		}

		if attempt == p.maxAttempts {
			break
		}

		timer := time.NewTimer(p.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return attempt, ctx.Err()
		case <-timer.C:
		}
	}

	return p.maxAttempts, ErrExhausted
}

// PollWithData polls like Poll and returns the value of the last call.
func PollWithData[T any](p *Poller, ctx context.Context, fn func(ctx context.Context) (T, bool, error)) (T, int, error) {
	var result T
	attempts, err := p.Poll(ctx, func(ctx context.Context) (bool, error) {
		var (
			done bool
			e    error
		)
		result, done, e = fn(ctx)
		return done, e
	})
	return result, attempts, err
}
