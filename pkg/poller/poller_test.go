package poller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPoller_Poll(t *testing.T) {
	t.Run("done on first attempt", func(t *testing.T) {
		p := New()
		calls := 0
		attempts, err := p.Poll(context.Background(), func(ctx context.Context) (bool, error) {
			calls++
			return true, nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 1, attempts)
		assert.Equal(t, 1, calls)
	})

	t.Run("done after several attempts", func(t *testing.T) {
		p := New(WithMaxAttempts(5), WithInterval(time.Millisecond))
		calls := 0
		attempts, err := p.Poll(context.Background(), func(ctx context.Context) (bool, error) {
			calls++
			return calls == 3, nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("exhausted after max attempts", func(t *testing.T) {
		interval := 2 * time.Millisecond
		p := New(WithMaxAttempts(60), WithInterval(interval))
		var stamps []time.Time
		start := time.Now()
		attempts, err := p.Poll(context.Background(), func(ctx context.Context) (bool, error) {
			stamps = append(stamps, time.Now())
			return false, nil
		})
		assert.ErrorIs(t, err, ErrExhausted)
		assert.Equal(t, 60, attempts)
		assert.Len(t, stamps, 60)
		// 59 pauses between 60 checks
		assert.GreaterOrEqual(t, time.Since(start), 59*interval)
		for i := 1; i < len(stamps); i++ {
			assert.GreaterOrEqual(t, stamps[i].Sub(stamps[i-1]), interval)
		}
	})

	t.Run("error stops polling", func(t *testing.T) {
		p := New(WithMaxAttempts(5), WithInterval(time.Millisecond))
		calls := 0
		attempts, err := p.Poll(context.Background(), func(ctx context.Context) (bool, error) {
			calls++
			return false, errors.New("fail")
		})
		assert.EqualError(t, err, "fail")
		assert.Equal(t, 1, attempts)
		assert.Equal(t, 1, calls)
	})

	t.Run("context cancellation", func(t *testing.T) {
		p := New(WithMaxAttempts(5), WithInterval(100*time.Millisecond))
		ctx, cancel := context.WithCancel(context.Background())

		calls := 0
		attempts, err := p.Poll(ctx, func(ctx context.Context) (bool, error) {
			calls++
			if calls == 2 {
				cancel()
			}
			return false, nil
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 2, attempts)
	})

	t.Run("invalid options keep defaults", func(t *testing.T) {
		p := New(WithMaxAttempts(0), WithInterval(-time.Second))
		assert.Equal(t, defaultMaxAttempts, p.MaxAttempts())
		assert.Equal(t, defaultInterval, p.Interval())
	})
}

func TestPoller_PollWithData(t *testing.T) {
	p := New(WithMaxAttempts(3), WithInterval(time.Millisecond))
	calls := 0
	val, attempts, err := PollWithData(p, context.Background(), func(ctx context.Context) (string, bool, error) {
		calls++
		if calls == 2 {
			return "CLOSED", true, nil
		}
		return "OPEN", false, nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "CLOSED", val)
	assert.Equal(t, 2, attempts)

	val, attempts, err = PollWithData(p, context.Background(), func(ctx context.Context) (string, bool, error) {
		return "OPEN", false, nil
	})
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Equal(t, "OPEN", val)
	assert.Equal(t, 3, attempts)
}
