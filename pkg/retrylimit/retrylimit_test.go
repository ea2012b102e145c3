package retrylimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy(classify func(error) Outcome) Policy {
	return Policy{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond, Classify: classify}
}

func TestDoSucceedsAfterRetry(t *testing.T) {
	calls := 0
	err := Do(context.Background(), nil, fastPolicy(nil), func(context.Context) error {
		calls++
		if calls < 2 {
			return errors.New("flaky")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestDoStopsOnFatal(t *testing.T) {
	notFound := errors.New("404")
	calls := 0
	err := Do(context.Background(), nil, fastPolicy(func(error) Outcome { return Fatal }), func(context.Context) error {
		calls++
		return notFound
	})
	assert.ErrorIs(t, err, notFound)
	assert.NotErrorIs(t, err, ErrExhausted)
	assert.Equal(t, 1, calls)
}

func TestDoExhausts(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := Do(context.Background(), nil, fastPolicy(nil), func(context.Context) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, ErrExhausted)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
}

func TestDoHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := fastPolicy(nil)
	p.InitialDelay = time.Hour
	err := Do(ctx, nil, p, func(context.Context) error {
		cancel()
		return errors.New("slow")
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLimiterThrottleAndBounds(t *testing.T) {
	lim := NewLimiter(8, 2, 10)
	assert.Equal(t, 8.0, lim.Limit())

	lim.throttled()
	assert.Equal(t, 4.0, lim.Limit())
	lim.throttled()
	lim.throttled()
	assert.Equal(t, 2.0, lim.Limit())

	// success right after an error does not speed up
	lim.success()
	assert.Equal(t, 2.0, lim.Limit())

	assert.Equal(t, 10.0, NewLimiter(50, 1, 10).Limit())
}

func TestDoThrottleLowersRate(t *testing.T) {
	lim := NewLimiter(1000, 1, 1000)
	calls := 0
	err := Do(context.Background(), lim, fastPolicy(func(error) Outcome { return Throttle }), func(context.Context) error {
		calls++
		if calls == 1 {
			return errors.New("429")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 500.0, lim.Limit())
}
