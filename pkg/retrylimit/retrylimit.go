// Package retrylimit throttles and retries calls to a rate-limited remote
// API. The Limiter adapts its rate: it slows down when the remote signals
// overload and recovers gradually once calls succeed again.
//
//	lim := retrylimit.NewLimiter(5, 1, 20)
//	err := retrylimit.Do(ctx, lim, retrylimit.DefaultPolicy(), func(ctx context.Context) error {
//	    return fetch(ctx)
//	})
package retrylimit

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Limiter is a token bucket whose rate moves between min and max.
type Limiter struct {
	mu        sync.Mutex
	limiter   *rate.Limiter
	min, max  rate.Limit
	lastError time.Time
}

// NewLimiter creates a Limiter starting at initial requests per second.
func NewLimiter(initial, min, max float64) *Limiter {
	if min <= 0 {
		min = 1
	}
	if max < min {
		max = min
	}
	initial = clamp(initial, min, max)
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(initial), burst(initial)),
		min:     rate.Limit(min),
		max:     rate.Limit(max),
	}
}

// Wait blocks until a call may proceed.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Limit returns the current rate in requests per second.
func (l *Limiter) Limit() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return float64(l.limiter.Limit())
}

func (l *Limiter) success() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if time.Since(l.lastError) > 10*time.Second {
		l.set(l.limiter.Limit() + 1)
	}
}

func (l *Limiter) throttled() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastError = time.Now()
	l.set(l.limiter.Limit() / 2)
}

func (l *Limiter) set(r rate.Limit) {
	r = rate.Limit(clamp(float64(r), float64(l.min), float64(l.max)))
	if r != l.limiter.Limit() {
		l.limiter.SetLimit(r)
		l.limiter.SetBurst(burst(float64(r)))
	}
}

// Outcome tells Do what to do with a failed attempt.
type Outcome int

const (
	// Fatal stops immediately and returns the error.
	Fatal Outcome = iota
	// Retry backs off and tries again.
	Retry
	// Throttle lowers the limiter's rate, then retries.
	Throttle
)

// Policy configures Do.
type Policy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Classify     func(error) Outcome
}

// DefaultPolicy retries every error up to three times.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:  3,
		InitialDelay: 250 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Classify:     func(error) Outcome { return Retry },
	}
}

// ErrExhausted is wrapped around the last error once MaxAttempts is reached.
var ErrExhausted = errors.New("retry attempts exhausted")

// Do calls fn until it succeeds, fails fatally, the context ends, or the
// attempts run out. lim may be nil.
func Do(ctx context.Context, lim *Limiter, p Policy, fn func(ctx context.Context) error) error {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 1
	}
	if p.Classify == nil {
		p.Classify = func(error) Outcome { return Retry }
	}

	delay := p.InitialDelay
	var err error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if lim != nil {
			if werr := lim.Wait(ctx); werr != nil {
				return werr
			}
		}

		if err = fn(ctx); err == nil {
			if lim != nil {
				lim.success()
			}
			return nil
		}

		switch p.Classify(err) {
		case Fatal:
			return err
		case Throttle:
			if lim != nil {
				lim.throttled()
				log.Warn().Int("attempt", attempt).Float64("rps", lim.Limit()).Msg("rate limited, slowing down")
			}
		default:
			log.Debug().Err(err).Int("attempt", attempt).Dur("delay", delay).Msg("request failed, retrying")
		}

		if attempt == p.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(jitter(delay)):
		}
		delay = min(delay*2, p.MaxDelay)
	}
	return fmt.Errorf("%w after %d attempts: %w", ErrExhausted, p.MaxAttempts, err)
}

// jitter adds up to 25% to d.
func jitter(d time.Duration) time.Duration {
	if d < 4 {
		return d
	}
	return d + time.Duration(rand.Int63n(int64(d/4)))
}

func burst(r float64) int {
	return max(1, int(r))
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
