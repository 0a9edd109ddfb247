// Package resilience provides fault tolerance patterns for external service calls.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/sony/gobreaker"

	"brand_server/pkg/logger"
)

// Errors returned by a guarded call.
var (
	ErrCircuitOpen     = errors.New("circuit breaker is open")
	ErrTooManyRequests = errors.New("too many requests in half-open state")
	ErrCallTimeout     = errors.New("call timed out")
	ErrCallPanicked    = errors.New("call panicked")
)

// GuardConfig holds configuration for a provider guard.
type GuardConfig struct {
	Name        string        // breaker name, also used in logs
	MaxFailures int           // consecutive failures before opening (default: 5)
	OpenTimeout time.Duration // time spent open before half-open (default: 30s)
	CallTimeout time.Duration // deadline for each call; 0 disables it
	MaxRequests uint32        // requests allowed in half-open (default: 1)
}

// DefaultGuardConfig returns sensible defaults.
func DefaultGuardConfig(name string) GuardConfig {
	return GuardConfig{
		Name:        name,
		MaxFailures: 5,
		OpenTimeout: 30 * time.Second,
		CallTimeout: 45 * time.Second,
		MaxRequests: 1,
	}
}

// Guard wraps outbound calls to one provider with a circuit breaker,
// a per-call deadline and panic recovery.
type Guard struct {
	name        string
	cb          *gobreaker.CircuitBreaker
	callTimeout time.Duration
}

// NewGuard creates a guard with the given config.
func NewGuard(cfg GuardConfig) *Guard {
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = 1
	}
	maxFailures := uint32(cfg.MaxFailures)

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    60 * time.Second,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(map[string]any{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("[Guard] circuit state changed")
		},
		// A caller that goes away is not the provider's fault.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	}

	return &Guard{
		name:        cfg.Name,
		cb:          gobreaker.NewCircuitBreaker(settings),
		callTimeout: cfg.CallTimeout,
	}
}

// Name returns the guard name.
func (g *Guard) Name() string { return g.name }

// State returns the breaker state: closed, half-open or open.
func (g *Guard) State() string { return g.cb.State().String() }

// Counts returns the breaker's counters for the current interval.
func (g *Guard) Counts() gobreaker.Counts { return g.cb.Counts() }

type result[T any] struct {
	val T
	err error
}

// Call runs fn under g. The deadline is enforced even if fn ignores its context.
func Call[T any](ctx context.Context, g *Guard, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	out, err := g.cb.Execute(func() (any, error) {
		callCtx := ctx
		if g.callTimeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, g.callTimeout)
			defer cancel()
		}

		done := make(chan result[T], 1)
		go func() {
			defer func() {
				if r := recover(); r != nil {
					logger.WithField("guard", g.name).
						WithField("stack", string(debug.Stack())).
						Error("[Guard] recovered panic: %v", r)
					done <- result[T]{err: fmt.Errorf("%w: %v", ErrCallPanicked, r)}
				}
			}()
			v, err := fn(callCtx)
			done <- result[T]{val: v, err: err}
		}()

		select {
		case r := <-done:
			if r.err != nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
				return nil, fmt.Errorf("%w after %s: %v", ErrCallTimeout, g.callTimeout, r.err)
			}
			return r.val, r.err
		case <-callCtx.Done():
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w after %s", ErrCallTimeout, g.callTimeout)
		}
	})

	switch {
	case errors.Is(err, gobreaker.ErrOpenState):
		return zero, fmt.Errorf("%s: %w", g.name, ErrCircuitOpen)
	case errors.Is(err, gobreaker.ErrTooManyRequests):
		return zero, fmt.Errorf("%s: %w", g.name, ErrTooManyRequests)
	case err != nil:
		return zero, err
	}
	v, _ := out.(T)
	return v, nil
}
