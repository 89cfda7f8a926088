package breaker

import (
	"context"
	"sync"
	"time"

	"tablekeeper/internal/pkg/clock"
	"tablekeeper/internal/pkg/errs"
)

// ErrOpen is returned without calling through while the breaker rejects traffic.
// It carries the errs.ErrServiceUnavailable mark.
var ErrOpen = errs.Mark(errs.New("circuit breaker is open"), errs.ErrServiceUnavailable)

type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

type Config struct {
	// FailureThreshold is the failure count that opens the breaker (default: 3).
	FailureThreshold int

	// OpenTimeout is how long the breaker stays open after the last failure (default: 30s).
	OpenTimeout time.Duration

	// IsSuccessful decides whether an error returned by a call counts as a failure.
	// Defaults to err == nil.
	IsSuccessful func(err error) bool

	// IsIgnored marks outcomes that say nothing about the integration, such as
	// a caller giving up. They neither count as failures nor close the breaker.
	// Defaults to matching context.Canceled.
	IsIgnored func(err error) bool

	// OnStateChange is called with the lock released.
	OnStateChange func(from, to State)
}

func DefaultConfig() Config {
	return Config{
		FailureThreshold: 3,
		OpenTimeout:      30 * time.Second,
	}
}

type Snapshot struct {
	State           State
	FailureCount    int
	LastFailureTime time.Time
	TotalCalls      int64
	TotalFailures   int64
	TotalRejections int64
}

// Breaker guards calls to one external integration.
//
// Failures accumulate while closed and open the breaker at FailureThreshold.
// While open every call is rejected until OpenTimeout has passed since the
// last failure; then exactly one trial call is let through. A successful trial
// closes the breaker and clears the failure count, a failed one reopens it.
// An ignored trial hands the breaker back to open with the failure time kept,
// so the next call becomes the trial.
//
// Safe for concurrent use.
type Breaker struct {
	cfg   Config
	clock clock.Clock

	mu              sync.Mutex
	state           State
	failures        int
	lastFailureTime time.Time
	trialInFlight   bool

	totalCalls      int64
	totalFailures   int64
	totalRejections int64
}

func New(cfg Config, clk clock.Clock) *Breaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	if cfg.IsSuccessful == nil {
		cfg.IsSuccessful = func(err error) bool { return err == nil }
	}
	if cfg.IsIgnored == nil {
		cfg.IsIgnored = func(err error) bool { return errs.Is(err, context.Canceled) }
	}
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &Breaker{cfg: cfg, clock: clk, state: StateClosed}
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Snapshot{
		State:           b.state,
		FailureCount:    b.failures,
		LastFailureTime: b.lastFailureTime,
		TotalCalls:      b.totalCalls,
		TotalFailures:   b.totalFailures,
		TotalRejections: b.totalRejections,
	}
}

// Allow reports whether a call may proceed. The returned trial flag marks the
// single half-open call whose outcome decides the next state.
func (b *Breaker) Allow() (allowed bool, trial bool) {
	b.mu.Lock()
	var changed bool
	defer func() {
		b.mu.Unlock()
		if changed {
			b.notify(StateOpen, StateHalfOpen)
		}
	}()

	b.totalCalls++

	switch b.state {
	case StateClosed:
		return true, false
	case StateOpen:
		if b.clock.Now().Sub(b.lastFailureTime) > b.cfg.OpenTimeout {
			b.state = StateHalfOpen
			b.trialInFlight = true
			changed = true
			return true, true
		}
		b.totalRejections++
		return false, false
	case StateHalfOpen:
		if b.trialInFlight {
			b.totalRejections++
			return false, false
		}
		b.trialInFlight = true
		return true, true
	}
	return false, false
}

// Record feeds the outcome of an allowed call back into the state machine.
func (b *Breaker) Record(trial bool, err error) {
	if err != nil && b.cfg.IsIgnored(err) {
		b.recordIgnored(trial)
		return
	}
	if b.cfg.IsSuccessful(err) {
		b.recordSuccess(trial)
		return
	}
	b.recordFailure(trial)
}

func (b *Breaker) recordSuccess(trial bool) {
	b.mu.Lock()
	from := b.state
	if trial && b.state == StateHalfOpen {
		b.trialInFlight = false
		b.state = StateClosed
		b.failures = 0
	}
	to := b.state
	b.mu.Unlock()

	if from != to {
		b.notify(from, to)
	}
}

func (b *Breaker) recordIgnored(trial bool) {
	b.mu.Lock()
	from := b.state
	if trial && b.state == StateHalfOpen {
		b.trialInFlight = false
		b.state = StateOpen
	}
	to := b.state
	b.mu.Unlock()

	if from != to {
		b.notify(from, to)
	}
}

func (b *Breaker) recordFailure(trial bool) {
	b.mu.Lock()
	from := b.state
	now := b.clock.Now()
	b.totalFailures++

	switch b.state {
	case StateClosed:
		b.failures++
		b.lastFailureTime = now
		if b.failures >= b.cfg.FailureThreshold {
			b.state = StateOpen
		}
	case StateHalfOpen:
		if trial {
			b.trialInFlight = false
			b.failures++
			b.lastFailureTime = now
			b.state = StateOpen
		}
	case StateOpen:
		// a call admitted before the breaker opened finished late
		b.lastFailureTime = now
	}
	to := b.state
	b.mu.Unlock()

	if from != to {
		b.notify(from, to)
	}
}

func (b *Breaker) notify(from, to State) {
	if b.cfg.OnStateChange != nil {
		b.cfg.OnStateChange(from, to)
	}
}

// Execute runs fn under breaker protection. When the breaker rejects the call
// fn is not invoked and ErrOpen is returned. A panic in fn is recorded as a
// failure before it propagates.
func (b *Breaker) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	allowed, trial := b.Allow()
	if !allowed {
		return ErrOpen
	}
	defer func() {
		if r := recover(); r != nil {
			b.recordFailure(trial)
			panic(r)
		}
	}()
	err := fn(ctx)
	b.Record(trial, err)
	return err
}

// Call is Execute for functions that produce a value.
func Call[T any](ctx context.Context, b *Breaker, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := b.Execute(ctx, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}
