// v2
// internal/breaker/breaker.go

package breaker

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

type State int

const (
	Closed State = iota
	Open
	HalfOpen
)

func (s State) String() string {
	switch s {
	case Closed:
		return "Closed"
	case Open:
		return "Open"
	case HalfOpen:
		return "HalfOpen"
	default:
		return "Unknown"
	}
}

// ErrOpen is returned while the breaker fast-fails.
var ErrOpen = errors.New("circuit breaker is open; fast-fail")

type Config struct {
	Enabled      bool
	MaxFailures  int
	ResetTimeout time.Duration
}

// FromEnv reads the breaker tunables:
//   - CB_ENABLED (default: false)
//   - CB_MAX_FAILURES (default: 5)
//   - CB_RESET_TIMEOUT_MS (default: 30000)
func FromEnv() Config {
	cfg := Config{MaxFailures: 5, ResetTimeout: 30 * time.Second}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("CB_ENABLED"))) {
	case "1", "true", "yes", "on":
		cfg.Enabled = true
	}
	if v := strings.TrimSpace(os.Getenv("CB_MAX_FAILURES")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			cfg.MaxFailures = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("CB_RESET_TIMEOUT_MS")); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.ResetTimeout = time.Duration(ms) * time.Millisecond
		}
	}
	return cfg
}

// Breaker is a Closed/Open/HalfOpen circuit breaker. After MaxFailures
// consecutive failures it opens and fast-fails until ResetTimeout elapses,
// then probes with a single half-open attempt.
type Breaker struct {
	name string
	cfg  Config
	log  *slog.Logger

	mu          sync.Mutex
	state       State
	recentFails int
	openedAt    time.Time

	now func() time.Time
}

func New(name string, cfg Config, log *slog.Logger) *Breaker {
	b := &Breaker{
		name:  name,
		cfg:   cfg,
		log:   log.With("breaker", name),
		state: Closed,
		now:   time.Now,
	}
	b.log.Info("breaker_created", "state", b.state.String(), "maxFailures", cfg.MaxFailures, "resetTimeout", cfg.ResetTimeout.String())
	return b
}

// Execute runs op under the breaker policy. A disabled breaker is a passthrough.
func (b *Breaker) Execute(ctx context.Context, op func(ctx context.Context) error) error {
	if !b.cfg.Enabled {
		return op(ctx)
	}

	b.mu.Lock()
	state := b.state
	openedAt := b.openedAt
	b.mu.Unlock()

	if state == Open {
		if b.now().Sub(openedAt) < b.cfg.ResetTimeout {
			b.log.Warn("breaker_fast_fail", "since_open", b.now().Sub(openedAt).String())
			return ErrOpen
		}
		return b.tryHalfOpen(ctx, op)
	}

	err := op(ctx)
	if err == nil {
		b.onSuccess()
		return nil
	}
	b.onFailure(err)
	return err
}

func (b *Breaker) tryHalfOpen(ctx context.Context, op func(ctx context.Context) error) error {
	b.mu.Lock()
	b.state = HalfOpen
	b.mu.Unlock()
	b.log.Info("breaker_probe_start")

	if err := op(ctx); err != nil {
		b.log.Warn("breaker_probe_failed", "error", err.Error())
		b.mu.Lock()
		b.state = Open
		b.openedAt = b.now()
		b.recentFails++
		b.mu.Unlock()
		return err
	}

	b.mu.Lock()
	b.state = Closed
	b.recentFails = 0
	b.mu.Unlock()
	b.log.Info("breaker_closed_after_probe")
	return nil
}

func (b *Breaker) onSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = Closed
	b.recentFails = 0
}

func (b *Breaker) onFailure(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.recentFails++
	b.log.Warn("operation_failure", "failures", b.recentFails, "error", err.Error())
	if b.recentFails >= b.cfg.MaxFailures {
		b.state = Open
		b.openedAt = b.now()
		b.log.Error("breaker_opened", "maxFailures", b.cfg.MaxFailures)
	}
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}
