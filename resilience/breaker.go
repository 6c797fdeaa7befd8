package resilience

import (
	"errors"
	"sync"
	"time"
)

// State is the state of a Breaker.
type State int

const (
	// StateClosed lets calls through.
	StateClosed State = iota
	// StateOpen rejects calls until the cooldown has passed.
	StateOpen
	// StateHalfOpen lets one probe call through.
	StateHalfOpen
)

// String returns the state name.
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

// ErrBreakerOpen is returned while the breaker rejects calls.
var ErrBreakerOpen = errors.New("breaker is open")

// BreakerConfig configures a Breaker.
type BreakerConfig struct {
	// Name identifies the guarded endpoint in logs.
	Name string
	// MaxFailures is the number of consecutive failures that opens the breaker.
	MaxFailures int
	// Cooldown is how long the breaker stays open before a probe call.
	Cooldown time.Duration
	// OnStateChange is called on every transition.
	OnStateChange func(name string, from, to State)
}

// Breaker fails fast once an endpoint has failed MaxFailures times in a
// row. After Cooldown one probe call is let through; its outcome closes or
// reopens the breaker.
type Breaker struct {
	config BreakerConfig

	mu          sync.Mutex
	state       State
	failures    int
	openedAt    time.Time
	probeActive bool
	now         func() time.Time
}

// NewBreaker creates a closed breaker.
func NewBreaker(config BreakerConfig) *Breaker {
	if config.MaxFailures <= 0 {
		config.MaxFailures = 3
	}
	if config.Cooldown <= 0 {
		config.Cooldown = 30 * time.Second
	}
	return &Breaker{config: config, now: time.Now}
}

// Execute runs fn unless the breaker is open.
func (b *Breaker) Execute(fn func() error) error {
	if !b.allow() {
		return ErrBreakerOpen
	}
	err := fn()
	b.record(err)
	return err
}

// State returns the current state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current()
}

// Failures returns the consecutive failure count.
func (b *Breaker) Failures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures
}

func (b *Breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.current() {
	case StateClosed:
		return true
	case StateHalfOpen:
		if b.probeActive {
			return false
		}
		b.probeActive = true
		return true
	default:
		return false
	}
}

func (b *Breaker) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	state := b.current()
	b.probeActive = false
	if err == nil {
		b.failures = 0
		if state != StateClosed {
			b.to(StateClosed)
		}
		return
	}
	b.failures++
	if state == StateHalfOpen || b.failures >= b.config.MaxFailures {
		b.openedAt = b.now()
		b.to(StateOpen)
	}
}

// current applies the open to half-open transition once the cooldown has
// passed. Callers hold mu.
func (b *Breaker) current() State {
	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.config.Cooldown {
		b.to(StateHalfOpen)
	}
	return b.state
}

func (b *Breaker) to(s State) {
	if b.state == s {
		return
	}
	from := b.state
	b.state = s
	if b.config.OnStateChange != nil {
		b.config.OnStateChange(b.config.Name, from, s)
	}
}

// Name returns the configured name.
func (b *Breaker) Name() string { return b.config.Name }
