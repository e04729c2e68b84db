// Package resilience guards calls to flaky dependencies.
package resilience

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
)

// ErrCircuitOpen is returned without running the call while the breaker rejects traffic.
var ErrCircuitOpen = errors.New("resilience: circuit open")

type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half_open"
)

// Settings tune a Breaker. Zero values fall back to the defaults below.
type Settings struct {
	// FailureThreshold is the number of consecutive counted failures that opens the breaker.
	FailureThreshold int
	// Cooldown is how long the breaker stays open before admitting probes.
	Cooldown time.Duration
	// ProbeLimit caps concurrent half-open probes; that many successes close the breaker.
	ProbeLimit int
	// OnStateChange is invoked after each transition, outside the breaker lock.
	OnStateChange func(from, to State)
}

const (
	defaultFailureThreshold = 5
	defaultCooldown         = 15 * time.Second
	defaultProbeLimit       = 2
)

func (s Settings) withDefaults() Settings {
	if s.FailureThreshold < 1 {
		s.FailureThreshold = defaultFailureThreshold
	}
	if s.Cooldown <= 0 {
		s.Cooldown = defaultCooldown
	}
	if s.ProbeLimit < 1 {
		s.ProbeLimit = defaultProbeLimit
	}
	return s
}

// Breaker is a consecutive-failure circuit breaker. Each transition starts a
// new generation; results from calls admitted in an older generation are
// discarded so a slow call cannot reopen or close a breaker that already moved on.
type Breaker struct {
	settings Settings
	clock    clockwork.Clock

	mu         sync.Mutex
	state      State
	generation uint64
	streak     int
	openedAt   time.Time
	probes     int
	passed     int
}

func NewBreaker(settings Settings, clock clockwork.Clock) *Breaker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Breaker{
		settings: settings.withDefaults(),
		clock:    clock,
		state:    StateClosed,
	}
}

// Execute runs fn when the breaker admits it. Errors for which countable
// reports false are returned unchanged and treated as successes.
func (b *Breaker) Execute(fn func() error, countable func(error) bool) error {
	generation, err := b.admit()
	if err != nil {
		return err
	}

	err = fn()
	b.settle(generation, err != nil && (countable == nil || countable(err)))
	return err
}

// State reports the current state; an open breaker whose cooldown elapsed reads as half-open.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == StateOpen && b.cooledDown() {
		return StateHalfOpen
	}
	return b.state
}

func (b *Breaker) admit() (uint64, error) {
	b.mu.Lock()
	from := b.state
	generation, err := b.admitLocked()
	to := b.state
	b.mu.Unlock()

	b.notify(from, to)
	return generation, err
}

func (b *Breaker) admitLocked() (uint64, error) {
	if b.state == StateOpen {
		if !b.cooledDown() {
			return 0, ErrCircuitOpen
		}
		b.moveTo(StateHalfOpen)
	}
	if b.state == StateHalfOpen {
		if b.probes >= b.settings.ProbeLimit {
			return 0, ErrCircuitOpen
		}
		b.probes++
	}
	return b.generation, nil
}

func (b *Breaker) settle(generation uint64, failed bool) {
	b.mu.Lock()
	from := b.state
	if generation == b.generation {
		b.settleLocked(failed)
	}
	to := b.state
	b.mu.Unlock()

	b.notify(from, to)
}

func (b *Breaker) settleLocked(failed bool) {
	switch b.state {
	case StateClosed:
		if !failed {
			b.streak = 0
			return
		}
		b.streak++
		if b.streak >= b.settings.FailureThreshold {
			b.moveTo(StateOpen)
		}
	case StateHalfOpen:
		b.probes--
		if failed {
			b.moveTo(StateOpen)
			return
		}
		b.passed++
		if b.passed >= b.settings.ProbeLimit && b.probes == 0 {
			b.moveTo(StateClosed)
		}
	}
}

func (b *Breaker) moveTo(state State) {
	b.state = state
	b.generation++
	b.streak = 0
	b.probes = 0
	b.passed = 0
	if state == StateOpen {
		b.openedAt = b.clock.Now()
	}
}

func (b *Breaker) cooledDown() bool {
	return b.clock.Since(b.openedAt) >= b.settings.Cooldown
}

func (b *Breaker) notify(from, to State) {
	if from != to && b.settings.OnStateChange != nil {
		b.settings.OnStateChange(from, to)
	}
}
