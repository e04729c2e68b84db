package livegame

import (
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
)

// Clock is the time source timers are driven from.
type Clock interface {
	Now() time.Time
}

func SystemClock() Clock {
	return clockwork.NewRealClock()
}

// FreezableClock delegates to a base clock until frozen. While frozen, time
// only moves when the returned fake clock is advanced. Intended for test
// harnesses; misuse panics.
type FreezableClock struct {
	mu     sync.Mutex
	base   Clock
	frozen *clockwork.FakeClock
}

func NewFreezableClock(base Clock) *FreezableClock {
	if base == nil {
		base = SystemClock()
	}
	return &FreezableClock{base: base}
}

func (c *FreezableClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.frozen != nil {
		return c.frozen.Now()
	}
	return c.base.Now()
}

func (c *FreezableClock) Freeze(at time.Time) *clockwork.FakeClock {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.frozen != nil {
		panic(crerr.AssertionFailedf("clock is already frozen"))
	}
	c.frozen = clockwork.NewFakeClockAt(at)
	return c.frozen
}

func (c *FreezableClock) Unfreeze() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.frozen == nil {
		panic(crerr.AssertionFailedf("clock is not frozen"))
	}
	c.frozen = nil
}

func (c *FreezableClock) Frozen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frozen != nil
}
