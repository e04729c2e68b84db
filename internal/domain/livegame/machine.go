package livegame

import (
	"reflect"
	"time"
)

// Machine applies actions using a clock source for the current time.
type Machine struct {
	clock Clock
}

func NewMachine(clock Clock) *Machine {
	if clock == nil {
		clock = SystemClock()
	}
	return &Machine{clock: clock}
}

// Now reads the clock in UTC at microsecond precision, the resolution
// timestamps survive storage with.
func (m *Machine) Now() time.Time {
	return m.clock.Now().UTC().Truncate(time.Microsecond)
}

// Dispatch applies action at the clock's current time and reports the time used.
func (m *Machine) Dispatch(g LiveGame, action Action) (LiveGame, time.Time) {
	now := m.Now()
	return Apply(g, action, now), now
}

// TimedAction is an action together with the instant it was applied.
type TimedAction struct {
	Action    Action
	AppliedAt time.Time
}

// Replay re-applies a recorded action stream to an initial snapshot.
func Replay(initial LiveGame, actions []TimedAction) LiveGame {
	state := initial
	for _, item := range actions {
		state = Apply(state, item.Action, item.AppliedAt)
	}
	return state
}

// SameState reports whether a and b describe the same game, comparing
// instants regardless of their location.
func SameState(a, b LiveGame) bool {
	return reflect.DeepEqual(normalizeTimes(a), normalizeTimes(b))
}

func normalizeTimes(g LiveGame) LiveGame {
	if g.Clock == nil || g.Clock.Timer.StartedAt == nil {
		return g
	}
	clock := *g.Clock
	startedAt := clock.Timer.StartedAt.UTC()
	clock.Timer.StartedAt = &startedAt
	g.Clock = &clock
	return g
}
