package livegame

import "time"

// Timer accumulates running time across start/stop cycles.
// StartedAt is set iff Running is true.
type Timer struct {
	Running   bool
	StartedAt *time.Time
	Duration  Duration
}

func (t Timer) Start(now time.Time) Timer {
	if t.Running {
		return t
	}
	startedAt := now
	return Timer{
		Running:   true,
		StartedAt: &startedAt,
		Duration:  t.Duration,
	}
}

// Stop folds the time since StartedAt into Duration. at is either the
// current time or a retroactive stop time supplied by the caller.
func (t Timer) Stop(at time.Time) Timer {
	if !t.Running || t.StartedAt == nil {
		return t
	}
	if at.Before(*t.StartedAt) {
		at = *t.StartedAt
	}
	return Timer{
		Running:  false,
		Duration: t.Duration.Add(Elapsed(*t.StartedAt, at)),
	}
}

func (t Timer) Toggle(now time.Time) Timer {
	if t.Running {
		return t.Stop(now)
	}
	return t.Start(now)
}

func (t Timer) Elapsed(now time.Time) Duration {
	if !t.Running || t.StartedAt == nil {
		return t.Duration
	}
	if now.Before(*t.StartedAt) {
		return t.Duration
	}
	return t.Duration.Add(Elapsed(*t.StartedAt, now))
}
