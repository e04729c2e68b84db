package livegame

import "time"

// PeriodStatus tracks where the current period is in its lifecycle.
type PeriodStatus string

const (
	PeriodPending PeriodStatus = "PENDING"
	PeriodRunning PeriodStatus = "RUNNING"
	PeriodOverdue PeriodStatus = "OVERDUE"
	PeriodDone    PeriodStatus = "DONE"
)

// Period is the match clock: which period is being played and its timer.
type Period struct {
	CurrentPeriod int
	Status        PeriodStatus
	TotalPeriods  int
	PeriodLength  int // minutes
	Timer         Timer
}

func NewPeriod(totalPeriods, periodLength int) Period {
	return Period{
		Status:       PeriodPending,
		TotalPeriods: totalPeriods,
		PeriodLength: periodLength,
	}
}

func (p Period) inPlay() bool {
	return p.Status == PeriodRunning || p.Status == PeriodOverdue
}

// StartPeriod begins the next period with a fresh timer.
func (p Period) StartPeriod(now time.Time) Period {
	if p.inPlay() || p.Status == PeriodDone {
		return p
	}
	if p.TotalPeriods > 0 && p.CurrentPeriod >= p.TotalPeriods {
		return p
	}

	next := p
	next.CurrentPeriod++
	next.Status = PeriodRunning
	next.Timer = Timer{}.Start(now)
	return next
}

func (p Period) EndPeriod(at time.Time) Period {
	if !p.inPlay() {
		return p
	}

	next := p
	next.Timer = p.Timer.Stop(at)
	if p.TotalPeriods > 0 && p.CurrentPeriod >= p.TotalPeriods {
		next.Status = PeriodDone
	} else {
		next.Status = PeriodPending
	}
	return next
}

// ToggleClock pauses or resumes the timer without changing the period.
func (p Period) ToggleClock(now time.Time) Period {
	next := p
	next.Timer = p.Timer.Toggle(now)
	return next
}

func (p Period) MarkOverdue() Period {
	if p.Status != PeriodRunning {
		return p
	}
	next := p
	next.Status = PeriodOverdue
	return next
}

func (p Period) Elapsed(now time.Time) Duration {
	return p.Timer.Elapsed(now)
}

// IsOverdue reports whether a running period has reached its configured length.
func (p Period) IsOverdue(now time.Time) bool {
	if p.Status != PeriodRunning || p.PeriodLength <= 0 {
		return false
	}
	return p.Timer.Elapsed(now).Seconds >= int64(p.PeriodLength)*60
}
