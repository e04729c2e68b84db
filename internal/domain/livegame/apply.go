package livegame

import (
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/live-match/internal/domain/game"
)

// Apply returns the snapshot that results from applying action to g at now.
// Actions that do not apply to the current state return g unchanged.
func Apply(g LiveGame, action Action, now time.Time) LiveGame {
	switch a := action.(type) {
	case SelectPlayer:
		return g.selectPlayer(a.PlayerID, a.Selected)
	case SelectStarter:
		return g.selectStarter(a.PlayerID, a.Selected)
	case SelectStarterPosition:
		return g.selectStarterPosition(a.Position)
	case ApplyStarter:
		return g.applyStarter()
	case CancelStarter:
		return g.cancelStarter()
	case ConfirmSub:
		return g.confirmSub()
	case CancelSub:
		return g.cancelSub()
	case ApplyPendingSubs:
		return g.applyPendingSubs(a.SelectedOnly)
	case DiscardPendingSubs:
		return g.discardPendingSubs(a.SelectedOnly)
	case MarkPlayerOut:
		return g.markPlayerOut(a.PlayerID)
	case ReturnOutPlayer:
		return g.returnOutPlayer(a.PlayerID)
	case StartPeriod:
		if g.Status != game.StatusStart {
			return g
		}
		return g.withClock(func(p Period) Period { return p.StartPeriod(now) })
	case EndPeriod:
		at := now
		if a.StoppedAt != nil {
			at = *a.StoppedAt
		}
		return g.withClock(func(p Period) Period { return p.EndPeriod(at) })
	case ToggleClock:
		if g.Status != game.StatusStart {
			return g
		}
		return g.withClock(func(p Period) Period { return p.ToggleClock(now) })
	case MarkPeriodOverdue:
		return g.withClock(Period.MarkOverdue)
	case SelectFormation:
		return g.selectFormation(a.Formation)
	case ConfigurePeriods:
		return g.configurePeriods(a.TotalPeriods, a.PeriodLength)
	case BeginSetupStep:
		return g.withSetupTasks(BeginStep(g.SetupTasks, a.Step))
	case CompleteSetupStep:
		return g.withSetupTasks(CompleteStep(g.SetupTasks, a.Step))
	case StartGame:
		return g.startGame()
	case EndGame:
		return g.endGame(now)
	case nil:
		return g
	default:
		panic(crerr.AssertionFailedf("unhandled live game action %T", action))
	}
}

func (g LiveGame) withClock(fn func(Period) Period) LiveGame {
	if g.Clock == nil {
		return g
	}
	updated := fn(*g.Clock)
	if updated == *g.Clock {
		return g
	}
	next := g
	next.Clock = &updated
	return next
}

func (g LiveGame) withSetupTasks(tasks []SetupTask) LiveGame {
	if sameTasks(g.SetupTasks, tasks) {
		return g
	}
	next := g
	next.SetupTasks = tasks
	return next
}

func (g LiveGame) selectFormation(formation Formation) LiveGame {
	if g.Status != game.StatusNew || formation.ID == "" {
		return g
	}

	next := g
	if g.Formation == nil || *g.Formation != formation {
		f := formation
		next.Formation = &f
	}
	next.SetupTasks = CompleteStep(g.SetupTasks, StepFormation)
	if next.Formation == g.Formation && sameTasks(next.SetupTasks, g.SetupTasks) {
		return g
	}
	return next
}

func (g LiveGame) configurePeriods(totalPeriods, periodLength int) LiveGame {
	if g.Status != game.StatusNew || totalPeriods <= 0 || periodLength <= 0 {
		return g
	}

	clock := NewPeriod(totalPeriods, periodLength)
	next := g
	next.Clock = &clock
	next.SetupTasks = CompleteStep(g.SetupTasks, StepPeriods)
	return next
}

// startGame moves a fully set up game live. Setup tasks are dropped once live.
func (g LiveGame) startGame() LiveGame {
	if g.Status != game.StatusNew || !AllStepsComplete(g.SetupTasks) {
		return g
	}
	next := g
	next.Status = game.StatusStart
	next.SetupTasks = nil
	return next
}

func (g LiveGame) endGame(now time.Time) LiveGame {
	if g.Status != game.StatusStart {
		return g
	}
	next := g
	next.Status = game.StatusDone
	if g.Clock != nil {
		clock := g.Clock.EndPeriod(now)
		clock.Timer = clock.Timer.Stop(now)
		clock.Status = PeriodDone
		next.Clock = &clock
	}
	return next
}

func sameTasks(a, b []SetupTask) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
