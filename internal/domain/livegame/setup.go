package livegame

// SetupStep names one gating step before a match can start.
type SetupStep string

const (
	StepFormation SetupStep = "FORMATION"
	StepRoster    SetupStep = "ROSTER"
	StepCaptains  SetupStep = "CAPTAINS"
	StepStarters  SetupStep = "STARTERS"
	StepPeriods   SetupStep = "PERIODS"
)

type SetupStatus string

const (
	SetupPending    SetupStatus = "PENDING"
	SetupActive     SetupStatus = "ACTIVE"
	SetupInProgress SetupStatus = "IN_PROGRESS"
	SetupComplete   SetupStatus = "COMPLETE"
)

var defaultSetupSteps = []SetupStep{StepFormation, StepRoster, StepCaptains, StepStarters}

type SetupTask struct {
	Step   SetupStep
	Status SetupStatus
}

// NewSetupTasks builds the fixed step sequence with the first step active.
func NewSetupTasks(includePeriods bool) []SetupTask {
	steps := append([]SetupStep(nil), defaultSetupSteps...)
	if includePeriods {
		steps = append(steps, StepPeriods)
	}

	tasks := make([]SetupTask, len(steps))
	for i, step := range steps {
		tasks[i] = SetupTask{Step: step, Status: SetupPending}
	}
	if len(tasks) > 0 {
		tasks[0].Status = SetupActive
	}
	return tasks
}

func isCurrent(status SetupStatus) bool {
	return status == SetupActive || status == SetupInProgress
}

// CompleteStep marks step complete and activates the following step.
// It is a no-op unless step is the current one.
func CompleteStep(tasks []SetupTask, step SetupStep) []SetupTask {
	idx := indexOfStep(tasks, step)
	if idx < 0 || !isCurrent(tasks[idx].Status) {
		return tasks
	}

	next := append([]SetupTask(nil), tasks...)
	next[idx].Status = SetupComplete
	if idx+1 < len(next) && next[idx+1].Status == SetupPending {
		next[idx+1].Status = SetupActive
	}
	return next
}

// BeginStep moves the active step to in-progress.
func BeginStep(tasks []SetupTask, step SetupStep) []SetupTask {
	idx := indexOfStep(tasks, step)
	if idx < 0 || tasks[idx].Status != SetupActive {
		return tasks
	}

	next := append([]SetupTask(nil), tasks...)
	next[idx].Status = SetupInProgress
	return next
}

// CurrentStep returns the active or in-progress step, if any.
func CurrentStep(tasks []SetupTask) (SetupStep, bool) {
	for _, task := range tasks {
		if isCurrent(task.Status) {
			return task.Step, true
		}
	}
	return "", false
}

func AllStepsComplete(tasks []SetupTask) bool {
	for _, task := range tasks {
		if task.Status != SetupComplete {
			return false
		}
	}
	return true
}

func indexOfStep(tasks []SetupTask, step SetupStep) int {
	for i, task := range tasks {
		if task.Step == step {
			return i
		}
	}
	return -1
}
