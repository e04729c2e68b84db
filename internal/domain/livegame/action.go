package livegame

import "time"

// ActionKind names an action variant in the action log.
type ActionKind string

const (
	KindSelectPlayer          ActionKind = "SELECT_PLAYER"
	KindSelectStarter         ActionKind = "SELECT_STARTER"
	KindSelectStarterPosition ActionKind = "SELECT_STARTER_POSITION"
	KindApplyStarter          ActionKind = "APPLY_STARTER"
	KindCancelStarter         ActionKind = "CANCEL_STARTER"
	KindConfirmSub            ActionKind = "CONFIRM_SUB"
	KindCancelSub             ActionKind = "CANCEL_SUB"
	KindApplyPendingSubs      ActionKind = "APPLY_PENDING_SUBS"
	KindDiscardPendingSubs    ActionKind = "DISCARD_PENDING_SUBS"
	KindMarkPlayerOut         ActionKind = "MARK_PLAYER_OUT"
	KindReturnOutPlayer       ActionKind = "RETURN_OUT_PLAYER"
	KindStartPeriod           ActionKind = "START_PERIOD"
	KindEndPeriod             ActionKind = "END_PERIOD"
	KindToggleClock           ActionKind = "TOGGLE_CLOCK"
	KindMarkPeriodOverdue     ActionKind = "MARK_PERIOD_OVERDUE"
	KindSelectFormation       ActionKind = "SELECT_FORMATION"
	KindConfigurePeriods      ActionKind = "CONFIGURE_PERIODS"
	KindBeginSetupStep        ActionKind = "BEGIN_SETUP_STEP"
	KindCompleteSetupStep     ActionKind = "COMPLETE_SETUP_STEP"
	KindStartGame             ActionKind = "START_GAME"
	KindEndGame               ActionKind = "END_GAME"
)

// Action is a user intent applied to a LiveGame. The set of variants is
// closed: only types in this package implement it.
type Action interface {
	Kind() ActionKind
	isAction()
}

type SelectPlayer struct {
	PlayerID string `json:"player_id"`
	Selected bool   `json:"selected"`
}

type SelectStarter struct {
	PlayerID string `json:"player_id"`
	Selected bool   `json:"selected"`
}

// SelectStarterPosition records the slot for the next starter. A nil
// position clears it.
type SelectStarterPosition struct {
	Position *Position `json:"position,omitempty"`
}

type ApplyStarter struct{}

type CancelStarter struct{}

type ConfirmSub struct{}

type CancelSub struct{}

type ApplyPendingSubs struct {
	SelectedOnly bool `json:"selected_only"`
}

type DiscardPendingSubs struct {
	SelectedOnly bool `json:"selected_only"`
}

type MarkPlayerOut struct {
	PlayerID string `json:"player_id"`
}

type ReturnOutPlayer struct {
	PlayerID string `json:"player_id"`
}

type StartPeriod struct{}

// EndPeriod stops the period clock. StoppedAt backdates the stop when set.
type EndPeriod struct {
	StoppedAt *time.Time `json:"stopped_at,omitempty"`
}

type ToggleClock struct{}

type MarkPeriodOverdue struct{}

type SelectFormation struct {
	Formation Formation `json:"formation"`
}

type ConfigurePeriods struct {
	TotalPeriods int `json:"total_periods"`
	PeriodLength int `json:"period_length"`
}

type BeginSetupStep struct {
	Step SetupStep `json:"step"`
}

type CompleteSetupStep struct {
	Step SetupStep `json:"step"`
}

type StartGame struct{}

type EndGame struct{}

func (SelectPlayer) Kind() ActionKind          { return KindSelectPlayer }
func (SelectStarter) Kind() ActionKind         { return KindSelectStarter }
func (SelectStarterPosition) Kind() ActionKind { return KindSelectStarterPosition }
func (ApplyStarter) Kind() ActionKind          { return KindApplyStarter }
func (CancelStarter) Kind() ActionKind         { return KindCancelStarter }
func (ConfirmSub) Kind() ActionKind            { return KindConfirmSub }
func (CancelSub) Kind() ActionKind             { return KindCancelSub }
func (ApplyPendingSubs) Kind() ActionKind      { return KindApplyPendingSubs }
func (DiscardPendingSubs) Kind() ActionKind    { return KindDiscardPendingSubs }
func (MarkPlayerOut) Kind() ActionKind         { return KindMarkPlayerOut }
func (ReturnOutPlayer) Kind() ActionKind       { return KindReturnOutPlayer }
func (StartPeriod) Kind() ActionKind           { return KindStartPeriod }
func (EndPeriod) Kind() ActionKind             { return KindEndPeriod }
func (ToggleClock) Kind() ActionKind           { return KindToggleClock }
func (MarkPeriodOverdue) Kind() ActionKind     { return KindMarkPeriodOverdue }
func (SelectFormation) Kind() ActionKind       { return KindSelectFormation }
func (ConfigurePeriods) Kind() ActionKind      { return KindConfigurePeriods }
func (BeginSetupStep) Kind() ActionKind        { return KindBeginSetupStep }
func (CompleteSetupStep) Kind() ActionKind     { return KindCompleteSetupStep }
func (StartGame) Kind() ActionKind             { return KindStartGame }
func (EndGame) Kind() ActionKind               { return KindEndGame }

func (SelectPlayer) isAction()          {}
func (SelectStarter) isAction()         {}
func (SelectStarterPosition) isAction() {}
func (ApplyStarter) isAction()          {}
func (CancelStarter) isAction()         {}
func (ConfirmSub) isAction()            {}
func (CancelSub) isAction()             {}
func (ApplyPendingSubs) isAction()      {}
func (DiscardPendingSubs) isAction()    {}
func (MarkPlayerOut) isAction()         {}
func (ReturnOutPlayer) isAction()       {}
func (StartPeriod) isAction()           {}
func (EndPeriod) isAction()             {}
func (ToggleClock) isAction()           {}
func (MarkPeriodOverdue) isAction()     {}
func (SelectFormation) isAction()       {}
func (ConfigurePeriods) isAction()      {}
func (BeginSetupStep) isAction()        {}
func (CompleteSetupStep) isAction()     {}
func (StartGame) isAction()             {}
func (EndGame) isAction()               {}
