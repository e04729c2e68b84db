package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/live-match/internal/domain/livegame"
	"github.com/riskibarqy/live-match/internal/usecase"
)

const maxActionBodyBytes = 64 << 10

// actionRequest is the wire form of every live action. Type selects the
// variant; the remaining fields are read only by the variants that use them.
type actionRequest struct {
	Type         string           `json:"type" validate:"required,oneof=SELECT_PLAYER SELECT_STARTER SELECT_STARTER_POSITION APPLY_STARTER CANCEL_STARTER CONFIRM_SUB CANCEL_SUB APPLY_PENDING_SUBS DISCARD_PENDING_SUBS MARK_PLAYER_OUT RETURN_OUT_PLAYER START_PERIOD END_PERIOD TOGGLE_CLOCK MARK_PERIOD_OVERDUE SELECT_FORMATION CONFIGURE_PERIODS BEGIN_SETUP_STEP COMPLETE_SETUP_STEP START_GAME END_GAME"`
	PlayerID     string           `json:"player_id"`
	Selected     *bool            `json:"selected"`
	Position     *positionRequest `json:"position" validate:"omitempty"`
	SelectedOnly bool             `json:"selected_only"`
	StoppedAt    *time.Time       `json:"stopped_at"`
	Formation    *formationDTO    `json:"formation" validate:"omitempty"`
	TotalPeriods int              `json:"total_periods" validate:"gte=0"`
	PeriodLength int              `json:"period_length" validate:"gte=0"`
	Step         string           `json:"step" validate:"omitempty,oneof=FORMATION ROSTER CAPTAINS STARTERS PERIODS"`
}

type positionRequest struct {
	ID   string `json:"id" validate:"required"`
	Type string `json:"type"`
}

func decodeActionRequest(r *http.Request) (actionRequest, error) {
	decoder := jsoniter.NewDecoder(io.LimitReader(r.Body, maxActionBodyBytes))
	decoder.DisallowUnknownFields()

	var req actionRequest
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return actionRequest{}, fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
		}
		return actionRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	req.Type = strings.ToUpper(strings.TrimSpace(req.Type))
	req.PlayerID = strings.TrimSpace(req.PlayerID)
	return req, nil
}

// toAction builds the domain action named by Type. Selected defaults to true.
func (req actionRequest) toAction() (livegame.Action, error) {
	selected := req.Selected == nil || *req.Selected

	switch livegame.ActionKind(req.Type) {
	case livegame.KindSelectPlayer:
		if req.PlayerID == "" {
			return nil, missingField(req.Type, "player_id")
		}
		return livegame.SelectPlayer{PlayerID: req.PlayerID, Selected: selected}, nil
	case livegame.KindSelectStarter:
		if req.PlayerID == "" {
			return nil, missingField(req.Type, "player_id")
		}
		return livegame.SelectStarter{PlayerID: req.PlayerID, Selected: selected}, nil
	case livegame.KindSelectStarterPosition:
		var position *livegame.Position
		if req.Position != nil {
			position = &livegame.Position{ID: req.Position.ID, Type: req.Position.Type}
		}
		return livegame.SelectStarterPosition{Position: position}, nil
	case livegame.KindApplyStarter:
		return livegame.ApplyStarter{}, nil
	case livegame.KindCancelStarter:
		return livegame.CancelStarter{}, nil
	case livegame.KindConfirmSub:
		return livegame.ConfirmSub{}, nil
	case livegame.KindCancelSub:
		return livegame.CancelSub{}, nil
	case livegame.KindApplyPendingSubs:
		return livegame.ApplyPendingSubs{SelectedOnly: req.SelectedOnly}, nil
	case livegame.KindDiscardPendingSubs:
		return livegame.DiscardPendingSubs{SelectedOnly: req.SelectedOnly}, nil
	case livegame.KindMarkPlayerOut:
		if req.PlayerID == "" {
			return nil, missingField(req.Type, "player_id")
		}
		return livegame.MarkPlayerOut{PlayerID: req.PlayerID}, nil
	case livegame.KindReturnOutPlayer:
		if req.PlayerID == "" {
			return nil, missingField(req.Type, "player_id")
		}
		return livegame.ReturnOutPlayer{PlayerID: req.PlayerID}, nil
	case livegame.KindStartPeriod:
		return livegame.StartPeriod{}, nil
	case livegame.KindEndPeriod:
		if req.StoppedAt == nil {
			return livegame.EndPeriod{}, nil
		}
		stoppedAt := req.StoppedAt.UTC().Truncate(time.Microsecond)
		return livegame.EndPeriod{StoppedAt: &stoppedAt}, nil
	case livegame.KindToggleClock:
		return livegame.ToggleClock{}, nil
	case livegame.KindMarkPeriodOverdue:
		return livegame.MarkPeriodOverdue{}, nil
	case livegame.KindSelectFormation:
		if req.Formation == nil || strings.TrimSpace(req.Formation.ID) == "" {
			return nil, missingField(req.Type, "formation.id")
		}
		return livegame.SelectFormation{Formation: livegame.Formation{
			ID:   strings.TrimSpace(req.Formation.ID),
			Name: req.Formation.Name,
		}}, nil
	case livegame.KindConfigurePeriods:
		if req.TotalPeriods <= 0 || req.PeriodLength <= 0 {
			return nil, fmt.Errorf("%w: %s requires positive total_periods and period_length", usecase.ErrInvalidInput, req.Type)
		}
		return livegame.ConfigurePeriods{TotalPeriods: req.TotalPeriods, PeriodLength: req.PeriodLength}, nil
	case livegame.KindBeginSetupStep:
		if req.Step == "" {
			return nil, missingField(req.Type, "step")
		}
		return livegame.BeginSetupStep{Step: livegame.SetupStep(req.Step)}, nil
	case livegame.KindCompleteSetupStep:
		if req.Step == "" {
			return nil, missingField(req.Type, "step")
		}
		return livegame.CompleteSetupStep{Step: livegame.SetupStep(req.Step)}, nil
	case livegame.KindStartGame:
		return livegame.StartGame{}, nil
	case livegame.KindEndGame:
		return livegame.EndGame{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown action type %q", usecase.ErrInvalidInput, req.Type)
	}
}

func missingField(actionType, field string) error {
	return fmt.Errorf("%w: %s requires %s", usecase.ErrInvalidInput, actionType, field)
}
