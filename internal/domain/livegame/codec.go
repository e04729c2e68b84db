package livegame

import (
	"fmt"

	sonic "github.com/bytedance/sonic"
)

// MarshalAction encodes the payload of action. The kind is stored separately.
func MarshalAction(action Action) ([]byte, error) {
	if action == nil {
		return nil, fmt.Errorf("action is required")
	}
	payload, err := sonic.Marshal(action)
	if err != nil {
		return nil, fmt.Errorf("marshal %s action: %w", action.Kind(), err)
	}
	return payload, nil
}

// UnmarshalAction decodes a payload produced by MarshalAction.
func UnmarshalAction(kind ActionKind, payload []byte) (Action, error) {
	switch kind {
	case KindSelectPlayer:
		return decodeAction[SelectPlayer](kind, payload)
	case KindSelectStarter:
		return decodeAction[SelectStarter](kind, payload)
	case KindSelectStarterPosition:
		return decodeAction[SelectStarterPosition](kind, payload)
	case KindApplyStarter:
		return ApplyStarter{}, nil
	case KindCancelStarter:
		return CancelStarter{}, nil
	case KindConfirmSub:
		return ConfirmSub{}, nil
	case KindCancelSub:
		return CancelSub{}, nil
	case KindApplyPendingSubs:
		return decodeAction[ApplyPendingSubs](kind, payload)
	case KindDiscardPendingSubs:
		return decodeAction[DiscardPendingSubs](kind, payload)
	case KindMarkPlayerOut:
		return decodeAction[MarkPlayerOut](kind, payload)
	case KindReturnOutPlayer:
		return decodeAction[ReturnOutPlayer](kind, payload)
	case KindStartPeriod:
		return StartPeriod{}, nil
	case KindEndPeriod:
		return decodeAction[EndPeriod](kind, payload)
	case KindToggleClock:
		return ToggleClock{}, nil
	case KindMarkPeriodOverdue:
		return MarkPeriodOverdue{}, nil
	case KindSelectFormation:
		return decodeAction[SelectFormation](kind, payload)
	case KindConfigurePeriods:
		return decodeAction[ConfigurePeriods](kind, payload)
	case KindBeginSetupStep:
		return decodeAction[BeginSetupStep](kind, payload)
	case KindCompleteSetupStep:
		return decodeAction[CompleteSetupStep](kind, payload)
	case KindStartGame:
		return StartGame{}, nil
	case KindEndGame:
		return EndGame{}, nil
	default:
		return nil, fmt.Errorf("unknown action kind %q", kind)
	}
}

func decodeAction[T Action](kind ActionKind, payload []byte) (Action, error) {
	var out T
	if len(payload) == 0 {
		return out, nil
	}
	if err := sonic.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("unmarshal %s action: %w", kind, err)
	}
	return out, nil
}
