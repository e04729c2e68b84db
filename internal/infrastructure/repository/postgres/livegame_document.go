package postgres

import (
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/live-match/internal/domain/game"
	"github.com/riskibarqy/live-match/internal/domain/livegame"
	"github.com/riskibarqy/live-match/internal/domain/player"
	"github.com/valyala/bytebufferpool"
)

// liveGameDocument is the JSONB shape of a live game snapshot.
type liveGameDocument struct {
	ID         string               `json:"id"`
	TeamID     string               `json:"team_id"`
	Status     string               `json:"status"`
	Clock      *periodDocument      `json:"clock,omitempty"`
	Formation  *livegame.Formation  `json:"formation,omitempty"`
	Players    []livePlayerDocument `json:"players"`
	SetupTasks []setupTaskDocument  `json:"setup_tasks,omitempty"`
	Selection  selectionDocument    `json:"selection"`
}

type periodDocument struct {
	CurrentPeriod int           `json:"current_period"`
	Status        string        `json:"status"`
	TotalPeriods  int           `json:"total_periods"`
	PeriodLength  int           `json:"period_length_minutes"`
	Timer         timerDocument `json:"timer"`
}

type timerDocument struct {
	Running   bool       `json:"running"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	Seconds   int64      `json:"seconds"`
}

type livePlayerDocument struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	UniformNumber   int                `json:"uniform_number"`
	Positions       []string           `json:"positions,omitempty"`
	Status          string             `json:"status"`
	CurrentPosition *livegame.Position `json:"current_position,omitempty"`
	NextPosition    *livegame.Position `json:"next_position,omitempty"`
	Replaces        string             `json:"replaces,omitempty"`
	IsSwap          bool               `json:"is_swap,omitempty"`
	Selected        bool               `json:"selected,omitempty"`
}

type setupTaskDocument struct {
	Step   string `json:"step"`
	Status string `json:"status"`
}

type selectionDocument struct {
	OffPlayerID     string             `json:"off_player_id,omitempty"`
	OnPlayerID      string             `json:"on_player_id,omitempty"`
	StarterPlayerID string             `json:"starter_player_id,omitempty"`
	StarterPosition *livegame.Position `json:"starter_position,omitempty"`
}

func encodeLiveGame(g livegame.LiveGame) (string, error) {
	doc := liveGameDocument{
		ID:        g.ID,
		TeamID:    g.TeamID,
		Status:    string(g.Status),
		Formation: g.Formation,
		Players:   make([]livePlayerDocument, 0, len(g.Players)),
		Selection: selectionDocument{
			OffPlayerID:     g.Selection.OffPlayerID,
			OnPlayerID:      g.Selection.OnPlayerID,
			StarterPlayerID: g.Selection.StarterPlayerID,
			StarterPosition: g.Selection.StarterPosition,
		},
	}
	if g.Clock != nil {
		doc.Clock = &periodDocument{
			CurrentPeriod: g.Clock.CurrentPeriod,
			Status:        string(g.Clock.Status),
			TotalPeriods:  g.Clock.TotalPeriods,
			PeriodLength:  g.Clock.PeriodLength,
			Timer: timerDocument{
				Running:   g.Clock.Timer.Running,
				StartedAt: g.Clock.Timer.StartedAt,
				Seconds:   g.Clock.Timer.Duration.Seconds,
			},
		}
	}
	for _, p := range g.Players {
		doc.Players = append(doc.Players, livePlayerDocument{
			ID:              p.ID,
			Name:            p.Name,
			UniformNumber:   p.UniformNumber,
			Positions:       p.Positions,
			Status:          string(p.Status),
			CurrentPosition: p.CurrentPosition,
			NextPosition:    p.NextPosition,
			Replaces:        p.Replaces,
			IsSwap:          p.IsSwap,
			Selected:        p.Selected,
		})
	}
	for _, task := range g.SetupTasks {
		doc.SetupTasks = append(doc.SetupTasks, setupTaskDocument{Step: string(task.Step), Status: string(task.Status)})
	}

	return encodeDocument(doc)
}

func decodeLiveGame(raw string) (livegame.LiveGame, error) {
	var doc liveGameDocument
	if err := sonic.UnmarshalString(raw, &doc); err != nil {
		return livegame.LiveGame{}, fmt.Errorf("decode live game document: %w", err)
	}

	out := livegame.LiveGame{
		ID:        doc.ID,
		TeamID:    doc.TeamID,
		Status:    game.Status(doc.Status),
		Formation: doc.Formation,
		Players:   make([]livegame.LivePlayer, 0, len(doc.Players)),
		Selection: livegame.Selection{
			OffPlayerID:     doc.Selection.OffPlayerID,
			OnPlayerID:      doc.Selection.OnPlayerID,
			StarterPlayerID: doc.Selection.StarterPlayerID,
			StarterPosition: doc.Selection.StarterPosition,
		},
	}
	if doc.Clock != nil {
		timer := livegame.Timer{
			Running:  doc.Clock.Timer.Running,
			Duration: livegame.DurationOf(doc.Clock.Timer.Seconds),
		}
		if doc.Clock.Timer.StartedAt != nil {
			startedAt := doc.Clock.Timer.StartedAt.UTC()
			timer.StartedAt = &startedAt
		}
		out.Clock = &livegame.Period{
			CurrentPeriod: doc.Clock.CurrentPeriod,
			Status:        livegame.PeriodStatus(doc.Clock.Status),
			TotalPeriods:  doc.Clock.TotalPeriods,
			PeriodLength:  doc.Clock.PeriodLength,
			Timer:         timer,
		}
	}
	for _, p := range doc.Players {
		out.Players = append(out.Players, livegame.LivePlayer{
			Player: player.Player{
				ID:            p.ID,
				Name:          p.Name,
				UniformNumber: p.UniformNumber,
				Positions:     p.Positions,
				Status:        player.Status(p.Status),
			},
			CurrentPosition: p.CurrentPosition,
			NextPosition:    p.NextPosition,
			Replaces:        p.Replaces,
			IsSwap:          p.IsSwap,
			Selected:        p.Selected,
		})
	}
	for _, task := range doc.SetupTasks {
		out.SetupTasks = append(out.SetupTasks, livegame.SetupTask{
			Step:   livegame.SetupStep(task.Step),
			Status: livegame.SetupStatus(task.Status),
		})
	}

	return out, nil
}

func encodeDocument(value any) (string, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(value); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
