package httpapi

import (
	"time"

	"github.com/riskibarqy/live-match/internal/domain/game"
	"github.com/riskibarqy/live-match/internal/domain/livegame"
	"github.com/riskibarqy/live-match/internal/domain/player"
	"github.com/riskibarqy/live-match/internal/domain/roster"
)

type gameDTO struct {
	ID           string `json:"id"`
	TeamID       string `json:"teamId"`
	Name         string `json:"name"`
	Opponent     string `json:"opponent"`
	ScheduledAt  string `json:"scheduledAt"`
	Status       string `json:"status"`
	TotalPeriods int    `json:"totalPeriods,omitempty"`
	PeriodLength int    `json:"periodLengthMinutes,omitempty"`
}

type playerDTO struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	UniformNumber int      `json:"uniformNumber"`
	Positions     []string `json:"positions"`
	Status        string   `json:"status"`
}

type rosterDTO struct {
	TeamID  string      `json:"teamId"`
	Players []playerDTO `json:"players"`
}

type positionDTO struct {
	ID   string `json:"id"`
	Type string `json:"type,omitempty"`
}

type formationDTO struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type livePlayerDTO struct {
	playerDTO
	CurrentPosition *positionDTO `json:"currentPosition,omitempty"`
	NextPosition    *positionDTO `json:"nextPosition,omitempty"`
	Replaces        string       `json:"replaces,omitempty"`
	IsSwap          bool         `json:"isSwap"`
	Selected        bool         `json:"selected"`
}

type clockDTO struct {
	CurrentPeriod  int    `json:"currentPeriod"`
	TotalPeriods   int    `json:"totalPeriods"`
	PeriodLength   int    `json:"periodLengthMinutes"`
	Status         string `json:"status"`
	Running        bool   `json:"running"`
	Elapsed        string `json:"elapsed"`
	ElapsedSeconds int64  `json:"elapsedSeconds"`
	Overdue        bool   `json:"overdue"`
}

type setupTaskDTO struct {
	Step   string `json:"step"`
	Status string `json:"status"`
}

type selectionDTO struct {
	OffPlayerID     string       `json:"offPlayerId,omitempty"`
	OnPlayerID      string       `json:"onPlayerId,omitempty"`
	StarterPlayerID string       `json:"starterPlayerId,omitempty"`
	StarterPosition *positionDTO `json:"starterPosition,omitempty"`
}

type proposalsDTO struct {
	Starter *livePlayerDTO `json:"starter,omitempty"`
	Sub     *livePlayerDTO `json:"sub,omitempty"`
}

type liveGameDTO struct {
	GameID        string          `json:"gameId"`
	TeamID        string          `json:"teamId"`
	Status        string          `json:"status"`
	Formation     *formationDTO   `json:"formation,omitempty"`
	Clock         *clockDTO       `json:"clock,omitempty"`
	SetupTasks    []setupTaskDTO  `json:"setupTasks"`
	CurrentStep   string          `json:"currentStep,omitempty"`
	SetupComplete bool            `json:"setupComplete"`
	Players       []livePlayerDTO `json:"players"`
	Selection     selectionDTO    `json:"selection"`
	Proposals     proposalsDTO    `json:"proposals"`
}

type snapshotDTO struct {
	liveGameDTO
	Revision  int64  `json:"revision"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type actionRecordDTO struct {
	ID        string          `json:"id"`
	Revision  int64           `json:"revision"`
	Type      string          `json:"type"`
	Action    livegame.Action `json:"action"`
	AppliedAt string          `json:"appliedAt"`
}

type replayDTO struct {
	Actions  int         `json:"actions"`
	Revision int64       `json:"revision"`
	Matches  bool        `json:"matches"`
	Game     liveGameDTO `json:"game"`
}

func gameToDTO(g game.Game) gameDTO {
	out := gameDTO{
		ID:          g.ID,
		TeamID:      g.TeamID,
		Name:        g.Name,
		Opponent:    g.Opponent,
		ScheduledAt: formatTime(g.ScheduledAt),
		Status:      string(g.Status),
	}
	if g.Periods != nil {
		out.TotalPeriods = g.Periods.TotalPeriods
		out.PeriodLength = g.Periods.PeriodLength
	}
	return out
}

func playerToDTO(p player.Player) playerDTO {
	positions := p.Positions
	if positions == nil {
		positions = []string{}
	}
	return playerDTO{
		ID:            p.ID,
		Name:          p.Name,
		UniformNumber: p.UniformNumber,
		Positions:     positions,
		Status:        string(p.Status),
	}
}

func rosterToDTO(r roster.Roster) rosterDTO {
	players := r.Sorted()
	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}
	return rosterDTO{TeamID: r.TeamID, Players: items}
}

func positionToDTO(p *livegame.Position) *positionDTO {
	if p == nil {
		return nil
	}
	return &positionDTO{ID: p.ID, Type: p.Type}
}

func livePlayerToDTO(p livegame.LivePlayer) livePlayerDTO {
	return livePlayerDTO{
		playerDTO:       playerToDTO(p.Player),
		CurrentPosition: positionToDTO(p.CurrentPosition),
		NextPosition:    positionToDTO(p.NextPosition),
		Replaces:        p.Replaces,
		IsSwap:          p.IsSwap,
		Selected:        p.Selected,
	}
}

func clockToDTO(p *livegame.Period, now time.Time) *clockDTO {
	if p == nil {
		return nil
	}
	elapsed := p.Elapsed(now)
	return &clockDTO{
		CurrentPeriod:  p.CurrentPeriod,
		TotalPeriods:   p.TotalPeriods,
		PeriodLength:   p.PeriodLength,
		Status:         string(p.Status),
		Running:        p.Timer.Running,
		Elapsed:        elapsed.Format(),
		ElapsedSeconds: elapsed.Seconds,
		Overdue:        p.Status == livegame.PeriodOverdue || p.IsOverdue(now),
	}
}

func liveGameToDTO(g livegame.LiveGame, now time.Time) liveGameDTO {
	out := liveGameDTO{
		GameID:        g.ID,
		TeamID:        g.TeamID,
		Status:        string(g.Status),
		Clock:         clockToDTO(g.Clock, now),
		SetupTasks:    make([]setupTaskDTO, 0, len(g.SetupTasks)),
		SetupComplete: livegame.AllStepsComplete(g.SetupTasks),
		Players:       make([]livePlayerDTO, 0, len(g.Players)),
		Selection: selectionDTO{
			OffPlayerID:     g.Selection.OffPlayerID,
			OnPlayerID:      g.Selection.OnPlayerID,
			StarterPlayerID: g.Selection.StarterPlayerID,
			StarterPosition: positionToDTO(g.Selection.StarterPosition),
		},
	}
	if g.Formation != nil {
		out.Formation = &formationDTO{ID: g.Formation.ID, Name: g.Formation.Name}
	}
	for _, task := range g.SetupTasks {
		out.SetupTasks = append(out.SetupTasks, setupTaskDTO{Step: string(task.Step), Status: string(task.Status)})
	}
	if step, ok := livegame.CurrentStep(g.SetupTasks); ok {
		out.CurrentStep = string(step)
	}
	for _, p := range g.Players {
		out.Players = append(out.Players, livePlayerToDTO(p))
	}
	if starter, ok := g.ProposedStarter(); ok {
		dto := livePlayerToDTO(starter)
		out.Proposals.Starter = &dto
	}
	if sub, ok := g.ProposedSub(); ok {
		dto := livePlayerToDTO(sub)
		out.Proposals.Sub = &dto
	}
	return out
}

func snapshotToDTO(s livegame.Snapshot, now time.Time) snapshotDTO {
	return snapshotDTO{
		liveGameDTO: liveGameToDTO(s.Game, now),
		Revision:    s.Revision,
		CreatedAt:   formatTime(s.CreatedAt),
		UpdatedAt:   formatTime(s.UpdatedAt),
	}
}

func actionRecordToDTO(r livegame.ActionRecord) actionRecordDTO {
	return actionRecordDTO{
		ID:        r.ID,
		Revision:  r.Revision,
		Type:      string(r.Kind),
		Action:    r.Action,
		AppliedAt: formatTime(r.AppliedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
