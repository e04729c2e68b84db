package livegame

import (
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/live-match/internal/domain/game"
	"github.com/riskibarqy/live-match/internal/domain/player"
	"github.com/riskibarqy/live-match/internal/domain/roster"
)

// Position is an opaque formation slot. Positions are equal when their IDs are.
type Position struct {
	ID   string `json:"id"`
	Type string `json:"type,omitempty"`
}

func (p Position) Equal(other Position) bool {
	return p.ID == other.ID
}

type Formation struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// LivePlayer is a roster player plus the transient match fields.
type LivePlayer struct {
	player.Player
	CurrentPosition *Position
	NextPosition    *Position
	Replaces        string
	IsSwap          bool
	Selected        bool
}

// Selection holds the tracked player of each selection bucket and the
// starter position picked for the next starter proposal.
type Selection struct {
	OffPlayerID     string
	OnPlayerID      string
	StarterPlayerID string
	StarterPosition *Position
}

func (s Selection) tracks(playerID string) bool {
	if playerID == "" {
		return false
	}
	return s.OffPlayerID == playerID || s.OnPlayerID == playerID || s.StarterPlayerID == playerID
}

func (s Selection) equal(other Selection) bool {
	if s.OffPlayerID != other.OffPlayerID || s.OnPlayerID != other.OnPlayerID || s.StarterPlayerID != other.StarterPlayerID {
		return false
	}
	return samePosition(s.StarterPosition, other.StarterPosition)
}

// LiveGame is one immutable snapshot of a match in progress.
type LiveGame struct {
	ID         string
	TeamID     string
	Status     game.Status
	Clock      *Period
	Formation  *Formation
	Players    []LivePlayer
	SetupTasks []SetupTask
	Selection  Selection
}

// NewLiveGame builds the initial snapshot for g: every roster player off the
// field and the setup sequence at its first step. A nil game is a caller bug.
func NewLiveGame(g *game.Game, r roster.Roster) LiveGame {
	if g == nil {
		panic(crerr.AssertionFailedf("live game requires a game"))
	}

	status := g.Status
	if status == "" {
		status = game.StatusNew
	}

	sorted := r.Sorted()
	players := make([]LivePlayer, 0, len(sorted))
	for _, p := range sorted {
		p.Status = player.StatusOff
		players = append(players, LivePlayer{Player: p})
	}

	out := LiveGame{
		ID:      g.ID,
		TeamID:  g.TeamID,
		Status:  status,
		Players: players,
	}
	if g.Periods != nil {
		clock := NewPeriod(g.Periods.TotalPeriods, g.Periods.PeriodLength)
		out.Clock = &clock
		out.SetupTasks = NewSetupTasks(false)
	} else {
		out.SetupTasks = NewSetupTasks(true)
	}

	return out
}

func (g LiveGame) Player(playerID string) (LivePlayer, bool) {
	idx := g.indexOf(playerID)
	if idx < 0 {
		return LivePlayer{}, false
	}
	return g.Players[idx], true
}

// PlayersByStatus returns the players currently in status, in roster order.
func (g LiveGame) PlayersByStatus(status player.Status) []LivePlayer {
	out := make([]LivePlayer, 0)
	for _, p := range g.Players {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out
}

func (g LiveGame) indexOf(playerID string) int {
	if playerID == "" {
		return -1
	}
	for i := range g.Players {
		if g.Players[i].ID == playerID {
			return i
		}
	}
	return -1
}

// clone copies the player slice so the result can be edited without
// touching g. Nested pointers are never written through.
func (g LiveGame) clone() LiveGame {
	next := g
	next.Players = append([]LivePlayer(nil), g.Players...)
	return next
}

func samePosition(a, b *Position) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID == b.ID && a.Type == b.Type
}

func copyPosition(p *Position) *Position {
	if p == nil {
		return nil
	}
	copied := *p
	return &copied
}
