package roster

import (
	"fmt"
	"sort"

	"github.com/riskibarqy/live-match/internal/domain/player"
)

// Roster maps player ids to the players available to a team.
type Roster struct {
	TeamID  string
	Players map[string]player.Player
}

func New(teamID string, players []player.Player) (Roster, error) {
	out := Roster{TeamID: teamID, Players: make(map[string]player.Player, len(players))}
	for _, p := range players {
		if err := p.Validate(); err != nil {
			return Roster{}, err
		}
		if _, exists := out.Players[p.ID]; exists {
			return Roster{}, fmt.Errorf("duplicate player id in roster: %s", p.ID)
		}
		out.Players[p.ID] = p.Clone()
	}

	return out, nil
}

// Sorted returns roster players ordered by uniform number, then id.
func (r Roster) Sorted() []player.Player {
	out := make([]player.Player, 0, len(r.Players))
	for _, p := range r.Players {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UniformNumber != out[j].UniformNumber {
			return out[i].UniformNumber < out[j].UniformNumber
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r Roster) Clone() Roster {
	copied := Roster{TeamID: r.TeamID, Players: make(map[string]player.Player, len(r.Players))}
	for id, p := range r.Players {
		copied.Players[id] = p.Clone()
	}
	return copied
}
