package memory

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/riskibarqy/live-match/internal/domain/game"
	"github.com/riskibarqy/live-match/internal/domain/player"
	"github.com/riskibarqy/live-match/internal/domain/roster"
	"gopkg.in/yaml.v3"
)

const (
	TeamIDHarborFC = "team-harbor-fc"
	TeamIDRiverU12 = "team-river-u12"
)

// Seed is the demo data a fresh store starts with.
type Seed struct {
	Games   []game.Game
	Rosters []roster.Roster
}

type seedFile struct {
	Teams []seedTeam `yaml:"teams"`
}

type seedTeam struct {
	ID      string       `yaml:"id"`
	Players []seedPlayer `yaml:"players"`
	Games   []seedGame   `yaml:"games"`
}

type seedPlayer struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	Number    int      `yaml:"number"`
	Positions []string `yaml:"positions"`
}

type seedGame struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	Opponent    string       `yaml:"opponent"`
	ScheduledAt time.Time    `yaml:"scheduled_at"`
	Periods     *seedPeriods `yaml:"periods"`
}

type seedPeriods struct {
	Total  int `yaml:"total"`
	Length int `yaml:"length"`
}

// LoadSeedFile reads seed data from a YAML file. An empty path yields the
// built-in demo seed.
func LoadSeedFile(path string) (Seed, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultSeed(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(raw)
}

func ParseSeed(raw []byte) (Seed, error) {
	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Seed{}, fmt.Errorf("decode seed yaml: %w", err)
	}

	out := Seed{}
	for _, t := range file.Teams {
		if strings.TrimSpace(t.ID) == "" {
			return Seed{}, fmt.Errorf("seed team id is required")
		}

		players := make([]player.Player, 0, len(t.Players))
		for _, p := range t.Players {
			players = append(players, player.Player{
				ID:            p.ID,
				Name:          p.Name,
				UniformNumber: p.Number,
				Positions:     p.Positions,
			})
		}
		r, err := roster.New(t.ID, players)
		if err != nil {
			return Seed{}, fmt.Errorf("seed roster %s: %w", t.ID, err)
		}
		out.Rosters = append(out.Rosters, r)

		for _, g := range t.Games {
			item := game.Game{
				ID:          g.ID,
				TeamID:      t.ID,
				Name:        g.Name,
				Opponent:    g.Opponent,
				ScheduledAt: g.ScheduledAt.UTC(),
				Status:      game.StatusNew,
			}
			if g.Periods != nil {
				item.Periods = &game.PeriodConfig{TotalPeriods: g.Periods.Total, PeriodLength: g.Periods.Length}
			}
			if err := item.Validate(); err != nil {
				return Seed{}, fmt.Errorf("seed game %s: %w", g.ID, err)
			}
			out.Games = append(out.Games, item)
		}
	}

	return out, nil
}

func DefaultSeed() Seed {
	kickoff := time.Date(2026, 9, 5, 9, 0, 0, 0, time.UTC)

	harbor := mustRoster(TeamIDHarborFC, []player.Player{
		{ID: "hfc-01", Name: "Mara Quinn", UniformNumber: 1, Positions: []string{"GK"}},
		{ID: "hfc-02", Name: "Theo Lind", UniformNumber: 2, Positions: []string{"DEF"}},
		{ID: "hfc-04", Name: "Ada Okafor", UniformNumber: 4, Positions: []string{"DEF"}},
		{ID: "hfc-06", Name: "Jonas Reyes", UniformNumber: 6, Positions: []string{"MID"}},
		{ID: "hfc-08", Name: "Lena Fischer", UniformNumber: 8, Positions: []string{"MID"}},
		{ID: "hfc-10", Name: "Sam Patel", UniformNumber: 10, Positions: []string{"MID", "FWD"}},
		{ID: "hfc-11", Name: "Noor Haddad", UniformNumber: 11, Positions: []string{"FWD"}},
		{ID: "hfc-14", Name: "Ivo Marsh", UniformNumber: 14, Positions: []string{"DEF", "MID"}},
		{ID: "hfc-17", Name: "Rae Collins", UniformNumber: 17, Positions: []string{"FWD"}},
	})
	river := mustRoster(TeamIDRiverU12, []player.Player{
		{ID: "riv-01", Name: "Kit Moreno", UniformNumber: 1, Positions: []string{"GK"}},
		{ID: "riv-03", Name: "Bea Laine", UniformNumber: 3, Positions: []string{"DEF"}},
		{ID: "riv-05", Name: "Oli Brandt", UniformNumber: 5, Positions: []string{"MID"}},
		{ID: "riv-07", Name: "Zoe Park", UniformNumber: 7, Positions: []string{"FWD"}},
		{ID: "riv-12", Name: "Finn Aalto", UniformNumber: 12, Positions: []string{"MID"}},
	})

	return Seed{
		Games: []game.Game{
			{
				ID:          "game-hfc-2026-09-05",
				TeamID:      TeamIDHarborFC,
				Name:        "League round 1",
				Opponent:    "Northside Rovers",
				ScheduledAt: kickoff,
				Status:      game.StatusNew,
				Periods:     &game.PeriodConfig{TotalPeriods: 2, PeriodLength: 35},
			},
			{
				ID:          "game-hfc-2026-09-12",
				TeamID:      TeamIDHarborFC,
				Name:        "Friendly",
				Opponent:    "Eastbay Athletic",
				ScheduledAt: kickoff.AddDate(0, 0, 7),
				Status:      game.StatusNew,
			},
			{
				ID:          "game-riv-2026-09-06",
				TeamID:      TeamIDRiverU12,
				Name:        "Cup group stage",
				Opponent:    "Hillcrest U12",
				ScheduledAt: kickoff.AddDate(0, 0, 1),
				Status:      game.StatusNew,
				Periods:     &game.PeriodConfig{TotalPeriods: 4, PeriodLength: 12},
			},
		},
		Rosters: []roster.Roster{harbor, river},
	}
}

func mustRoster(teamID string, players []player.Player) roster.Roster {
	r, err := roster.New(teamID, players)
	if err != nil {
		panic(err)
	}
	return r
}
