package postgres

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/live-match/internal/domain/game"
	"github.com/riskibarqy/live-match/internal/domain/livegame"
	"github.com/riskibarqy/live-match/internal/infrastructure/repository/memory"
)

func seededLiveGame(t *testing.T) livegame.LiveGame {
	t.Helper()

	seed := memory.DefaultSeed()
	for _, g := range seed.Games {
		if g.ID != "game-riv-2026-09-06" {
			continue
		}
		for _, r := range seed.Rosters {
			if r.TeamID == g.TeamID {
				return livegame.NewLiveGame(&g, r)
			}
		}
	}
	t.Fatalf("seed game not found")
	return livegame.LiveGame{}
}

func TestLiveGameDocument_RoundTripsMidGameState(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 9, 6, 10, 0, 0, 0, time.UTC)
	g := seededLiveGame(t)
	first, second := g.Players[0].ID, g.Players[1].ID

	actions := []livegame.TimedAction{
		{Action: livegame.SelectFormation{Formation: livegame.Formation{ID: "2-2", Name: "Box"}}, AppliedAt: start},
		{Action: livegame.SelectStarterPosition{Position: &livegame.Position{ID: "gk", Type: "GOALKEEPER"}}, AppliedAt: start},
		{Action: livegame.SelectStarter{PlayerID: first, Selected: true}, AppliedAt: start},
		{Action: livegame.ApplyStarter{}, AppliedAt: start},
		{Action: livegame.CompleteSetupStep{Step: livegame.StepRoster}, AppliedAt: start},
		{Action: livegame.CompleteSetupStep{Step: livegame.StepCaptains}, AppliedAt: start},
		{Action: livegame.CompleteSetupStep{Step: livegame.StepStarters}, AppliedAt: start},
		{Action: livegame.StartGame{}, AppliedAt: start},
		{Action: livegame.StartPeriod{}, AppliedAt: start.Add(time.Minute)},
		{Action: livegame.SelectPlayer{PlayerID: second, Selected: true}, AppliedAt: start.Add(2 * time.Minute)},
		{Action: livegame.MarkPlayerOut{PlayerID: g.Players[2].ID}, AppliedAt: start.Add(3 * time.Minute)},
	}
	current := livegame.Replay(g, actions)
	if current.Status != game.StatusStart || current.Clock == nil || !current.Clock.Timer.Running {
		t.Fatalf("unexpected fixture state: %+v", current)
	}

	raw, err := encodeLiveGame(current)
	if err != nil {
		t.Fatalf("encode live game: %v", err)
	}
	if strings.HasSuffix(raw, "\n") || !strings.Contains(raw, `"period_length_minutes":12`) {
		t.Fatalf("unexpected document: %s", raw)
	}

	decoded, err := decodeLiveGame(raw)
	if err != nil {
		t.Fatalf("decode live game: %v", err)
	}
	if !reflect.DeepEqual(decoded, current) {
		t.Fatalf("document round trip changed the game:\nwant %+v\ngot  %+v", current, decoded)
	}
	if !livegame.SameState(decoded, current) {
		t.Fatalf("expected same state after round trip")
	}
}

func TestLiveGameDocument_InitialSnapshot(t *testing.T) {
	t.Parallel()

	g := seededLiveGame(t)
	raw, err := encodeLiveGame(g)
	if err != nil {
		t.Fatalf("encode live game: %v", err)
	}
	decoded, err := decodeLiveGame(raw)
	if err != nil {
		t.Fatalf("decode live game: %v", err)
	}
	if !reflect.DeepEqual(decoded, g) {
		t.Fatalf("initial snapshot changed in round trip:\nwant %+v\ngot  %+v", g, decoded)
	}

	if _, err := decodeLiveGame("{not json"); err == nil {
		t.Fatalf("expected decode error for malformed document")
	}
}
