package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/live-match/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/live-match/internal/platform/id"
	"github.com/riskibarqy/live-match/internal/platform/logging"
	"github.com/riskibarqy/live-match/internal/usecase"
)

const (
	testJobToken   = "job-secret"
	testGameID     = "game-hfc-2026-09-05"
	testOtherGame  = "game-hfc-2026-09-12"
	testTeamHarbor = memory.TeamIDHarborFC
)

type testServer struct {
	router http.Handler
	clock  *clockwork.FakeClock
}

func newTestServer(t *testing.T) testServer {
	t.Helper()

	seed := memory.DefaultSeed()
	games := memory.NewGameRepository(seed.Games)
	rosters := memory.NewRosterRepository(seed.Rosters)
	clock := clockwork.NewFakeClockAt(time.Date(2026, 9, 5, 9, 0, 0, 0, time.UTC))
	logger := logging.NewNop()

	liveGames := usecase.NewLiveGameService(
		games,
		rosters,
		memory.NewLiveGameRepository(),
		clock,
		idgen.NewSequence("action"),
		logger,
	)
	handler := NewHandler(usecase.NewGameService(games, rosters), liveGames, 2, logger)
	return testServer{
		router: NewRouter(handler, logger, []string{"*"}, testJobToken),
		clock:  clock,
	}
}

func (s testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if strings.HasPrefix(path, "/v1/internal/") {
		req.Header.Set(internalJobTokenHeader, testJobToken)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s testServer) action(t *testing.T, gameID, body string) snapshotResponse {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/v1/games/"+gameID+"/live/actions", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("action %s: expected 200, got %d: %s", body, rec.Code, rec.Body.String())
	}
	return decodeData[snapshotResponse](t, rec)
}

type envelope[T any] struct {
	Data  T `json:"data"`
	Error *struct {
		Status string `json:"status"`
	} `json:"error"`
}

type snapshotResponse struct {
	GameID      string `json:"gameId"`
	Status      string `json:"status"`
	Revision    int64  `json:"revision"`
	CurrentStep string `json:"currentStep"`
	Clock       *struct {
		Status        string `json:"status"`
		CurrentPeriod int    `json:"currentPeriod"`
		Running       bool   `json:"running"`
		Elapsed       string `json:"elapsed"`
	} `json:"clock"`
	Players []struct {
		ID       string `json:"id"`
		Status   string `json:"status"`
		Selected bool   `json:"selected"`
	} `json:"players"`
	Selection struct {
		OffPlayerID     string `json:"offPlayerId"`
		StarterPlayerID string `json:"starterPlayerId"`
	} `json:"selection"`
	Proposals struct {
		Starter *struct {
			ID              string `json:"id"`
			CurrentPosition *struct {
				ID string `json:"id"`
			} `json:"currentPosition"`
		} `json:"starter"`
	} `json:"proposals"`
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var body envelope[T]
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body.Data
}

func errorStatus(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body envelope[any]
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if body.Error == nil {
		t.Fatalf("expected error body, got %s", rec.Body.String())
	}
	return body.Error.Status
}

func TestHandler_ListGamesAndRoster(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/v1/games?team_id="+testTeamHarbor, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	games := decodeData[[]gameDTO](t, rec)
	if len(games) != 2 || games[0].ID != testGameID || games[0].TotalPeriods != 2 {
		t.Fatalf("unexpected games: %+v", games)
	}

	rec = s.do(t, http.MethodGet, "/v1/games", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without team_id, got %d", rec.Code)
	}

	rec = s.do(t, http.MethodGet, "/v1/teams/"+testTeamHarbor+"/roster", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	roster := decodeData[rosterDTO](t, rec)
	if len(roster.Players) != 9 || roster.Players[0].UniformNumber != 1 {
		t.Fatalf("unexpected roster: %+v", roster)
	}
}

func TestHandler_OpenLiveGame(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/v1/games/"+testGameID+"/live", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before open, got %d", rec.Code)
	}

	rec = s.do(t, http.MethodPost, "/v1/games/"+testGameID+"/live", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 on first open, got %d: %s", rec.Code, rec.Body.String())
	}
	opened := decodeData[snapshotResponse](t, rec)
	if opened.Revision != 1 || opened.Status != "NEW" || opened.CurrentStep != "FORMATION" {
		t.Fatalf("unexpected opened snapshot: %+v", opened)
	}
	for _, p := range opened.Players {
		if p.Status != "OFF" {
			t.Fatalf("expected every player OFF, got %s for %s", p.Status, p.ID)
		}
	}

	rec = s.do(t, http.MethodPost, "/v1/games/"+testGameID+"/live", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on repeated open, got %d", rec.Code)
	}

	rec = s.do(t, http.MethodPost, "/v1/games/missing/live", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown game, got %d", rec.Code)
	}
}

func TestHandler_DispatchStarterProposal(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	s.do(t, http.MethodPost, "/v1/games/"+testGameID+"/live", "")

	s.action(t, testGameID, `{"type":"select_starter","player_id":"hfc-10"}`)
	got := s.action(t, testGameID, `{"type":"SELECT_STARTER_POSITION","position":{"id":"FWD-1","type":"FWD"}}`)

	if got.Revision != 3 || got.Selection.StarterPlayerID != "hfc-10" {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
	if got.Proposals.Starter == nil || got.Proposals.Starter.ID != "hfc-10" {
		t.Fatalf("expected starter proposal for hfc-10, got %+v", got.Proposals.Starter)
	}
	if got.Proposals.Starter.CurrentPosition == nil || got.Proposals.Starter.CurrentPosition.ID != "FWD-1" {
		t.Fatalf("expected proposal at FWD-1, got %+v", got.Proposals.Starter.CurrentPosition)
	}

	applied := s.action(t, testGameID, `{"type":"APPLY_STARTER"}`)
	for _, p := range applied.Players {
		if p.ID == "hfc-10" && p.Status != "ON" {
			t.Fatalf("expected hfc-10 ON after apply, got %s", p.Status)
		}
	}
	if applied.Proposals.Starter != nil {
		t.Fatalf("expected starter proposal cleared, got %+v", applied.Proposals.Starter)
	}
}

func TestHandler_DispatchRejectsInvalidActions(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	s.do(t, http.MethodPost, "/v1/games/"+testGameID+"/live", "")

	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "malformed json", body: `{"type":`},
		{name: "unknown type", body: `{"type":"KICK_BALL"}`},
		{name: "unknown field", body: `{"type":"CONFIRM_SUB","foo":1}`},
		{name: "missing player", body: `{"type":"MARK_PLAYER_OUT"}`},
		{name: "bad step", body: `{"type":"COMPLETE_SETUP_STEP","step":"WARMUP"}`},
		{name: "missing formation", body: `{"type":"SELECT_FORMATION"}`},
		{name: "bad periods", body: `{"type":"CONFIGURE_PERIODS","total_periods":0,"period_length":10}`},
		{name: "position without id", body: `{"type":"SELECT_STARTER_POSITION","position":{"type":"GK"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/v1/games/"+testGameID+"/live/actions", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			if got := errorStatus(t, rec); got != "INVALID_ARGUMENT" {
				t.Fatalf("expected INVALID_ARGUMENT, got %s", got)
			}
		})
	}

	rec := s.do(t, http.MethodPost, "/v1/games/"+testOtherGame+"/live/actions", `{"type":"CONFIRM_SUB"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unopened game, got %d", rec.Code)
	}
}

func TestHandler_ClockHistoryAndReplay(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	s.do(t, http.MethodPost, "/v1/games/"+testGameID+"/live", "")

	s.action(t, testGameID, `{"type":"SELECT_FORMATION","formation":{"id":"2-3-1","name":"Seven a side"}}`)
	s.action(t, testGameID, `{"type":"COMPLETE_SETUP_STEP","step":"ROSTER"}`)
	s.action(t, testGameID, `{"type":"COMPLETE_SETUP_STEP","step":"CAPTAINS"}`)
	s.action(t, testGameID, `{"type":"COMPLETE_SETUP_STEP","step":"STARTERS"}`)
	started := s.action(t, testGameID, `{"type":"START_GAME"}`)
	if started.Status != "START" {
		t.Fatalf("expected START, got %s", started.Status)
	}

	s.action(t, testGameID, `{"type":"START_PERIOD"}`)
	s.clock.Advance(90 * time.Second)

	rec := s.do(t, http.MethodGet, "/v1/games/"+testGameID+"/live", "")
	live := decodeData[snapshotResponse](t, rec)
	if live.Clock == nil || !live.Clock.Running || live.Clock.CurrentPeriod != 1 {
		t.Fatalf("expected running first period, got %+v", live.Clock)
	}
	if live.Clock.Elapsed != "01:30" {
		t.Fatalf("expected elapsed 01:30, got %s", live.Clock.Elapsed)
	}

	paused := s.action(t, testGameID, `{"type":"TOGGLE_CLOCK"}`)
	if paused.Clock.Running || paused.Clock.Elapsed != "01:30" {
		t.Fatalf("expected paused clock at 01:30, got %+v", paused.Clock)
	}

	rec = s.do(t, http.MethodGet, "/v1/games/"+testGameID+"/live/actions", "")
	history := decodeData[[]struct {
		Revision int64  `json:"revision"`
		Type     string `json:"type"`
	}](t, rec)
	if len(history) != 7 || history[0].Type != "SELECT_FORMATION" || history[6].Revision != 8 {
		t.Fatalf("unexpected history: %+v", history)
	}

	rec = s.do(t, http.MethodGet, "/v1/games/"+testGameID+"/live/replay", "")
	replay := decodeData[struct {
		Actions int  `json:"actions"`
		Matches bool `json:"matches"`
	}](t, rec)
	if replay.Actions != 7 || !replay.Matches {
		t.Fatalf("unexpected replay: %+v", replay)
	}
}

func TestHandler_InternalJobs(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	s.do(t, http.MethodPost, "/v1/games/"+testGameID+"/live", "")

	rec := s.do(t, http.MethodPost, "/v1/internal/jobs/overdue-sweep", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	sweep := decodeData[usecase.SweepResult](t, rec)
	if sweep.Scanned != 1 || sweep.Candidates != 0 {
		t.Fatalf("unexpected sweep result: %+v", sweep)
	}

	rec = s.do(t, http.MethodPost, "/v1/internal/jobs/replay-audit", `{"max_workers":3}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	audit := decodeData[usecase.AuditResult](t, rec)
	if audit.Checked != 1 || audit.Matched != 1 {
		t.Fatalf("unexpected audit result: %+v", audit)
	}

	rec = s.do(t, http.MethodPost, "/v1/internal/jobs/replay-audit", `{"max_workers":99}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for too many workers, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/overdue-sweep", nil)
	unauthorized := httptest.NewRecorder()
	s.router.ServeHTTP(unauthorized, req)
	if unauthorized.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", unauthorized.Code)
	}
}
