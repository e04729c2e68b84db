package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/live-match/internal/platform/logging"
	"github.com/riskibarqy/live-match/internal/usecase"
)

type Handler struct {
	gameService     *usecase.GameService
	liveGameService *usecase.LiveGameService
	jobWorkers      int
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	gameService *usecase.GameService,
	liveGameService *usecase.LiveGameService,
	jobWorkers int,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		gameService:     gameService,
		liveGameService: liveGameService,
		jobWorkers:      jobWorkers,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGames")
	defer span.End()

	teamID := strings.TrimSpace(r.URL.Query().Get("team_id"))
	if err := h.validateRequest(ctx, listGamesRequest{TeamID: teamID}); err != nil {
		writeError(ctx, w, err)
		return
	}

	games, err := h.gameService.ListByTeam(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list games failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameDTO, 0, len(games))
	for _, g := range games {
		items = append(items, gameToDTO(g))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGame")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	item, err := h.gameService.GetByID(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(item))
}

func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRoster")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	item, err := h.gameService.GetRoster(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get roster failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(item))
}

func (h *Handler) OpenLiveGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OpenLiveGame")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	snapshot, created, err := h.liveGameService.Open(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "open live game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeSuccess(ctx, w, status, snapshotToDTO(snapshot, h.liveGameService.Now()))
}

func (h *Handler) GetLiveGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLiveGame")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	snapshot, err := h.liveGameService.Get(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get live game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshotToDTO(snapshot, h.liveGameService.Now()))
}

func (h *Handler) DispatchLiveAction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DispatchLiveAction")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	req, err := decodeActionRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	action, err := req.toAction()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.liveGameService.Dispatch(ctx, gameID, action)
	if err != nil {
		h.logger.WarnContext(ctx, "dispatch live action failed", "game_id", gameID, "action", req.Type, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshotToDTO(snapshot, h.liveGameService.Now()))
}

func (h *Handler) ListLiveActions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLiveActions")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	records, err := h.liveGameService.History(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "list live actions failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]actionRecordDTO, 0, len(records))
	for _, record := range records {
		items = append(items, actionRecordToDTO(record))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ReplayLiveGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReplayLiveGame")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	result, err := h.liveGameService.Replay(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "replay live game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, replayDTO{
		Actions:  result.Actions,
		Revision: result.Revision,
		Matches:  result.Matches,
		Game:     liveGameToDTO(result.Game, h.liveGameService.Now()),
	})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

type listGamesRequest struct {
	TeamID string `validate:"required"`
}
