package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerGameRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/games", handler.ListGames)
	mux.HandleFunc("GET /v1/games/{gameID}", handler.GetGame)
	mux.HandleFunc("GET /v1/teams/{teamID}/roster", handler.GetRoster)
}

func registerLiveGameRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/games/{gameID}/live", handler.OpenLiveGame)
	mux.HandleFunc("GET /v1/games/{gameID}/live", handler.GetLiveGame)
	mux.HandleFunc("POST /v1/games/{gameID}/live/actions", handler.DispatchLiveAction)
	mux.HandleFunc("GET /v1/games/{gameID}/live/actions", handler.ListLiveActions)
	mux.HandleFunc("GET /v1/games/{gameID}/live/replay", handler.ReplayLiveGame)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/overdue-sweep", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunOverdueSweepJob)))
	mux.Handle("POST /v1/internal/jobs/replay-audit", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunReplayAuditJob)))
}
