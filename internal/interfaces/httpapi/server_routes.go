package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metricsHandler http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}
}

func registerCatalogRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/programs", handler.ListPrograms)
	mux.HandleFunc("GET /v1/programs/{programID}/seasons", handler.ListSeasons)
	mux.HandleFunc("GET /v1/programs/{programID}/seasons/{seasonID}/skills", handler.ListWorldSkills)
	mux.HandleFunc("GET /v1/programs/{programID}/events/{eventID}", handler.GetEvent)
	mux.HandleFunc("GET /v1/programs/{programID}/events/{eventID}/teams", handler.ListEventTeams)
	mux.HandleFunc("GET /v1/programs/{programID}/events/{eventID}/awards", handler.ListEventAwards)
	mux.HandleFunc("GET /v1/programs/{programID}/events/{eventID}/divisions/{divisionID}/rankings", handler.ListDivisionRankings)
	mux.HandleFunc("GET /v1/programs/{programID}/events/{eventID}/divisions/{divisionID}/matches", handler.ListDivisionMatches)
	mux.HandleFunc("GET /v1/programs/{programID}/teams/{number}", handler.GetTeamByNumber)
	mux.HandleFunc("GET /v1/programs/{programID}/teams/{teamID}/events", handler.ListTeamEvents)
}

func registerLiveRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/programs/{programID}/teams/{teamID}/live-event", handler.GetTeamLiveEvent)
	mux.HandleFunc("POST /v1/favorites/collapse", handler.CollapseFavorite)
	mux.HandleFunc("GET /v1/upstream/status", handler.GetUpstreamStatus)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.Handle("GET /v1/cache", RequireAdminToken(adminToken, http.HandlerFunc(handler.ListCacheEntries)))
	mux.Handle("DELETE /v1/cache", RequireAdminToken(adminToken, http.HandlerFunc(handler.ClearCache)))
	mux.Handle("GET /v1/admin/archive/stats", RequireAdminToken(adminToken, http.HandlerFunc(handler.GetArchiveStats)))
	mux.Handle("DELETE /v1/admin/archive", RequireAdminToken(adminToken, http.HandlerFunc(handler.PruneArchive)))
}
