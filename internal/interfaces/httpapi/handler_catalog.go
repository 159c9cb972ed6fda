package httpapi

import (
	"net/http"

	"github.com/riskibarqy/robo-companion/internal/domain/event"
)

func (h *Handler) ListPrograms(w http.ResponseWriter, r *http.Request) {
	programs := h.catalog.Programs()
	items := make([]programDTO, 0, len(programs))
	for _, p := range programs {
		items = append(items, programToDTO(p))
	}
	writeSuccess(w, http.StatusOK, items)
}

func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasons")
	defer span.End()

	p, err := h.programFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}

	seasons, err := h.catalog.Seasons(ctx, p)
	if err != nil {
		h.fail(ctx, w, "list seasons failed", err, "program_id", p.ID)
		return
	}
	currentID, err := h.catalog.CurrentSeasonID(ctx, p)
	if err != nil {
		h.logger.WarnContext(ctx, "current season lookup failed", "program_id", p.ID, "error", err)
		currentID = 0
	}

	items := make([]seasonDTO, 0, len(seasons))
	for _, item := range seasons {
		items = append(items, seasonToDTO(item, currentID))
	}
	writeSuccess(w, http.StatusOK, items)
}

func (h *Handler) ListWorldSkills(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWorldSkills")
	defer span.End()

	p, err := h.programFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}
	seasonID, err := pathInt(r, "seasonID")
	if err != nil {
		writeError(w, err)
		return
	}
	refresh, err := queryBool(r.URL.Query(), "refresh")
	if err != nil {
		writeError(w, err)
		return
	}
	query := skillsQuery{Grade: r.URL.Query().Get("grade"), Refresh: refresh}
	if err := h.validateRequest(query); err != nil {
		writeError(w, err)
		return
	}

	records, err := h.catalog.WorldSkills(ctx, p, seasonID, parseGrade(query.Grade), query.Refresh)
	if err != nil {
		h.fail(ctx, w, "list world skills failed", err, "program_id", p.ID, "season_id", seasonID, "grade", query.Grade)
		return
	}

	items := make([]skillDTO, 0, len(records))
	for _, record := range records {
		items = append(items, skillToDTO(record))
	}
	writeSuccess(w, http.StatusOK, items)
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEvent")
	defer span.End()

	p, err := h.programFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}
	eventID, err := pathInt(r, "eventID")
	if err != nil {
		writeError(w, err)
		return
	}

	item, sessions, err := h.catalog.EventWithSessions(ctx, p, eventID)
	if err != nil {
		h.fail(ctx, w, "get event failed", err, "program_id", p.ID, "event_id", eventID)
		return
	}

	writeSuccess(w, http.StatusOK, eventDetailDTO{
		Event:    eventToDTO(item),
		IsLeague: item.IsLeague(),
		Sessions: eventsToDTO(sessions),
	})
}

func (h *Handler) ListEventTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEventTeams")
	defer span.End()

	p, err := h.programFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}
	eventID, err := pathInt(r, "eventID")
	if err != nil {
		writeError(w, err)
		return
	}
	refresh, err := queryBool(r.URL.Query(), "refresh")
	if err != nil {
		writeError(w, err)
		return
	}

	teams, err := h.catalog.EventTeams(ctx, p, eventID, refresh)
	if err != nil {
		h.fail(ctx, w, "list event teams failed", err, "program_id", p.ID, "event_id", eventID)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, item := range teams {
		items = append(items, teamToDTO(item))
	}
	writeSuccess(w, http.StatusOK, items)
}

func (h *Handler) ListEventAwards(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEventAwards")
	defer span.End()

	p, err := h.programFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}
	eventID, err := pathInt(r, "eventID")
	if err != nil {
		writeError(w, err)
		return
	}
	refresh, err := queryBool(r.URL.Query(), "refresh")
	if err != nil {
		writeError(w, err)
		return
	}

	awards, err := h.catalog.EventAwards(ctx, p, eventID, refresh)
	if err != nil {
		h.fail(ctx, w, "list event awards failed", err, "program_id", p.ID, "event_id", eventID)
		return
	}

	items := make([]awardDTO, 0, len(awards))
	for _, item := range awards {
		items = append(items, awardToDTO(item))
	}
	writeSuccess(w, http.StatusOK, items)
}

func (h *Handler) ListDivisionRankings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDivisionRankings")
	defer span.End()

	p, err := h.programFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}
	eventID, err := pathInt(r, "eventID")
	if err != nil {
		writeError(w, err)
		return
	}
	divisionID, err := pathInt(r, "divisionID")
	if err != nil {
		writeError(w, err)
		return
	}
	refresh, err := queryBool(r.URL.Query(), "refresh")
	if err != nil {
		writeError(w, err)
		return
	}

	rankings, err := h.catalog.DivisionRankings(ctx, p, eventID, divisionID, refresh)
	if err != nil {
		h.fail(ctx, w, "list division rankings failed", err, "program_id", p.ID, "event_id", eventID, "division_id", divisionID)
		return
	}

	items := make([]rankingDTO, 0, len(rankings))
	for _, item := range rankings {
		items = append(items, rankingToDTO(item))
	}
	writeSuccess(w, http.StatusOK, items)
}

func (h *Handler) ListDivisionMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDivisionMatches")
	defer span.End()

	p, err := h.programFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}
	eventID, err := pathInt(r, "eventID")
	if err != nil {
		writeError(w, err)
		return
	}
	divisionID, err := pathInt(r, "divisionID")
	if err != nil {
		writeError(w, err)
		return
	}

	matches, err := h.catalog.DivisionMatches(ctx, p, eventID, divisionID)
	if err != nil {
		h.fail(ctx, w, "list division matches failed", err, "program_id", p.ID, "event_id", eventID, "division_id", divisionID)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, item := range matches {
		items = append(items, matchToDTO(item))
	}
	writeSuccess(w, http.StatusOK, items)
}

func (h *Handler) GetTeamByNumber(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamByNumber")
	defer span.End()

	p, err := h.programFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}
	number := r.PathValue("number")

	item, err := h.catalog.TeamByNumber(ctx, p, number)
	if err != nil {
		h.fail(ctx, w, "get team by number failed", err, "program_id", p.ID, "team_number", number)
		return
	}
	writeSuccess(w, http.StatusOK, teamToDTO(item))
}

// ListTeamEvents returns the team's season events with league sessions
// expanded, which is what schedule screens render.
func (h *Handler) ListTeamEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamEvents")
	defer span.End()

	p, err := h.programFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}
	teamID, err := pathInt(r, "teamID")
	if err != nil {
		writeError(w, err)
		return
	}
	seasonID, err := queryInt(r.URL.Query(), "season")
	if err != nil {
		writeError(w, err)
		return
	}
	refresh, err := queryBool(r.URL.Query(), "refresh")
	if err != nil {
		writeError(w, err)
		return
	}
	query := teamEventsQuery{SeasonID: seasonID, Refresh: refresh}
	if err := h.validateRequest(query); err != nil {
		writeError(w, err)
		return
	}

	events, err := h.catalog.TeamEvents(ctx, p, teamID, query.SeasonID, query.Refresh)
	if err != nil {
		h.fail(ctx, w, "list team events failed", err, "program_id", p.ID, "team_id", teamID, "season_id", query.SeasonID)
		return
	}

	expanded := make([]event.Event, 0, len(events))
	for _, item := range events {
		expanded = append(expanded, event.Expand(item)...)
	}
	writeSuccess(w, http.StatusOK, eventsToDTO(expanded))
}
