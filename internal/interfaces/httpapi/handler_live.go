package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/robo-companion/internal/domain/event"
	"github.com/riskibarqy/robo-companion/internal/usecase"
)

func (h *Handler) GetTeamLiveEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamLiveEvent")
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
	query := liveEventQuery{Override: strings.TrimSpace(r.URL.Query().Get("override"))}
	if err := h.validateRequest(query); err != nil {
		writeError(w, err)
		return
	}

	resolution, err := h.live.ResolveTeamLiveEvent(ctx, p, teamID, query.Override)
	if err != nil {
		h.fail(ctx, w, "resolve live event failed", err, "program_id", p.ID, "team_id", teamID)
		return
	}
	writeSuccess(w, http.StatusOK, liveResolutionToDTO(resolution))
}

// CollapseFavorite maps a rendered item id (an event id or a league session
// id) to the event that should be stored as a favourite.
func (h *Handler) CollapseFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CollapseFavorite")
	defer span.End()

	var req collapseFavoriteRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.UIID = strings.TrimSpace(req.UIID)
	if err := h.validateRequest(req); err != nil {
		writeError(w, err)
		return
	}

	p, err := h.catalog.Program(req.ProgramID)
	if err != nil {
		writeError(w, err)
		return
	}
	eventID, err := sourceEventID(req.UIID)
	if err != nil {
		writeError(w, err)
		return
	}

	item, sessions, err := h.catalog.EventWithSessions(ctx, p, eventID)
	if err != nil {
		h.fail(ctx, w, "collapse favorite failed", err, "program_id", p.ID, "ui_id", req.UIID)
		return
	}

	target, ok := item, item.UIID() == req.UIID
	for _, session := range sessions {
		if session.UIID() == req.UIID {
			target, ok = session, true
			break
		}
	}
	if !ok {
		writeError(w, fmt.Errorf("%w: %s is not a session of event %d", usecase.ErrNotFound, req.UIID, eventID))
		return
	}
	writeSuccess(w, http.StatusOK, eventToDTO(event.Collapse(target)))
}

// sourceEventID reads the upstream event id out of "{id}" or
// "{id}-session-{n}".
func sourceEventID(uiID string) (int, error) {
	raw, _, _ := strings.Cut(uiID, "-session-")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: malformed ui_id %q", usecase.ErrInvalidInput, uiID)
	}
	return id, nil
}
