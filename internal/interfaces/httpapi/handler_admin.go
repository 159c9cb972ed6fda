package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/robo-companion/internal/usecase"
)

// GetUpstreamStatus reports adapter failure state. Reading acknowledges the
// pending notification, so each failure episode is surfaced once.
func (h *Handler) GetUpstreamStatus(w http.ResponseWriter, r *http.Request) {
	if h.upstream == nil {
		writeSuccess(w, http.StatusOK, []upstreamStatusDTO{})
		return
	}
	writeSuccess(w, http.StatusOK, upstreamStatusToDTO(h.upstream.Status()))
}

func (h *Handler) ListCacheEntries(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, cacheEntriesToDTO(h.catalog.CacheEntries()))
}

func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearCache")
	defer span.End()

	h.catalog.Clear()
	h.logger.InfoContext(ctx, "catalog cache cleared", "request_id", requestIDFromContext(ctx))
	writeSuccess(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (h *Handler) GetArchiveStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetArchiveStats")
	defer span.End()

	if h.archive == nil {
		writeError(w, fmt.Errorf("%w: payload archive is disabled", usecase.ErrDependencyUnavailable))
		return
	}
	stats, err := h.archive.Stats(ctx)
	if err != nil {
		h.fail(ctx, w, "archive stats failed", err)
		return
	}
	writeSuccess(w, http.StatusOK, archiveStatsToDTO(stats))
}

// PruneArchive deletes payloads older than ?older_than (a Go duration),
// defaulting to the configured retention.
func (h *Handler) PruneArchive(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PruneArchive")
	defer span.End()

	if h.archive == nil {
		writeError(w, fmt.Errorf("%w: payload archive is disabled", usecase.ErrDependencyUnavailable))
		return
	}

	query := pruneArchiveQuery{OlderThan: h.archiveRetention}
	if raw := strings.TrimSpace(r.URL.Query().Get("older_than")); raw != "" {
		value, err := time.ParseDuration(raw)
		if err != nil {
			writeError(w, fmt.Errorf("%w: older_than must be a duration, got %q", usecase.ErrInvalidInput, raw))
			return
		}
		query.OlderThan = value
	}
	if err := h.validateRequest(query); err != nil {
		writeError(w, err)
		return
	}

	deleted, err := h.archive.Prune(ctx, query.OlderThan)
	if err != nil {
		h.fail(ctx, w, "archive prune failed", err, "older_than", query.OlderThan.String())
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{
		"deleted":    deleted,
		"older_than": query.OlderThan.String(),
	})
}
