package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/robo-companion/internal/domain/rawdata"
	"github.com/riskibarqy/robo-companion/internal/platform/logging"
	"github.com/riskibarqy/robo-companion/internal/usecase"
)

// UpstreamStatusProvider reports adapter failure info keyed by adapter name.
type UpstreamStatusProvider interface {
	Status() map[string]usecase.FailureInfo
}

// ArchiveAdmin exposes the operator side of the payload archive.
type ArchiveAdmin interface {
	Stats(ctx context.Context) ([]rawdata.SourceStats, error)
	Prune(ctx context.Context, retention time.Duration) (int64, error)
}

type HandlerConfig struct {
	Catalog          *usecase.CatalogService
	Live             *usecase.LiveEventService
	Upstream         UpstreamStatusProvider
	Archive          ArchiveAdmin
	ArchiveRetention time.Duration
	Logger           *logging.Logger
}

type Handler struct {
	catalog          *usecase.CatalogService
	live             *usecase.LiveEventService
	upstream         UpstreamStatusProvider
	archive          ArchiveAdmin
	archiveRetention time.Duration
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		catalog:          cfg.Catalog,
		live:             cfg.Live,
		upstream:         cfg.Upstream,
		archive:          cfg.Archive,
		archiveRetention: cfg.ArchiveRetention,
		logger:           cfg.Logger.Named("handler"),
		validator:        validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

// fail logs server-side failures once and writes the mapped error.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error, args ...any) {
	args = append(args, "error", err)
	if mapError(err).HTTPStatus >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, args...)
	} else {
		h.logger.WarnContext(ctx, msg, args...)
	}
	writeError(w, err)
}
