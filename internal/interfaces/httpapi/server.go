package httpapi

import (
	"net/http"

	"github.com/riskibarqy/robo-companion/internal/platform/logging"
)

type RouterConfig struct {
	Handler             *Handler
	Logger              *logging.Logger
	CORSAllowedOrigins  []string
	AdminToken          string
	Metrics             HTTPRecorder
	MetricsHandler      http.Handler
	CaptureRequestBody  bool
	RequestBodyMaxBytes int
}

func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger.Named("http")

	mux := http.NewServeMux()
	registerSystemRoutes(mux, cfg.Handler, cfg.MetricsHandler)
	registerCatalogRoutes(mux, cfg.Handler)
	registerLiveRoutes(mux, cfg.Handler)
	registerAdminRoutes(mux, cfg.Handler, cfg.AdminToken)

	return RequestTracing(
		CaptureRequestBody(cfg.CaptureRequestBody, cfg.RequestBodyMaxBytes,
			RequestID(
				RequestLogging(logger,
					CORS(cfg.CORSAllowedOrigins,
						recoverPanic(logger,
							RequestMetrics(cfg.Metrics, mux)))))))
}
