package observability

import (
	"context"
	"strings"

	"github.com/riskibarqy/robo-companion/internal/config"
	"github.com/riskibarqy/robo-companion/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"
)

// InitUptrace configures the global OpenTelemetry providers and, when logs
// are enabled, mirrors context-aware log records into the otel log pipeline.
func InitUptrace(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	logger = logger.Named("uptrace")
	noop := func(context.Context) error { return nil }

	if !cfg.UptraceEnabled {
		logging.SetMirror(nil)
		logger.Info("uptrace disabled", "reason", "UPTRACE_ENABLED=false")
		return noop, nil
	}
	if strings.TrimSpace(cfg.UptraceDSN) == "" {
		logging.SetMirror(nil)
		logger.Info("uptrace disabled", "reason", "UPTRACE_DSN empty")
		return noop, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
		uptrace.WithResourceAttributes(resourceAttributes(cfg)...),
	)
	if cfg.UptraceLogsEnabled {
		logging.SetMirror(newLogMirror(cfg.ServiceVersion))
	} else {
		logging.SetMirror(nil)
	}

	logger.Info("uptrace enabled",
		"service_name", cfg.ServiceName,
		"service_version", cfg.ServiceVersion,
		"environment", cfg.AppEnv,
		"logs_enabled", cfg.UptraceLogsEnabled,
		"upstream_mode", cfg.UpstreamMode,
		"capture_request_body", cfg.UptraceCaptureRequestBody,
	)

	return func(ctx context.Context) error {
		logging.SetMirror(nil)
		return uptrace.Shutdown(ctx)
	}, nil
}

func resourceAttributes(cfg config.Config) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("upstream.mode", cfg.UpstreamMode),
		attribute.Int("program.default_id", cfg.DefaultProgramID),
		attribute.Bool("archive.enabled", cfg.ArchiveEnabled),
	}
	if cfg.FTCEventsUsername != "" {
		attrs = append(attrs, attribute.Bool("ftcevents.authenticated", true))
	}
	return attrs
}
