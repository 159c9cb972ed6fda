package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/robo-companion/external/ftcevents"
	"github.com/riskibarqy/robo-companion/external/robotevents"
	"github.com/riskibarqy/robo-companion/internal/config"
	"github.com/riskibarqy/robo-companion/internal/domain/program"
	"github.com/riskibarqy/robo-companion/internal/domain/rawdata"
	"github.com/riskibarqy/robo-companion/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/robo-companion/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/robo-companion/internal/interfaces/httpapi"
	"github.com/riskibarqy/robo-companion/internal/platform/logging"
	"github.com/riskibarqy/robo-companion/internal/platform/metrics"
	"github.com/riskibarqy/robo-companion/internal/usecase"
)

// App owns the HTTP server and the background pieces that must be stopped
// with it.
type App struct {
	logger  *logging.Logger
	server  *http.Server
	monitor *usecase.FailureMonitor
	archive *usecase.ArchiveWriter
	db      *sqlx.DB

	stopMonitor func()
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	programs, err := config.LoadProgramCatalog(cfg.ProgramCatalogPath)
	if err != nil {
		return nil, err
	}
	defaultProgram, err := programs.Get(cfg.DefaultProgramID)
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_PROGRAM_ID: %w", err)
	}

	var metricsManager *metrics.Manager
	if cfg.MetricsEnabled {
		metricsManager = metrics.NewManager(metrics.WithConstLabels(map[string]string{
			"service": cfg.ServiceName,
			"env":     cfg.AppEnv,
		}))
	}

	a := &App{logger: logger.Named("app")}

	var sink rawdata.Sink = rawdata.NopSink{}
	if cfg.ArchiveEnabled {
		if err := a.openArchive(ctx, cfg, logger, metricsManager); err != nil {
			return nil, err
		}
		sink = a.archive
	}

	adapters, err := buildAdapters(cfg, logger, metricsManager, sink)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	selector := usecase.NewUpstreamSelector(logger, adapters...)
	if err := selector.SetCurrentProgram(defaultProgram); err != nil {
		_ = a.Close(ctx)
		return nil, fmt.Errorf("select default program %s: %w", defaultProgram.Code, err)
	}

	catalog := usecase.NewCatalogService(usecase.CatalogServiceConfig{
		Programs:      programs,
		Selector:      selector,
		Logger:        logger,
		CacheObserver: metricsManager,
	})
	resolver := usecase.NewLiveEventResolver(usecase.LiveEventResolverConfig{
		MaxWorkers: cfg.LiveFetchWorkers,
		Logger:     logger,
		Recorder:   metricsManager,
	})
	live := usecase.NewLiveEventService(catalog, selector, resolver, cfg.LiveEventOverrideID, nil)
	a.monitor = usecase.NewFailureMonitor(usecase.FailureMonitorConfig{
		Interval: cfg.FailureCheckInterval,
		Logger:   logger,
		Gauge:    metricsManager,
		Adapters: adapters,
	})

	handlerCfg := httpapi.HandlerConfig{
		Catalog:          catalog,
		Live:             live,
		Upstream:         a.monitor,
		ArchiveRetention: cfg.ArchiveRetention,
		Logger:           logger,
	}
	if a.archive != nil {
		handlerCfg.Archive = a.archive
	}

	routerCfg := httpapi.RouterConfig{
		Handler:             httpapi.NewHandler(handlerCfg),
		Logger:              logger,
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		AdminToken:          cfg.InternalAdminToken,
		CaptureRequestBody:  cfg.UptraceEnabled && cfg.UptraceCaptureRequestBody,
		RequestBodyMaxBytes: cfg.UptraceRequestBodyMaxBytes,
	}
	if metricsManager != nil {
		routerCfg.Metrics = metricsManager
		routerCfg.MetricsHandler = metricsManager.Handler()
	}

	a.server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(routerCfg),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return a, nil
}

func (a *App) openArchive(ctx context.Context, cfg config.Config, logger *logging.Logger, recorder *metrics.Manager) error {
	db, err := postgres.Open(ctx, postgres.OpenConfig{
		URL:                         cfg.DBURL,
		DisablePreparedBinaryResult: cfg.DBDisablePreparedBinary,
		MaxOpenConns:                cfg.ArchiveWorkers * 2,
	})
	if err != nil {
		return fmt.Errorf("open archive database: %w", err)
	}

	writerCfg := usecase.ArchiveWriterConfig{Workers: cfg.ArchiveWorkers, Logger: logger}
	if recorder != nil {
		writerCfg.Recorder = recorder
	}
	writer, err := usecase.NewArchiveWriter(postgres.NewRawPayloadRepository(db), writerCfg)
	if err != nil {
		_ = db.Close()
		return err
	}

	a.db = db
	a.archive = writer
	return nil
}

func buildAdapters(cfg config.Config, logger *logging.Logger, recorder *metrics.Manager, sink rawdata.Sink) ([]usecase.Adapter, error) {
	switch cfg.UpstreamMode {
	case config.UpstreamModeMemory:
		now := time.Now()
		return []usecase.Adapter{
			memory.NewUpstream("memory-a", program.FamilyA, memory.SeedRobotEvents(now)),
			memory.NewUpstream("memory-b", program.FamilyB, memory.SeedFTC(now)),
		}, nil
	case config.UpstreamModeLive:
		reCfg := robotevents.ClientConfig{
			BaseURL:        cfg.RobotEventsBaseURL,
			SkillsBaseURL:  cfg.RobotEventsSkillsBaseURL,
			APIKeys:        cfg.RobotEventsAPIKeys,
			Timeout:        cfg.RobotEventsTimeout,
			MaxRetries:     cfg.RobotEventsMaxRetries,
			Logger:         logger,
			CircuitBreaker: cfg.RobotEventsCircuit,
			Sink:           sink,
		}
		ftcCfg := ftcevents.ClientConfig{
			BaseURL:        cfg.FTCEventsBaseURL,
			Username:       cfg.FTCEventsUsername,
			Token:          cfg.FTCEventsToken,
			Timeout:        cfg.FTCEventsTimeout,
			MaxRetries:     cfg.FTCEventsMaxRetries,
			Logger:         logger,
			CircuitBreaker: cfg.FTCEventsCircuit,
			Sink:           sink,
		}
		if recorder != nil {
			reCfg.Recorder = recorder
			ftcCfg.Recorder = recorder
		}
		return []usecase.Adapter{robotevents.NewClient(reCfg), ftcevents.NewClient(ftcCfg)}, nil
	default:
		return nil, fmt.Errorf("unsupported upstream mode %q", cfg.UpstreamMode)
	}
}

// Handler exposes the router, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run starts the failure monitor and serves HTTP until Shutdown is called.
func (a *App) Run(ctx context.Context) error {
	a.stopMonitor = a.monitor.Start(ctx)

	a.logger.InfoContext(ctx, "http server starting", "addr", a.server.Addr)
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains HTTP traffic first, then stops background work.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	}
	if a.stopMonitor != nil {
		a.stopMonitor()
	}
	if err := a.Close(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Close flushes the archive writer and closes the database.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.archive != nil {
		if err := a.archive.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("close archive writer: %w", err))
		}
		a.archive = nil
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
		a.db = nil
	}
	return errors.Join(errs...)
}
