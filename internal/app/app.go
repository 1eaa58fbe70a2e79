package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/tournament-ledger/internal/config"
	"github.com/riskibarqy/tournament-ledger/internal/interfaces/httpapi"
	"github.com/riskibarqy/tournament-ledger/internal/observability"
	idgen "github.com/riskibarqy/tournament-ledger/internal/platform/id"
	"github.com/riskibarqy/tournament-ledger/internal/platform/logging"
	"github.com/riskibarqy/tournament-ledger/internal/usecase"
)

// App owns the HTTP server and everything that has to be released with it.
type App struct {
	cfg     config.Config
	logger  *logging.Logger
	server  *http.Server
	pprof   *http.Server
	storage storage

	stopTracing  func(context.Context) error
	stopProfiler func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	stopTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init uptrace: %w", err)
	}
	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		_ = stopTracing(ctx)
		return nil, fmt.Errorf("init pyroscope: %w", err)
	}

	store, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		_ = stopProfiler()
		_ = stopTracing(ctx)
		return nil, err
	}

	repos := store.repos
	handler := httpapi.NewHandler(
		usecase.NewTournamentService(repos.Tournaments, repos.Teams, repos.Matches, store.uow, logger),
		usecase.NewTeamService(repos.Tournaments, repos.Teams, store.uow, logger),
		usecase.NewPlayerService(repos.Teams, repos.Players, store.uow),
		usecase.NewMatchService(repos.Tournaments, repos.Matches, store.uow, logger),
		usecase.NewReconcileService(repos.Tournaments, repos.Teams, repos.Matches, store.uow, cfg.ReconcileMaxWorkers, logger),
		logger,
	)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
		RequestIDs:         idgen.NewRandomGenerator(),
	})

	return &App{
		cfg:    cfg,
		logger: logger,
		server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		storage:      store,
		stopTracing:  stopTracing,
		stopProfiler: stopProfiler,
	}, nil
}

func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run serves until ctx is cancelled and then shuts down within the
// configured timeout.
func (a *App) Run(ctx context.Context) error {
	a.pprof = observability.StartPprofServer(a.cfg, a.logger)

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "addr", a.cfg.HTTPAddr, "storage", a.cfg.StorageDriver)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err, ok := <-serveErr:
		if ok {
			runErr = fmt.Errorf("http server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// Shutdown stops the server first so in-flight units of work finish before
// the pool closes.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	}
	if err := observability.StopPprofServer(ctx, a.pprof, a.logger); err != nil {
		errs = append(errs, fmt.Errorf("shutdown pprof server: %w", err))
	}
	if err := a.storage.close(); err != nil {
		errs = append(errs, fmt.Errorf("close storage: %w", err))
	}
	if err := a.stopProfiler(); err != nil {
		errs = append(errs, fmt.Errorf("stop pyroscope: %w", err))
	}
	if err := a.stopTracing(ctx); err != nil {
		errs = append(errs, fmt.Errorf("stop uptrace: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	a.logger.Info("http server stopped")
	return nil
}
