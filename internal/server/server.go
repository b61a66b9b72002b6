package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/SuperKit/internal/api/http"
	"github.com/GriffinCanCode/SuperKit/internal/api/middleware"
	"github.com/GriffinCanCode/SuperKit/internal/domain/registry"
	"github.com/GriffinCanCode/SuperKit/internal/domain/selection"
	"github.com/GriffinCanCode/SuperKit/internal/infrastructure/config"
	"github.com/GriffinCanCode/SuperKit/internal/infrastructure/logging"
	"github.com/GriffinCanCode/SuperKit/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/SuperKit/internal/lifecycle"
	"github.com/GriffinCanCode/SuperKit/internal/routing"
	"github.com/GriffinCanCode/SuperKit/internal/runtime"
	"github.com/GriffinCanCode/SuperKit/internal/shared/errdefs"
)

const (
	systemTag       = "system"
	shutdownTimeout = 10 * time.Second
)

// Options overrides the collaborators of a Server. Zero values select the
// defaults.
type Options struct {
	// Loader resolves app descriptors. Defaults to registry.Default.
	Loader registry.Loader
	// Units is the controller unit cache. Defaults to routing.DefaultUnits.
	Units *routing.Units
	// Runtime receives the settings. Defaults to a new registry.
	Runtime *runtime.Registry
	Logger  *logging.Logger
	Metrics *monitoring.Metrics
	// ProjectDir is where the project is resolved from. Defaults to ".".
	ProjectDir string
}

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	config   *config.Config
	logger   *logging.Logger
	metrics  *monitoring.Metrics
	runtime  *runtime.Registry
	pipeline *lifecycle.Pipeline

	mu         sync.Mutex
	ledger     *lifecycle.Ledger
	routes     []routing.Route
	registered map[string]struct{}
	// shadow holds the same routes as router. Batches are tried on it
	// first so a gin conflict never leaves router half updated.
	shadow *gin.Engine

	mountMu   sync.Mutex
	installed []string

	httpMu     sync.Mutex
	httpServer *http.Server
}

// New creates a server with built-in routes and no apps mounted.
func New(cfg *config.Config, opts Options) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	logger := opts.Logger
	if logger == nil {
		var err error
		logger, err = logging.New(logging.Config{
			Level:       cfg.Logging.Level,
			Development: cfg.Logging.Development,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}

	metrics := opts.Metrics
	if metrics == nil {
		metrics = monitoring.NewMetrics()
	}

	loader := opts.Loader
	if loader == nil {
		loader = registry.Default
	}

	rt := opts.Runtime
	if rt == nil {
		rt = runtime.NewRegistry()
	}
	if !rt.IsInitialized() {
		if err := rt.Initialize(cfg.Settings(), runtime.ServerConfig{
			Host:        cfg.Server.Host,
			Port:        cfg.Server.Port,
			Reload:      cfg.Server.Reload,
			Environment: cfg.Environment,
		}); err != nil {
			logger.Debug("Runtime initialized concurrently", zap.Error(err))
		}
	}

	pipeline := lifecycle.NewPipeline(loader, opts.Units, logger).WithMetrics(metrics)
	if opts.ProjectDir != "" {
		pipeline.WithStart(opts.ProjectDir)
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog(logger))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(cfg.CORS.AllowOrigins...))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(rl))
	}

	s := &Server{
		router:     router,
		config:     cfg,
		logger:     logger.Component("server"),
		metrics:    metrics,
		runtime:    rt,
		pipeline:   pipeline,
		registered: make(map[string]struct{}),
		shadow:     gin.New(),
	}

	if err := s.IncludeTable(s.systemRoutes()); err != nil {
		return nil, err
	}

	s.logger.Info("Server initialized",
		zap.String("title", cfg.App.Title),
		zap.String("addr", cfg.Server.Addr()),
		zap.String("environment", cfg.Environment))

	return s, nil
}

func (s *Server) systemRoutes() *routing.Table {
	handlers := apihttp.NewHandlers(apihttp.Info{
		Title:       s.config.App.Title,
		Description: s.config.App.Description,
		Version:     s.config.App.Version,
		Environment: s.config.Environment,
		DocsURL:     s.config.App.DocsURL,
	}, s)

	table := routing.NewTable(routing.WithTags(systemTag))
	table.GET("/", handlers.Root)
	table.GET("/health", handlers.Health)
	table.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	if s.config.App.DocsURL != "" {
		table.GET(s.config.App.DocsURL, handlers.Docs)
	}
	return table
}

// SelectionFromConfig returns the app selection configured in cfg.
func SelectionFromConfig(cfg *config.Config) selection.Options {
	return selection.Options{
		IncludeAll: cfg.Apps.AllSelected(),
		Include:    cfg.Apps.Include,
		Exclude:    cfg.Apps.Exclude,
	}
}

// MountApps mounts the selected apps. Once it has succeeded, later calls
// fail with errdefs.ErrState.
func (s *Server) MountApps(ctx context.Context, opts selection.Options) error {
	s.mountMu.Lock()
	defer s.mountMu.Unlock()

	if s.installed != nil {
		return errdefs.State("MountApps can only be called once per server")
	}

	names, err := s.pipeline.Mount(ctx, s, opts)
	if err != nil {
		return err
	}
	s.installed = names
	return nil
}

// InstalledApps returns the apps resolved by MountApps, or nil.
func (s *Server) InstalledApps() []string {
	s.mountMu.Lock()
	defer s.mountMu.Unlock()
	if s.installed == nil {
		return nil
	}
	return append([]string{}, s.installed...)
}

// MountLedger implements lifecycle.Target.
func (s *Server) MountLedger() *lifecycle.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger
}

// SetMountLedger implements lifecycle.Target.
func (s *Server) SetMountLedger(l *lifecycle.Ledger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger = l
}

// IncludeTable registers every route of t on the engine. Either every route
// is registered or none is: duplicates of existing METHOD path pairs and
// routes gin refuses (conflicting wildcards) reject the whole table.
func (s *Server) IncludeTable(t *routing.Table) error {
	routes := t.Routes()

	s.mu.Lock()
	defer s.mu.Unlock()

	batch := make(map[string]struct{}, len(routes))
	for _, r := range routes {
		key := r.Method + " " + ginPath(r.Path)
		if _, dup := s.registered[key]; dup {
			return errdefs.Configuration("route %s is already registered", r.Key())
		}
		if _, dup := batch[key]; dup {
			return errdefs.Configuration("route %s is declared twice", r.Key())
		}
		batch[key] = struct{}{}
	}

	for _, r := range routes {
		if err := handle(s.shadow, r, noop); err != nil {
			s.resetShadow()
			return err
		}
	}

	for _, r := range routes {
		if err := handle(s.router, r, r.Handlers...); err != nil {
			return err
		}
		s.registered[r.Method+" "+ginPath(r.Path)] = struct{}{}
		s.routes = append(s.routes, r)
	}

	s.metrics.SetRoutesRegistered(len(s.routes))
	return nil
}

// resetShadow rebuilds the shadow engine from the live routes.
func (s *Server) resetShadow() {
	s.shadow = gin.New()
	for _, r := range s.routes {
		_ = handle(s.shadow, r, noop)
	}
}

func noop(*gin.Context) {}

// handle registers r on engine, turning a gin registration panic into a
// configuration error.
func handle(engine *gin.Engine, r routing.Route, handlers ...gin.HandlerFunc) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errdefs.Configuration("cannot register %s: %v", r.Key(), rec)
		}
	}()
	engine.Handle(r.Method, ginPath(r.Path), handlers...)
	return nil
}

// Routes returns the registered routes in registration order.
func (s *Server) Routes() []routing.Route {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]routing.Route(nil), s.routes...)
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Runtime returns the runtime registry the server recorded its settings in.
func (s *Server) Runtime() *runtime.Registry {
	return s.runtime
}

// Config returns the server configuration.
func (s *Server) Config() *config.Config {
	return s.config
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Server.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Server.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.httpMu.Lock()
	s.httpServer = srv
	s.httpMu.Unlock()

	s.logger.Info("Starting SuperKit server", zap.String("addr", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	}
}

// Close stops a running server immediately and flushes the logger.
func (s *Server) Close() error {
	s.httpMu.Lock()
	srv := s.httpServer
	s.httpMu.Unlock()

	var err error
	if srv != nil {
		err = srv.Close()
	}
	_ = s.logger.Sync()
	return err
}
