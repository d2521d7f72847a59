package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"sync"
	"time"

	"contrib.go.opencensus.io/integrations/ocsql"

	"github.com/mmjournal/mmjournal/config"
	"github.com/mmjournal/mmjournal/internal/database"
	"github.com/mmjournal/mmjournal/internal/database/schema"
	"github.com/mmjournal/mmjournal/internal/domain"
	httpHandler "github.com/mmjournal/mmjournal/internal/http"
	"github.com/mmjournal/mmjournal/internal/http/middleware"
	"github.com/mmjournal/mmjournal/internal/repository"
	"github.com/mmjournal/mmjournal/internal/service"
	"github.com/mmjournal/mmjournal/pkg/cache"
	"github.com/mmjournal/mmjournal/pkg/crypto"
	"github.com/mmjournal/mmjournal/pkg/logger"
	"github.com/mmjournal/mmjournal/pkg/ratelimiter"
	"github.com/mmjournal/mmjournal/pkg/tracing"
)

const (
	// userCacheTTL bounds how long a deleted account keeps a valid session
	userCacheTTL = time.Minute

	defaultShutdownTimeout = 60 * time.Second
	dbStatsInterval        = 5 * time.Second
)

// AppInterface defines the interface for the App
type AppInterface interface {
	Initialize() error
	Start() error
	Shutdown(ctx context.Context) error

	// Getters for app components accessed in tests
	GetConfig() *config.Config
	GetLogger() logger.Logger
	GetMux() *http.ServeMux
	GetHandler() http.Handler
	GetDB() *sql.DB

	// Repository getters for testing
	GetUserRepository() domain.UserRepository
	GetCategoryRepository() domain.CategoryRepository
	GetExerciseRepository() domain.ExerciseRepository
	GetPracticeSessionRepository() domain.PracticeSessionRepository

	// Server status methods
	IsServerCreated() bool
	WaitForServerStart(ctx context.Context) bool

	// Methods for initialization steps
	InitDB() error
	InitTracing() error
	InitRepositories() error
	InitServices() error
	InitHandlers() error

	// Graceful shutdown methods
	SetShutdownTimeout(timeout time.Duration)
	GetActiveRequestCount() int64
	GetShutdownContext() context.Context
}

// App encapsulates the application dependencies and configuration
type App struct {
	config  *config.Config
	logger  logger.Logger
	db      *sql.DB
	dialect schema.Dialect

	// Repositories
	userRepo     domain.UserRepository
	categoryRepo domain.CategoryRepository
	exerciseRepo domain.ExerciseRepository
	practiceRepo domain.PracticeSessionRepository

	// Services
	authService     *service.AuthService
	categoryService *service.CategoryService
	exerciseService *service.ExerciseService
	practiceService *service.PracticeService
	summaryService  *service.SummaryService

	rateLimiter *ratelimiter.RateLimiter
	userCache   *cache.TTLCache[*domain.User]
	stopDBStats func()

	// HTTP handlers
	mux            *http.ServeMux
	metricsHandler http.Handler
	server         *http.Server

	// guards server and serverStarted, Start may run again after a failure
	serverMu      sync.RWMutex
	serverStarted chan struct{}

	requests        *inflight
	shutdownTimeout time.Duration
}

// AppOption defines a functional option for configuring the App
type AppOption func(*App)

// WithMockDB configures the app to use an already opened database. The
// dialect follows the configured driver.
func WithMockDB(db *sql.DB) AppOption {
	return func(a *App) {
		a.db = db
	}
}

// WithLogger sets a custom logger
func WithLogger(logger logger.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, opts ...AppOption) AppInterface {
	timeout := cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	app := &App{
		config:          cfg,
		logger:          logger.NewLoggerWithLevel(cfg.LogLevel),
		mux:             http.NewServeMux(),
		serverStarted:   make(chan struct{}),
		requests:        newInflight(),
		shutdownTimeout: timeout,
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// InitTracing initializes OpenCensus tracing and metrics
func (a *App) InitTracing() error {
	handler, err := tracing.InitTracing(&a.config.Tracing, a.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	a.metricsHandler = handler

	if a.config.Tracing.Enabled {
		a.logger.WithField("trace_exporter", a.config.Tracing.TraceExporter).
			WithField("metrics_exporter", a.config.Tracing.MetricsExporter).
			WithField("sampling_rate", a.config.Tracing.SamplingProbability).
			Info("Tracing initialized successfully")
	}
	return nil
}

// InitDB opens the journal database and makes sure its tables and defaults exist
func (a *App) InitDB() error {
	ctx := context.Background()

	if a.db == nil {
		dbConfig := a.config.Database
		// the traced driver is registered once tracing is on
		dbConfig.Traced = a.config.Tracing.Enabled

		if dbConfig.Driver == string(schema.Postgres) {
			a.logger.Info(fmt.Sprintf("Connecting to database %s:%d, user %s, sslmode %s, dbname: %s",
				dbConfig.Host, dbConfig.Port, dbConfig.User, dbConfig.SSLMode, dbConfig.DBName))
		} else {
			a.logger.WithField("path", dbConfig.Path).Info("Opening SQLite database")
		}

		db, dialect, err := database.Open(ctx, &dbConfig)
		if err != nil {
			return err
		}
		a.db, a.dialect = db, dialect
	} else {
		a.dialect = schema.SQLite
		if a.config.Database.Driver == string(schema.Postgres) {
			a.dialect = schema.Postgres
		}
	}

	if err := database.EnsureSchema(ctx, a.db, a.dialect, a.logger); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	if a.config.Tracing.Enabled {
		a.stopDBStats = ocsql.RecordStats(a.db, dbStatsInterval)
	}

	return nil
}

// InitRepositories initializes all repositories
func (a *App) InitRepositories() error {
	if a.db == nil {
		return fmt.Errorf("database must be initialized before repositories")
	}

	a.userRepo = repository.NewUserRepository(a.db, a.dialect)
	a.categoryRepo = repository.NewCategoryRepository(a.db, a.dialect)
	a.exerciseRepo = repository.NewExerciseRepository(a.db, a.dialect)
	a.practiceRepo = repository.NewPracticeSessionRepository(a.db, a.dialect)

	return nil
}

// InitServices initializes all application services
func (a *App) InitServices() error {
	sec := a.config.Security

	a.rateLimiter = ratelimiter.NewRateLimiter()
	a.rateLimiter.SetPolicy(service.LoginNamespace, sec.LoginMaxAttempts, sec.LoginWindow)
	a.userCache = cache.New[*domain.User](userCacheTTL, 5*userCacheTTL)

	authService, err := service.NewAuthService(service.AuthServiceConfig{
		Repository:  a.userRepo,
		Hasher:      crypto.NewPasswordHasher(sec.BcryptCost),
		Secret:      []byte(sec.SecretKey),
		SessionTTL:  sec.SessionTTL,
		RateLimiter: a.rateLimiter,
		UserCache:   a.userCache,
		Logger:      a.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create auth service: %w", err)
	}
	a.authService = authService

	a.categoryService = service.NewCategoryService(a.categoryRepo, a.logger)
	a.exerciseService = service.NewExerciseService(service.ExerciseServiceConfig{
		Repository:         a.exerciseRepo,
		CategoryRepository: a.categoryRepo,
		Logger:             a.logger,
	})
	a.practiceService = service.NewPracticeService(service.PracticeServiceConfig{
		Repository:         a.practiceRepo,
		ExerciseRepository: a.exerciseRepo,
		Logger:             a.logger,
	})
	a.summaryService = service.NewSummaryService(a.practiceRepo, a.config.Practice.RecentSessionsLimit, a.logger)

	return nil
}

// InitHandlers registers every route on a fresh mux
func (a *App) InitHandlers() error {
	// Create a new ServeMux to avoid route conflicts on restart
	a.mux = http.NewServeMux()

	renderer, err := httpHandler.NewRenderer(a.config.Version, a.logger)
	if err != nil {
		return fmt.Errorf("failed to load page templates: %w", err)
	}

	sessionAuth := middleware.NewSessionAuth(a.authService, a.config.Security.SessionCookieName, a.logger)
	requirePage := func(next http.Handler) http.Handler {
		return sessionAuth.RequirePage(middleware.AnnotateIdentity(next))
	}
	requireAPI := func(next http.Handler) http.Handler {
		return sessionAuth.RequireAPI(middleware.AnnotateIdentity(next))
	}

	authHandler := httpHandler.NewAuthHandler(
		a.authService,
		renderer,
		httpHandler.SessionCookie{
			Name:   a.config.Security.SessionCookieName,
			Secure: a.config.Security.CookieSecure,
		},
		a.logger,
	)
	journalHandler := httpHandler.NewJournalHandler(httpHandler.JournalHandlerConfig{
		CategoryService: a.categoryService,
		ExerciseService: a.exerciseService,
		PracticeService: a.practiceService,
		SummaryService:  a.summaryService,
		Renderer:        renderer,
		Logger:          a.logger,
	})
	apiHandler := httpHandler.NewApiHandler(a.exerciseService, a.summaryService, a.logger)
	healthHandler := httpHandler.NewHealthHandler(a.db, a.config.Version, a.logger)

	// Register routes
	authHandler.RegisterRoutes(a.mux, sessionAuth.LoadIdentity)
	journalHandler.RegisterRoutes(a.mux, requirePage)
	apiHandler.RegisterRoutes(a.mux, requireAPI)
	healthHandler.RegisterRoutes(a.mux)

	if a.metricsHandler != nil {
		a.mux.Handle(a.config.Tracing.PrometheusPath, a.metricsHandler)
		a.logger.WithField("path", a.config.Tracing.PrometheusPath).Info("Prometheus metrics endpoint registered")
	}

	return nil
}

// GetHandler returns the mux wrapped in the request middleware chain
func (a *App) GetHandler() http.Handler {
	var handler http.Handler = a.mux

	// innermost first, every request holds one pooled connection for its lifetime
	handler = middleware.Connection(a.db, a.config.Database.AcquireTimeout, a.logger)(handler)
	handler = middleware.RequestLogger(a.logger)(handler)
	handler = middleware.RequestID(handler)

	if a.config.Tracing.Enabled {
		handler = middleware.TracingMiddleware(handler)
	}

	// admission control stays outermost so rejected requests never touch the pool
	return a.requests.middleware(handler)
}

// Start serves the journal until Shutdown is called
func (a *App) Start() error {
	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	a.logger.WithFields(map[string]interface{}{
		"address": addr,
		"tracing": a.config.Tracing.Enabled,
	}).Info("Journal server starting")

	a.serverMu.Lock()
	// release waiters of an earlier attempt before replacing the channel
	select {
	case <-a.serverStarted:
	default:
		close(a.serverStarted)
	}
	a.serverStarted = make(chan struct{})
	a.server = &http.Server{
		Addr:              addr,
		Handler:           a.GetHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	server, started := a.server, a.serverStarted
	a.serverMu.Unlock()

	close(started)
	return server.ListenAndServe()
}

// Shutdown stops admitting requests, drains the server within the shutdown
// timeout (or ctx's deadline when sooner) and releases resources
func (a *App) Shutdown(ctx context.Context) error {
	a.requests.close()

	a.serverMu.RLock()
	server := a.server
	a.serverMu.RUnlock()

	var shutdownErr error
	if server != nil {
		shutdownErr = a.drainServer(ctx, server)
	}

	if err := a.cleanupResources(); err != nil && shutdownErr == nil {
		shutdownErr = err
	}

	if shutdownErr != nil {
		a.logger.WithField("error", shutdownErr.Error()).Error("Shutdown finished with errors")
		return shutdownErr
	}
	a.logger.Info("Shutdown complete")
	return nil
}

func (a *App) drainServer(ctx context.Context, server *http.Server) error {
	budget := a.drainBudget(ctx)
	a.logger.WithFields(map[string]interface{}{
		"active_requests": a.requests.count(),
		"timeout":         budget.String(),
	}).Info("Draining HTTP server")

	drainCtx, cancel := context.WithTimeout(context.Background(), budget)
	defer cancel()

	if err := server.Shutdown(drainCtx); err != nil {
		return fmt.Errorf("failed to drain http server: %w", err)
	}
	if !a.requests.wait(drainCtx) {
		a.logger.WithField("active_requests", a.requests.count()).Warn("Requests still running after drain")
	}
	return nil
}

// drainBudget is the shutdown timeout, trimmed to leave a second of ctx's
// deadline for cleanup
func (a *App) drainBudget(ctx context.Context) time.Duration {
	budget := a.shutdownTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline) - time.Second; remaining < budget {
			budget = max(remaining, 0)
		}
	}
	return budget
}

// cleanupResources stops background sweepers and closes the database
func (a *App) cleanupResources() error {
	if a.rateLimiter != nil {
		a.rateLimiter.Stop()
	}
	if a.userCache != nil {
		a.userCache.Stop()
	}
	if a.stopDBStats != nil {
		a.stopDBStats()
	}

	if a.db == nil {
		return nil
	}
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	a.logger.Info("Database closed")
	return nil
}

// IsServerCreated safely checks if the server has been created
func (a *App) IsServerCreated() bool {
	a.serverMu.RLock()
	defer a.serverMu.RUnlock()
	return a.server != nil
}

// WaitForServerStart blocks until Start has created the server or ctx ends
func (a *App) WaitForServerStart(ctx context.Context) bool {
	a.serverMu.RLock()
	started := a.serverStarted
	a.serverMu.RUnlock()

	select {
	case <-started:
		return a.IsServerCreated()
	case <-ctx.Done():
		return false
	}
}

// Initialize sets up all components of the application
func (a *App) Initialize() error {
	a.logger.WithField("version", a.config.Version).Info("Starting mmjournal application")

	// tracing first so the database driver can be wrapped
	steps := []func() error{a.InitTracing, a.InitDB, a.InitRepositories, a.InitServices, a.InitHandlers}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	a.logger.Info("Application initialized")
	return nil
}

// GetConfig returns the app's configuration
func (a *App) GetConfig() *config.Config {
	return a.config
}

// GetLogger returns the app's logger
func (a *App) GetLogger() logger.Logger {
	return a.logger
}

// GetMux returns the app's HTTP multiplexer
func (a *App) GetMux() *http.ServeMux {
	return a.mux
}

// GetDB returns the app's database connection
func (a *App) GetDB() *sql.DB {
	return a.db
}

func (a *App) GetUserRepository() domain.UserRepository {
	return a.userRepo
}

func (a *App) GetCategoryRepository() domain.CategoryRepository {
	return a.categoryRepo
}

func (a *App) GetExerciseRepository() domain.ExerciseRepository {
	return a.exerciseRepo
}

func (a *App) GetPracticeSessionRepository() domain.PracticeSessionRepository {
	return a.practiceRepo
}

// GetActiveRequestCount returns the number of requests being served
func (a *App) GetActiveRequestCount() int64 {
	return a.requests.count()
}

// SetShutdownTimeout overrides the configured drain timeout
func (a *App) SetShutdownTimeout(timeout time.Duration) {
	a.shutdownTimeout = timeout
}

// GetShutdownContext is cancelled as soon as Shutdown begins
func (a *App) GetShutdownContext() context.Context {
	return a.requests.done
}

// Ensure App implements AppInterface
var _ AppInterface = (*App)(nil)
