package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/abuabdirohman4/better-habit/internal/config"
	"github.com/abuabdirohman4/better-habit/internal/domain/repository"
	"github.com/abuabdirohman4/better-habit/internal/domain/service"
	"github.com/abuabdirohman4/better-habit/internal/handler"
	cronpkg "github.com/abuabdirohman4/better-habit/internal/infrastructure/cron"
	"github.com/abuabdirohman4/better-habit/internal/infrastructure/googlesheets"
	"github.com/abuabdirohman4/better-habit/internal/infrastructure/kafka"
	"github.com/abuabdirohman4/better-habit/internal/infrastructure/memory"
	"github.com/abuabdirohman4/better-habit/internal/infrastructure/postgres"
	"github.com/abuabdirohman4/better-habit/internal/infrastructure/redis"
	"github.com/abuabdirohman4/better-habit/internal/infrastructure/smtp"
	"github.com/abuabdirohman4/better-habit/internal/infrastructure/spreadsheet"
	"github.com/abuabdirohman4/better-habit/internal/logger"
	"github.com/abuabdirohman4/better-habit/internal/middleware"
	habitservice "github.com/abuabdirohman4/better-habit/internal/service"
	"github.com/abuabdirohman4/better-habit/internal/transport/grpc"
	"github.com/abuabdirohman4/better-habit/pkg/jwt"
)

// App represents the application
type App struct {
	config *config.Config
	log    *zap.Logger

	habitService service.HabitService
	httpServer   *http.Server
	grpcServer   *grpc.Server
	scheduler    *cronpkg.ReminderScheduler
	limiter      *middleware.RateLimiter
	producer     *kafka.Producer

	dbPool      *pgxpool.Pool
	redisClient *goredis.Client
	configured  bool
}

// New loads configuration and creates the application
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(logger.Options{
		Environment: cfg.Service.Environment,
		Level:       cfg.Logging.Level,
		File:        cfg.Logging.File,
	})
	log.Info("configuration loaded",
		zap.String("service", cfg.Service.Name),
		zap.String("environment", cfg.Service.Environment),
		zap.String("backend", cfg.Backend.Kind),
	)

	return NewWithConfig(context.Background(), cfg, log)
}

// NewWithConfig wires every component from cfg
func NewWithConfig(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	a := &App{config: cfg, log: log}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	gateway, err := a.initGateway(ctx)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to initialize storage backend: %w", err)
	}

	opts := spreadsheet.Options{
		SpreadsheetID:                cfg.Sheets.SpreadsheetID,
		HabitsSheet:                  cfg.Sheets.HabitsSheet,
		LogsSheet:                    cfg.Sheets.LogsSheet,
		PlaceholdersWhenUnconfigured: cfg.Backend.PlaceholdersWhenUnconfigured,
		ReadRetries:                  cfg.Backend.ReadRetries,
		RetryBackoff:                 cfg.Backend.RetryBackoff,
		Logger:                       log,
	}
	habitRepo := spreadsheet.NewHabitRepository(gateway, opts)
	logRepo := spreadsheet.NewHabitLogRepository(gateway, habitRepo, opts)

	var publisher service.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		a.producer = kafka.NewProducer(&cfg.Kafka, log)
		publisher = a.producer
		log.Info("kafka publisher enabled", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	a.habitService = habitservice.NewHabitService(habitRepo, logRepo, publisher, loc, log)

	if err := a.initScheduler(); err != nil {
		a.close()
		return nil, err
	}
	if err := a.initHTTPServer(); err != nil {
		a.close()
		return nil, fmt.Errorf("failed to initialize HTTP server: %w", err)
	}
	if cfg.GRPC.Enabled {
		a.grpcServer = grpc.NewServer(cfg.GRPC.Port, a.configured, log)
	}

	return a, nil
}

// initGateway selects the sheet backend and wraps it with the Redis cache when enabled
func (a *App) initGateway(ctx context.Context) (repository.SheetGateway, error) {
	cfg := a.config
	header := map[string][]string{
		cfg.Sheets.HabitsSheet: spreadsheet.HabitHeader(),
		cfg.Sheets.LogsSheet:   spreadsheet.LogHeader(),
	}

	var gateway repository.SheetGateway
	switch cfg.Backend.Kind {
	case config.BackendSheets:
		if !cfg.SheetsConfigured() {
			a.log.Warn("google sheets credentials missing, serving without a backend")
			return spreadsheet.NewUnconfiguredGateway(), nil
		}
		gw, err := googlesheets.NewServiceAccountGateway(ctx, cfg.Sheets.ServiceAccountEmail, cfg.Sheets.PrivateKey)
		if err != nil {
			return nil, err
		}
		gateway = gw
		a.log.Info("using google sheets backend", zap.String("spreadsheet_id", cfg.Sheets.SpreadsheetID))

	case config.BackendPostgres:
		pool, err := postgres.NewPostgresPool(ctx, &cfg.Database)
		if err != nil {
			return nil, err
		}
		a.dbPool = pool

		gw := postgres.NewSheetGateway(pool)
		if err := gw.Migrate(ctx); err != nil {
			return nil, err
		}
		for name, cols := range header {
			if err := gw.EnsureSheet(ctx, cfg.Sheets.SpreadsheetID, name, cols); err != nil {
				return nil, err
			}
		}
		gateway = gw
		a.log.Info("using postgres backend")

	case config.BackendMemory:
		gw := memory.NewGateway()
		for name, cols := range header {
			gw.CreateSheet(cfg.Sheets.SpreadsheetID, name, cols)
		}
		gateway = gw
		a.log.Info("using in-memory backend, data is lost on restart")

	default:
		a.log.Info("no storage backend configured")
		return spreadsheet.NewUnconfiguredGateway(), nil
	}

	a.configured = true

	if cfg.Redis.Enabled {
		client, err := redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.redisClient = client
		gateway = redis.NewCachedGateway(gateway, client, cfg.Redis.CacheTTL, a.log)
		a.log.Info("redis read cache enabled", zap.Duration("ttl", cfg.Redis.CacheTTL))
	}
	return gateway, nil
}

func (a *App) initScheduler() error {
	cfg := a.config
	if !cfg.Reminders.Enabled {
		a.log.Info("reminder scheduler is disabled in configuration")
		return nil
	}
	if cfg.SMTP.Host == "" || cfg.Reminders.Recipient == "" {
		a.log.Warn("reminders enabled without smtp host or recipient, scheduler not started")
		return nil
	}

	mailer, err := smtp.NewClient(&cfg.SMTP, cfg.Reminders.TemplatesPath)
	if err != nil {
		return fmt.Errorf("failed to initialize smtp client: %w", err)
	}
	a.scheduler = cronpkg.NewReminderScheduler(a.habitService, mailer, cfg.Reminders.Recipient, cfg.Reminders.CheckInterval, a.log)
	return nil
}

// initHTTPServer initializes the HTTP server with all handlers and middleware
func (a *App) initHTTPServer() error {
	cfg := a.config

	opts := handler.RouterOptions{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RequestTimeout: cfg.HTTP.RequestTimeout,
	}
	if cfg.RateLimit.RequestsPerMinute > 0 {
		a.limiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute)
		opts.RateLimiter = a.limiter
	}
	if cfg.Auth.Enabled {
		tokens := jwt.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.Issuer)
		opts.Auth = middleware.NewAuthMiddleware(tokens)
	}

	router := handler.NewRouter(a.habitService, a.log, opts)

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router.Setup(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	a.log.Info("HTTP server configured", zap.Int("port", cfg.HTTP.Port), zap.Bool("auth", cfg.Auth.Enabled))
	return nil
}

// Handler returns the HTTP handler
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run starts the application and blocks until SIGINT or SIGTERM
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext starts every server and shuts them down when ctx is done
func (a *App) RunContext(ctx context.Context) error {
	if a.limiter != nil {
		a.limiter.Cleanup(ctx)
	}

	if a.scheduler != nil {
		if err := a.scheduler.Start(); err != nil {
			return fmt.Errorf("failed to start reminder scheduler: %w", err)
		}
	}

	errCh := make(chan error, 2)
	if a.grpcServer != nil {
		go func() {
			if err := a.grpcServer.Start(); err != nil {
				errCh <- fmt.Errorf("gRPC server error: %w", err)
			}
		}()
	}
	go func() {
		a.log.Info("starting HTTP server", zap.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.log.Info("shutting down server")
	case runErr = <-errCh:
		a.log.Error("server failed, shutting down", zap.Error(runErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.log.Error("HTTP server shutdown error", zap.Error(err))
	}
	if a.grpcServer != nil {
		a.grpcServer.Stop()
	}
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	a.close()

	a.log.Info("server stopped")
	_ = a.log.Sync()
	return runErr
}

// close releases backend connections
func (a *App) close() {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.log.Error("failed to close kafka producer", zap.Error(err))
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("failed to close redis client", zap.Error(err))
		}
	}
	if a.dbPool != nil {
		a.dbPool.Close()
	}
}
