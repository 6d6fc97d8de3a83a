package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/schoolhub/schoolhub/internal/app"
	"github.com/schoolhub/schoolhub/internal/auth"
	"github.com/schoolhub/schoolhub/internal/classrooms"
	"github.com/schoolhub/schoolhub/internal/events"
	"github.com/schoolhub/schoolhub/internal/observability"
	"github.com/schoolhub/schoolhub/internal/platform/cache"
	"github.com/schoolhub/schoolhub/internal/platform/db"
	"github.com/schoolhub/schoolhub/internal/schools"
	"github.com/schoolhub/schoolhub/internal/students"
	"github.com/schoolhub/schoolhub/internal/users"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	publisher, cleanup, err := newPublisher(ctx, cfg, logger)
	if err != nil {
		logger.Error("configure events", slog.Any("error", err))
		os.Exit(1)
	}
	defer cleanup()

	tokens := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.ShortTokenTTL, cfg.LongTokenTTL)
	gates := auth.Gates{Tokens: tokens, Logger: logger}

	usersRepo := users.NewRepository(pool)
	usersService := users.NewService(usersRepo, tokens)
	usersHandler := users.NewHandler(logger, usersService)

	tokenHandler := auth.NewHandler(logger, tokens)

	schoolsService := schools.NewService(schools.NewRepository(pool), publisher, logger)
	schoolsHandler := schools.NewHandler(logger, schoolsService, gates)

	classroomsService := classrooms.NewService(classrooms.NewRepository(pool), publisher, logger)
	classroomsHandler := classrooms.NewHandler(logger, classroomsService, gates)

	studentsService := students.NewService(students.NewRepository(pool), publisher, logger)
	studentsHandler := students.NewHandler(logger, studentsService, gates)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		TokenHandler:      tokenHandler,
		UsersHandler:      usersHandler,
		SchoolsHandler:    schoolsHandler,
		ClassroomsHandler: classroomsHandler,
		StudentsHandler:   studentsHandler,
		Metrics:           metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

// newPublisher selects the entity-event backend. The noop publisher keeps the
// services oblivious to the absence of a broker.
func newPublisher(ctx context.Context, cfg *app.Config, logger *slog.Logger) (events.Publisher, func(), error) {
	switch cfg.EventsBackend {
	case "redis":
		client, err := cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return events.NewRedis(client), func() {
			if err := client.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}, nil
	case "asynq":
		client := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		return events.NewAsynq(client), func() {
			if err := client.Close(); err != nil {
				logger.Warn("asynq close", slog.Any("error", err))
			}
		}, nil
	default:
		return events.Noop{}, func() {}, nil
	}
}
