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

	"github.com/css-society/portal/internal/announcements"
	"github.com/css-society/portal/internal/app"
	"github.com/css-society/portal/internal/auth"
	"github.com/css-society/portal/internal/contacts"
	"github.com/css-society/portal/internal/events"
	"github.com/css-society/portal/internal/members"
	"github.com/css-society/portal/internal/observability"
	"github.com/css-society/portal/internal/platform/cache"
	"github.com/css-society/portal/internal/platform/db"
	"github.com/css-society/portal/internal/registrations"
	"github.com/css-society/portal/internal/team"
	"github.com/css-society/portal/jobs"
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

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	// Public lists degrade to uncached reads when Redis is away.
	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, caching disabled", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	contentCache := cache.NewContent(redisClient, cfg.PublicCacheTTL)
	metrics := observability.NewMetrics()

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	adminRepo := auth.NewAdminRepository(dbpool)
	memberRepo := members.NewRepository(dbpool)
	tokenIssuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authService := auth.NewService(adminRepo, memberRepo, tokenIssuer)
	memberService := members.NewService(memberRepo)
	authHandler := auth.NewHandler(logger, authService, memberService)
	membersHandler := members.NewHandler(logger, memberService)

	eventsService := events.NewService(events.NewRepository(dbpool), contentCache)
	eventsHandler := events.NewHandler(logger, eventsService)

	annService := announcements.NewService(announcements.NewRepository(dbpool), contentCache)
	annHandler := announcements.NewHandler(logger, annService)

	teamService := team.NewService(team.NewRepository(dbpool), contentCache)
	teamHandler := team.NewHandler(logger, teamService)

	regService := registrations.NewService(registrations.NewRepository(dbpool))
	regHandler := registrations.NewHandler(logger, regService)

	contactService := contacts.NewService(contacts.NewRepository(dbpool), jobClient, cfg.ContactNotify, logger)
	contactHandler := contacts.NewHandler(logger, contactService)

	router := app.NewRouter(app.RouterParams{
		Logger:               logger,
		Config:               cfg,
		AuthService:          authService,
		AuthHandler:          authHandler,
		MembersHandler:       membersHandler,
		EventsHandler:        eventsHandler,
		AnnouncementsHandler: annHandler,
		TeamHandler:          teamHandler,
		RegistrationsHandler: regHandler,
		ContactsHandler:      contactHandler,
		Metrics:              metrics,
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
