package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"boardapi/internal/auth"
	"boardapi/internal/config"
	"boardapi/internal/database"
	"boardapi/internal/database/migration"
	"boardapi/internal/email"
	"boardapi/internal/flags"
	handlers "boardapi/internal/http/handler"
	"boardapi/internal/http/middleware"
	"boardapi/internal/jobs"
	"boardapi/internal/logging"
	"boardapi/internal/otel"
	"boardapi/internal/repository/postgres"
	"boardapi/internal/service"
	"boardapi/internal/session"
	"boardapi/internal/storage"
)

// @title Board API
// @version 1.0
// @description Multi-tenant project management API: kanban boards, teams, messaging and support.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	loc := cfg.Location()
	log := logging.New(os.Stdout, cfg.LogLevel, loc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize tracing")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		log.WithError(err).Fatal("failed to apply migrations")
	}

	rdb, err := database.NewRedis(ctx, cfg.Redis)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}
	defer rdb.Close()

	objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize object storage")
	}

	sender, err := email.New(cfg.Email, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize email provider")
	}

	tokens, err := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.AccessTTL)
	if err != nil {
		log.WithError(err).Fatal("invalid auth configuration")
	}

	repos := postgres.NewStore(db)
	uow := postgres.NewUnitOfWork(db)
	maxUpload := int64(cfg.MinIO.MaxUploadMB) << 20

	services := handlers.Services{
		Auth:       service.NewAuthService(repos, tokens, session.NewRedisStore(rdb), cfg.Auth.RefreshTTL),
		User:       service.NewUserService(repos, uow),
		Team:       service.NewTeamService(repos, sender, log),
		Project:    service.NewProjectService(repos, uow),
		Board:      service.NewBoardService(repos, uow),
		Milestone:  service.NewMilestoneService(repos, uow),
		Message:    service.NewMessageService(repos),
		Attachment: service.NewAttachmentService(repos, objStore, maxUpload, cfg.MinIO.PresignExpiry, log),
		Flag:       service.NewFlagService(repos, flags.NewRedisCache(rdb, cfg.HTTP.FlagCacheTTL), log),
		Support:    service.NewSupportService(repos, uow, sender, log),
		Admin:      service.NewAdminService(repos, uow),
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, "boardapi"),
	)
	metrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.WithError(err).Fatal("failed to register metrics")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             cfg.HTTP.BodyLimitMB << 20,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.AccessLog(log))
	app.Use(metrics.Handler())
	app.Use(corsMiddleware(cfg.HTTP.CORSOrigins))

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:              db,
		Redis:           rdb,
		Objects:         objStore,
		Tokens:          tokens,
		Services:        services,
		Cookies:         handlers.CookieOptions{Secure: cfg.Auth.CookieSecure},
		LoginRatePerMin: cfg.HTTP.LoginRatePerMin,
		Metrics:         promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
	})

	retention := jobs.NewRetention(repos, objStore, cfg.Retention.Window, log)
	scheduler, err := jobs.Schedule(retention, cfg.Retention.Schedule)
	if err != nil {
		log.WithError(err).Fatal("failed to schedule retention")
	}

	go func() {
		<-ctx.Done()
		log.WithField("event", "shutdown").Info("shutting down")
		<-scheduler.Stop().Done()
		if err := app.ShutdownWithTimeout(cfg.HTTP.ShutdownTimeout); err != nil {
			log.WithError(err).Error("server shutdown failed")
		}
	}()

	addr := ":" + cfg.Port
	log.WithFields(map[string]interface{}{"event": "listening", "addr": addr}).Info("server started")
	if err := app.Listen(addr); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}

// corsMiddleware allows credentials only for an explicit origin list;
// browsers reject credentialed responses for a wildcard origin.
func corsMiddleware(origins string) fiber.Handler {
	origins = strings.TrimSpace(origins)
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, " + middleware.RequestIDHeader,
		ExposeHeaders:    middleware.RequestIDHeader,
		AllowCredentials: origins != "*" && origins != "",
	})
}
