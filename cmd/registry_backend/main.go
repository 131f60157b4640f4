package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nagorik/citizen-registry/internal/adapters/database/pgsql"
	"github.com/nagorik/citizen-registry/internal/adapters/notify"
	portssvc "github.com/nagorik/citizen-registry/internal/core/ports/services"
	"github.com/nagorik/citizen-registry/internal/core/services"
	"github.com/nagorik/citizen-registry/internal/dto"
	"github.com/nagorik/citizen-registry/internal/handlers"
	"github.com/nagorik/citizen-registry/internal/middleware"
	"github.com/nagorik/citizen-registry/internal/platform/config"
	"github.com/nagorik/citizen-registry/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Citizen Registry API
// @version 1.0
// @description Registration, contact verification and session authentication backend.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey AccessToken
// @in header
// @name Access-Token
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Wire repositories and services
	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos, buildNotifier(cfg, logger))

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := dto.RegisterValidators(); err != nil {
		logger.Error("Failed to register request validators", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildNotifier selects the outbound notification transport. Without a
// broker URL, notifications land in the log, which keeps local development
// working without RabbitMQ.
func buildNotifier(cfg *config.Config, logger *slog.Logger) portssvc.Notifier {
	if cfg.AMQPURL == "" {
		logger.Warn("AMQP_URL not set, notifications will only be logged")
		return notify.NewLogNotifier(logger)
	}
	return notify.NewDetached(notify.NewAMQPNotifier(cfg.AMQPURL, cfg.NotifyQueueName), logger)
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	// Cookies ride along cross-origin, so credentials must be allowed and
	// the token/fingerprint headers whitelisted both ways.
	corsCfg.AllowCredentials = true
	corsCfg.AddAllowHeaders(middleware.HeaderAccessToken, middleware.HeaderRefreshToken, middleware.HeaderVisitorID)
	corsCfg.AddExposeHeaders("X-Request-ID")
	return corsCfg
}

// runMigrations applies all pending "up" migrations from the migrations
// directory using a short-lived database/sql connection.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
