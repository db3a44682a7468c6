package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/schoolcrm-backend/internal/config"
	"github.com/stemsi/schoolcrm-backend/internal/database"
	"github.com/stemsi/schoolcrm-backend/internal/handler"
	"github.com/stemsi/schoolcrm-backend/internal/logger"
	"github.com/stemsi/schoolcrm-backend/internal/model"
	"github.com/stemsi/schoolcrm-backend/internal/repository"
	"github.com/stemsi/schoolcrm-backend/internal/router"
	"github.com/stemsi/schoolcrm-backend/internal/service"
	"github.com/stemsi/schoolcrm-backend/internal/session"
	"github.com/stemsi/schoolcrm-backend/internal/validator"
	"github.com/stemsi/schoolcrm-backend/internal/worker"
)

const sessionPruneInterval = 10 * time.Minute

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("env", cfg.AppEnv).
		Str("store", cfg.StoreDriver).
		Str("sessions", cfg.SessionStore).
		Msg("Starting School CRM Backend")

	if cfg.SessionSecret == "default_secret" {
		if cfg.IsProduction() {
			log.Fatal().Msg("SESSION_SECRET must be set in production")
		}
		log.Warn().Msg("Using the default SESSION_SECRET")
	}

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var checks []handler.HealthCheck

	// ─── Data Store ────────────────────────────────────────────────────
	var (
		users   repository.UserRepository
		classes repository.ClassRepository
	)
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		if cfg.AutoMigrate {
			if err := migrateUp(cfg, log); err != nil {
				log.Fatal().Err(err).Msg("Failed to apply migrations")
			}
		}

		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()

		users = repository.NewUserRepository(pool)
		classes = repository.NewClassRepository(pool)
		checks = append(checks, postgresCheck(pool))
	case config.DriverMemory:
		store := repository.NewMemoryStore()
		users = store.Users()
		classes = store.Classes()
		log.Warn().Msg("Using in-memory data store; data is lost on restart")
	default:
		log.Fatal().Str("driver", cfg.StoreDriver).Msg("Unknown STORE_DRIVER")
	}

	// ─── Session Store ─────────────────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	var sessions session.Store
	switch cfg.SessionStore {
	case config.DriverRedis:
		rdb, err := database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()

		sessions = session.NewRedisStore(rdb)
		checks = append(checks, redisCheck(rdb))
	case config.DriverMemory:
		memSessions := session.NewMemoryStore()
		sessions = memSessions
		go worker.NewSessionPruner(memSessions, sessionPruneInterval, log).Start(workerCtx)
	default:
		log.Fatal().Str("store", cfg.SessionStore).Msg("Unknown SESSION_STORE")
	}

	// ─── Initialize Services ──────────────────────────────────────────
	hasher, err := service.NewPasswordHasher(cfg.PasswordStorage, cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid PASSWORD_STORAGE")
	}
	if cfg.PasswordStorage == "plain" {
		log.Warn().Msg("Passwords are stored in plain text")
	}

	authService := service.NewAuthService(users, sessions, session.NewTokenCodec(cfg.SessionSecret), hasher, cfg.SessionTTL, log)
	teacherService := service.NewUserService(model.RoleTeacher, users, hasher, log)
	studentService := service.NewUserService(model.RoleStudent, users, hasher, log)
	classService := service.NewClassService(classes, users, log)
	financialService := service.NewFinancialService(users, classes)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth: handler.NewAuthHandler(authService, handler.CookieSettings{
			Name:     cfg.SessionCookieName,
			SameSite: cfg.CookieSameSite(),
			Secure:   cfg.CookieSecure(),
		}, log),
		Teachers:  handler.NewUserHandler(teacherService, "Teacher"),
		Students:  handler.NewUserHandler(studentService, "Student"),
		Class:     handler.NewClassHandler(classService),
		Financial: handler.NewFinancialHandler(financialService),
		Health:    handler.NewHealthHandler(log, checks...),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(cfg, log, authService, users, handlers)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}
	workerCancel()

	log.Info().Msg("Shutdown complete")
}

func postgresCheck(pool *pgxpool.Pool) handler.HealthCheck {
	return handler.HealthCheck{Name: "postgres", Ping: pool.Ping}
}

func redisCheck(rdb *redis.Client) handler.HealthCheck {
	return handler.HealthCheck{
		Name: "redis",
		Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	}
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}

// migrateUp applies pending schema migrations before the stores open.
func migrateUp(cfg *config.Config, log zerolog.Logger) error {
	mg, err := database.NewMigrator(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := mg.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close migrator")
		}
	}()
	return mg.Up()
}
