package server

import (
	"log/slog"
	"os"

	"github.com/Anvoria/sessionly/internal/cache"
	"github.com/Anvoria/sessionly/internal/config"
	"github.com/Anvoria/sessionly/internal/database"
	"github.com/Anvoria/sessionly/internal/domain/auth"
	"github.com/Anvoria/sessionly/internal/domain/challenge"
	"github.com/Anvoria/sessionly/internal/domain/session"
	"github.com/Anvoria/sessionly/internal/migrations"
	"github.com/gofiber/fiber/v2"
)

// Start initializes and starts the HTTP server
func Start(cfg *config.Config, env *config.Environment) error {
	initLogger(cfg.Logging.Level)

	app := fiber.New()

	if err := database.ConnectDB(cfg); err != nil {
		slog.Error("Failed to connect to database", "error", err)
		return err
	}
	slog.Info("Database connected successfully")

	if err := migrations.RunMigrations(database.DB); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return err
	}
	slog.Info("Migrations completed successfully")

	if err := cache.ConnectRedis(&cfg.Redis); err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		return err
	}
	defer cache.CloseRedis()

	privateKey, err := config.LoadRSAPrivateKey(env.PrivateKey, env.Environment)
	if err != nil {
		slog.Error("Failed to load private key", "error", err)
		return err
	}

	signer, err := auth.NewTokenSigner(privateKey, cfg.Auth.Issuer, cfg.Auth.AccessTTL())
	if err != nil {
		slog.Error("Failed to build token signer", "error", err)
		return err
	}

	sessions := session.NewService(session.NewRepository(database.DB))
	challenges := challenge.NewStore(cache.NewStore(cache.RedisClient))
	authService := auth.NewService(sessions, challenges, signer, cfg.Auth.SessionTTL(), cfg.Auth.ChallengeTTL())

	SetupRoutes(app, auth.NewHandler(authService))

	addr := cfg.Server.Address()
	slog.Info("Server starting", "address", addr)
	if err := app.Listen(addr); err != nil {
		slog.Error("Failed to start server", "error", err)
		return err
	}

	return nil
}

func initLogger(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	handler := slog.NewTextHandler(os.Stdout, opts)
	slog.SetDefault(slog.New(handler))
}
