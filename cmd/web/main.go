package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/donseba/go-htmx"
	"github.com/joho/godotenv"
	"github.com/pawalert/pawalert/internal/ai"
	"github.com/pawalert/pawalert/internal/envstruct"
	"github.com/pawalert/pawalert/internal/errors"
	"github.com/pawalert/pawalert/internal/logging"
	"github.com/pawalert/pawalert/internal/pprofserver"
	"github.com/pawalert/pawalert/internal/reports"
	"github.com/pawalert/pawalert/internal/repositories"
	"github.com/pawalert/pawalert/internal/sqlite"
)

type application struct {
	logger         *slog.Logger
	reports        *reports.Service
	sessionManager *scs.SessionManager
	htmx           *htmx.HTMX
}

type config struct {
	Addr      string `env:"PAWALERT_ADDR" envDefault:"localhost:4000"`
	SqliteURL string `env:"PAWALERT_SQLITE_URL" envDefault:":memory:"`
	PprofPort string `env:"PAWALERT_PPROF_PORT" envDefault:":6060"`
	// OpenAIAPIKey has no default on purpose: a missing credential is a
	// startup-time fatal condition.
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"PAWALERT_OPENAI_BASE_URL" envDefault:""`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "parse configuration")
	}

	// pprof listens on localhost so that it's not open to the world.
	pprofserver.Launch(cfg.PprofPort, logger)

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "connect to database", slog.String("url", cfg.SqliteURL))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db", slog.String("url", cfg.SqliteURL))

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(db.ReadWrite.DB, 24*time.Hour)
	sessionManager.Lifetime = 12 * time.Hour
	sessionManager.Cookie.Secure = true

	caseRepo := repositories.NewCaseRepository(db, logger)
	chatRepo := repositories.NewChatRepository(db, logger)
	aiClient := ai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)

	app := application{
		logger:         logger,
		reports:        reports.NewService(caseRepo, chatRepo, aiClient, logger),
		sessionManager: sessionManager,
		htmx:           htmx.New(),
	}

	return app.configureAndStartServer(ctx, cfg.Addr)
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{ //nolint:exhaustruct
		Level:     slog.LevelDebug,
		AddSource: true,
	}))
	logger := slog.New(loggerHandler)

	// The .env file is optional. It eases local development.
	_ = godotenv.Load()

	if err := run(context.Background(), logger, os.LookupEnv); err != nil {
		logger.LogAttrs(context.Background(), slog.LevelError, "server failed", errors.SlogError(err))
		os.Exit(1)
	}
}
