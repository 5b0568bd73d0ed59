// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "mood-wallet/internal/api"
	"mood-wallet/internal/api/handler"
	"mood-wallet/internal/config"
	"mood-wallet/internal/migrations"
	"mood-wallet/internal/repository"
	"mood-wallet/internal/repository/postgres"
	"mood-wallet/internal/sentiment"
	"mood-wallet/internal/service"
	"mood-wallet/internal/util"
	"mood-wallet/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB
	Clock  service.Clock

	// Repositories
	AchievementRepository repository.AchievementRepository
	ProgressRepository    repository.ProgressRepository
	LedgerRepository      repository.LedgerRepository
	DiaryRepository       repository.DiaryRepository
	PhotoRepository       repository.PhotoRepository

	// Services
	ProgressTracker    service.ProgressTracker
	AchievementService service.AchievementService
	WalletService      service.WalletService
	JournalService     service.JournalService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{Logger: util.GetLogger(), Clock: service.SystemClock{}}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	if err := app.InitializeCore(ctx); err != nil {
		return err
	}

	achievementHandler := handler.NewAchievementHandler(app.AchievementService, app.Logger)
	walletHandler := handler.NewWalletHandler(app.WalletService, app.Config.Location, app.Logger)
	journalHandler := handler.NewJournalHandler(app.JournalService, app.Logger)
	app.HTTPHandler = router.NewRouter(router.Handlers{
		Achievements: achievementHandler,
		Wallet:       walletHandler,
		Journal:      journalHandler,
	}, router.Options{
		JWTSecret: []byte(app.Config.JWTSecret),
		RateLimit: app.Config.RateLimitRPS,
		RateBurst: app.Config.RateLimitBurst,
	}, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// InitializeCore loads configuration and builds everything below the HTTP layer.
func (app *Application) InitializeCore(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger(cfg.LogLevel)
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.", "time_zone", cfg.TimeZone)

	// 3. Apply migrations and connect to Database
	if cfg.MigrateOnStart {
		if err := migrations.Up(cfg.DB.DSN(), app.Logger); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
	}
	database, err := db.NewPostgresDB(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	// 4. Initialize Repositories
	app.AchievementRepository = postgres.NewAchievementRepository()
	app.ProgressRepository = postgres.NewProgressRepository()
	app.LedgerRepository = postgres.NewLedgerRepository()
	app.DiaryRepository = postgres.NewDiaryRepository()
	app.PhotoRepository = postgres.NewPhotoRepository()
	app.Logger.Info("Repositories initialized.")

	// 5. Initialize Services
	// Services get the concrete db.BeginTx, db.CommitTx, db.RollbackTx from pkg/db.
	loc := cfg.Location
	evaluator := service.NewEvaluator(app.ProgressRepository, app.LedgerRepository, app.Clock, loc)
	app.ProgressTracker = service.NewProgressTracker(app.DB, app.ProgressRepository, app.Clock)
	app.AchievementService = service.NewAchievementService(
		app.DB, // This is the DBTxBeginner
		app.DB, // This is the DBExecutor
		app.AchievementRepository,
		app.LedgerRepository,
		evaluator,
		app.Clock,
		loc,
		app.Logger,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.WalletService = service.NewWalletService(
		app.DB,
		app.DB,
		app.LedgerRepository,
		cfg.RecentLedgerLimit,
		app.Logger,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.JournalService = service.NewJournalService(
		app.DB,
		app.DB,
		app.DiaryRepository,
		app.PhotoRepository,
		app.ProgressTracker,
		sentiment.NewNeutral(),
		app.Clock,
		loc,
		app.Logger,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.Logger.Info("Services initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
