package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/drillhq/drill-api/internal/config"
	"github.com/drillhq/drill-api/internal/domain/schedule"
	"github.com/drillhq/drill-api/internal/platform/postgres"
	"github.com/drillhq/drill-api/internal/service/auth"
	"github.com/drillhq/drill-api/internal/service/list_curation"
	"github.com/drillhq/drill-api/internal/service/review"
	"github.com/drillhq/drill-api/internal/store"

	"golang.org/x/crypto/bcrypt"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore     store.UserStore
	problemStore  store.ProblemStore
	scheduleStore store.ScheduleStore
	listStore     store.ListStore

	// Services
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	scheduleService  schedule.Service
	reviewService    review.ReviewService
	listService      list_curation.ListCurationService
}

// newApplication creates a new application instance with all
// dependencies initialized. It accepts the core dependencies that must
// be established before application wiring.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewPostgresUserStore(db, bcrypt.DefaultCost, logger)
	app.problemStore = postgres.NewPostgresProblemStore(db, logger)
	app.scheduleStore = postgres.NewPostgresScheduleStore(db, logger)
	app.listStore = postgres.NewPostgresListStore(db, logger)

	app.scheduleService = schedule.NewService()

	app.reviewService = review.NewReviewService(
		db,
		app.problemStore,
		app.scheduleStore,
		app.userStore,
		app.scheduleService,
		logger,
	)

	app.listService = list_curation.NewListCurationService(
		db,
		app.listStore,
		app.problemStore,
		app.scheduleStore,
		app.scheduleService,
		logger,
	)

	logger.Info("application initialized")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
