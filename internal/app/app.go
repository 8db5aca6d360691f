package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/worklinkhq/worklink/internal/config"
	"github.com/worklinkhq/worklink/internal/notify"
)

// App is the dependency container for the CLI application
type App struct {
	DB       *sql.DB
	Config   *config.Config
	Logger   zerolog.Logger
	Notifier notify.Notifier
}

// NewApp initializes and returns a new App instance. The caller opens the
// database (see database.Initialize) and hands it over; App owns it from
// then on.
func NewApp(ctx context.Context, db *sql.DB) (*App, error) {
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().
		Level(zerolog.WarnLevel)

	return &App{
		DB:       db,
		Config:   config.AppConfig,
		Logger:   logger,
		Notifier: notify.NewTerminal(os.Stdout),
	}, nil
}

// Close closes all resources
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
