package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/worklinkhq/worklink/internal/app"
	"github.com/worklinkhq/worklink/internal/database"
)

var verbose bool

// activeApp holds the container built by the persistent pre-run so Execute
// can close it. PersistentPreRunE runs on the invoked subcommand, so the App
// never lands on rootCmd's own context.
var activeApp *app.App

var rootCmd = &cobra.Command{
	Use:   "worklink",
	Short: "Job search companion CLI",
	Long: `WorkLink is a CLI application for your job search: share updates on a
local feed, browse and filter job listings, and generate AI-powered cover
letters you can edit and save.`,
	Version: "0.1.0",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Initialize()
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}

		application, err := app.NewApp(cmd.Context(), db)
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}
		if verbose {
			application.Logger = application.Logger.Level(zerolog.DebugLevel)
		}

		activeApp = application
		cmd.SetContext(app.NewContext(cmd.Context(), application))
		return nil
	},
}

// appFromCommand returns the initialized App, or an error if the persistent
// pre-run has not stored one.
func appFromCommand(cmd *cobra.Command) (*app.App, error) {
	application := app.FromContext(cmd.Context())
	if application == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return application, nil
}

// Execute runs the root command
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rootCmd.SetContext(ctx)

	err := rootCmd.Execute()

	if activeApp != nil {
		activeApp.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
