// Package commands implements the journal command line.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"journal/internal/app"
	"journal/internal/config"
	journalSvc "journal/internal/domain/services/journal"
	"journal/internal/printers"
	serviceJournal "journal/internal/service/journal"
)

// Version is reported by the MCP server
var Version = "dev"

// New creates the root command
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "journal",
		Short:         "Keep an intern journal from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env is optional
			_ = godotenv.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

// AddCommands registers every subcommand on topLevel
func AddCommands(topLevel *cobra.Command) {
	addLogin(topLevel)
	addShow(topLevel)
	addEdit(topLevel)
	addDelete(topLevel)
	addIcon(topLevel)
	addMCP(topLevel)
}

// env is the wiring shared by commands that touch entries
type env struct {
	cfg     *config.Config
	logger  *slog.Logger
	stores  *app.Stores
	entries journalSvc.EntryService
	printer *printers.Pretty
	close   func()
}

// openEnv loads configuration and connects the stores. Logs go to stderr so
// stdout only carries command output.
func openEnv(ctx context.Context, out io.Writer) (*env, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, closeLog := app.NewLogger(cfg, os.Stderr)
	stores, err := app.OpenStores(ctx, cfg, logger)
	if err != nil {
		closeLog()
		return nil, err
	}

	return &env{
		cfg:     cfg,
		logger:  logger,
		stores:  stores,
		entries: serviceJournal.NewEntryService(stores.Entries, stores.Blobs, logger),
		printer: &printers.Pretty{Out: out},
		close: func() {
			stores.Close()
			closeLog()
		},
	}, nil
}

// newEditor creates an editor that reads picked images from the local disk
func (e *env) newEditor() *serviceJournal.Editor {
	return serviceJournal.NewEditor(e.entries, serviceJournal.FileSource{}, e.printer, e.printer, e.logger)
}
