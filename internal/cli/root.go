// Package cli wires the teistermask commands: batch imports, report
// exports, the HTTP server and database maintenance.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/JonMunkholm/teistermask/internal/config"
	"github.com/JonMunkholm/teistermask/internal/core"
	"github.com/JonMunkholm/teistermask/internal/logging"
	"github.com/JonMunkholm/teistermask/internal/store"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Backend is a Store that can also be probed and cleared.
type Backend interface {
	core.Store
	Ping(ctx context.Context) error
	Reset(ctx context.Context) error
}

// rootOptions carries the global flags and the state built from them.
type rootOptions struct {
	storeKind string
	format    string
	envFile   string

	cfg *config.Config

	// backend, when set, replaces the configured store.
	backend Backend
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		slog.Debug("command failed", "error", err, "code", core.MapError(err).Code)
		// ERR000 would hide flag, config and file errors; print those as-is
		if core.IsUserFacing(err) {
			fmt.Fprintf(os.Stderr, "Error: %s\n  %v\n", core.FormatUserError(err), err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// NewRootCmd builds the teistermask command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&rootOptions{})
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "teistermask",
		Short:         "Import TeisterMask projects and employees and export reports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.storeKind, "store", "", "storage backend: postgres or memory (overrides STORE_KIND)")
	flags.StringVar(&opts.format, "format", "", "output format: xml, json or yaml for reports, json for import results")
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	cmd.AddCommand(
		newImportCmd(opts),
		newExportCmd(opts),
		newServeCmd(opts),
		newMigrateCmd(opts),
		newResetCmd(opts),
	)
	return cmd
}

// setup loads .env and the configuration, then configures logging.
func (o *rootOptions) setup() error {
	// Overload: the dotenv file wins over variables already in the environment
	if err := godotenv.Overload(o.envFile); err != nil {
		slog.Debug("no .env file loaded", "path", o.envFile)
	}

	if o.storeKind != "" {
		if err := os.Setenv("STORE_KIND", o.storeKind); err != nil {
			return fmt.Errorf("set store kind: %w", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	o.cfg = cfg

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Debug("configuration loaded", "config", cfg.String())
	return nil
}

// openBackend returns the configured store and a release func.
func (o *rootOptions) openBackend(ctx context.Context) (Backend, func(), error) {
	if o.backend != nil {
		return o.backend, func() {}, nil
	}

	if strings.EqualFold(o.cfg.Store.Kind, config.StoreMemory) {
		slog.Warn("using in-memory store, data is discarded on exit")
		return store.NewMemory(), func() {}, nil
	}

	pg, release, err := o.openPostgres(ctx)
	if err != nil {
		return nil, nil, err
	}
	return pg, release, nil
}

// openPostgres connects to the configured database.
func (o *rootOptions) openPostgres(ctx context.Context) (*store.Postgres, func(), error) {
	if !strings.EqualFold(o.cfg.Store.Kind, config.StorePostgres) {
		return nil, nil, errors.New("this command requires STORE_KIND=postgres")
	}

	pool, err := store.Connect(ctx, o.cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return store.NewPostgres(pool), pool.Close, nil
}

func (o *rootOptions) service(backend Backend) *core.Service {
	return core.NewService(backend, o.cfg)
}
