package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pg, release, err := opts.openPostgres(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			slog.Info("running database migrations...")
			if err := pg.Migrate(cmd.Context()); err != nil {
				return err
			}
			slog.Info("database migrations completed")
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		},
	}
}

type resetOptions struct {
	yes bool
}

func newResetCmd(opts *rootOptions) *cobra.Command {
	o := &resetOptions{}

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every project, task and employee",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !o.yes {
				return errors.New("reset deletes all imported data; rerun with --yes to confirm")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, release, err := opts.openBackend(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			if err := backend.Reset(cmd.Context()); err != nil {
				return fmt.Errorf("reset: %w", err)
			}
			slog.Warn("all imported data deleted", "store", opts.cfg.Store.Kind)
			fmt.Fprintln(cmd.OutOrStdout(), "all tables cleared")
			return nil
		},
	}

	cmd.Flags().BoolVar(&o.yes, "yes", false, "confirm deletion of all data")
	return cmd
}
