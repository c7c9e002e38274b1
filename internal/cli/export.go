package cli

import (
	"fmt"

	"github.com/JonMunkholm/teistermask/internal/core"
	"github.com/spf13/cobra"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render a report",
	}
	cmd.AddCommand(newExportProjectsCmd(opts), newExportBusiestCmd(opts))
	return cmd
}

func newExportProjectsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "Projects that have tasks, most tasks first (default xml)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := core.ParseFormat(opts.format, core.FormatXML)
			if err != nil {
				return err
			}

			backend, release, err := opts.openBackend(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			doc, err := opts.service(backend).ExportProjects(cmd.Context(), format)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), doc)
			return err
		},
	}
}

type busiestOptions struct {
	date  string
	limit int
}

func newExportBusiestCmd(opts *rootOptions) *cobra.Command {
	o := &busiestOptions{}

	cmd := &cobra.Command{
		Use:   "busiest",
		Short: "Employees with the most open tasks on a date (default json)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := core.ParseFormat(opts.format, core.FormatJSON)
			if err != nil {
				return err
			}
			date, err := core.ParseReferenceDate(o.date)
			if err != nil {
				return err
			}
			if o.limit < 0 {
				return fmt.Errorf("%w: --limit must not be negative", core.ErrInvalidParameter)
			}

			backend, release, err := opts.openBackend(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			doc, err := opts.service(backend).ExportBusiestEmployees(cmd.Context(), date, o.limit, format)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), doc)
			return err
		},
	}

	cmd.Flags().StringVar(&o.date, "date", "", "reference date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&o.limit, "limit", 0, "number of employees (0 uses REPORT_BUSIEST_LIMIT)")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}
