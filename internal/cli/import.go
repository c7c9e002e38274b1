package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/JonMunkholm/teistermask/internal/core"
	"github.com/spf13/cobra"
)

func newImportCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a batch document",
		Long: `Imports a project (XML) or employee (JSON) batch and prints the import log.
Pass "-" as FILE to read the batch from stdin.`,
	}

	cmd.AddCommand(
		newImportKindCmd(opts, core.KindProjects, "Import an XML project batch"),
		newImportKindCmd(opts, core.KindEmployees, "Import a JSON employee batch"),
	)
	return cmd
}

func newImportKindCmd(opts *rootOptions, kind core.ImportKind, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(kind) + " FILE",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, opts, kind, args[0])
		},
	}
}

func runImport(cmd *cobra.Command, opts *rootOptions, kind core.ImportKind, path string) error {
	if opts.format != "" && opts.format != string(core.FormatJSON) {
		return fmt.Errorf("%w: import output is text or json, got %q", core.ErrUnknownFormat, opts.format)
	}

	batch, err := readBatch(cmd.InOrStdin(), path, opts.cfg.Import.MaxBatchSize)
	if err != nil {
		return err
	}

	ctx := core.ContextWithSource(cmd.Context(), path)

	backend, release, err := opts.openBackend(ctx)
	if err != nil {
		return err
	}
	defer release()

	svc := opts.service(backend)

	var result *core.ImportResult
	switch kind {
	case core.KindProjects:
		result, err = svc.ImportProjects(ctx, batch)
	case core.KindEmployees:
		result, err = svc.ImportEmployees(ctx, batch)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.format == string(core.FormatJSON) {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	if result.Log == "" {
		return nil
	}
	_, err = fmt.Fprintln(out, result.Log)
	return err
}

// readBatch reads a batch from path ("-" is stdin), capped at limit bytes.
func readBatch(stdin io.Reader, path string, limit int64) ([]byte, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open batch: %w", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read batch %s: %w", path, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("read batch %s: request body too large (limit %d bytes)", path, limit)
	}
	return data, nil
}
