package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/teistermask/internal/web"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg

			backend, release, err := opts.openBackend(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			slog.Info("configuration loaded",
				"addr", cfg.Server.Addr(),
				"store", cfg.Store.Kind,
				"import_max_batch_size", cfg.Import.MaxBatchSize,
				"api_key_required", cfg.Security.RequireAPIKey,
			)

			svc := opts.service(backend)
			server := web.NewServer(svc, backend, cfg)

			// Graceful shutdown
			go func() {
				sigCh := make(chan os.Signal, 1)
				signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
				<-sigCh

				slog.Info("shutting down...")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
				defer cancel()

				if n := svc.ActiveImports(); n > 0 {
					slog.Info("waiting for imports to complete", "active", n)
					if err := svc.WaitForImports(shutdownCtx); err != nil {
						slog.Warn("imports did not complete in time", "error", err)
					}
				}

				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("shutdown error", "error", err)
				}
			}()

			if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			slog.Info("server stopped")
			return nil
		},
	}
}
