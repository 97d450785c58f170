package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/aretw0/digits/pkg/adapters/http"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long:  `Starts the Digits engine as a JSON API over HTTP, with Prometheus metrics on /metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := setupServices(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			port := cfg.Server.Port
			if cmd.Flags().Changed("port") {
				port, _ = cmd.Flags().GetString("port")
			}

			srv := &http.Server{
				Addr:              ":" + port,
				Handler:           httpAdapter.NewHandler(svc.Engine, httpAdapter.WithMetrics(svc.Metrics.Handler())),
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Channel to listen for errors coming from the listener.
			serverErrors := make(chan error, 1)

			go func() {
				slog.Info("Starting Digits Server", "address", srv.Addr)
				serverErrors <- srv.ListenAndServe()
			}()

			// Channel to listen for interrupt or terminate signals.
			shutdown := make(chan os.Signal, 1)
			signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(shutdown)

			select {
			case err := <-serverErrors:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("server error: %w", err)

			case sig := <-shutdown:
				slog.Info("Start shutdown", "signal", sig.String())

				// Give outstanding requests a deadline for completion.
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				if err := srv.Shutdown(ctx); err != nil {
					slog.Error("Graceful shutdown did not complete", "timeout", 5*time.Second, "error", err)
					if err := srv.Close(); err != nil {
						return fmt.Errorf("error killing server: %w", err)
					}
				}
				slog.Info("Digits Server stopped gracefully")
				return nil
			}
		},
	}
	cmd.Flags().StringP("port", "p", "8080", "Port to listen on (overrides config)")
	return cmd
}
