package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/digits/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the Model Context Protocol (MCP) server",
		Long: `Starts the Digits engine as an MCP Server exposing the solve and targets tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := setupServices(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			transport := cfg.MCP.Transport
			if cmd.Flags().Changed("transport") {
				transport, _ = cmd.Flags().GetString("transport")
			}
			port := cfg.MCP.Port
			if cmd.Flags().Changed("port") {
				port, _ = cmd.Flags().GetInt("port")
			}

			srv := mcp.NewServer(svc.Engine)

			switch transport {
			case "stdio":
				// Logs go to stderr; stdout carries JSON-RPC.
				slog.Info("Starting Digits MCP Server (Stdio)")
				return srv.ServeStdio()
			case "sse":
				ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				slog.Info("Starting Digits MCP Server (SSE)", "port", port)
				if err := srv.ServeSSE(ctx, port); err != nil {
					return fmt.Errorf("MCP server execution failed: %w", err)
				}
				slog.Info("MCP Server stopped gracefully")
				return nil
			default:
				return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
			}
		},
	}
	cmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse' (overrides config)")
	cmd.Flags().Int("port", 8080, "Port to listen on (only for SSE, overrides config)")
	return cmd
}
