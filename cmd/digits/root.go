package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/digits/internal/cli"
	"github.com/aretw0/digits/internal/config"
	"github.com/aretw0/digits/internal/logging"
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. The bare root solves when --target is
// nonzero and lists reachable values otherwise; "solve -t 0" still solves for zero.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "digits",
		Short: "Digits finds arithmetic paths from operands to a target",
		Long: `Digits combines integer operands with + - * and exact / until the target appears.
Without a target it lists every value the operands can reach.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if target, _ := cmd.Flags().GetInt("target"); target != 0 {
				return runSolve(cmd)
			}
			return runTargets(cmd)
		},
	}

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "digits.yaml", "Path to a YAML or JSON config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides config)")

	addQueryFlags(rootCmd)
	rootCmd.Flags().IntP("target", "t", 0, "Target value to reach")
	rootCmd.Flags().BoolP("all", "a", false, "Print every solution instead of the first")

	rootCmd.AddCommand(
		newSolveCmd(),
		newTargetsCmd(),
		newServeCmd(),
		newMCPCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("values", "v", "", `Operands, comma- or space-separated ("4,6,8,2" or "4 6 8 2")`)
	cmd.Flags().String("format", string(cli.FormatText), "Output format: text, json, markdown or mermaid")
}

// loadConfig reads the config file named by --config and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return cfg, nil, err
	}
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// setupServices loads configuration and builds the engine with its collaborators.
func setupServices(cmd *cobra.Command) (*cli.Services, config.Config, error) {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return nil, cfg, err
	}
	svc, err := cli.NewServices(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, cfg, fmt.Errorf("error initializing digits: %w", err)
	}
	return svc, cfg, nil
}
