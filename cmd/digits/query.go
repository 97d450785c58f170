package main

import (
	"fmt"

	"github.com/aretw0/digits/internal/cli"
	"github.com/spf13/cobra"
)

func newSolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Find the shortest operation sequences that reach a target",
		Example: `  digits solve -t 24 -v "4,6,8,2"
  digits solve -t 174 -v "3 7 9 11 25" --all --format markdown`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd)
		},
	}
	addQueryFlags(cmd)
	cmd.Flags().IntP("target", "t", 0, "Target value to reach")
	cmd.Flags().BoolP("all", "a", false, "Print every solution instead of the first")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func newTargetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "targets",
		Short:   "List every value reachable from the operands",
		Example: `  digits targets -v "2,3"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTargets(cmd)
		},
	}
	addQueryFlags(cmd)
	return cmd
}

// queryInputs reads the flags shared by solve and targets.
func queryInputs(cmd *cobra.Command) ([]int, *cli.Printer, error) {
	raw, _ := cmd.Flags().GetString("values")
	if raw == "" {
		return nil, nil, fmt.Errorf("--values is required")
	}
	operands, err := cli.ParseOperands(raw)
	if err != nil {
		return nil, nil, err
	}

	f, _ := cmd.Flags().GetString("format")
	format, err := cli.ParseFormat(f)
	if err != nil {
		return nil, nil, err
	}
	return operands, cli.NewPrinter(cmd.OutOrStdout(), format), nil
}

func runSolve(cmd *cobra.Command) error {
	operands, printer, err := queryInputs(cmd)
	if err != nil {
		return err
	}
	target, _ := cmd.Flags().GetInt("target")
	all, _ := cmd.Flags().GetBool("all")

	svc, _, err := setupServices(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	result, err := svc.Engine.Solve(cmd.Context(), target, operands, all)
	if err != nil {
		return err
	}
	return printer.PrintSolve(result)
}

func runTargets(cmd *cobra.Command) error {
	operands, printer, err := queryInputs(cmd)
	if err != nil {
		return err
	}

	svc, _, err := setupServices(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	result, err := svc.Engine.Targets(cmd.Context(), operands)
	if err != nil {
		return err
	}
	return printer.PrintTargets(result)
}
