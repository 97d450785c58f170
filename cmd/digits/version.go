package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/digits"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of digits",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "digits version %s\n", strings.TrimSpace(digits.Version))
		},
	}
}
