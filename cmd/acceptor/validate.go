package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/acceptor/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check the descriptor for consistency",
	Long:  `Parses and builds every machine of the descriptor and reports all problems at once.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.Validate(cli.ValidateOptions{Globals: globals(cmd), Path: args[0]}); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
