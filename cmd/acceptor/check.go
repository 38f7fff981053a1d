package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/acceptor/internal/cli"
)

var checkCmd = &cobra.Command{
	Use:   "check FILE MACHINE INPUT...",
	Short: "Check inputs once and exit",
	Long: `Checks each INPUT against MACHINE ("all" for every machine) and exits with
0 when everything was accepted, 1 when something was rejected and 2 on
malformed input, timeouts or errors.`,
	Args: cobra.MinimumNArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		opts := cli.CheckOptions{Globals: globals(cmd), Path: args[0], Machine: args[1], Inputs: args[2:]}
		if opts.Machine == "all" {
			opts.Machine = ""
		}
		opts.JSON, _ = cmd.Flags().GetBool("json")

		code, err := cli.Check(opts)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(code)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("json", false, "Print results as NDJSON")
}
