package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/acceptor/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run FILE [MACHINE]",
	Short: "Check input lines interactively",
	Long: `Loads the descriptor and reads one input per line, checking it against
every machine (or only MACHINE). Type 'exit' or press Ctrl+D to quit;
Ctrl+C stops a check that takes too long.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.RunOptions{Globals: globals(cmd), Path: args[0]}
		if len(args) > 1 {
			opts.Machine = args[1]
		}
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.Pretty, _ = cmd.Flags().GetBool("pretty")
		opts.PrettySet = cmd.Flags().Changed("pretty")
		opts.Quiet, _ = cmd.Flags().GetBool("quiet")
		return cli.Execute(opts)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
	runCmd.Flags().Bool("pretty", false, "Render results as markdown (default on a terminal)")
	runCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
}
