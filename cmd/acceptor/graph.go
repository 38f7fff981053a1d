package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/acceptor/internal/cli"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph FILE MACHINE",
	Short: "Export the machine as a Mermaid diagram",
	Long: `Outputs a Mermaid state diagram (stateDiagram-v2) of MACHINE. With --input,
the input is checked first and the states on its trace are highlighted.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.GraphOptions{Globals: globals(cmd), Path: args[0], Machine: args[1]}
		opts.Input, _ = cmd.Flags().GetString("input")
		opts.InputSet = cmd.Flags().Changed("input")
		return cli.Graph(opts)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("input", "", "Highlight the trace of this input")
}
