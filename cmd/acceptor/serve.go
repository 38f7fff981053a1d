package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/acceptor/internal/cli"
)

var serveCmd = &cobra.Command{
	Use:   "serve FILE",
	Short: "Start the HTTP server",
	Long: `Exposes the descriptor's machines as a JSON API over HTTP, with live check
events (SSE) on /events and Prometheus metrics on /metrics.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		return cli.Serve(cli.ServeOptions{Globals: globals(cmd), Path: args[0], Addr: addr})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
}
