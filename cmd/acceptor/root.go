package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/acceptor/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "acceptor",
	Short: "Acceptor decides whether automata accept their input",
	Long: `Acceptor loads ε-NFA, pushdown automaton and Turing machine descriptions
from a YAML or JSON descriptor and checks input strings against them,
printing the accepting path (or the deepest path explored on rejection).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (default ./"+cli.DefaultConfigFile+" when present)")
	flags.Bool("debug", false, "Enable debug logging")
	flags.String("log-file", "", "Also write JSON logs to this file")
	flags.Duration("timeout", cli.DefaultTimeout, "Time limit for a single check (0 disables it)")
}

// globals reads the persistent flags.
func globals(cmd *cobra.Command) cli.Globals {
	flags := cmd.Flags()
	g := cli.Globals{}
	g.ConfigPath, _ = flags.GetString("config")
	g.Debug, _ = flags.GetBool("debug")
	g.LogFile, _ = flags.GetString("log-file")
	g.Timeout, _ = flags.GetDuration("timeout")
	g.TimeoutSet = flags.Changed("timeout")
	return g
}
