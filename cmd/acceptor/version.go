package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/acceptor"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of acceptor",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("acceptor version %s\n", strings.TrimSpace(acceptor.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
