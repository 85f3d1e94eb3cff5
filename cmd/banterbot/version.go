package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build information, injected at build time:
//
//	go build -ldflags "-X main.Version=v1.2.3 -X main.GitCommit=$(git rev-parse --short HEAD)"
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "banterbot %s (commit %s)\n", Version, GitCommit)
	},
}
