package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "banterbot",
	Short: "banterbot is a chat-triggered command router for group channels",
	Long: `banterbot listens for mentions in whitelisted group-chat channels,
matches the message text against an ordered set of patterns and replies
through one of its handlers. Several handlers drive the music service,
whose login lifecycle is managed over a small local HTTP API.`,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	Execute()
}
