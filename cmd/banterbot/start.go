package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/wickhamj/banterbot/internal/bot"
	"github.com/wickhamj/banterbot/internal/core"
	"github.com/wickhamj/banterbot/internal/logger"
)

var (
	configFile string

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start banterbot main process",
		Long:  "Start banterbot main process, listen to channel messages and dispatch to command handlers",
		Run: func(cmd *cobra.Command, args []string) {
			config, err := core.LoadConfig(configFile)
			if err != nil {
				log.Fatalf("Failed to load config: %v", err)
			}

			fmt.Printf("Starting banterbot with config: %s\n", configFile)
			fmt.Printf("API server port: %d\n", config.APIServer.Port)
			fmt.Printf("Whitelisted channels: %d\n", len(config.Security.WhitelistedChannels))

			logConfig := logger.Config{
				Level:        config.Logging.Level,
				File:         config.Logging.File,
				MaxSize:      config.Logging.MaxSize,
				MaxBackups:   config.Logging.MaxBackups,
				MaxAge:       config.Logging.MaxAge,
				Compress:     config.Logging.Compress,
				EnableStdout: config.Logging.EnableStdout,
			}
			if err := logger.Init(logConfig); err != nil {
				log.Fatalf("Failed to initialize logger: %v", err)
			}

			logger.WithFields(logrus.Fields{
				"config_file": configFile,
				"log_level":   config.Logging.Level,
				"log_file":    config.Logging.File,
			}).Info("logger-initialized")

			chat := bot.NewSlackBot(config.Slack.Token)
			engine := core.NewEngine(config, chat)

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			engineErrChan := make(chan error, 1)
			go func() {
				fmt.Println("\nbanterbot engine starting...")
				fmt.Println("Press Ctrl+C to stop")
				engineErrChan <- engine.Run(ctx)
			}()

			select {
			case sig := <-sigChan:
				log.Printf("Received signal: %v, shutting down gracefully...", sig)
				if err := engine.Stop(); err != nil {
					log.Printf("Error during shutdown: %v", err)
				}
			case err := <-engineErrChan:
				if err != nil {
					log.Fatalf("Engine error: %v", err)
				}
			}

			log.Println("banterbot stopped")
		},
	}
)

func init() {
	startCmd.Flags().StringVarP(&configFile, "config", "c", "config.yaml", "Configuration file path")
}
