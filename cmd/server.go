/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/daybook-app/apiserver/config"
	"github.com/daybook-app/apiserver/internal/logger"
	"github.com/daybook-app/apiserver/internal/server"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Starts the daybook backend server",
	Long: `Starts the daybook backend server. Usage:

	daybook server
`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.New("server")
		cfg := config.LoadConfig()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv, err := server.New(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info().Int("port", cfg.ServerPort).Msg("listening")
			errCh <- srv.Start()
		}()

		select {
		case err := <-errCh:
			log.Fatal().Err(err).Msg("server error")
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown error")
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
