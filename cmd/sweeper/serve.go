package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-core/internal/app"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and WebSocket game server",
		Long: `Run the game server. Configuration comes from the environment:

  APP_PORT, APP_BASE_PATH, DEVELOPMENT, LOG_FILE
  GAME_MAX_ROWS, GAME_MAX_COLS, GAME_SAMPLER, GAME_BLANK_GLYPH, GAME_SESSION_TTL
  JWT_PRIVATE_KEY[_FILE], JWT_PUBLIC_KEY[_FILE]
  COOKIES_DOMAIN, COOKIES_SECURE, COOKIES_SAMESITE`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(
				cmd.Context(), os.Interrupt, syscall.SIGTERM,
			)
			defer stop()

			log.Info("starting up")
			if err := app.New(log).Start(ctx); err != nil {
				log.WithError(err).Error("server stopped")
				return err
			}
			log.Info("server stopped")
			return nil
		},
	}
}
