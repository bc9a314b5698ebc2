package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe-history/internal"
	"github.com/rocketscienceinc/tictactoe-history/internal/config"
)

func Serve() *cobra.Command {
	return &cobra.Command{
		Use:  "serve",
		Args: cobra.NoArgs,

		Short: "Serve the game over HTTP",
		Long: heredoc.Doc(`
			Serve the game over HTTP. Open the root page in a browser; each browser
			session gets its own game, kept in the configured session store.

			Configuration is read from --config, ./config.yml or the XDG config
			directory (tictactoe/config.yml), with environment overrides.
		`),
		Example: heredoc.Doc(`
			$ tictactoe serve
			$ HTTP_PORT=8080 SESSION_STORE=redis tictactoe serve
		`),

		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")

			conf, err := config.Load(config.ResolvePath(configPath))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			return app.RunApp(cmd.Context(), initLogger(conf), conf)
		},
	}
}

// initialize logger.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
