package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-history/internal/game"
	"github.com/rocketscienceinc/tictactoe-history/transport/terminal"
)

func Play() *cobra.Command {
	return &cobra.Command{
		Use:  "play",
		Args: cobra.NoArgs,

		Short: "Play in the terminal",

		RunE: func(cmd *cobra.Command, args []string) error {
			return terminal.Run(game.Game, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
