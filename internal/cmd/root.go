package cmd

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:  "tictactoe",
		Args: cobra.NoArgs,

		Short: "Tic-tac-toe with a rewindable move history",
		Long: heredoc.Doc(`
			Tic-tac-toe for two players sharing one screen. Every move is kept in a
			history list, and any earlier position can be revisited; playing from an
			earlier position discards the moves that followed it.

			Use "serve" to play in a browser or "play" to play in this terminal.
		`),

		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().StringP("config", "c", "", "Path to the config file")

	root.AddCommand(Serve())
	root.AddCommand(Play())

	return root
}
