package terminal

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rocketscienceinc/tictactoe-history/internal/ui"
)

// Run - plays root in the terminal until the user quits.
func Run(root ui.Component, in io.Reader, out io.Writer) error {
	program := tea.NewProgram(NewModel(root), tea.WithInput(in), tea.WithOutput(out), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("terminal program failed: %w", err)
	}

	return nil
}
