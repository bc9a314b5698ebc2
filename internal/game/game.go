// Package game holds the component tree of the tic-tac-toe page: the game controller
// that owns the move history and the board that renders one position.
package game

import (
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-history/internal/ui"
)

// Game - the root component. It owns the history and the viewed move.
func Game(scope *ui.Scope) ui.Node {
	history := ui.UseState(scope, "history", tictactoe.NewTimeline().History)
	currentMove := ui.UseState(scope, "current_move", 0)

	timeline := func() tictactoe.Timeline {
		return tictactoe.Timeline{History: history.Get(), CurrentMove: currentMove.Get()}
	}

	// the cells are restored one by one, so together they may not form a timeline
	if !timeline().Valid() {
		fresh := tictactoe.NewTimeline()
		history.Set(fresh.History)
		currentMove.Set(fresh.CurrentMove)
	}

	commitMove := func(next tictactoe.Board) {
		committed := timeline().Commit(next)
		history.Set(committed.History)
		currentMove.Set(committed.CurrentMove)
	}

	jumpTo := func(move int) {
		currentMove.Set(timeline().JumpTo(move).CurrentMove)
	}

	current := timeline()

	board := Board(scope.Child("board"), BoardProps{
		Turn:    current.Turn(),
		Squares: current.Current(),
		OnPlay:  commitMove,
	})

	moves := make([]ui.Node, 0, len(current.History))
	for _, entry := range current.Moves() {
		if entry.Current {
			moves = append(moves, ui.El("li", "", ui.Text(entry.Label)))
			continue
		}

		move := entry.Move
		onClick := scope.Handle(func() { jumpTo(move) })
		moves = append(moves, ui.El("li", "", ui.Button(entry.Label, "", onClick)))
	}

	return ui.El("div", "game",
		ui.El("div", "game-board", board),
		ui.El("div", "game-info", ui.El("ol", "", moves...)),
	)
}
