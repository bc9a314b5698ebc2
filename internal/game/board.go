package game

import (
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-history/internal/ui"
)

type BoardProps struct {
	Turn    tictactoe.Mark
	Squares tictactoe.Board
	OnPlay  func(next tictactoe.Board)
}

// Board renders the status line and the grid for one position.
func Board(scope *ui.Scope, props BoardProps) ui.Node {
	outcome := tictactoe.Evaluate(props.Squares)

	handleClick := func(i int) {
		// occupied cells and finished games swallow the click
		if props.Squares.IsOccupied(i) || outcome.IsWon() {
			return
		}

		props.OnPlay(props.Squares.Place(i, props.Turn))
	}

	rows := make([]ui.Node, 0, 3)
	for row := 0; row < 3; row++ {
		squares := make([]ui.Node, 0, 3)
		for col := 0; col < 3; col++ {
			index := row*3 + col
			onClick := scope.Handle(func() { handleClick(index) })
			squares = append(squares, Square(props.Squares[index], outcome.IsWinning(index), onClick))
		}

		rows = append(rows, ui.El("div", "board-row", squares...))
	}

	return ui.El("div", "board",
		append([]ui.Node{ui.El("div", "status", ui.Text(outcome.Status(props.Turn)))}, rows...)...,
	)
}

func Square(value tictactoe.Mark, isWinning bool, onClick string) ui.Node {
	class := "square"
	if isWinning {
		class += " highlight"
	}

	return ui.Button(string(value), class, onClick)
}
