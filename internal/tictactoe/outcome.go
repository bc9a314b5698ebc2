package tictactoe

import "slices"

type State int

const (
	StateInProgress State = iota
	StateWon
	StateDrawn
)

func (s State) String() string {
	switch s {
	case StateWon:
		return "won"
	case StateDrawn:
		return "drawn"
	default:
		return "in_progress"
	}
}

// Outcome is the state of a single board: in progress, won by Winner along Line, or drawn.
type Outcome struct {
	State  State
	Winner Mark
	Line   []int
}

func Evaluate(board Board) Outcome {
	if result, ok := CalculateWinner(board); ok {
		return Outcome{State: StateWon, Winner: result.Winner, Line: result.Line[:]}
	}

	if board.IsFull() {
		return Outcome{State: StateDrawn}
	}

	return Outcome{State: StateInProgress}
}

func (that Outcome) IsWon() bool {
	return that.State == StateWon
}

func (that Outcome) IsDrawn() bool {
	return that.State == StateDrawn
}

func (that Outcome) IsWinning(i int) bool {
	return slices.Contains(that.Line, i)
}

// Status - returns the line shown above the board.
func (that Outcome) Status(turn Mark) string {
	switch that.State {
	case StateWon:
		return "Winner: " + string(that.Winner)
	case StateDrawn:
		return "Draw! No winner."
	default:
		return "Next player: " + string(turn)
	}
}
