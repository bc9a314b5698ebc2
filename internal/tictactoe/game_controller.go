package tictactoe

import "strconv"

// Timeline is the move history of one game and the position currently viewed.
// History[0] is always the empty board and 0 <= CurrentMove < len(History).
type Timeline struct {
	History     []Board `json:"history"`
	CurrentMove int     `json:"current_move"`
}

type MoveEntry struct {
	Move    int
	Label   string
	Current bool
}

func NewTimeline() Timeline {
	return Timeline{History: []Board{{}}}
}

// Valid - reports whether the timeline holds its invariants. Timelines restored from storage
// may not; Current panics on those.
func (that Timeline) Valid() bool {
	if len(that.History) == 0 || that.History[0] != (Board{}) {
		return false
	}

	if that.CurrentMove < 0 || that.CurrentMove >= len(that.History) {
		return false
	}

	for _, board := range that.History {
		if !board.IsValid() {
			return false
		}
	}

	return true
}

// Turn - X moves on even positions, O on odd ones.
func (that Timeline) Turn() Mark {
	if that.CurrentMove%2 == 0 {
		return PlayerX
	}
	return PlayerO
}

func (that Timeline) Current() Board {
	return that.History[that.CurrentMove]
}

// Commit - drops every position after CurrentMove, appends next and moves to it.
// The caller guarantees next differs from Current by one previously empty cell.
func (that Timeline) Commit(next Board) Timeline {
	history := make([]Board, that.CurrentMove+1, that.CurrentMove+2)
	copy(history, that.History[:that.CurrentMove+1])
	history = append(history, next)

	return Timeline{History: history, CurrentMove: len(history) - 1}
}

// JumpTo - views another position. Moves outside the history are ignored.
func (that Timeline) JumpTo(move int) Timeline {
	if move < 0 || move >= len(that.History) {
		return that
	}

	that.CurrentMove = move
	return that
}

func (that Timeline) Moves() []MoveEntry {
	moves := make([]MoveEntry, 0, len(that.History))
	for move := range that.History {
		moves = append(moves, MoveEntry{
			Move:    move,
			Label:   MoveLabel(move, that.CurrentMove),
			Current: move == that.CurrentMove,
		})
	}

	return moves
}

// MoveLabel - the start entry never reads "You are at move #0", even when it is current.
func MoveLabel(move, current int) string {
	switch {
	case move == 0:
		return "Go to game start"
	case move == current:
		return "You are at move #" + strconv.Itoa(move)
	default:
		return "Go to move #" + strconv.Itoa(move)
	}
}
