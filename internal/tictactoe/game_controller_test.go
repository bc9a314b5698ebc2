package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = PlayerX
	o = PlayerO
	e = EmptyCell
)

// playTimeline commits moves on cells in order, alternating marks from X.
func playTimeline(t *testing.T, cells ...int) Timeline {
	t.Helper()

	timeline := NewTimeline()
	for _, cell := range cells {
		require.False(t, timeline.Current().IsOccupied(cell), "cell %d is already occupied", cell)
		timeline = timeline.Commit(timeline.Current().Place(cell, timeline.Turn()))
	}

	return timeline
}

func TestNewTimeline(t *testing.T) {
	// When: a new timeline is created
	timeline := NewTimeline()

	// Then: it holds exactly the empty board and views it
	require.Len(t, timeline.History, 1)
	assert.Equal(t, Board{}, timeline.Current())
	assert.Equal(t, 0, timeline.CurrentMove)
	assert.Equal(t, PlayerX, timeline.Turn())
}

func TestTimeline_Valid(t *testing.T) {
	played := playTimeline(t, 4, 0)

	tests := []struct {
		name     string
		timeline Timeline
		valid    bool
	}{
		{name: "New timeline", timeline: NewTimeline(), valid: true},
		{name: "Played timeline", timeline: played, valid: true},
		{name: "Empty history", timeline: Timeline{}, valid: false},
		{name: "Current move past the end", timeline: Timeline{History: played.History, CurrentMove: 3}, valid: false},
		{name: "Negative current move", timeline: Timeline{History: played.History, CurrentMove: -1}, valid: false},
		{name: "Start is not empty", timeline: Timeline{History: played.History[1:]}, valid: false},
		{name: "Unknown mark", timeline: Timeline{History: []Board{{}, {0: "Z"}}}, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.timeline.Valid())
		})
	}
}

func TestTimeline_Commit(t *testing.T) {
	t.Run("Commit on empty board", func(t *testing.T) {
		// Given: a new game
		timeline := NewTimeline()

		// When: X plays the center
		next := timeline.Current().Place(4, timeline.Turn())
		timeline = timeline.Commit(next)

		// Then: the new board is appended and viewed
		require.Len(t, timeline.History, 2)
		assert.Equal(t, Board{e, e, e, e, x, e, e, e, e}, timeline.Current())
		assert.Equal(t, 1, timeline.CurrentMove)
		assert.Equal(t, PlayerO, timeline.Turn())
	})

	t.Run("Branch truncates the future", func(t *testing.T) {
		// Given: a history of five positions viewed at move 2
		timeline := playTimeline(t, 0, 4, 8, 2)
		require.Len(t, timeline.History, 5)
		timeline = timeline.JumpTo(2)

		// When: a different move is committed from move 2
		next := timeline.Current().Place(6, timeline.Turn())
		branched := timeline.Commit(next)

		// Then: moves 3 and 4 are gone and the new board is move 3
		require.Len(t, branched.History, 4)
		assert.Equal(t, 3, branched.CurrentMove)
		assert.Equal(t, timeline.History[:3], branched.History[:3])
		assert.Equal(t, Board{x, e, e, e, o, e, x, e, e}, branched.Current())
	})

	t.Run("Commit does not write into the previous history", func(t *testing.T) {
		// Given: a history viewed in the past
		timeline := playTimeline(t, 0, 4, 8).JumpTo(1)
		before := append([]Board(nil), timeline.History...)

		// When: a new move is committed
		_ = timeline.Commit(timeline.Current().Place(2, timeline.Turn()))

		// Then: the old value is untouched
		assert.Equal(t, before, timeline.History)
		assert.Equal(t, 1, timeline.CurrentMove)
	})
}

func TestTimeline_JumpTo(t *testing.T) {
	t.Run("Jump keeps history", func(t *testing.T) {
		// Given: three moves played
		timeline := playTimeline(t, 0, 1, 2)

		// When: jumping back to the start
		jumped := timeline.JumpTo(0)

		// Then: only the pointer changes
		assert.Equal(t, 0, jumped.CurrentMove)
		assert.Equal(t, timeline.History, jumped.History)
		assert.Equal(t, Board{}, jumped.Current())
		assert.Equal(t, PlayerX, jumped.Turn())
	})

	t.Run("Jump to odd move gives O the turn", func(t *testing.T) {
		timeline := playTimeline(t, 0, 1, 2).JumpTo(1)

		assert.Equal(t, PlayerO, timeline.Turn())
	})

	t.Run("Out of range is ignored", func(t *testing.T) {
		// Given: two moves played
		timeline := playTimeline(t, 0, 1)

		// When: jumping outside the history
		// Then: nothing changes
		assert.Equal(t, timeline, timeline.JumpTo(3))
		assert.Equal(t, timeline, timeline.JumpTo(-1))
	})
}

func TestMoveLabel(t *testing.T) {
	tests := []struct {
		name    string
		move    int
		current int
		want    string
	}{
		{"start while viewing start", 0, 0, "Go to game start"},
		{"start while viewing later move", 0, 3, "Go to game start"},
		{"current move", 3, 3, "You are at move #3"},
		{"other move", 2, 3, "Go to move #2"},
		{"future move", 4, 1, "Go to move #4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MoveLabel(tt.move, tt.current))
		})
	}
}

func TestTimeline_Moves(t *testing.T) {
	// Given: three moves played, viewing move 2
	timeline := playTimeline(t, 0, 1, 2).JumpTo(2)

	// When: listing the moves
	moves := timeline.Moves()

	// Then: one entry per position, only move 2 is current
	expected := []MoveEntry{
		{Move: 0, Label: "Go to game start"},
		{Move: 1, Label: "Go to move #1"},
		{Move: 2, Label: "You are at move #2", Current: true},
		{Move: 3, Label: "Go to move #3"},
	}
	require.Equal(t, expected, moves)
}

func TestTimeline_MovesAtStart(t *testing.T) {
	// Given: a fresh game
	moves := NewTimeline().Moves()

	// Then: the start entry is current but keeps its own label
	require.Equal(t, []MoveEntry{{Move: 0, Label: "Go to game start", Current: true}}, moves)
}
