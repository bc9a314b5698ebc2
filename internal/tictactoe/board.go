package tictactoe

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

const BoardSize = 9

// Mark is the content of a single cell.
type Mark string

func (that Mark) IsValid() bool {
	return that == EmptyCell || that == PlayerX || that == PlayerO
}

// Board is a 3x3 grid in row-major order, index = row*3+col.
type Board [BoardSize]Mark

// Place returns a copy of the board with cell i set to mark.
func (that Board) Place(i int, mark Mark) Board {
	that[i] = mark
	return that
}

func (that Board) IsOccupied(i int) bool {
	return that[i] != EmptyCell
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

func (that Board) IsValid() bool {
	for _, cell := range that {
		if !cell.IsValid() {
			return false
		}
	}

	return true
}
