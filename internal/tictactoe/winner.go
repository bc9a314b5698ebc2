package tictactoe

// WinCombos lists rows, then columns, then diagonals. The order decides which line is reported.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

type WinResult struct {
	Winner Mark   `json:"winner"`
	Line   [3]int `json:"line"`
}

// CalculateWinner - returns the first complete line on the board, if any.
func CalculateWinner(board Board) (WinResult, bool) {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return WinResult{Winner: a, Line: combo}, true
		}
	}

	return WinResult{}, false
}
