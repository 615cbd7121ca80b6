package entity

// WinCombos enumerates the 8 winning triples: 3 rows, 3 columns, 2 diagonals.
// The order is fixed; win detection and the heuristic scan it front to back,
// so the first matching triple is the deterministic tie-break.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// WinResult is derived from the board on demand and never stored.
type WinResult struct {
	Winner string `json:"winner"`
	Line   [3]int `json:"line"`
}

// HasWinner reports whether a completed line was found.
func (that WinResult) HasWinner() bool {
	return that.Winner != EmptyCell
}

// DetermineWinner scans all winning triples and returns the mark that completed
// one, together with the triple itself. A board with no completed line yields a
// zero WinResult. Pure function of the board.
func DetermineWinner(board [9]string) WinResult {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return WinResult{Winner: a, Line: combo}
		}
	}

	return WinResult{}
}

// IsBoardFull reports whether no empty cell remains.
func IsBoardFull(board [9]string) bool {
	for _, cell := range board {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}
