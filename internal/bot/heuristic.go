package bot

import (
	"errors"
	"math/rand"

	"github.com/gridplay/tictactoe-engine/internal/entity"
)

var ErrNoAvailableMoves = errors.New("no available moves")

var (
	cornerCells = [4]int{0, 2, 6, 8}
	edgeCells   = [4]int{1, 3, 5, 7}
)

const centerCell = 4

// RandomPick chooses an index in [0, n). Injectable so tests can pin the
// corner/edge tie-break.
type RandomPick func(n int) int

func defaultPick(n int) int {
	return rand.Intn(n) //nolint: gosec // it's ok
}

// SuggestMove picks one empty cell for actingMark using a one-ply lookahead:
// take a winning cell, else block the opponent's winning cell, else center,
// else a random empty corner, else a random empty edge. Returns
// ErrNoAvailableMoves only on a full board. It does not detect forks; that is
// an accepted limitation of the one-ply rule order.
func SuggestMove(board [9]string, actingMark, opposingMark string, pick RandomPick) (int, error) {
	if pick == nil {
		pick = defaultPick
	}

	if cell, ok := completingCell(board, actingMark); ok {
		return cell, nil
	}

	if cell, ok := completingCell(board, opposingMark); ok {
		return cell, nil
	}

	if board[centerCell] == entity.EmptyCell {
		return centerCell, nil
	}

	if corners := emptyCells(board, cornerCells); len(corners) > 0 {
		return corners[pick(len(corners))], nil
	}

	if edges := emptyCells(board, edgeCells); len(edges) > 0 {
		return edges[pick(len(edges))], nil
	}

	return 0, ErrNoAvailableMoves
}

// completingCell finds the first line (in WinCombos order) holding two cells of
// mark and one empty cell, and returns that empty cell.
func completingCell(board [9]string, mark string) (int, bool) {
	for _, combo := range entity.WinCombos {
		marked, empty := 0, -1

		for _, idx := range combo {
			switch board[idx] {
			case mark:
				marked++
			case entity.EmptyCell:
				empty = idx
			}
		}

		if marked == 2 && empty != -1 {
			return empty, true
		}
	}

	return 0, false
}

func emptyCells(board [9]string, cells [4]int) []int {
	available := make([]int, 0, len(cells))
	for _, idx := range cells {
		if board[idx] == entity.EmptyCell {
			available = append(available, idx)
		}
	}

	return available
}
