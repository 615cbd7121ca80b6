package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gridplay/tictactoe-engine/internal/entity"
)

// Suggester yields a candidate move for the acting mark, or false when it has
// none. A nil Suggester means heuristic-only play.
type Suggester interface {
	SuggestMove(ctx context.Context, board [9]string, actingMark, opposingMark string) (int, bool)
}

// OpponentPolicy decides the automated player's move: remote suggestion first,
// deterministic heuristic when the suggestion is unavailable or invalid.
type OpponentPolicy struct {
	logger    *slog.Logger
	suggester Suggester
	pick      RandomPick
}

func NewOpponentPolicy(logger *slog.Logger, suggester Suggester, pick RandomPick) *OpponentPolicy {
	return &OpponentPolicy{
		logger:    logger.With("component", "opponent-policy"),
		suggester: suggester,
		pick:      pick,
	}
}

// ChooseMove returns one empty-cell index for actingMark. It fails only when
// the board is full.
func (that *OpponentPolicy) ChooseMove(ctx context.Context, board [9]string, actingMark, opposingMark string) (int, error) {
	if that.suggester != nil {
		if cell, ok := that.suggester.SuggestMove(ctx, board, actingMark, opposingMark); ok {
			return cell, nil
		}

		that.logger.Debug("no usable suggestion, falling back to heuristic")
	}

	cell, err := SuggestMove(board, actingMark, opposingMark, that.pick)
	if err != nil {
		return 0, fmt.Errorf("heuristic failed to pick a move: %w", err)
	}

	return cell, nil
}

// IsStrongBlock reports whether placing a mark on cell prevented an immediate
// win by opposingMark: on the board before the move, cell was the sole empty
// cell of a line holding exactly two opposing marks. The classification is
// informational and can under-fire on multi-threat boards.
func IsStrongBlock(board [9]string, cell int, opposingMark string) bool {
	for _, combo := range entity.WinCombos {
		opposing, empty := 0, -1

		for _, idx := range combo {
			switch board[idx] {
			case opposingMark:
				opposing++
			case entity.EmptyCell:
				empty = idx
			}
		}

		if opposing == 2 && empty == cell {
			return true
		}
	}

	return false
}
