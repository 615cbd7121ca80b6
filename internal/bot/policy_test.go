package bot

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gridplay/tictactoe-engine/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSuggester struct {
	cell  int
	ok    bool
	calls int
}

func (that *stubSuggester) SuggestMove(_ context.Context, _ [9]string, _, _ string) (int, bool) {
	that.calls++
	return that.cell, that.ok
}

func TestOpponentPolicy_ChooseMove(t *testing.T) {
	board := [9]string{
		entity.PlayerX, entity.PlayerX, entity.EmptyCell,
		entity.PlayerO, entity.PlayerO, entity.EmptyCell,
		entity.EmptyCell, entity.EmptyCell, entity.EmptyCell,
	}

	t.Run("Uses the suggestion when one is available", func(t *testing.T) {
		// Given: a suggester that proposes cell 7
		suggester := &stubSuggester{cell: 7, ok: true}
		policy := NewOpponentPolicy(newTestLogger(), suggester, firstPick)

		// When: choosing a move
		cell, err := policy.ChooseMove(context.Background(), board, entity.PlayerO, entity.PlayerX)

		// Then: the suggestion is used
		require.NoError(t, err)
		assert.Equal(t, 7, cell)
		assert.Equal(t, 1, suggester.calls)
	})

	t.Run("Falls back to the heuristic when no suggestion", func(t *testing.T) {
		// Given: a suggester with nothing to offer
		suggester := &stubSuggester{ok: false}
		policy := NewOpponentPolicy(newTestLogger(), suggester, firstPick)

		// When: choosing a move for O
		cell, err := policy.ChooseMove(context.Background(), board, entity.PlayerO, entity.PlayerX)

		// Then: the heuristic completes O's middle row
		require.NoError(t, err)
		assert.Equal(t, 5, cell)
		assert.Equal(t, 1, suggester.calls)
	})

	t.Run("Works without any suggester", func(t *testing.T) {
		// Given: heuristic-only mode
		policy := NewOpponentPolicy(newTestLogger(), nil, firstPick)

		// When: choosing a move for X
		cell, err := policy.ChooseMove(context.Background(), board, entity.PlayerX, entity.PlayerO)

		// Then: the heuristic completes X's top row
		require.NoError(t, err)
		assert.Equal(t, 2, cell)
	})

	t.Run("Recovers from a malformed remote response", func(t *testing.T) {
		// Given: a suggestion service answering garbage
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"choices":[{"message":{"content":"no idea"}}]}`)
		}))
		defer srv.Close()

		policy := NewOpponentPolicy(newTestLogger(), newTestClient(srv.URL), firstPick)

		// When: choosing a move for O
		cell, err := policy.ChooseMove(context.Background(), board, entity.PlayerO, entity.PlayerX)

		// Then: the heuristic fallback still returns a valid empty cell
		require.NoError(t, err)
		assert.Equal(t, entity.EmptyCell, board[cell])
	})

	t.Run("Fails only on a full board", func(t *testing.T) {
		// Given: a full board
		full := [9]string{
			entity.PlayerX, entity.PlayerO, entity.PlayerX,
			entity.PlayerO, entity.PlayerX, entity.PlayerO,
			entity.PlayerO, entity.PlayerX, entity.PlayerO,
		}
		policy := NewOpponentPolicy(newTestLogger(), nil, firstPick)

		// When: choosing a move
		_, err := policy.ChooseMove(context.Background(), full, entity.PlayerX, entity.PlayerO)

		// Then: the heuristic exhaustion surfaces
		require.ErrorIs(t, err, ErrNoAvailableMoves)
	})
}

func TestIsStrongBlock(t *testing.T) {
	t.Run("Sole empty cell of a two-opposing line is a strong block", func(t *testing.T) {
		// Given: X threatens the top row at cell 2 on the pre-move board
		board := [9]string{
			entity.PlayerX, entity.PlayerX, entity.EmptyCell,
			entity.PlayerO, entity.EmptyCell, entity.EmptyCell,
			entity.EmptyCell, entity.EmptyCell, entity.EmptyCell,
		}

		// Then: O playing cell 2 counts as a strong block
		assert.True(t, IsStrongBlock(board, 2, entity.PlayerX))
	})

	t.Run("A quiet move is not a strong block", func(t *testing.T) {
		// Given: no opposing threat through cell 4
		board := [9]string{}
		board[0] = entity.PlayerX

		assert.False(t, IsStrongBlock(board, 4, entity.PlayerX))
	})

	t.Run("A line with only one opposing mark does not qualify", func(t *testing.T) {
		// Given: X holds a single cell of the top row
		board := [9]string{
			entity.PlayerX, entity.EmptyCell, entity.EmptyCell,
			entity.EmptyCell, entity.EmptyCell, entity.EmptyCell,
			entity.EmptyCell, entity.EmptyCell, entity.EmptyCell,
		}

		assert.False(t, IsStrongBlock(board, 1, entity.PlayerX))
	})
}
