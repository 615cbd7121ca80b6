package entity

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/gridplay/tictactoe-engine/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = ""
)

var ErrInvalidCell = errors.New("invalid cell index")

// Game is a single session: the board, whose turn it is, and the outcome once
// decided. Generation counts accepted mutations (moves and resets) so that an
// automated decision issued against an older board can be detected and
// discarded on arrival. Deciding blocks human input and re-entrant automated
// requests while the opponent policy is in flight.
type Game struct {
	ID         string    `json:"id"`
	Board      [9]string `json:"board"`
	Turn       string    `json:"player_turn"`
	Winner     string    `json:"winner,omitempty"`
	WinLine    *[3]int   `json:"win_line,omitempty"`
	Status     string    `json:"status"`
	Generation int       `json:"generation"`
	Deciding   bool      `json:"deciding,omitempty"`
	Players    []*Player `json:"players,omitempty"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:     id,
		Board:  [9]string{},
		Turn:   PlayerX,
		Status: StatusOngoing,
	}
}

// MakeTurn places the mark on the cell and advances the session. Every
// rejected move leaves the game untouched.
func (that *Game) MakeTurn(playerMark string, cell int) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if cell < 0 || cell >= len(that.Board) {
		return fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	if that.Turn != playerMark {
		return apperror.ErrNotYourTurn
	}

	if that.Board[cell] != EmptyCell {
		return apperror.ErrCellOccupied
	}

	that.Board[cell] = playerMark
	that.Turn = OpposingMark(playerMark)
	that.Generation++

	that.UpdateGameState()

	return nil
}

// UpdateGameState recomputes the outcome from the board. The turn is frozen
// once a winner is found or the board fills up.
func (that *Game) UpdateGameState() {
	if result := DetermineWinner(that.Board); result.HasWinner() {
		line := result.Line
		that.Winner = result.Winner
		that.WinLine = &line
		that.Status = StatusFinished
		that.Turn = EmptyCell

		return
	}

	if IsBoardFull(that.Board) {
		that.Winner = PlayerTie
		that.Status = StatusFinished
		that.Turn = EmptyCell

		return
	}

	that.Status = StatusOngoing
}

// Reset returns the session to the initial state unconditionally: empty board,
// X to move. The generation advances so in-flight decisions against the old
// board are discarded, and marks are kept so the same players continue.
func (that *Game) Reset() {
	that.Board = [9]string{}
	that.Turn = PlayerX
	that.Winner = EmptyCell
	that.WinLine = nil
	that.Status = StatusOngoing
	that.Deciding = false
	that.Generation++
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsTie() bool {
	return that.Winner == PlayerTie
}

// BotPlayer returns the automated player, or nil if the game has none.
func (that *Game) BotPlayer() *Player {
	for _, player := range that.Players {
		if player.IsBot() {
			return player
		}
	}

	return nil
}

// HumanPlayer returns the non-automated player, or nil.
func (that *Game) HumanPlayer() *Player {
	for _, player := range that.Players {
		if !player.IsBot() {
			return player
		}
	}

	return nil
}

func (that *Game) GetRandomMarks() (string, string) {
	if rand.Intn(2) == 0 { //nolint: gosec // it's ok
		return PlayerX, PlayerO
	}
	return PlayerO, PlayerX
}

// OpposingMark returns the other player's mark.
func OpposingMark(currentMark string) string {
	if currentMark == PlayerX {
		return PlayerO
	}
	return PlayerX
}
