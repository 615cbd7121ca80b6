package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gridplay/tictactoe-engine/internal/apperror"
	"github.com/gridplay/tictactoe-engine/internal/bot"
	"github.com/gridplay/tictactoe-engine/internal/entity"
)

var ErrBotNotFound = errors.New("bot player not found")

type BotService interface {
	MakeTurn(ctx context.Context, game *entity.Game) ([]entity.Event, error)
}

type movePolicy interface {
	ChooseMove(ctx context.Context, board [9]string, actingMark, opposingMark string) (int, error)
}

type botService struct {
	logger      *slog.Logger
	gameService GameService
	policy      movePolicy
}

func NewBotService(logger *slog.Logger, gameService GameService, policy movePolicy) BotService {
	return &botService{
		logger:      logger.With("component", "bot-service"),
		gameService: gameService,
		policy:      policy,
	}
}

// MakeTurn runs one automated move. The Deciding flag is set for the duration
// of the policy call so concurrent human moves and re-entrant requests are
// rejected, and the move is tagged with the board generation it was issued
// against: if the stored game moved on (a reset arrived while the decision was
// in flight), the result is discarded instead of applied.
func (that *botService) MakeTurn(ctx context.Context, game *entity.Game) ([]entity.Event, error) {
	log := that.logger.With("gameID", game.ID)

	botPlayer := game.BotPlayer()
	if botPlayer == nil {
		return nil, ErrBotNotFound
	}

	if !game.IsOngoing() {
		return nil, apperror.ErrGameFinished
	}

	if game.Turn != botPlayer.Mark {
		return nil, apperror.ErrNotYourTurn
	}

	if game.Deciding {
		return nil, apperror.ErrDecisionPending
	}

	humanMark := entity.OpposingMark(botPlayer.Mark)

	game.Deciding = true
	if err := that.gameService.UpdateGame(ctx, game); err != nil {
		game.Deciding = false
		return nil, fmt.Errorf("failed to mark game as deciding: %w", err)
	}

	generation := game.Generation

	cell, policyErr := that.policy.ChooseMove(ctx, game.Board, botPlayer.Mark, humanMark)

	current, err := that.gameService.GetGameByID(ctx, game.ID)
	if err != nil {
		game.Deciding = false
		return nil, fmt.Errorf("failed to reload game after decision: %w", err)
	}

	if current.Generation != generation {
		log.Info("discarding stale automated move", "issued_generation", generation, "current_generation", current.Generation)
		*game = *current

		return nil, nil
	}

	current.Deciding = false

	if policyErr != nil {
		if err = that.gameService.UpdateGame(ctx, current); err != nil {
			log.Error("failed to clear deciding flag", "error", err)
		}
		*game = *current

		return nil, fmt.Errorf("opponent policy failed: %w", policyErr)
	}

	strongBlock := bot.IsStrongBlock(current.Board, cell, humanMark)

	if err = current.MakeTurn(botPlayer.Mark, cell); err != nil {
		if updateErr := that.gameService.UpdateGame(ctx, current); updateErr != nil {
			log.Error("failed to clear deciding flag", "error", updateErr)
		}
		*game = *current

		return nil, fmt.Errorf("bot failed to make turn: %w", err)
	}

	if err = that.gameService.UpdateGame(ctx, current); err != nil {
		return nil, fmt.Errorf("failed to update game after bot turn: %w", err)
	}

	*game = *current

	return that.turnEvents(game, botPlayer.Mark, humanMark, cell, strongBlock), nil
}

// turnEvents narrates the bot's move from the human player's viewpoint.
func (that *botService) turnEvents(game *entity.Game, botMark, humanMark string, cell int, strongBlock bool) []entity.Event {
	var events []entity.Event

	if strongBlock {
		events = append(events, entity.NewEvent(entity.EventStrongBlock, botMark, cell))
	}

	switch {
	case game.Winner == botMark:
		events = append(events, entity.NewEvent(entity.EventLost, humanMark, -1))
	case game.Winner == humanMark:
		events = append(events, entity.NewEvent(entity.EventWon, humanMark, -1))
	case game.IsTie():
		events = append(events, entity.NewEvent(entity.EventDraw, "", -1))
	default:
		events = append(events, entity.NewEvent(entity.EventTurnStarted, humanMark, -1))
	}

	return events
}
