package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gridplay/tictactoe-engine/internal/apperror"
	"github.com/gridplay/tictactoe-engine/internal/entity"
)

type GamePlayService interface {
	StartGame(ctx context.Context, playerID string) (*entity.Game, []entity.Event, error)
	MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, []entity.Event, error)
	ResetGame(ctx context.Context, playerID string) (*entity.Game, []entity.Event, error)
}

type gamePlayService struct {
	logger *slog.Logger

	playerService PlayerService
	gameService   GameService
	botService    BotService
}

func NewGamePlayService(logger *slog.Logger, playerService PlayerService, gameService GameService, botService BotService) GamePlayService {
	return &gamePlayService{
		logger:        logger.With("component", "gameplay"),
		playerService: playerService,
		gameService:   gameService,
		botService:    botService,
	}
}

// StartGame returns the player's ongoing game, creating one against the bot
// when the player has none. A finished game is kept only so it can still be
// reset; starting a new one retires it from storage. Marks are assigned
// randomly at creation; if the bot draws X it moves immediately.
func (that *gamePlayService) StartGame(ctx context.Context, playerID string) (*entity.Game, []entity.Event, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID != "" {
		game, err := that.gameService.GetGameByID(ctx, player.GameID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get game by id: %w", err)
		}

		if game.IsOngoing() {
			return game, []entity.Event{entity.NewEvent(entity.EventTurnStarted, game.Turn, -1)}, nil
		}

		if err = that.gameService.DeleteGame(ctx, game.ID); err != nil {
			return nil, nil, fmt.Errorf("failed to delete finished game: %w", err)
		}

		that.logger.Info("finished game retired", "gameID", game.ID)
	}

	game, err := that.gameService.CreateGame(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create game: %w", err)
	}

	botPlayer := entity.NewBotPlayer(game.ID)

	playerMark, botMark := game.GetRandomMarks()
	player.Mark = playerMark
	player.GameID = game.ID
	botPlayer.Mark = botMark

	if err = that.playerService.UpdatePlayer(ctx, player); err != nil {
		return nil, nil, fmt.Errorf("failed to update player: %w", err)
	}

	if err = that.playerService.UpdatePlayer(ctx, botPlayer); err != nil {
		return nil, nil, fmt.Errorf("failed to update bot player: %w", err)
	}

	game.Players = []*entity.Player{player, botPlayer}
	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, nil, fmt.Errorf("failed to update game: %w", err)
	}

	events := []entity.Event{entity.NewEvent(entity.EventTurnStarted, game.Turn, -1)}

	if botMark == entity.PlayerX {
		botEvents, err := that.botService.MakeTurn(ctx, game)
		if err != nil {
			return nil, nil, fmt.Errorf("bot failed to make first turn: %w", err)
		}
		events = append(events, botEvents...)
	}

	return game, events, nil
}

// MakeTurn applies the human move and, while the game stays ongoing, the
// automated reply. A move arriving while the opponent policy is deciding is
// rejected without touching the board.
func (that *gamePlayService) MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, []entity.Event, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	game, err := that.gameService.GetGameByID(ctx, player.GameID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if game.Deciding {
		return game, nil, apperror.ErrDecisionPending
	}

	if err = game.MakeTurn(player.Mark, cell); err != nil {
		return game, nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, nil, fmt.Errorf("failed to update game: %w", err)
	}

	events := that.humanTurnEvents(game, player.Mark)

	botPlayer := game.BotPlayer()
	if game.IsOngoing() && botPlayer != nil && game.Turn == botPlayer.Mark {
		botEvents, err := that.botService.MakeTurn(ctx, game)
		if err != nil {
			return nil, nil, fmt.Errorf("bot failed to make turn: %w", err)
		}
		events = append(events, botEvents...)
	}

	return game, events, nil
}

// ResetGame returns the session to its initial state. Valid in any state,
// including while an automated decision is in flight: the reset bumps the
// board generation, so the in-flight result is discarded on arrival.
func (that *gamePlayService) ResetGame(ctx context.Context, playerID string) (*entity.Game, []entity.Event, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	game, err := that.gameService.GetGameByID(ctx, player.GameID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	game.Reset()
	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, nil, fmt.Errorf("failed to update game: %w", err)
	}

	that.logger.Info("game reset", "gameID", game.ID, "generation", game.Generation)

	events := []entity.Event{entity.NewEvent(entity.EventTurnStarted, game.Turn, -1)}

	botPlayer := game.BotPlayer()
	if botPlayer != nil && botPlayer.Mark == entity.PlayerX {
		botEvents, err := that.botService.MakeTurn(ctx, game)
		if err != nil {
			return nil, nil, fmt.Errorf("bot failed to make first turn: %w", err)
		}
		events = append(events, botEvents...)
	}

	return game, events, nil
}

// humanTurnEvents narrates the outcome of the human's own move.
func (that *gamePlayService) humanTurnEvents(game *entity.Game, playerMark string) []entity.Event {
	switch {
	case game.Winner == playerMark:
		return []entity.Event{entity.NewEvent(entity.EventWon, playerMark, -1)}
	case game.IsTie():
		return []entity.Event{entity.NewEvent(entity.EventDraw, "", -1)}
	case game.IsFinished():
		return []entity.Event{entity.NewEvent(entity.EventLost, playerMark, -1)}
	default:
		return []entity.Event{entity.NewEvent(entity.EventTurnStarted, game.Turn, -1)}
	}
}
