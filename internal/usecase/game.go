package usecase

import (
	"context"
	"fmt"

	"github.com/gridplay/tictactoe-engine/internal/entity"
)

type GameUseCase interface {
	GetOrCreatePlayer(ctx context.Context, playerID string) (*entity.Player, error)

	StartGame(ctx context.Context, playerID string) (*entity.Game, []entity.Event, error)
	MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, []entity.Event, error)
	ResetGame(ctx context.Context, playerID string) (*entity.Game, []entity.Event, error)
}

type playerService interface {
	GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error)
}

type gamePlayService interface {
	StartGame(ctx context.Context, playerID string) (*entity.Game, []entity.Event, error)
	MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, []entity.Event, error)
	ResetGame(ctx context.Context, playerID string) (*entity.Game, []entity.Event, error)
}

type gameUseCase struct {
	playerService   playerService
	gamePlayService gamePlayService
}

func NewGameUseCase(playerService playerService, gamePlayService gamePlayService) GameUseCase {
	return &gameUseCase{
		playerService:   playerService,
		gamePlayService: gamePlayService,
	}
}

func (that *gameUseCase) GetOrCreatePlayer(ctx context.Context, playerID string) (*entity.Player, error) {
	player, err := that.playerService.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("could not get or create player: %w", err)
	}

	return player, nil
}

func (that *gameUseCase) StartGame(ctx context.Context, playerID string) (*entity.Game, []entity.Event, error) {
	game, events, err := that.gamePlayService.StartGame(ctx, playerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start game: %w", err)
	}

	return game, events, nil
}

func (that *gameUseCase) MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, []entity.Event, error) {
	game, events, err := that.gamePlayService.MakeTurn(ctx, playerID, cell)
	if err != nil {
		return game, events, fmt.Errorf("failed to make turn: %w", err)
	}

	return game, events, nil
}

func (that *gameUseCase) ResetGame(ctx context.Context, playerID string) (*entity.Game, []entity.Event, error) {
	game, events, err := that.gamePlayService.ResetGame(ctx, playerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to reset game: %w", err)
	}

	return game, events, nil
}
