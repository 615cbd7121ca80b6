package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gridplay/tictactoe-engine/internal/apperror"
	"github.com/gridplay/tictactoe-engine/internal/entity"
)

var errNotConnected = errors.New("player is not connected")

func (that *Server) handleConnect(ctx context.Context, sess *session, msg *Message) error {
	var payload RequestPayload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}

	var playerID string
	if payload.Player != nil {
		playerID = payload.Player.ID
	}

	player, err := that.uGame.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		return fmt.Errorf("failed to get or create player: %w", err)
	}

	sess.playerID = player.ID

	if playerID == player.ID {
		that.logger.Info("player connected", "playerID", player.ID)
	} else {
		that.logger.Info("registered new player", "playerID", player.ID)
	}

	return that.sendMessage(sess, msg.Action, ResponsePayload{Player: player})
}

func (that *Server) handleNewGame(ctx context.Context, sess *session, msg *Message) error {
	if sess.playerID == "" {
		return that.sendMessage(sess, msg.Action, ResponsePayload{Error: errNotConnected.Error()})
	}

	game, events, err := that.uGame.StartGame(ctx, sess.playerID)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	return that.sendMessage(sess, msg.Action, ResponsePayload{Game: game, Events: events})
}

// handleGameTurn applies the human move. A rejected move (occupied cell, out
// of turn, finished game, decision pending) is answered with the unchanged
// game state and an error string; the connection stays up.
func (that *Server) handleGameTurn(ctx context.Context, sess *session, msg *Message) error {
	if sess.playerID == "" {
		return that.sendMessage(sess, msg.Action, ResponsePayload{Error: errNotConnected.Error()})
	}

	var payload RequestPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payload.Cell == nil {
		return that.sendMessage(sess, msg.Action, ResponsePayload{Error: "cell is required"})
	}

	game, events, err := that.uGame.MakeTurn(ctx, sess.playerID, *payload.Cell)
	if err != nil {
		if isRejectedMove(err) {
			return that.sendMessage(sess, msg.Action, ResponsePayload{Game: game, Error: err.Error()})
		}
		return fmt.Errorf("failed to make turn: %w", err)
	}

	return that.sendMessage(sess, msg.Action, ResponsePayload{Game: game, Events: events})
}

func (that *Server) handleGameReset(ctx context.Context, sess *session, msg *Message) error {
	if sess.playerID == "" {
		return that.sendMessage(sess, msg.Action, ResponsePayload{Error: errNotConnected.Error()})
	}

	game, events, err := that.uGame.ResetGame(ctx, sess.playerID)
	if err != nil {
		return fmt.Errorf("failed to reset game: %w", err)
	}

	return that.sendMessage(sess, msg.Action, ResponsePayload{Game: game, Events: events})
}

// isRejectedMove separates no-op move rejections from real failures.
func isRejectedMove(err error) bool {
	return errors.Is(err, apperror.ErrNotYourTurn) ||
		errors.Is(err, apperror.ErrCellOccupied) ||
		errors.Is(err, apperror.ErrGameFinished) ||
		errors.Is(err, apperror.ErrDecisionPending) ||
		errors.Is(err, apperror.ErrNoActiveGames) ||
		errors.Is(err, entity.ErrInvalidCell)
}
