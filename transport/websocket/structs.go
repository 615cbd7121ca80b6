package websocket

import (
	"encoding/json"

	"github.com/gridplay/tictactoe-engine/internal/entity"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	Player *entity.Player `json:"player,omitempty"`
	Cell   *int           `json:"cell,omitempty"`
}

type ResponsePayload struct {
	Player *entity.Player `json:"player,omitempty"`
	Game   *entity.Game   `json:"game,omitempty"`
	Events []entity.Event `json:"events,omitempty"`
	Error  string         `json:"error,omitempty"`
}
