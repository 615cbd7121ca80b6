package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gridplay/tictactoe-engine/internal/config"
	"github.com/gridplay/tictactoe-engine/internal/entity"
)

const emptyCellChar = "."

const systemInstruction = `You are a tic-tac-toe move advisor. ` +
	`Respond with a single JSON object of the shape {"move": <integer 0-8>} and nothing else.`

// SuggestionClient asks a chat-completion service for one move. Every failure
// path - missing credential, transport error, bad status, malformed body, move
// out of range or pointing at an occupied cell - resolves to "no suggestion";
// no error crosses this boundary.
type SuggestionClient struct {
	logger *slog.Logger
	client *http.Client

	apiKey  string
	baseURL string
	model   string
}

func NewSuggestionClient(logger *slog.Logger, conf config.Suggestion) *SuggestionClient {
	return &SuggestionClient{
		logger: logger.With("component", "suggestion"),
		client: &http.Client{
			Timeout: time.Duration(conf.TimeoutSeconds) * time.Second,
		},
		apiKey:  conf.APIKey,
		baseURL: strings.TrimSuffix(conf.BaseURL, "/"),
		model:   conf.Model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
	Messages       []chatMessage  `json:"messages"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type movePayload struct {
	Move *int `json:"move"`
}

// SuggestMove returns a suggested empty-cell index and true, or false when no
// usable suggestion could be obtained.
func (that *SuggestionClient) SuggestMove(ctx context.Context, board [9]string, actingMark, opposingMark string) (int, bool) {
	if that.apiKey == "" {
		return 0, false
	}

	body, err := json.Marshal(chatRequest{
		Model:          that.model,
		Temperature:    0,
		ResponseFormat: responseFormat{Type: "json_object"},
		Messages: []chatMessage{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: buildPrompt(board, actingMark, opposingMark)},
		},
	})
	if err != nil {
		that.logger.Warn("failed to marshal suggestion request", "error", err)
		return 0, false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, that.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		that.logger.Warn("failed to build suggestion request", "error", err)
		return 0, false
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+that.apiKey)

	resp, err := that.client.Do(req)
	if err != nil {
		that.logger.Warn("suggestion request failed", "error", err)
		return 0, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		that.logger.Warn("suggestion request returned non-success status", "status", resp.StatusCode)
		return 0, false
	}

	var completion chatResponse
	if err = json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		that.logger.Warn("failed to decode suggestion response", "error", err)
		return 0, false
	}

	if len(completion.Choices) == 0 {
		that.logger.Warn("suggestion response has no choices")
		return 0, false
	}

	var payload movePayload
	if err = json.Unmarshal([]byte(completion.Choices[0].Message.Content), &payload); err != nil || payload.Move == nil {
		that.logger.Warn("suggestion content is not a move object", "content", completion.Choices[0].Message.Content)
		return 0, false
	}

	move := *payload.Move
	if move < 0 || move >= len(board) {
		that.logger.Warn("suggested move out of range", "move", move)
		return 0, false
	}

	if board[move] != entity.EmptyCell {
		that.logger.Warn("suggested move points at an occupied cell", "move", move)
		return 0, false
	}

	that.logger.Debug("suggestion accepted", "move", move)

	return move, true
}

// SerializeBoard renders the board as 9 characters, one per cell, with "." for
// an empty cell.
func SerializeBoard(board [9]string) string {
	var sb strings.Builder
	for _, cell := range board {
		if cell == entity.EmptyCell {
			sb.WriteString(emptyCellChar)
			continue
		}
		sb.WriteString(cell)
	}

	return sb.String()
}

func buildPrompt(board [9]string, actingMark, opposingMark string) string {
	return fmt.Sprintf(
		"The board is %q, read left to right, top to bottom, with %q meaning an empty cell. "+
			"You play %q, your opponent plays %q. "+
			"Pick the first rule that applies: complete a line of three %q; "+
			"otherwise block a line where %q needs one cell to win; "+
			"otherwise take the center (index 4); "+
			"otherwise take an empty corner (0, 2, 6 or 8); "+
			"otherwise take an empty edge (1, 3, 5 or 7). "+
			"Answer with the cell index of your move.",
		SerializeBoard(board), emptyCellChar, actingMark, opposingMark, actingMark, opposingMark,
	)
}
