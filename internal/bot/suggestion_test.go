package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gridplay/tictactoe-engine/internal/config"
	"github.com/gridplay/tictactoe-engine/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(baseURL string) *SuggestionClient {
	return NewSuggestionClient(newTestLogger(), config.Suggestion{
		APIKey:         "test-key",
		BaseURL:        baseURL,
		Model:          "test-model",
		TimeoutSeconds: 5,
	})
}

func completionBody(content string) string {
	return fmt.Sprintf(`{"choices":[{"message":{"content":%q}}]}`, content)
}

func TestSuggestionClient_SuggestMove(t *testing.T) {
	board := [9]string{
		entity.PlayerX, entity.PlayerX, entity.EmptyCell,
		entity.PlayerO, entity.PlayerO, entity.EmptyCell,
		entity.EmptyCell, entity.EmptyCell, entity.EmptyCell,
	}

	t.Run("Accepts a valid suggestion", func(t *testing.T) {
		// Given: a service answering with a valid empty cell
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Then: the request restates the serialized board with deterministic sampling
			var req chatRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "test-model", req.Model)
			assert.Zero(t, req.Temperature)
			assert.Equal(t, "json_object", req.ResponseFormat.Type)
			require.Len(t, req.Messages, 2)
			assert.Contains(t, req.Messages[1].Content, "XX.OO....")
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			fmt.Fprint(w, completionBody(`{"move": 2}`))
		}))
		defer srv.Close()

		// When: asking for a suggestion
		cell, ok := newTestClient(srv.URL).SuggestMove(context.Background(), board, entity.PlayerX, entity.PlayerO)

		// Then: the suggested cell is returned
		require.True(t, ok)
		assert.Equal(t, 2, cell)
	})

	t.Run("Missing credential disables the client", func(t *testing.T) {
		// Given: a client without an API key
		client := NewSuggestionClient(newTestLogger(), config.Suggestion{BaseURL: "http://localhost:0", TimeoutSeconds: 1})

		// When: asking for a suggestion
		_, ok := client.SuggestMove(context.Background(), board, entity.PlayerX, entity.PlayerO)

		// Then: no suggestion, and no request was attempted
		assert.False(t, ok)
	})

	t.Run("Non-success status yields no suggestion", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, ok := newTestClient(srv.URL).SuggestMove(context.Background(), board, entity.PlayerX, entity.PlayerO)
		assert.False(t, ok)
	})

	t.Run("Malformed body yields no suggestion", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{not json`)
		}))
		defer srv.Close()

		_, ok := newTestClient(srv.URL).SuggestMove(context.Background(), board, entity.PlayerX, entity.PlayerO)
		assert.False(t, ok)
	})

	t.Run("Non-JSON completion content yields no suggestion", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, completionBody(`I would play the center.`))
		}))
		defer srv.Close()

		_, ok := newTestClient(srv.URL).SuggestMove(context.Background(), board, entity.PlayerX, entity.PlayerO)
		assert.False(t, ok)
	})

	t.Run("Missing move field yields no suggestion", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, completionBody(`{"cell": 2}`))
		}))
		defer srv.Close()

		_, ok := newTestClient(srv.URL).SuggestMove(context.Background(), board, entity.PlayerX, entity.PlayerO)
		assert.False(t, ok)
	})

	t.Run("Move out of range yields no suggestion", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, completionBody(`{"move": 9}`))
		}))
		defer srv.Close()

		_, ok := newTestClient(srv.URL).SuggestMove(context.Background(), board, entity.PlayerX, entity.PlayerO)
		assert.False(t, ok)
	})

	t.Run("Occupied cell yields no suggestion", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, completionBody(`{"move": 0}`))
		}))
		defer srv.Close()

		_, ok := newTestClient(srv.URL).SuggestMove(context.Background(), board, entity.PlayerX, entity.PlayerO)
		assert.False(t, ok)
	})

	t.Run("Unreachable service yields no suggestion", func(t *testing.T) {
		_, ok := newTestClient("http://127.0.0.1:1").SuggestMove(context.Background(), board, entity.PlayerX, entity.PlayerO)
		assert.False(t, ok)
	})
}

func TestSerializeBoard(t *testing.T) {
	// Given: a board with marks and empty cells
	board := [9]string{
		entity.PlayerX, entity.PlayerX, entity.EmptyCell,
		entity.PlayerO, entity.PlayerO, entity.EmptyCell,
		entity.EmptyCell, entity.EmptyCell, entity.EmptyCell,
	}

	// Then: one character per cell, "." for empty
	assert.Equal(t, "XX.OO....", SerializeBoard(board))
	assert.Equal(t, ".........", SerializeBoard([9]string{}))
}
