package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/crea-eci/azzurra/internal/models"
	"github.com/crea-eci/azzurra/internal/service"
)

// maxMessageRunes caps the user message length.
const maxMessageRunes = 2000

// ChatService runs one conversation turn.
type ChatService interface {
	Turn(ctx context.Context, req service.TurnRequest) (*service.TurnResult, error)
}

// ChatHandler handles conversation turn requests.
type ChatHandler struct {
	service ChatService
}

// NewChatHandler creates a chat handler.
func NewChatHandler(service ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// ChatRequest is the body for POST /v1/chat. The client owns all
// conversation state and re-submits it each turn.
type ChatRequest struct {
	Message          string                    `json:"message"`
	History          []models.ConversationTurn `json:"history,omitempty"`
	DiscussedRecipes []string                  `json:"discussedRecipes,omitempty"`
	DeferredFollowUp bool                      `json:"deferredFollowUp,omitempty"`
}

// ChatResponse is the reply for one turn.
type ChatResponse struct {
	Reply           string            `json:"reply"`
	SearchedRecipe  string            `json:"searchedRecipe,omitempty"`
	RecipesFound    int               `json:"recipesFound"`
	RecipeTitles    []string          `json:"recipeTitles,omitempty"`
	DiscussedTitles []string          `json:"discussedTitles,omitempty"`
	Usage           models.TokenUsage `json:"usage"`
}

// Turn handles POST /v1/chat.
func (h *ChatHandler) Turn(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		RespondBadRequest(w, "Invalid request body")

		return
	}

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		RespondBadRequest(w, "message is required")

		return
	}

	if len([]rune(req.Message)) > maxMessageRunes {
		RespondBadRequest(w, "message is too long")

		return
	}

	result, err := h.service.Turn(r.Context(), service.TurnRequest{
		Message:               req.Message,
		History:               req.History,
		Discussed:             req.DiscussedRecipes,
		DeferredWhileSpeaking: req.DeferredFollowUp,
	})
	if err != nil {
		if errors.Is(err, service.ErrLLMUnavailable) {
			RespondServiceUnavailable(w, "The conversation service is temporarily unavailable")

			return
		}

		RespondInternalServerError(w, "Conversation turn failed")

		return
	}

	RespondSuccess(w, http.StatusOK, ChatResponse{
		Reply:           result.Reply,
		SearchedRecipe:  result.SearchedRecipe,
		RecipesFound:    result.RecipesFound,
		RecipeTitles:    result.RecipeTitles,
		DiscussedTitles: result.DiscussedTitles,
		Usage:           result.Usage,
	})
}
