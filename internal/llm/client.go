// Package llm provides the chat-completion client used for conversation
// turns.
package llm

import (
	"context"

	"github.com/crea-eci/azzurra/internal/models"
)

// Request is one chat completion call: a system prompt plus the ordered
// message list (bounded history and the new user message, windowed by
// the caller).
type Request struct {
	System   string
	Messages []models.ConversationTurn
}

// Response is the provider reply with usage metadata.
type Response struct {
	Reply string
	Usage models.TokenUsage
}

// Client calls a chat completion endpoint. Provider failures surface as
// opaque errors; the turn controller maps them to its own taxonomy.
type Client interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}
