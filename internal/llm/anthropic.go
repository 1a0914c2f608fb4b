package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/crea-eci/azzurra/internal/models"
)

var (
	// ErrNoMessages is returned when Complete is called without messages.
	ErrNoMessages = errors.New("llm: no messages in request")
	// ErrEmptyReply is returned when the API response contains no text content.
	ErrEmptyReply = errors.New("llm: empty reply from provider")
)

// Replies are read aloud by the avatar, so they stay short.
const defaultMaxTokens = 400

// AnthropicClient calls the Anthropic Messages API.
type AnthropicClient struct {
	sdk       anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

var _ Client = (*AnthropicClient)(nil)

// AnthropicOption configures the AnthropicClient.
type AnthropicOption func(*AnthropicClient)

// WithModel overrides the default model.
func WithModel(model anthropic.Model) AnthropicOption {
	return func(c *AnthropicClient) {
		c.model = model
	}
}

// WithMaxTokens overrides the reply token cap.
func WithMaxTokens(n int64) AnthropicOption {
	return func(c *AnthropicClient) {
		c.maxTokens = n
	}
}

// NewAnthropicClient creates a client using claude-3-5-haiku by default.
func NewAnthropicClient(apiKey string, opts ...AnthropicOption) *AnthropicClient {
	client := &AnthropicClient{
		sdk:       anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     anthropic.ModelClaude3_5HaikuLatest,
		maxTokens: defaultMaxTokens,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Complete sends the system prompt and message list and returns the
// reply text with usage metadata.
func (c *AnthropicClient) Complete(ctx context.Context, req Request) (*Response, error) {
	if len(req.Messages) == 0 {
		return nil, ErrNoMessages
	}

	messages := make([]anthropic.MessageParam, 0, len(req.Messages))

	for _, turn := range req.Messages {
		block := anthropic.NewTextBlock(turn.Content)
		if turn.Role == models.RoleAssistant {
			messages = append(messages, anthropic.NewAssistantMessage(block))
		} else {
			messages = append(messages, anthropic.NewUserMessage(block))
		}
	}

	msg, err := c.sdk.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    []anthropic.TextBlockParam{{Text: req.System}},
		Messages:  messages,
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic messages: %w", err)
	}

	var reply strings.Builder

	for _, block := range msg.Content {
		reply.WriteString(block.Text)
	}

	if strings.TrimSpace(reply.String()) == "" {
		return nil, ErrEmptyReply
	}

	return &Response{
		Reply: reply.String(),
		Usage: models.TokenUsage{
			InputTokens:  msg.Usage.InputTokens,
			OutputTokens: msg.Usage.OutputTokens,
		},
	}, nil
}
