package models

// Role identifies the author of a conversation turn.
type Role string

// Conversation roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn is one message of the caller-supplied history. The
// server holds no conversation state; the browser owns the history and
// re-submits it on every request.
type ConversationTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// TokenUsage is the usage metadata reported by the LLM provider.
type TokenUsage struct {
	InputTokens  int64 `json:"inputTokens"`
	OutputTokens int64 `json:"outputTokens"`
}
