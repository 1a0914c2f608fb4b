package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/crea-eci/azzurra/internal/catalog"
	"github.com/crea-eci/azzurra/internal/llm"
	"github.com/crea-eci/azzurra/internal/models"
)

// ErrLLMUnavailable wraps any provider failure during a conversation
// turn. Handlers map it to 503.
var ErrLLMUnavailable = errors.New("llm provider unavailable")

// historyWindow is how many prior turns are forwarded to the model.
const historyWindow = 10

// Retriever is the recipe lookup surface the turn controller needs.
type Retriever interface {
	FindByName(ctx context.Context, name string) []models.RecipeVersion
}

// TurnRequest is one user message with its conversation state. History
// is in chronological order; Discussed holds dish names already
// presented in this conversation, used to vary generic suggestions.
type TurnRequest struct {
	Message               string
	History               []models.ConversationTurn
	Discussed             []string
	DeferredWhileSpeaking bool
}

// TurnResult is the controller's answer for one turn. RecipeTitles are
// the distinct dish titles placed in the model's context;
// DiscussedTitles is the subset of those the reply actually mentions,
// which the caller folds back into its discussed set.
type TurnResult struct {
	Reply           string
	SearchedRecipe  string
	RecipesFound    int
	RecipeTitles    []string
	DiscussedTitles []string
	Usage           models.TokenUsage
}

// ChatService runs conversation turns: mention classification,
// retrieval, prompt assembly, completion, and reply validation.
type ChatService struct {
	retriever Retriever
	llmClient llm.Client
	logger    *slog.Logger
}

// ChatServiceParams configures ChatService.
type ChatServiceParams struct {
	Retriever Retriever
	LLMClient llm.Client
	Logger    *slog.Logger
}

// NewChatService creates a ChatService.
func NewChatService(p ChatServiceParams) *ChatService {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ChatService{
		retriever: p.Retriever,
		llmClient: p.LLMClient,
		logger:    logger,
	}
}

// Turn processes one user message and returns the validated reply.
func (s *ChatService) Turn(ctx context.Context, req TurnRequest) (*TurnResult, error) {
	mention := catalog.Detect(req.Message, catalog.Entries)

	var (
		versions     []models.RecipeVersion
		searched     string
		contextBlock string
	)

	switch mention.Kind {
	case catalog.MentionSpecific:
		searched = mention.Name
		versions = s.retriever.FindByName(ctx, mention.Name)
		contextBlock = FormatRecipeContext(versions, mention.Name)

	case catalog.MentionGeneric:
		exclude := make(map[string]struct{}, len(req.Discussed))
		for _, name := range req.Discussed {
			exclude[name] = struct{}{}
		}

		suggestion := catalog.SuggestDessert(exclude)
		if suggestion == "" {
			contextBlock = contextualBlock
		} else {
			searched = suggestion
			versions = s.retriever.FindByName(ctx, suggestion)
			contextBlock = FormatSuggestionContext(suggestion, versions)
		}

	case catalog.MentionContextual:
		contextBlock = contextualBlock
	}

	if req.DeferredWhileSpeaking {
		contextBlock += deferredBlock
	}

	messages := append(windowHistory(req.History), models.ConversationTurn{
		Role:    models.RoleUser,
		Content: req.Message,
	})

	resp, err := s.llmClient.Complete(ctx, llm.Request{
		System:   SystemPrompt(contextBlock),
		Messages: messages,
	})
	if err != nil {
		s.logger.Error("conversation turn failed", "error", err, "mention", mention.Kind.String())

		return nil, fmt.Errorf("%w: %v", ErrLLMUnavailable, err)
	}

	reply := resp.Reply

	if mention.Kind == catalog.MentionSpecific && len(versions) == 0 && LooksFabricated(reply) {
		s.logger.Warn("reply fabricated recipe content with no records, replaced", "searched", searched)

		reply = safeFallbackReply
	}

	reply, mismatches := ValidateCalories(reply, versions)
	for _, m := range mismatches {
		s.logger.Warn("unresolved calorie mismatch in reply", "searched", searched, "mismatch", m.String())
	}

	titles := uniqueTitles(versions)

	return &TurnResult{
		Reply:           reply,
		SearchedRecipe:  searched,
		RecipesFound:    len(versions),
		RecipeTitles:    titles,
		DiscussedTitles: titlesMentionedIn(reply, titles),
		Usage:           resp.Usage,
	}, nil
}

func windowHistory(history []models.ConversationTurn) []models.ConversationTurn {
	if len(history) <= historyWindow {
		return append([]models.ConversationTurn(nil), history...)
	}

	return append([]models.ConversationTurn(nil), history[len(history)-historyWindow:]...)
}

func uniqueTitles(versions []models.RecipeVersion) []string {
	seen := make(map[string]struct{}, len(versions))

	var titles []string

	for _, v := range versions {
		key := catalog.Normalize(v.Title)
		if _, dup := seen[key]; dup {
			continue
		}

		seen[key] = struct{}{}
		titles = append(titles, v.Title)
	}

	return titles
}

// titlesMentionedIn returns the retrieved titles the reply mentions.
// Only titles that were placed in the model's context qualify; a dish
// the model name-drops without any retrieved record stays out of the
// discussed set so future generic suggestions can still pick it.
func titlesMentionedIn(reply string, titles []string) []string {
	normalized := catalog.Normalize(reply)

	var mentioned []string

	for _, title := range titles {
		if strings.Contains(normalized, catalog.Normalize(title)) {
			mentioned = append(mentioned, title)
		}
	}

	return mentioned
}
