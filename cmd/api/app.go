package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crea-eci/azzurra/internal/api/handlers"
	"github.com/crea-eci/azzurra/internal/api/middleware"
	"github.com/crea-eci/azzurra/internal/avatar"
	"github.com/crea-eci/azzurra/internal/config"
	"github.com/crea-eci/azzurra/internal/embeddings"
	"github.com/crea-eci/azzurra/internal/llm"
	"github.com/crea-eci/azzurra/internal/repository"
	"github.com/crea-eci/azzurra/internal/service"
	"github.com/crea-eci/azzurra/internal/speech"
)

// App holds all server dependencies and coordinates startup and shutdown.
type App struct {
	cfg    *config.Config
	db     *pgxpool.Pool
	server *http.Server
}

// NewApp builds and wires all components. It does not start the HTTP
// server; call Run to start and block until shutdown or failure.
func NewApp(cfg *config.Config, db *pgxpool.Pool) (*App, error) {
	recipesRepo := repository.NewRecipesRepository(db)
	experiencesRepo := repository.NewExperiencesRepository(db)

	var embeddingClient embeddings.Client
	if cfg.OpenAIAPIKey != "" {
		embeddingClient = embeddings.NewOpenAIClient(cfg.OpenAIAPIKey)
		slog.Info("semantic search enabled", "embedding_model", "text-embedding-3-small")
	} else {
		slog.Info("semantic search disabled (OPENAI_API_KEY not set), keyword lookup only")
	}

	queryCache, err := lru.New[string, []float32](cfg.QueryEmbeddingCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create query embedding cache: %w", err)
	}

	retrievalService := service.NewRetrievalService(service.RetrievalServiceParams{
		Repo:            recipesRepo,
		EmbeddingClient: embeddingClient,
		QueryCache:      queryCache,
		Logger:          slog.Default(),
	})

	var chatHandler *handlers.ChatHandler

	if cfg.AnthropicAPIKey != "" {
		chatService := service.NewChatService(service.ChatServiceParams{
			Retriever: retrievalService,
			LLMClient: llm.NewAnthropicClient(cfg.AnthropicAPIKey),
			Logger:    slog.Default(),
		})
		chatHandler = handlers.NewChatHandler(chatService)
	} else {
		slog.Warn("conversation endpoint disabled (ANTHROPIC_API_KEY not set)")
	}

	var speechHandler *handlers.SpeechHandler
	if cfg.OpenAIAPIKey != "" {
		speechHandler = handlers.NewSpeechHandler(
			speech.NewOpenAISynthesizer(cfg.OpenAIAPIKey),
			speech.NewOpenAITranscriber(cfg.OpenAIAPIKey),
		)
	}

	var avatarHandler *handlers.AvatarHandler
	if cfg.AvatarAPIKey != "" {
		avatarHandler = handlers.NewAvatarHandler(avatar.NewClient(avatar.ClientParams{
			BaseURL:  cfg.AvatarBaseURL,
			APIKey:   cfg.AvatarAPIKey,
			AvatarID: cfg.AvatarID,
		}))
	} else {
		slog.Warn("avatar session endpoint disabled (AVATAR_API_KEY not set)")
	}

	experiencesService := service.NewExperiencesService(service.ExperiencesServiceParams{
		Repo:   experiencesRepo,
		Logger: slog.Default(),
	})
	statsService := service.NewStatsService(service.StatsServiceParams{Repo: experiencesRepo})

	server := newHTTPServer(cfg, serverHandlers{
		health:      handlers.NewHealthHandler(db),
		chat:        chatHandler,
		speech:      speechHandler,
		avatar:      avatarHandler,
		recipes:     handlers.NewRecipesHandler(retrievalService),
		experiences: handlers.NewExperiencesHandler(experiencesService),
		stats:       handlers.NewStatsHandler(statsService),
		insights:    handlers.NewInsightsHandler(service.NewInsightsService(recipesRepo)),
	})

	return &App{cfg: cfg, db: db, server: server}, nil
}

type serverHandlers struct {
	health      *handlers.HealthHandler
	chat        *handlers.ChatHandler
	speech      *handlers.SpeechHandler
	avatar      *handlers.AvatarHandler
	recipes     *handlers.RecipesHandler
	experiences *handlers.ExperiencesHandler
	stats       *handlers.StatsHandler
	insights    *handlers.InsightsHandler
}

// newHTTPServer builds the HTTP server and muxes (no auth on /health,
// API key on /v1/). Handlers for unconfigured providers are nil and
// their routes are not registered.
func newHTTPServer(cfg *config.Config, h serverHandlers) *http.Server {
	public := http.NewServeMux()
	public.HandleFunc("GET /health", h.health.Check)
	public.HandleFunc("GET /health/ready", h.health.Ready)

	protected := http.NewServeMux()

	if h.chat != nil {
		protected.HandleFunc("POST /v1/chat", h.chat.Turn)
	}

	if h.speech != nil {
		protected.HandleFunc("POST /v1/tts", h.speech.Synthesize)
		protected.HandleFunc("POST /v1/stt", h.speech.Transcribe)
	}

	if h.avatar != nil {
		protected.HandleFunc("POST /v1/avatar/session", h.avatar.CreateSession)
	}

	protected.HandleFunc("POST /v1/recipes/search", h.recipes.Search)

	protected.HandleFunc("POST /v1/experiences", h.experiences.Create)
	protected.HandleFunc("GET /v1/experiences", h.experiences.List)

	protected.HandleFunc("GET /v1/stats", h.stats.Dashboard)
	protected.HandleFunc("GET /v1/analytics/conversations", h.stats.ConversationAnalytics)
	protected.HandleFunc("GET /v1/fun-facts", h.insights.FunFacts)

	// CORS wraps Auth so OPTIONS preflight requests bypass authentication.
	protectedChain := middleware.Auth(cfg.APIKey)(protected)
	protectedChain = middleware.CORS(protectedChain)

	mux := http.NewServeMux()
	mux.Handle("/v1/", protectedChain)
	mux.Handle("/", public)

	handler := middleware.MaxBody(cfg.MaxRequestBodyBytes)(mux)
	handler = middleware.Logging(handler)
	handler = middleware.RequestID(handler)

	const (
		readTimeout  = 30 * time.Second
		writeTimeout = 60 * time.Second
		idleTimeout  = 60 * time.Second
	)

	return &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
}

// Run starts the HTTP server and blocks until ctx is cancelled (e.g.
// signal) or the server fails. Caller should then call Shutdown.
func (a *App) Run(ctx context.Context) error {
	runErr := make(chan error, 1)

	go func() {
		slog.Info("Starting server", "port", a.cfg.Port)

		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr <- fmt.Errorf("server: %w", err)
		}
	}()

	select {
	case err := <-runErr:
		return err
	case <-ctx.Done():
		return nil
	}
}

// Shutdown stops the HTTP server. Call after Run returns.
func (a *App) Shutdown(ctx context.Context) error {
	if err := a.server.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
