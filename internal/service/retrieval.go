// Package service implements the conversational core: recipe retrieval,
// prompt assembly, the turn controller, and reply validation.
package service

import (
	"context"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/crea-eci/azzurra/internal/catalog"
	"github.com/crea-eci/azzurra/internal/embeddings"
	"github.com/crea-eci/azzurra/internal/models"
)

// RecipesRepo provides the recipe read operations needed for retrieval.
type RecipesRepo interface {
	FindByTitle(ctx context.Context, name string) ([]models.RecipeVersion, error)
	NearestByEmbedding(ctx context.Context, embedding []float32, limit int) ([]models.RecipeVersion, error)
}

// RetrievalService is the read-only gateway to the recipe store.
//
// Failure policy: provider or datastore errors are logged and reported
// as an empty result set. "No recipes found" is a valid outcome that
// flows into the formatter's no-recipe branch, so the user gets a
// graceful "I don't have that recipe" answer instead of a hard failure.
type RetrievalService struct {
	repo            RecipesRepo
	embeddingClient embeddings.Client
	queryCache      *lru.Cache[string, []float32]
	queryLoadGroup  singleflight.Group
	logger          *slog.Logger
}

// RetrievalServiceParams configures RetrievalService. QueryCache may be
// nil (no caching). EmbeddingClient may be nil; FindSimilar then relies
// on the keyword pass alone.
type RetrievalServiceParams struct {
	Repo            RecipesRepo
	EmbeddingClient embeddings.Client
	QueryCache      *lru.Cache[string, []float32]
	Logger          *slog.Logger
}

// NewRetrievalService creates a RetrievalService.
func NewRetrievalService(p RetrievalServiceParams) *RetrievalService {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &RetrievalService{
		repo:            p.Repo,
		embeddingClient: p.EmbeddingClient,
		queryCache:      p.QueryCache,
		logger:          logger,
	}
}

// FindByName returns all persisted versions of the named dish.
func (s *RetrievalService) FindByName(ctx context.Context, name string) []models.RecipeVersion {
	versions, err := s.repo.FindByTitle(ctx, name)
	if err != nil {
		s.logger.Error("recipe lookup failed", "name", name, "error", err)

		return nil
	}

	s.logger.Debug("recipe lookup", "name", name, "versions", len(versions))

	return versions
}

// FindSimilar returns up to limit recipe versions semantically close to
// queryText. The vector search is always supplemented by a keyword pass
// over the catalog so an exact catalog name surfaces its versions even
// when the embedding model misses them. Results are deduplicated by
// normalized title, keyword hits first.
func (s *RetrievalService) FindSimilar(ctx context.Context, queryText string, limit int) []models.RecipeVersion {
	if limit <= 0 {
		limit = 5
	}

	var merged []models.RecipeVersion

	if m := catalog.Detect(queryText, catalog.Entries); m.Kind == catalog.MentionSpecific {
		merged = append(merged, s.FindByName(ctx, m.Name)...)
	}

	if s.embeddingClient != nil {
		embedding, err := s.queryEmbedding(ctx, queryText)
		if err != nil {
			s.logger.Error("similarity search: create embedding failed", "error", err)
		} else {
			nearest, err := s.repo.NearestByEmbedding(ctx, embedding, limit)
			if err != nil {
				s.logger.Error("similarity search: nearest failed", "error", err)
			} else {
				merged = append(merged, nearest...)
			}
		}
	}

	return dedupeByTitle(merged, limit)
}

func dedupeByTitle(versions []models.RecipeVersion, limit int) []models.RecipeVersion {
	seen := make(map[string]struct{}, len(versions))

	var out []models.RecipeVersion

	for _, v := range versions {
		key := catalog.Normalize(v.Title)
		if _, dup := seen[key]; dup {
			continue
		}

		seen[key] = struct{}{}

		out = append(out, v)
		if len(out) == limit {
			break
		}
	}

	return out
}

// queryEmbedding returns the embedding for query, via the LRU cache and
// a singleflight group so concurrent identical queries embed once.
func (s *RetrievalService) queryEmbedding(ctx context.Context, query string) ([]float32, error) {
	if s.queryCache == nil {
		return s.embeddingClient.CreateEmbedding(ctx, query)
	}

	if vec, ok := s.queryCache.Get(query); ok {
		return vec, nil
	}

	val, err, _ := s.queryLoadGroup.Do(query, func() (any, error) {
		vec, loadErr := s.embeddingClient.CreateEmbedding(ctx, query)
		if loadErr != nil {
			return nil, fmt.Errorf("create embedding: %w", loadErr)
		}

		s.queryCache.Add(query, vec)

		return vec, nil
	})
	if err != nil {
		return nil, fmt.Errorf("query embedding: %w", err)
	}

	return val.([]float32), nil
}
