// Package embeddings provides text-embedding clients for semantic recipe
// search. The stored recipe vectors were generated with
// text-embedding-3-small, so every query must use the same model.
package embeddings

import "context"

// Client generates embedding vectors for query and import text.
type Client interface {
	// CreateEmbedding returns the embedding vector for the given text.
	// The returned slice length equals the configured dimensions.
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)
}
