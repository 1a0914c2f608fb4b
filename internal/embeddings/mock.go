package embeddings

import (
	"context"
	"crypto/sha256"
	"math"
)

// MockClient generates deterministic embeddings from the input text
// hash. Used in tests and when no API key is configured locally.
type MockClient struct {
	dimensions int
}

var _ Client = (*MockClient)(nil)

// NewMockClient creates a mock embedding client with the default
// dimensions (1536, matching text-embedding-3-small).
func NewMockClient() *MockClient {
	return &MockClient{dimensions: defaultDimensions}
}

// NewMockClientWithDimensions creates a mock client with custom dimensions.
func NewMockClientWithDimensions(dimensions int) *MockClient {
	return &MockClient{dimensions: dimensions}
}

// CreateEmbedding returns a unit-length vector derived from the text hash.
func (c *MockClient) CreateEmbedding(_ context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, ErrEmptyInput
	}

	hash := sha256.Sum256([]byte(text))
	embedding := make([]float32, c.dimensions)

	for i := range embedding {
		embedding[i] = (float32(hash[i%len(hash)]) / 127.5) - 1.0
	}

	return normalizeVector(embedding), nil
}

func normalizeVector(v []float32) []float32 {
	var sum float64
	for _, val := range v {
		sum += float64(val * val)
	}

	magnitude := float32(math.Sqrt(sum))
	if magnitude == 0 {
		return v
	}

	for i := range v {
		v[i] /= magnitude
	}

	return v
}
