package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crea-eci/azzurra/internal/models"
)

type mockRecipeLister struct {
	listAllFunc func(ctx context.Context) ([]models.RecipeVersion, error)
}

func (m *mockRecipeLister) ListAll(ctx context.Context) ([]models.RecipeVersion, error) {
	return m.listAllFunc(ctx)
}

func yearPtr(v int) *int { return &v }

func TestInsightsServiceFunFacts(t *testing.T) {
	archive := []models.RecipeVersion{
		{Title: "Tiramisù", Cookbook: "Il Cucchiaio d'Argento", Year: yearPtr(2020), Calories: calories(450)},
		{Title: "Tiramisù", Cookbook: "Accademia Italiana della Cucina", Year: yearPtr(1953)},
		{Title: "Tiramisù", Cookbook: "Gualtiero Marchesi", Year: yearPtr(2015)},
		{Title: "Zabaione", Cookbook: "La Scienza in Cucina", Year: yearPtr(1891), Calories: calories(180)},
		{Title: "Cannoli", Cookbook: "Il Talismano della Felicità", Year: yearPtr(1931), Calories: calories(320)},
	}

	t.Run("produces all four facts", func(t *testing.T) {
		repo := &mockRecipeLister{
			listAllFunc: func(_ context.Context) ([]models.RecipeVersion, error) {
				return archive, nil
			},
		}

		facts, err := NewInsightsService(repo).FunFacts(context.Background())
		require.NoError(t, err)
		require.Len(t, facts, 4)

		assert.Equal(t, "La ricetta più antica", facts[0].Title)
		assert.Contains(t, facts[0].Text, "Zabaione")
		assert.Contains(t, facts[0].Text, "1891")

		assert.Equal(t, "Il più ricco", facts[1].Title)
		assert.Contains(t, facts[1].Text, "Tiramisù")
		assert.Contains(t, facts[1].Text, "450")

		assert.Equal(t, "Il più leggero", facts[2].Title)
		assert.Contains(t, facts[2].Text, "Zabaione")

		assert.Equal(t, "Il più documentato", facts[3].Title)
		assert.Contains(t, facts[3].Text, "Tiramisù")
		assert.Contains(t, facts[3].Text, "3")
	})

	t.Run("skips facts with no data", func(t *testing.T) {
		repo := &mockRecipeLister{
			listAllFunc: func(_ context.Context) ([]models.RecipeVersion, error) {
				return []models.RecipeVersion{{Title: "Amaretti", Cookbook: "Artusi"}}, nil
			},
		}

		facts, err := NewInsightsService(repo).FunFacts(context.Background())
		require.NoError(t, err)
		require.Len(t, facts, 1)
		assert.Equal(t, "Il più documentato", facts[0].Title)
	})

	t.Run("empty archive yields no facts", func(t *testing.T) {
		repo := &mockRecipeLister{
			listAllFunc: func(_ context.Context) ([]models.RecipeVersion, error) {
				return nil, nil
			},
		}

		facts, err := NewInsightsService(repo).FunFacts(context.Background())
		require.NoError(t, err)
		assert.Empty(t, facts)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		repo := &mockRecipeLister{
			listAllFunc: func(_ context.Context) ([]models.RecipeVersion, error) {
				return nil, errors.New("connection refused")
			},
		}

		_, err := NewInsightsService(repo).FunFacts(context.Background())
		assert.ErrorContains(t, err, "connection refused")
	})
}
