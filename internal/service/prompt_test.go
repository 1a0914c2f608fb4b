package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crea-eci/azzurra/internal/models"
)

func TestSystemPrompt(t *testing.T) {
	prompt := SystemPrompt("\n\n## EXTRA")

	assert.Contains(t, prompt, "Mi chiamo Azzurra")
	assert.Contains(t, prompt, "## CATALOGO")
	assert.Contains(t, prompt, "Tiramisù")
	assert.True(t, strings.HasSuffix(prompt, "## EXTRA"))
}

func TestFormatRecipeContext(t *testing.T) {
	t.Run("states version count and cookbooks", func(t *testing.T) {
		versions := []models.RecipeVersion{
			{Title: "Tiramisù", Cookbook: "Il Cucchiaio d'Argento", Ingredients: "mascarpone, savoiardi", Calories: calories(450)},
			{Title: "Tiramisù", Cookbook: "Gualtiero Marchesi", Procedure: "Montare i tuorli."},
		}

		block := FormatRecipeContext(versions, "Tiramisù")

		assert.Contains(t, block, "## RICETTA: TIRAMISÙ")
		assert.Contains(t, block, "Ho trovato 2 versioni da questi ricettari: Il Cucchiaio d'Argento, Gualtiero Marchesi")
		assert.Contains(t, block, "Presenta TUTTE le 2 versioni")
	})

	t.Run("partitions versions by calorie availability", func(t *testing.T) {
		versions := []models.RecipeVersion{
			{Title: "Tiramisù", Cookbook: "Il Cucchiaio d'Argento", Calories: calories(450)},
			{Title: "Tiramisù", Cookbook: "Gualtiero Marchesi"},
		}

		block := FormatRecipeContext(versions, "Tiramisù")

		assert.Contains(t, block, "CALORIE DISPONIBILI:\n- Il Cucchiaio d'Argento: 450 kcal")
		assert.Contains(t, block, "SENZA DATI CALORICI:\n- Gualtiero Marchesi")
	})

	t.Run("notes when no version has calories", func(t *testing.T) {
		versions := []models.RecipeVersion{{Title: "Zabaione", Cookbook: "Artusi"}}

		block := FormatRecipeContext(versions, "Zabaione")

		assert.Contains(t, block, "Nessuna versione ha calorie disponibili.")
		assert.Contains(t, block, "Calorie: Non disponibili")
	})

	t.Run("missing fields fall back to non disponibile", func(t *testing.T) {
		versions := []models.RecipeVersion{{Title: "Zabaione", Cookbook: "Artusi", Ingredients: "  "}}

		block := FormatRecipeContext(versions, "Zabaione")

		assert.Contains(t, block, "Ingredienti: Non disponibile")
		assert.Contains(t, block, "Procedimento: Non disponibile")
		assert.Contains(t, block, "Persone: Non specificato")
	})

	t.Run("empty result renders the no-recipe block", func(t *testing.T) {
		block := FormatRecipeContext(nil, "Sachertorte")

		assert.Contains(t, block, noRecipeMarker)
		assert.Contains(t, block, `"Sachertorte"`)
	})
}

func TestFormatSuggestionContext(t *testing.T) {
	versions := []models.RecipeVersion{{Title: "Cannoli", Cookbook: "Il Talismano della Felicità"}}

	block := FormatSuggestionContext("Cannoli", versions)

	assert.Contains(t, block, "## SUGGERIMENTO PER RICHIESTA GENERICA")
	assert.Contains(t, block, `"Cannoli"`)
	assert.Contains(t, block, "## RICETTA: CANNOLI")
}
