package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crea-eci/azzurra/internal/models"
)

func calories(v float64) *float64 { return &v }

func TestValidateCalories(t *testing.T) {
	t.Run("within tolerance passes unchanged", func(t *testing.T) {
		versions := []models.RecipeVersion{{Cookbook: "Artusi", Calories: calories(230)}}

		reply, mismatches := ValidateCalories("Questa versione ha circa 220 calorie per porzione.", versions)

		assert.Equal(t, "Questa versione ha circa 220 calorie per porzione.", reply)
		assert.Empty(t, mismatches)
	})

	t.Run("single candidate rewrites out-of-tolerance figure", func(t *testing.T) {
		versions := []models.RecipeVersion{{Cookbook: "Artusi", Calories: calories(400)}}

		reply, mismatches := ValidateCalories("Il tiramisù ha 220 kcal a porzione.", versions)

		assert.Equal(t, "Il tiramisù ha 400 kcal a porzione.", reply)
		assert.Empty(t, mismatches)
	})

	t.Run("multiple candidates leave reply unchanged and report mismatch", func(t *testing.T) {
		versions := []models.RecipeVersion{
			{Cookbook: "Artusi", Calories: calories(400)},
			{Cookbook: "Cucchiaio d'Argento", Calories: calories(350)},
		}

		reply, mismatches := ValidateCalories("Ha 220 calorie.", versions)

		assert.Equal(t, "Ha 220 calorie.", reply)
		assert.Len(t, mismatches, 1)
		assert.Equal(t, float64(220), mismatches[0].Mentioned)
		assert.ElementsMatch(t, []float64{400, 350}, mismatches[0].Candidates)
	})

	t.Run("figure matching any of several candidates passes", func(t *testing.T) {
		versions := []models.RecipeVersion{
			{Cookbook: "Artusi", Calories: calories(400)},
			{Cookbook: "Cucchiaio d'Argento", Calories: calories(350)},
		}

		reply, mismatches := ValidateCalories("La versione dell'Artusi ha 395 kcal.", versions)

		assert.Equal(t, "La versione dell'Artusi ha 395 kcal.", reply)
		assert.Empty(t, mismatches)
	})

	t.Run("no calorie data in versions skips validation", func(t *testing.T) {
		versions := []models.RecipeVersion{{Cookbook: "Artusi"}}

		reply, mismatches := ValidateCalories("Dicono abbia 9999 calorie, ma non ho dati.", versions)

		assert.Equal(t, "Dicono abbia 9999 calorie, ma non ho dati.", reply)
		assert.Empty(t, mismatches)
	})

	t.Run("reply without calorie figures passes", func(t *testing.T) {
		versions := []models.RecipeVersion{{Cookbook: "Artusi", Calories: calories(400)}}

		reply, mismatches := ValidateCalories("Il tiramisù nasce in Veneto.", versions)

		assert.Equal(t, "Il tiramisù nasce in Veneto.", reply)
		assert.Empty(t, mismatches)
	})

	t.Run("every figure is checked independently", func(t *testing.T) {
		versions := []models.RecipeVersion{{Cookbook: "Artusi", Calories: calories(400)}}

		reply, _ := ValidateCalories("Una porzione ha 398 kcal, due porzioni circa 220 kcal.", versions)

		assert.Equal(t, "Una porzione ha 398 kcal, due porzioni circa 400 kcal.", reply)
	})
}

func TestLooksFabricated(t *testing.T) {
	t.Run("ingredient talk without records is fabrication", func(t *testing.T) {
		assert.True(t, LooksFabricated("Gli ingredienti sono farina, uova e zucchero."))
	})

	t.Run("procedure talk without records is fabrication", func(t *testing.T) {
		assert.True(t, LooksFabricated("Il procedimento prevede una lunga lievitazione."))
	})

	t.Run("calorie figure without records is fabrication", func(t *testing.T) {
		assert.True(t, LooksFabricated("Ha circa 300 kcal a porzione."))
	})

	t.Run("honest refusal is not fabrication", func(t *testing.T) {
		assert.False(t, LooksFabricated("Mi dispiace, non ho questa ricetta nel mio archivio."))
	})
}
