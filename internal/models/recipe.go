// Package models defines the data structures shared between repositories,
// services, and handlers.
package models

import "github.com/google/uuid"

// RecipeVersion is one row of the recipes table: one (dish, cookbook)
// pair. Several versions may share the same title; the store enforces no
// uniqueness beyond the natural (title, cookbook, year) grouping. Rows
// are inserted once by the import CLI and never updated by the live path.
type RecipeVersion struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Family        string    `json:"family,omitempty"`
	Cookbook      string    `json:"cookbook"`
	Year          *int      `json:"year,omitempty"`
	Ingredients   string    `json:"ingredients,omitempty"`
	Procedure     string    `json:"procedure,omitempty"`
	HistoryNote   string    `json:"historyNote,omitempty"`
	NutritionNote string    `json:"nutritionNote,omitempty"`
	Calories      *float64  `json:"calories,omitempty"`
	Servings      *int      `json:"servings,omitempty"`
}

// HasCalories reports whether the version carries a usable calorie value.
func (r RecipeVersion) HasCalories() bool {
	return r.Calories != nil && *r.Calories > 0
}
