package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/crea-eci/azzurra/internal/catalog"
	"github.com/crea-eci/azzurra/internal/models"
)

// RecipeLister loads the full recipe archive.
type RecipeLister interface {
	ListAll(ctx context.Context) ([]models.RecipeVersion, error)
}

// InsightsService derives fun facts from the recipe archive: the oldest
// recorded recipe, the calorie extremes, and the dish with the most
// versions across cookbooks.
type InsightsService struct {
	repo RecipeLister
}

// NewInsightsService creates an InsightsService.
func NewInsightsService(repo RecipeLister) *InsightsService {
	return &InsightsService{repo: repo}
}

// FunFacts computes the archive curiosities. The archive is small enough
// to aggregate in memory on every call.
func (s *InsightsService) FunFacts(ctx context.Context) ([]models.FunFact, error) {
	versions, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fun facts: %w", err)
	}

	if len(versions) == 0 {
		return []models.FunFact{}, nil
	}

	facts := []models.FunFact{}

	if fact, ok := oldestRecipeFact(versions); ok {
		facts = append(facts, fact)
	}

	facts = append(facts, calorieExtremeFacts(versions)...)
	facts = append(facts, mostVersionsFact(versions))

	return facts, nil
}

func oldestRecipeFact(versions []models.RecipeVersion) (models.FunFact, bool) {
	var oldest *models.RecipeVersion

	for i, v := range versions {
		if v.Year == nil {
			continue
		}

		if oldest == nil || *v.Year < *oldest.Year {
			oldest = &versions[i]
		}
	}

	if oldest == nil {
		return models.FunFact{}, false
	}

	return models.FunFact{
		Title: "La ricetta più antica",
		Text: fmt.Sprintf("La versione più antica in archivio è %s, documentata nel %d in %s.",
			oldest.Title, *oldest.Year, oldest.Cookbook),
	}, true
}

func calorieExtremeFacts(versions []models.RecipeVersion) []models.FunFact {
	var richest, lightest *models.RecipeVersion

	for i, v := range versions {
		if !v.HasCalories() {
			continue
		}

		if richest == nil || *v.Calories > *richest.Calories {
			richest = &versions[i]
		}

		if lightest == nil || *v.Calories < *lightest.Calories {
			lightest = &versions[i]
		}
	}

	if richest == nil {
		return nil
	}

	return []models.FunFact{
		{
			Title: "Il più ricco",
			Text: fmt.Sprintf("Il dolce più calorico è %s (%s) con %.0f kcal a porzione.",
				richest.Title, richest.Cookbook, *richest.Calories),
		},
		{
			Title: "Il più leggero",
			Text: fmt.Sprintf("Il dolce più leggero è %s (%s) con %.0f kcal a porzione.",
				lightest.Title, lightest.Cookbook, *lightest.Calories),
		},
	}
}

func mostVersionsFact(versions []models.RecipeVersion) models.FunFact {
	counts := make(map[string]int)
	displayNames := make(map[string]string)

	for _, v := range versions {
		key := catalog.Normalize(v.Title)
		counts[key]++

		if _, seen := displayNames[key]; !seen {
			displayNames[key] = v.Title
		}
	}

	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}

	// Deterministic winner when counts tie.
	sort.Strings(keys)

	var topKey string

	for _, key := range keys {
		if topKey == "" || counts[key] > counts[topKey] {
			topKey = key
		}
	}

	return models.FunFact{
		Title: "Il più documentato",
		Text: fmt.Sprintf("%s è la ricetta con più versioni in archivio: %d ricettari diversi la raccontano.",
			displayNames[topKey], counts[topKey]),
	}
}
