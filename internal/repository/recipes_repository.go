// Package repository handles data access against PostgreSQL.
package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/crea-eci/azzurra/internal/catalog"
	"github.com/crea-eci/azzurra/internal/models"
)

const recipeColumns = `id, title, family, cookbook, year, ingredients, procedure,
	history_note, nutrition_note, calories, servings`

// RecipesRepository reads recipe versions. The live request path never
// writes this table; rows come from the import CLI only.
type RecipesRepository struct {
	db *pgxpool.Pool
}

// NewRecipesRepository creates a recipes repository.
func NewRecipesRepository(db *pgxpool.Pool) *RecipesRepository {
	return &RecipesRepository{db: db}
}

// FindByTitle returns all versions whose title contains name
// (case-insensitive). The ILIKE query over-matches ("Torta" would hit
// every Torta variant), so rows are re-filtered locally: a row is kept
// only when its normalized title contains the normalized query or vice
// versa.
func (r *RecipesRepository) FindByTitle(ctx context.Context, name string) ([]models.RecipeVersion, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE title ILIKE $1 ORDER BY year NULLS LAST`,
		"%"+name+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("find recipes by title: %w", err)
	}
	defer rows.Close()

	versions, err := scanRecipeVersions(rows)
	if err != nil {
		return nil, err
	}

	return filterByTitle(versions, name), nil
}

// filterByTitle keeps only versions of the queried dish, using the same
// normalization as the mention detector on both sides.
func filterByTitle(versions []models.RecipeVersion, name string) []models.RecipeVersion {
	queryNorm := catalog.Normalize(name)

	kept := versions[:0]

	for _, v := range versions {
		titleNorm := catalog.Normalize(v.Title)
		if strings.Contains(titleNorm, queryNorm) || strings.Contains(queryNorm, titleNorm) {
			kept = append(kept, v)
		}
	}

	return kept
}

// NearestByEmbedding returns the limit nearest versions to the query
// embedding by cosine distance.
func (r *RecipesRepository) NearestByEmbedding(ctx context.Context, embedding []float32, limit int) ([]models.RecipeVersion, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+recipeColumns+` FROM recipes ORDER BY embedding <=> $1 LIMIT $2`,
		pgvector.NewVector(embedding), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("nearest recipes: %w", err)
	}
	defer rows.Close()

	return scanRecipeVersions(rows)
}

// ListAll returns every recipe version. Used by the fun-facts generator;
// the table is small (tens of rows per cookbook).
func (r *RecipesRepository) ListAll(ctx context.Context) ([]models.RecipeVersion, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+recipeColumns+` FROM recipes ORDER BY title, year NULLS LAST`,
	)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	return scanRecipeVersions(rows)
}

// Insert adds one recipe version with its embedding. Import CLI only.
func (r *RecipesRepository) Insert(ctx context.Context, v *models.RecipeVersion, embedding []float32) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO recipes
			(title, family, cookbook, year, ingredients, procedure,
			 history_note, nutrition_note, calories, servings, embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		v.Title, v.Family, v.Cookbook, v.Year, v.Ingredients, v.Procedure,
		v.HistoryNote, v.NutritionNote, v.Calories, v.Servings,
		pgvector.NewVector(embedding),
	)
	if err != nil {
		return fmt.Errorf("insert recipe %q: %w", v.Title, err)
	}

	return nil
}

func scanRecipeVersions(rows pgx.Rows) ([]models.RecipeVersion, error) {
	var versions []models.RecipeVersion

	for rows.Next() {
		var v models.RecipeVersion

		err := rows.Scan(
			&v.ID, &v.Title, &v.Family, &v.Cookbook, &v.Year, &v.Ingredients,
			&v.Procedure, &v.HistoryNote, &v.NutritionNote, &v.Calories, &v.Servings,
		)
		if err != nil {
			return nil, fmt.Errorf("scan recipe version: %w", err)
		}

		versions = append(versions, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recipe versions: %w", err)
	}

	return versions, nil
}
