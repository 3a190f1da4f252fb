// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"platepress/internal/models"
)

// RecipeStore reads recipe records with their ingredient, tag, and
// category links plus the rating aggregate. The search engine consumes it
// through the visibility-filtered snapshot from ListForSearch.
type RecipeStore struct {
	db *sql.DB
}

// NewRecipeStore returns a new RecipeStore.
func NewRecipeStore(db *sql.DB) *RecipeStore {
	return &RecipeStore{db: db}
}

// visibleWhere gates queries to published recipes, plus the viewer's own
// unpublished ones when a viewer is set. $1 is the nullable viewer UUID.
const visibleWhere = `(r.is_published OR ($1::uuid IS NOT NULL AND r.author_id = $1))`

// ListForSearch returns the search snapshot: every recipe visible to the
// viewer, newest first, with ingredients, tags, category links, and the
// rating aggregate populated. A nil viewer sees published recipes only.
func (s *RecipeStore) ListForSearch(ctx context.Context, viewer *uuid.UUID) ([]models.Recipe, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.title, r.description, r.instructions, r.difficulty,
		       r.cooking_method, r.prep_time_minutes, r.cook_time_minutes,
		       r.servings, r.is_published, r.author_id, u.handle, r.nutrition,
		       r.created_at, r.updated_at,
		       COALESCE(AVG(rt.score), 0) AS average_rating,
		       COUNT(rt.id) AS rating_count
		FROM recipes r
		JOIN users u ON u.id = r.author_id
		LEFT JOIN ratings rt ON rt.recipe_id = r.id
		WHERE `+visibleWhere+`
		GROUP BY r.id, u.handle
		ORDER BY r.created_at DESC
	`, viewer)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	var items []models.Recipe
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		index[r.ID] = len(items)
		items = append(items, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recipe rows: %w", err)
	}

	if err := s.attachChildren(ctx, viewer, items, index); err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID retrieves a single recipe with all links populated. Returns
// nil if the recipe does not exist or is not visible to the viewer.
func (s *RecipeStore) FindByID(ctx context.Context, viewer *uuid.UUID, id uuid.UUID) (*models.Recipe, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT r.id, r.title, r.description, r.instructions, r.difficulty,
		       r.cooking_method, r.prep_time_minutes, r.cook_time_minutes,
		       r.servings, r.is_published, r.author_id, u.handle, r.nutrition,
		       r.created_at, r.updated_at,
		       COALESCE(AVG(rt.score), 0) AS average_rating,
		       COUNT(rt.id) AS rating_count
		FROM recipes r
		JOIN users u ON u.id = r.author_id
		LEFT JOIN ratings rt ON rt.recipe_id = r.id
		WHERE `+visibleWhere+` AND r.id = $2
		GROUP BY r.id, u.handle
	`, viewer, id)

	r, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find recipe by id: %w", err)
	}

	items := []models.Recipe{*r}
	if err := s.attachChildren(ctx, viewer, items, map[uuid.UUID]int{r.ID: 0}); err != nil {
		return nil, err
	}
	return &items[0], nil
}

// scanRecipe scans the shared recipe column list plus the rating aggregate.
func scanRecipe(scanner interface{ Scan(...any) error }) (*models.Recipe, error) {
	var r models.Recipe
	var nutrition []byte
	err := scanner.Scan(
		&r.ID, &r.Title, &r.Description, &r.Instructions, &r.Difficulty,
		&r.CookingMethod, &r.PrepTimeMinutes, &r.CookTimeMinutes,
		&r.Servings, &r.IsPublished, &r.AuthorID, &r.AuthorHandle, &nutrition,
		&r.CreatedAt, &r.UpdatedAt, &r.AverageRating, &r.RatingCount,
	)
	if err != nil {
		return nil, err
	}
	if len(nutrition) > 0 {
		var n models.NutritionInfo
		if err := json.Unmarshal(nutrition, &n); err != nil {
			return nil, fmt.Errorf("decode nutrition: %w", err)
		}
		r.Nutrition = &n
	}
	return &r, nil
}

// attachChildren populates ingredients, tags, and category links for the
// given recipes, using the same visibility predicate as the parent query.
func (s *RecipeStore) attachChildren(ctx context.Context, viewer *uuid.UUID, items []models.Recipe, index map[uuid.UUID]int) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ri.id, ri.recipe_id, ri.name, ri.amount, ri.unit, ri.position
		FROM recipe_ingredients ri
		JOIN recipes r ON r.id = ri.recipe_id
		WHERE `+visibleWhere+`
		ORDER BY ri.recipe_id, ri.position
	`, viewer)
	if err != nil {
		return fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ing models.Ingredient
		var recipeID uuid.UUID
		if err := rows.Scan(&ing.ID, &recipeID, &ing.Name, &ing.Amount, &ing.Unit, &ing.Position); err != nil {
			return fmt.Errorf("scan ingredient: %w", err)
		}
		if i, ok := index[recipeID]; ok {
			items[i].Ingredients = append(items[i].Ingredients, ing)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("ingredient rows: %w", err)
	}

	tagRows, err := s.db.QueryContext(ctx, `
		SELECT rt.recipe_id, rt.tag
		FROM recipe_tags rt
		JOIN recipes r ON r.id = rt.recipe_id
		WHERE `+visibleWhere+`
		ORDER BY rt.recipe_id, rt.tag
	`, viewer)
	if err != nil {
		return fmt.Errorf("list tags: %w", err)
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var recipeID uuid.UUID
		var tag string
		if err := tagRows.Scan(&recipeID, &tag); err != nil {
			return fmt.Errorf("scan tag: %w", err)
		}
		if i, ok := index[recipeID]; ok {
			items[i].Tags = append(items[i].Tags, tag)
		}
	}
	if err := tagRows.Err(); err != nil {
		return fmt.Errorf("tag rows: %w", err)
	}

	catRows, err := s.db.QueryContext(ctx, `
		SELECT rc.recipe_id, c.id, c.name, c.slug
		FROM recipe_categories rc
		JOIN categories c ON c.id = rc.category_id
		JOIN recipes r ON r.id = rc.recipe_id
		WHERE `+visibleWhere+`
		ORDER BY rc.recipe_id, c.sort_order, c.name
	`, viewer)
	if err != nil {
		return fmt.Errorf("list recipe categories: %w", err)
	}
	defer catRows.Close()
	for catRows.Next() {
		var recipeID uuid.UUID
		var c models.Category
		if err := catRows.Scan(&recipeID, &c.ID, &c.Name, &c.Slug); err != nil {
			return fmt.Errorf("scan recipe category: %w", err)
		}
		if i, ok := index[recipeID]; ok {
			items[i].Categories = append(items[i].Categories, c)
		}
	}
	if err := catRows.Err(); err != nil {
		return fmt.Errorf("recipe category rows: %w", err)
	}
	return nil
}

// Create inserts a recipe with its ingredients, tags, and category links
// in one transaction. Used by the seeder and tests; recipe authoring
// proper lives in the CRUD service.
func (s *RecipeStore) Create(ctx context.Context, r *models.Recipe) (*models.Recipe, error) {
	result := *r
	err := inTx(ctx, s.db, func(tx *sql.Tx) error {
		var nutrition []byte
		if r.Nutrition != nil {
			var err error
			nutrition, err = json.Marshal(r.Nutrition)
			if err != nil {
				return fmt.Errorf("encode nutrition: %w", err)
			}
		}

		err := tx.QueryRowContext(ctx, `
			INSERT INTO recipes (title, description, instructions, difficulty,
			                     cooking_method, prep_time_minutes, cook_time_minutes,
			                     servings, is_published, author_id, nutrition)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING id, created_at, updated_at
		`, r.Title, r.Description, r.Instructions, r.Difficulty, r.CookingMethod,
			r.PrepTimeMinutes, r.CookTimeMinutes, r.Servings, r.IsPublished,
			r.AuthorID, nutrition,
		).Scan(&result.ID, &result.CreatedAt, &result.UpdatedAt)
		if err != nil {
			return fmt.Errorf("create recipe: %w", err)
		}

		for i, ing := range r.Ingredients {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO recipe_ingredients (recipe_id, name, amount, unit, position)
				VALUES ($1, $2, $3, $4, $5)
			`, result.ID, ing.Name, ing.Amount, ing.Unit, i)
			if err != nil {
				return fmt.Errorf("create ingredient: %w", err)
			}
		}
		for _, tag := range r.Tags {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO recipe_tags (recipe_id, tag) VALUES ($1, $2)
				ON CONFLICT DO NOTHING
			`, result.ID, tag)
			if err != nil {
				return fmt.Errorf("create tag: %w", err)
			}
		}
		for _, c := range r.Categories {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO recipe_categories (recipe_id, category_id) VALUES ($1, $2)
				ON CONFLICT DO NOTHING
			`, result.ID, c.ID)
			if err != nil {
				return fmt.Errorf("link category: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete removes a recipe and its links (ON DELETE CASCADE).
func (s *RecipeStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}

// SupportsTextRank probes whether the backing store can compute full-text
// rank scores. Checked once at startup to select the relevance ranker.
func (s *RecipeStore) SupportsTextRank(ctx context.Context) bool {
	var rank float64
	err := s.db.QueryRowContext(ctx,
		`SELECT ts_rank(to_tsvector('english', 'probe'), plainto_tsquery('english', 'probe'))`,
	).Scan(&rank)
	return err == nil
}

// TextRankScores returns ts_rank scores for every published recipe
// against the query, with titles weighted above descriptions.
func (s *RecipeStore) TextRankScores(ctx context.Context, query string) (map[uuid.UUID]float64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id,
		       ts_rank(
		           setweight(to_tsvector('english', r.title), 'A') ||
		           setweight(to_tsvector('english', r.description), 'B'),
		           plainto_tsquery('english', $1)
		       )
		FROM recipes r
		WHERE r.is_published
	`, query)
	if err != nil {
		return nil, fmt.Errorf("text rank scores: %w", err)
	}
	defer rows.Close()

	scores := make(map[uuid.UUID]float64)
	for rows.Next() {
		var id uuid.UUID
		var score float64
		if err := rows.Scan(&id, &score); err != nil {
			return nil, fmt.Errorf("scan rank score: %w", err)
		}
		scores[id] = score
	}
	return scores, rows.Err()
}
