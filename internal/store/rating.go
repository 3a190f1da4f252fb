// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"platepress/internal/models"
)

// RatingStore manages per-(recipe, user) scores. The search engine only
// reads the aggregate, which RecipeStore computes in its snapshot queries.
type RatingStore struct {
	db *sql.DB
}

// NewRatingStore returns a new RatingStore.
func NewRatingStore(db *sql.DB) *RatingStore {
	return &RatingStore{db: db}
}

// Upsert records a user's 1-5 score for a recipe, replacing any previous
// score from the same user.
func (s *RatingStore) Upsert(ctx context.Context, recipeID, userID uuid.UUID, score int) error {
	if score < 1 || score > 5 {
		return fmt.Errorf("rating score %d out of range 1-5", score)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ratings (recipe_id, user_id, score)
		VALUES ($1, $2, $3)
		ON CONFLICT (recipe_id, user_id) DO UPDATE SET score = EXCLUDED.score
	`, recipeID, userID, score)
	if err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}
	return nil
}

// ForRecipe returns the individual ratings of a recipe, newest first.
func (s *RatingStore) ForRecipe(ctx context.Context, recipeID uuid.UUID) ([]models.Rating, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, recipe_id, user_id, score, created_at
		FROM ratings
		WHERE recipe_id = $1
		ORDER BY created_at DESC
	`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer rows.Close()

	var items []models.Rating
	for rows.Next() {
		var r models.Rating
		if err := rows.Scan(&r.ID, &r.RecipeID, &r.UserID, &r.Score, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		items = append(items, r)
	}
	return items, rows.Err()
}
