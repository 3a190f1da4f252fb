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

// CategoryStore manages category rows in the database.
type CategoryStore struct {
	db *sql.DB
	q  querier
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db, q: db}
}

// WithTx runs fn with a transaction-scoped copy of the store. Category
// mutations validate the whole hierarchy before writing, so validation
// and write must be atomic with respect to other writers.
func (s *CategoryStore) WithTx(ctx context.Context, fn func(*CategoryStore) error) error {
	return inTx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(&CategoryStore{db: s.db, q: tx})
	})
}

const categoryColumns = `id, name, slug, description, icon, color, sort_order, is_active, parent_id, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	var icon, color sql.NullString
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &icon, &color,
		&c.SortOrder, &c.IsActive, &c.ParentID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Icon = icon.String
	c.Color = color.String
	return &c, nil
}

// List returns all categories ordered by sort order then name, with the
// count of published recipes linked to each.
func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT c.id, c.name, c.slug, c.description, c.icon, c.color,
		       c.sort_order, c.is_active, c.parent_id, c.created_at, c.updated_at,
		       COUNT(r.id) AS recipe_count
		FROM categories c
		LEFT JOIN recipe_categories rc ON rc.category_id = c.id
		LEFT JOIN recipes r ON r.id = rc.recipe_id AND r.is_published
		GROUP BY c.id
		ORDER BY c.sort_order, c.name
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		var c models.Category
		var icon, color sql.NullString
		err := rows.Scan(
			&c.ID, &c.Name, &c.Slug, &c.Description, &icon, &color,
			&c.SortOrder, &c.IsActive, &c.ParentID, &c.CreatedAt, &c.UpdatedAt,
			&c.RecipeCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Icon = icon.String
		c.Color = color.String
		items = append(items, c)
	}
	return items, rows.Err()
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// Create inserts a new category and returns it.
func (s *CategoryStore) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	row := s.q.QueryRowContext(ctx, `
		INSERT INTO categories (name, slug, description, icon, color, sort_order, is_active, parent_id)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8)
		RETURNING `+categoryColumns,
		c.Name, c.Slug, c.Description, c.Icon, c.Color, c.SortOrder, c.IsActive, c.ParentID,
	)
	result, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return result, nil
}

// Update modifies a category's editable fields. The parent is changed
// through SetParent so reparent validation cannot be bypassed.
func (s *CategoryStore) Update(ctx context.Context, c *models.Category) error {
	_, err := s.q.ExecContext(ctx, `
		UPDATE categories SET
			name = $1, slug = $2, description = $3, icon = NULLIF($4, ''),
			color = NULLIF($5, ''), sort_order = $6, is_active = $7, updated_at = NOW()
		WHERE id = $8
	`, c.Name, c.Slug, c.Description, c.Icon, c.Color, c.SortOrder, c.IsActive, c.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// SetParent re-parents a category. Callers validate the move first.
func (s *CategoryStore) SetParent(ctx context.Context, id uuid.UUID, parentID *uuid.UUID) error {
	_, err := s.q.ExecContext(ctx, `
		UPDATE categories SET parent_id = $1, updated_at = NOW() WHERE id = $2
	`, parentID, id)
	if err != nil {
		return fmt.Errorf("set category parent: %w", err)
	}
	return nil
}

// Delete removes a category. Children are removed with it (ON DELETE
// CASCADE): the tree is owned top-down.
func (s *CategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.q.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// NextSortOrder returns the next sort_order value under the given parent.
func (s *CategoryStore) NextSortOrder(ctx context.Context, parentID *uuid.UUID) (int, error) {
	var maxOrder sql.NullInt64
	var err error
	if parentID == nil {
		err = s.q.QueryRowContext(ctx, `SELECT MAX(sort_order) FROM categories WHERE parent_id IS NULL`).Scan(&maxOrder)
	} else {
		err = s.q.QueryRowContext(ctx, `SELECT MAX(sort_order) FROM categories WHERE parent_id = $1`, *parentID).Scan(&maxOrder)
	}
	if err != nil {
		return 0, fmt.Errorf("next sort order: %w", err)
	}
	if maxOrder.Valid {
		return int(maxOrder.Int64) + 1, nil
	}
	return 0, nil
}
