// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"platepress/internal/models"
	"platepress/internal/slug"
	"platepress/internal/store"
)

// Service applies category mutations. Every mutation loads a fresh
// snapshot, validates the invariants against it, and writes — all inside
// one transaction, so concurrent writers cannot race the tree into a
// cyclic or over-deep state.
type Service struct {
	store *store.CategoryStore
}

// NewService returns a Service backed by the given store.
func NewService(cs *store.CategoryStore) *Service {
	return &Service{store: cs}
}

// CreateInput carries the caller-editable fields of a new category.
type CreateInput struct {
	Name        string
	Slug        string // derived from Name when empty
	Description string
	Icon        string
	Color       string
	ParentID    *uuid.UUID
	IsActive    bool
}

// Create validates and inserts a new category. The sort order is appended
// after the existing siblings.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Category, error) {
	if in.Slug == "" {
		in.Slug = slug.Generate(in.Name)
	}

	var created *models.Category
	err := s.store.WithTx(ctx, func(cs *store.CategoryStore) error {
		flat, err := cs.List(ctx)
		if err != nil {
			return err
		}
		if err := NewTree(flat).ValidateCreate(in.ParentID, in.Slug); err != nil {
			return err
		}
		order, err := cs.NextSortOrder(ctx, in.ParentID)
		if err != nil {
			return err
		}
		created, err = cs.Create(ctx, &models.Category{
			Name:        in.Name,
			Slug:        in.Slug,
			Description: in.Description,
			Icon:        in.Icon,
			Color:       in.Color,
			SortOrder:   order,
			IsActive:    in.IsActive,
			ParentID:    in.ParentID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateInput carries the editable fields of an existing category.
// Re-parenting goes through Reparent, not here.
type UpdateInput struct {
	Name        string
	Slug        string
	Description string
	Icon        string
	Color       string
	SortOrder   int
	IsActive    bool
}

// Update edits a category's fields, re-validating slug uniqueness within
// its sibling scope when the slug changes.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*models.Category, error) {
	if in.Slug == "" {
		in.Slug = slug.Generate(in.Name)
	}

	var updated *models.Category
	err := s.store.WithTx(ctx, func(cs *store.CategoryStore) error {
		flat, err := cs.List(ctx)
		if err != nil {
			return err
		}
		tree := NewTree(flat)
		current, ok := tree.Get(id)
		if !ok {
			return ErrNotFound
		}
		if in.Slug != current.Slug {
			if err := tree.ValidateRename(id, in.Slug); err != nil {
				return err
			}
		}
		current.Name = in.Name
		current.Slug = in.Slug
		current.Description = in.Description
		current.Icon = in.Icon
		current.Color = in.Color
		current.SortOrder = in.SortOrder
		current.IsActive = in.IsActive
		if err := cs.Update(ctx, &current); err != nil {
			return err
		}
		updated = &current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Reparent moves a category under a new parent (nil for root level),
// re-validating the cycle and depth invariants for the moved node and
// every descendant before the write commits.
func (s *Service) Reparent(ctx context.Context, id uuid.UUID, newParent *uuid.UUID) error {
	return s.store.WithTx(ctx, func(cs *store.CategoryStore) error {
		flat, err := cs.List(ctx)
		if err != nil {
			return err
		}
		if err := NewTree(flat).ValidateMove(id, newParent); err != nil {
			return err
		}
		return cs.SetParent(ctx, id, newParent)
	})
}

// Delete removes a category and, through the schema's cascade, its whole
// subtree and recipe links.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}

// Load returns a fresh tree snapshot for read paths (descendant
// expansion, full paths, category listings).
func (s *Service) Load(ctx context.Context) (*Tree, error) {
	flat, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load category tree: %w", err)
	}
	return NewTree(flat), nil
}
