// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package category

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Validation failures are logic errors reported synchronously to the
// caller. They are never retried and no partial write happens.
var (
	// ErrCyclicReference means a reparent would make a category its own
	// ancestor (including reparenting onto itself).
	ErrCyclicReference = errors.New("category cannot be its own ancestor")

	// ErrHierarchyTooDeep means a create or move would push a category, or
	// one of its descendants, past MaxDepth.
	ErrHierarchyTooDeep = fmt.Errorf("category hierarchy exceeds depth %d", MaxDepth)

	// ErrDuplicateSlug means the slug is already taken by a sibling under
	// the same parent (or by another root, for root categories).
	ErrDuplicateSlug = errors.New("slug already in use under this parent")

	// ErrNotFound means the referenced category does not exist.
	ErrNotFound = errors.New("category not found")
)

// ValidateCreate checks the invariants for inserting a new category with
// the given slug under parentID (nil for a root).
func (t *Tree) ValidateCreate(parentID *uuid.UUID, slug string) error {
	if parentID != nil {
		parent, ok := t.byID[*parentID]
		if !ok {
			return ErrNotFound
		}
		if t.Depth(parent.ID)+1 > MaxDepth {
			return ErrHierarchyTooDeep
		}
	}
	if t.slugTaken(parentID, slug, uuid.Nil) {
		return ErrDuplicateSlug
	}
	return nil
}

// ValidateMove checks the invariants for reparenting id under newParent
// (nil moves it to the root level). The depth bound is re-checked for the
// moved category and every descendant: moving a subtree can push a node
// two levels down past the limit even when the moved node itself fits.
func (t *Tree) ValidateMove(id uuid.UUID, newParent *uuid.UUID) error {
	c, ok := t.byID[id]
	if !ok {
		return ErrNotFound
	}

	newDepth := 0
	if newParent != nil {
		if *newParent == id {
			return ErrCyclicReference
		}
		parent, ok := t.byID[*newParent]
		if !ok {
			return ErrNotFound
		}
		// Walk the new parent's ancestor chain; finding the moved category
		// there means the move would create a cycle.
		for _, a := range t.Ancestors(parent.ID) {
			if a.ID == id {
				return ErrCyclicReference
			}
		}
		newDepth = t.Depth(parent.ID) + 1
	}

	if newDepth > MaxDepth {
		return ErrHierarchyTooDeep
	}
	for _, d := range t.Descendants(id, false) {
		relative := t.Depth(d.ID) - t.Depth(id)
		if newDepth+relative > MaxDepth {
			return ErrHierarchyTooDeep
		}
	}

	if t.slugTaken(newParent, c.Slug, id) {
		return ErrDuplicateSlug
	}
	return nil
}

// ValidateRename checks that changing the slug of id keeps sibling-scoped
// uniqueness.
func (t *Tree) ValidateRename(id uuid.UUID, slug string) error {
	c, ok := t.byID[id]
	if !ok {
		return ErrNotFound
	}
	if t.slugTaken(c.ParentID, slug, id) {
		return ErrDuplicateSlug
	}
	return nil
}

// slugTaken reports whether slug is already used by a sibling under
// parentID, ignoring the category with the given ID (for moves/renames).
func (t *Tree) slugTaken(parentID *uuid.UUID, slug string, ignore uuid.UUID) bool {
	for _, c := range t.byID {
		if c.ID == ignore || c.Slug != slug {
			continue
		}
		if sameParent(c.ParentID, parentID) {
			return true
		}
	}
	return false
}

func sameParent(a, b *uuid.UUID) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
