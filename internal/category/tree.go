// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package category implements the hierarchical recipe taxonomy: an
// in-memory tree snapshot with traversal helpers, invariant validation
// (no cycles, bounded depth, sibling-scoped slug uniqueness), and a
// service that applies mutations through the store in one transaction.
package category

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"platepress/internal/models"
)

const (
	// MaxDepth is the deepest allowed level, where a root sits at depth 0.
	MaxDepth = 3

	// PathSeparator joins ancestor names in a category's full path.
	PathSeparator = " > "

	// traversalCap bounds recursive walks. The validation invariants make
	// cycles impossible, but corrupted data must not hang a traversal.
	traversalCap = 64
)

// Tree is an immutable snapshot of the category hierarchy, indexed for
// ancestor and descendant walks. Build one from the store's flat list.
type Tree struct {
	byID     map[uuid.UUID]models.Category
	children map[uuid.UUID][]uuid.UUID
	roots    []uuid.UUID
}

// NewTree indexes a flat category list into a Tree. Children are ordered
// by sort order, then name.
func NewTree(flat []models.Category) *Tree {
	t := &Tree{
		byID:     make(map[uuid.UUID]models.Category, len(flat)),
		children: make(map[uuid.UUID][]uuid.UUID),
	}
	for _, c := range flat {
		t.byID[c.ID] = c
	}
	sorted := make([]models.Category, len(flat))
	copy(sorted, flat)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].SortOrder != sorted[j].SortOrder {
			return sorted[i].SortOrder < sorted[j].SortOrder
		}
		return sorted[i].Name < sorted[j].Name
	})
	for _, c := range sorted {
		if c.ParentID == nil {
			t.roots = append(t.roots, c.ID)
			continue
		}
		t.children[*c.ParentID] = append(t.children[*c.ParentID], c.ID)
	}
	return t
}

// Get returns the category with the given ID.
func (t *Tree) Get(id uuid.UUID) (models.Category, bool) {
	c, ok := t.byID[id]
	return c, ok
}

// Len returns the number of categories in the snapshot.
func (t *Tree) Len() int {
	return len(t.byID)
}

// Roots returns the root categories in display order.
func (t *Tree) Roots() []models.Category {
	out := make([]models.Category, 0, len(t.roots))
	for _, id := range t.roots {
		out = append(out, t.byID[id])
	}
	return out
}

// Ancestors returns the chain of ancestors of id, root first. The category
// itself is not included. The walk stops at traversalCap hops so corrupted
// parent pointers cannot loop forever.
func (t *Tree) Ancestors(id uuid.UUID) []models.Category {
	var chain []models.Category
	c, ok := t.byID[id]
	if !ok {
		return nil
	}
	for hops := 0; c.ParentID != nil && hops < traversalCap; hops++ {
		parent, ok := t.byID[*c.ParentID]
		if !ok {
			break
		}
		chain = append(chain, parent)
		c = parent
	}
	// Walked child→root; reverse to root-first order.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// Depth returns the number of ancestors of id (root = 0).
func (t *Tree) Depth(id uuid.UUID) int {
	return len(t.Ancestors(id))
}

// Descendants returns the subtree below id in depth-first pre-order.
// When activeOnly is set, inactive nodes and their subtrees are skipped.
func (t *Tree) Descendants(id uuid.UUID, activeOnly bool) []models.Category {
	var out []models.Category
	t.walk(id, activeOnly, 0, &out)
	return out
}

func (t *Tree) walk(id uuid.UUID, activeOnly bool, depth int, out *[]models.Category) {
	if depth >= traversalCap {
		return
	}
	for _, childID := range t.children[id] {
		child := t.byID[childID]
		if activeOnly && !child.IsActive {
			continue
		}
		*out = append(*out, child)
		t.walk(childID, activeOnly, depth+1, out)
	}
}

// FullPath returns the ancestor names joined with the category's own name,
// root to self, separated by PathSeparator.
func (t *Tree) FullPath(id uuid.UUID) string {
	c, ok := t.byID[id]
	if !ok {
		return ""
	}
	var names []string
	for _, a := range t.Ancestors(id) {
		names = append(names, a.Name)
	}
	names = append(names, c.Name)
	return strings.Join(names, PathSeparator)
}

// FindBySlug returns the first category whose slug matches, searching in
// display order (roots first, then depth-first).
func (t *Tree) FindBySlug(slug string) (models.Category, bool) {
	for _, rootID := range t.roots {
		root := t.byID[rootID]
		if root.Slug == slug {
			return root, true
		}
		for _, d := range t.Descendants(rootID, false) {
			if d.Slug == slug {
				return d, true
			}
		}
	}
	return models.Category{}, false
}

// ExpandSlugs maps each requested category token to itself plus the slugs
// of all its active descendants. Tokens resolve by slug or name, matching
// the search predicate's category semantics; unknown tokens pass through
// unchanged. Used by callers that want "include subtree" semantics; the
// engine filters by direct membership only.
func (t *Tree) ExpandSlugs(slugs []string) []string {
	seen := make(map[string]struct{}, len(slugs))
	var out []string
	add := func(s string) {
		if _, dup := seen[s]; dup {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	for _, s := range slugs {
		add(s)
		if c, ok := t.findByToken(s); ok {
			for _, d := range t.Descendants(c.ID, true) {
				add(d.Slug)
			}
		}
	}
	return out
}

// findByToken resolves a category by slug or name, case-insensitively,
// searching in display order (roots first, then depth-first).
func (t *Tree) findByToken(token string) (models.Category, bool) {
	match := func(c models.Category) bool {
		return strings.EqualFold(c.Slug, token) || strings.EqualFold(c.Name, token)
	}
	for _, rootID := range t.roots {
		root := t.byID[rootID]
		if match(root) {
			return root, true
		}
		for _, d := range t.Descendants(rootID, false) {
			if match(d) {
				return d, true
			}
		}
	}
	return models.Category{}, false
}

// Nested returns the snapshot as a nested tree with Depth and Children
// populated, suitable for JSON responses.
func (t *Tree) Nested() []models.Category {
	return t.nest(t.roots, 0)
}

func (t *Tree) nest(ids []uuid.UUID, depth int) []models.Category {
	if depth >= traversalCap {
		return nil
	}
	var out []models.Category
	for _, id := range ids {
		c := t.byID[id]
		c.Depth = depth
		c.Children = t.nest(t.children[id], depth+1)
		out = append(out, c)
	}
	return out
}
