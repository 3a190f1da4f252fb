// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package category

import (
	"reflect"
	"testing"

	"github.com/google/uuid"

	"platepress/internal/models"
)

// fixtureTree builds a small hierarchy used across tests:
//
//	Main Dishes (mains)
//	├── Pasta (pasta)
//	│   └── Baked Pasta (baked-pasta)
//	└── Grills (grills, inactive)
//	    └── Skewers (skewers)
//	Desserts (desserts)
type fixture struct {
	mains, pasta, bakedPasta, grills, skewers, desserts models.Category
}

func newFixture() (fixture, *Tree) {
	var f fixture
	f.mains = models.Category{ID: uuid.New(), Name: "Main Dishes", Slug: "mains", IsActive: true, SortOrder: 1}
	f.desserts = models.Category{ID: uuid.New(), Name: "Desserts", Slug: "desserts", IsActive: true, SortOrder: 2}
	f.pasta = models.Category{ID: uuid.New(), Name: "Pasta", Slug: "pasta", IsActive: true, SortOrder: 1, ParentID: &f.mains.ID}
	f.grills = models.Category{ID: uuid.New(), Name: "Grills", Slug: "grills", IsActive: false, SortOrder: 2, ParentID: &f.mains.ID}
	f.bakedPasta = models.Category{ID: uuid.New(), Name: "Baked Pasta", Slug: "baked-pasta", IsActive: true, SortOrder: 1, ParentID: &f.pasta.ID}
	f.skewers = models.Category{ID: uuid.New(), Name: "Skewers", Slug: "skewers", IsActive: true, SortOrder: 1, ParentID: &f.grills.ID}

	t := NewTree([]models.Category{
		// Deliberately unsorted input; the tree orders children itself.
		f.skewers, f.desserts, f.bakedPasta, f.mains, f.grills, f.pasta,
	})
	return f, t
}

// --------------------------------------------------------------------------
// TestTreeRoots — root ordering and lookup
// --------------------------------------------------------------------------

func TestTreeRoots(t *testing.T) {
	f, tree := newFixture()

	if tree.Len() != 6 {
		t.Fatalf("expected 6 categories, got %d", tree.Len())
	}

	roots := tree.Roots()
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	if roots[0].ID != f.mains.ID || roots[1].ID != f.desserts.ID {
		t.Errorf("roots out of order: got %q, %q", roots[0].Name, roots[1].Name)
	}

	if _, ok := tree.Get(f.pasta.ID); !ok {
		t.Error("expected to find pasta by ID")
	}
	if _, ok := tree.Get(uuid.New()); ok {
		t.Error("expected unknown ID to miss")
	}
}

// --------------------------------------------------------------------------
// TestTreeAncestorsAndDepth — ancestor chains are root-first
// --------------------------------------------------------------------------

func TestTreeAncestorsAndDepth(t *testing.T) {
	f, tree := newFixture()

	tests := []struct {
		name      string
		id        uuid.UUID
		wantDepth int
		wantNames []string
	}{
		{"root has no ancestors", f.mains.ID, 0, nil},
		{"child has one ancestor", f.pasta.ID, 1, []string{"Main Dishes"}},
		{"grandchild chain is root-first", f.bakedPasta.ID, 2, []string{"Main Dishes", "Pasta"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tree.Depth(tt.id); got != tt.wantDepth {
				t.Errorf("depth: got %d, want %d", got, tt.wantDepth)
			}
			var names []string
			for _, a := range tree.Ancestors(tt.id) {
				names = append(names, a.Name)
			}
			if !reflect.DeepEqual(names, tt.wantNames) {
				t.Errorf("ancestors: got %v, want %v", names, tt.wantNames)
			}
		})
	}

	if got := tree.Ancestors(uuid.New()); got != nil {
		t.Errorf("expected nil ancestors for unknown ID, got %v", got)
	}
}

// --------------------------------------------------------------------------
// TestTreeDescendants — pre-order walk and the active-only filter
// --------------------------------------------------------------------------

func TestTreeDescendants(t *testing.T) {
	f, tree := newFixture()

	t.Run("full subtree in pre-order", func(t *testing.T) {
		var names []string
		for _, d := range tree.Descendants(f.mains.ID, false) {
			names = append(names, d.Name)
		}
		want := []string{"Pasta", "Baked Pasta", "Grills", "Skewers"}
		if !reflect.DeepEqual(names, want) {
			t.Errorf("got %v, want %v", names, want)
		}
	})

	t.Run("active only skips inactive subtrees", func(t *testing.T) {
		var names []string
		for _, d := range tree.Descendants(f.mains.ID, true) {
			names = append(names, d.Name)
		}
		// Skewers is active but sits below inactive Grills, so it is
		// pruned along with its parent.
		want := []string{"Pasta", "Baked Pasta"}
		if !reflect.DeepEqual(names, want) {
			t.Errorf("got %v, want %v", names, want)
		}
	})

	t.Run("leaf has no descendants", func(t *testing.T) {
		if got := tree.Descendants(f.desserts.ID, false); len(got) != 0 {
			t.Errorf("expected no descendants, got %d", len(got))
		}
	})
}

// --------------------------------------------------------------------------
// TestTreeFullPath — breadcrumb strings
// --------------------------------------------------------------------------

func TestTreeFullPath(t *testing.T) {
	f, tree := newFixture()

	tests := []struct {
		name string
		id   uuid.UUID
		want string
	}{
		{"root", f.mains.ID, "Main Dishes"},
		{"child", f.pasta.ID, "Main Dishes > Pasta"},
		{"grandchild", f.bakedPasta.ID, "Main Dishes > Pasta > Baked Pasta"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tree.FullPath(tt.id); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	if got := tree.FullPath(uuid.New()); got != "" {
		t.Errorf("expected empty path for unknown ID, got %q", got)
	}
}

// --------------------------------------------------------------------------
// TestTreeFindBySlug and ExpandSlugs — slug lookup and subtree expansion
// --------------------------------------------------------------------------

func TestTreeFindBySlug(t *testing.T) {
	f, tree := newFixture()

	c, ok := tree.FindBySlug("baked-pasta")
	if !ok || c.ID != f.bakedPasta.ID {
		t.Errorf("expected to find baked-pasta, got ok=%v id=%v", ok, c.ID)
	}
	if _, ok := tree.FindBySlug("nope"); ok {
		t.Error("expected unknown slug to miss")
	}
}

func TestTreeExpandSlugs(t *testing.T) {
	_, tree := newFixture()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "subtree slugs appended after the requested slug",
			in:   []string{"mains"},
			// Grills is inactive, so it and Skewers are excluded.
			want: []string{"mains", "pasta", "baked-pasta"},
		},
		{
			name: "leaf expands to itself",
			in:   []string{"desserts"},
			want: []string{"desserts"},
		},
		{
			name: "unknown slug passes through",
			in:   []string{"quick-meals"},
			want: []string{"quick-meals"},
		},
		{
			name: "name token expands like its slug",
			in:   []string{"Main Dishes"},
			want: []string{"Main Dishes", "pasta", "baked-pasta"},
		},
		{
			name: "token match is case-insensitive",
			in:   []string{"PASTA"},
			want: []string{"PASTA", "baked-pasta"},
		},
		{
			name: "duplicates collapse",
			in:   []string{"pasta", "mains"},
			want: []string{"pasta", "baked-pasta", "mains"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tree.ExpandSlugs(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

// --------------------------------------------------------------------------
// TestTreeNested — depth annotation and child nesting for responses
// --------------------------------------------------------------------------

func TestTreeNested(t *testing.T) {
	f, tree := newFixture()

	nested := tree.Nested()
	if len(nested) != 2 {
		t.Fatalf("expected 2 top-level nodes, got %d", len(nested))
	}

	mains := nested[0]
	if mains.ID != f.mains.ID || mains.Depth != 0 {
		t.Errorf("unexpected first root: %q depth %d", mains.Name, mains.Depth)
	}
	if len(mains.Children) != 2 {
		t.Fatalf("expected 2 children under mains, got %d", len(mains.Children))
	}
	pasta := mains.Children[0]
	if pasta.Slug != "pasta" || pasta.Depth != 1 {
		t.Errorf("unexpected child: %q depth %d", pasta.Slug, pasta.Depth)
	}
	if len(pasta.Children) != 1 || pasta.Children[0].Depth != 2 {
		t.Errorf("expected one grandchild at depth 2, got %+v", pasta.Children)
	}
}
