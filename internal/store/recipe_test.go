// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"testing"

	"platepress/internal/models"
)

func TestRecipeCreateAndFind(t *testing.T) {
	db := testDB(t)
	author := testUser(t, db, "recipe-store-author")
	cleanCategories(t, db, "store-test-soups")
	t.Cleanup(func() { cleanCategories(t, db, "store-test-soups") })

	cats := NewCategoryStore(db)
	s := NewRecipeStore(db)
	ctx := context.Background()

	soup, err := cats.Create(ctx, &models.Category{Name: "Store Test Soups", Slug: "store-test-soups", IsActive: true})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	created, err := s.Create(ctx, &models.Recipe{
		Title:           "Store Test Minestrone",
		Description:     "Vegetable soup.",
		Instructions:    "Simmer everything.",
		Difficulty:      models.DifficultyEasy,
		CookingMethod:   models.MethodBoiling,
		PrepTimeMinutes: 15,
		CookTimeMinutes: 40,
		Servings:        6,
		IsPublished:     true,
		AuthorID:        author.ID,
		Nutrition:       &models.NutritionInfo{Calories: 210, Protein: 9},
		Ingredients: []models.Ingredient{
			{Name: "carrots", Amount: "2"},
			{Name: "celery", Amount: "2", Unit: "stalks"},
			{Name: "white beans", Amount: "1", Unit: "can"},
		},
		Tags:       []string{"soup", "vegetarian"},
		Categories: []models.Category{*soup},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := s.FindByID(ctx, nil, created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("expected to find the recipe")
	}
	if found.AuthorHandle != author.Handle {
		t.Errorf("author handle: got %q, want %q", found.AuthorHandle, author.Handle)
	}
	if len(found.Ingredients) != 3 || found.Ingredients[0].Name != "carrots" {
		t.Errorf("ingredients not attached in position order: %+v", found.Ingredients)
	}
	if len(found.Tags) != 2 {
		t.Errorf("tags not attached: %v", found.Tags)
	}
	if len(found.Categories) != 1 || found.Categories[0].Slug != "store-test-soups" {
		t.Errorf("categories not attached: %+v", found.Categories)
	}
	if found.Nutrition == nil || found.Nutrition.Calories != 210 {
		t.Errorf("nutrition not round-tripped: %+v", found.Nutrition)
	}
	if found.RatingCount != 0 || found.AverageRating != 0 {
		t.Errorf("unrated recipe should aggregate to zero, got %v/%d",
			found.AverageRating, found.RatingCount)
	}
}

func TestRecipeVisibility(t *testing.T) {
	db := testDB(t)
	author := testUser(t, db, "recipe-vis-author")
	stranger := testUser(t, db, "recipe-vis-stranger")

	s := NewRecipeStore(db)
	ctx := context.Background()

	draft, err := s.Create(ctx, &models.Recipe{
		Title:       "Store Test Draft",
		Difficulty:  models.DifficultyEasy,
		Servings:    1,
		IsPublished: false,
		AuthorID:    author.ID,
	})
	if err != nil {
		t.Fatalf("Create draft: %v", err)
	}

	t.Run("anonymous viewers cannot see drafts", func(t *testing.T) {
		got, err := s.FindByID(ctx, nil, draft.ID)
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if got != nil {
			t.Error("draft leaked to anonymous viewer")
		}
	})

	t.Run("other authors cannot see drafts", func(t *testing.T) {
		got, err := s.FindByID(ctx, &stranger.ID, draft.ID)
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if got != nil {
			t.Error("draft leaked to another author")
		}
	})

	t.Run("the author sees their own draft", func(t *testing.T) {
		got, err := s.FindByID(ctx, &author.ID, draft.ID)
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if got == nil {
			t.Fatal("author cannot see their own draft")
		}
	})

	t.Run("snapshot applies the same gate", func(t *testing.T) {
		anon, err := s.ListForSearch(ctx, nil)
		if err != nil {
			t.Fatalf("ListForSearch: %v", err)
		}
		for _, r := range anon {
			if r.ID == draft.ID {
				t.Error("draft leaked into the anonymous snapshot")
			}
		}

		own, err := s.ListForSearch(ctx, &author.ID)
		if err != nil {
			t.Fatalf("ListForSearch: %v", err)
		}
		found := false
		for _, r := range own {
			if r.ID == draft.ID {
				found = true
			}
		}
		if !found {
			t.Error("author snapshot missing their draft")
		}
	})
}

func TestRecipeRatingAggregate(t *testing.T) {
	db := testDB(t)
	author := testUser(t, db, "recipe-rating-author")
	rater := testUser(t, db, "recipe-rating-rater")

	recipes := NewRecipeStore(db)
	ratings := NewRatingStore(db)
	ctx := context.Background()

	r, err := recipes.Create(ctx, &models.Recipe{
		Title:       "Store Test Rated Dish",
		Difficulty:  models.DifficultyEasy,
		Servings:    2,
		IsPublished: true,
		AuthorID:    author.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := ratings.Upsert(ctx, r.ID, rater.ID, 4); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := ratings.Upsert(ctx, r.ID, author.ID, 2); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, err := recipes.FindByID(ctx, nil, r.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.RatingCount != 2 || got.AverageRating != 3 {
		t.Errorf("aggregate: got %v/%d, want 3/2", got.AverageRating, got.RatingCount)
	}

	// A re-rate replaces the old score instead of adding a row.
	if err := ratings.Upsert(ctx, r.ID, rater.ID, 5); err != nil {
		t.Fatalf("Upsert replace: %v", err)
	}
	got, err = recipes.FindByID(ctx, nil, r.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.RatingCount != 2 {
		t.Errorf("re-rate added a row: count %d", got.RatingCount)
	}
	if got.AverageRating != 3.5 {
		t.Errorf("average after re-rate: got %v, want 3.5", got.AverageRating)
	}

	list, err := ratings.ForRecipe(ctx, r.ID)
	if err != nil {
		t.Fatalf("ForRecipe: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("expected 2 individual ratings, got %d", len(list))
	}
}

func TestRatingScoreRange(t *testing.T) {
	db := testDB(t)
	ratings := NewRatingStore(db)
	ctx := context.Background()

	for _, score := range []int{0, 6, -1} {
		if err := ratings.Upsert(ctx, testUUID(t), testUUID(t), score); err == nil {
			t.Errorf("score %d: expected range error", score)
		}
	}
}

func TestRecipeTextRank(t *testing.T) {
	db := testDB(t)
	author := testUser(t, db, "recipe-rank-author")

	s := NewRecipeStore(db)
	ctx := context.Background()

	if !s.SupportsTextRank(ctx) {
		t.Skip("skipping: text rank not supported by this database")
	}

	titleHit, err := s.Create(ctx, &models.Recipe{
		Title:       "Store Test Gazpacho",
		Description: "Cold tomato soup.",
		Difficulty:  models.DifficultyEasy,
		Servings:    4,
		IsPublished: true,
		AuthorID:    author.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	descHit, err := s.Create(ctx, &models.Recipe{
		Title:       "Store Test Bread",
		Description: "Serve alongside gazpacho.",
		Difficulty:  models.DifficultyEasy,
		Servings:    4,
		IsPublished: true,
		AuthorID:    author.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	scores, err := s.TextRankScores(ctx, "gazpacho")
	if err != nil {
		t.Fatalf("TextRankScores: %v", err)
	}
	if scores[titleHit.ID] <= 0 || scores[descHit.ID] <= 0 {
		t.Fatalf("expected positive scores, got %v and %v", scores[titleHit.ID], scores[descHit.ID])
	}
	// Titles carry weight A, descriptions weight B.
	if scores[titleHit.ID] <= scores[descHit.ID] {
		t.Errorf("title match should outrank description match: %v vs %v",
			scores[titleHit.ID], scores[descHit.ID])
	}
}

func TestUserFindByHandle(t *testing.T) {
	db := testDB(t)
	u := testUser(t, db, "handle-lookup-user")

	users := NewUserStore(db)
	ctx := context.Background()

	got, err := users.FindByHandle(ctx, "HANDLE-LOOKUP-USER")
	if err != nil {
		t.Fatalf("FindByHandle: %v", err)
	}
	if got == nil || got.ID != u.ID {
		t.Errorf("case-insensitive lookup failed: %+v", got)
	}

	missing, err := users.FindByHandle(ctx, "no-such-handle")
	if err != nil {
		t.Fatalf("FindByHandle missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown handle, got %+v", missing)
	}
}
