// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"

	"github.com/google/uuid"
)

// SortOrder selects how search results are ranked.
type SortOrder string

const (
	SortRelevance  SortOrder = "relevance"
	SortRating     SortOrder = "rating"
	SortPopularity SortOrder = "popularity"
	SortNewest     SortOrder = "newest"
	SortOldest     SortOrder = "oldest"
	SortTitle      SortOrder = "title"
	SortPrepTime   SortOrder = "prep_time"
	SortCookTime   SortOrder = "cook_time"
	SortTotalTime  SortOrder = "total_time"
)

// SearchRequest is the structured input to the search engine. Every field
// is optional; a request with no criteria matches nothing.
type SearchRequest struct {
	Query string `json:"query"`

	Ingredients         []string `json:"ingredients"`
	ExcludeIngredients  []string `json:"exclude_ingredients"`
	Categories          []string `json:"categories"` // slugs or names
	Tags                []string `json:"tags"`
	DietaryRestrictions []string `json:"dietary_restrictions"`

	Difficulty    Difficulty    `json:"difficulty"`
	CookingMethod CookingMethod `json:"cooking_method"`
	Author        string        `json:"author"` // handle or UUID
	MinRating     float64       `json:"min_rating"`

	MaxPrepTime  int `json:"max_prep_time"`
	MaxCookTime  int `json:"max_cook_time"`
	MaxTotalTime int `json:"max_total_time"`
	MinServings  int `json:"min_servings"`
	MaxServings  int `json:"max_servings"`

	HasNutritionInfo *bool `json:"has_nutrition_info"`

	OrderBy SortOrder `json:"order_by"`

	// Viewer, when set, additionally exposes that author's unpublished
	// recipes. Resolved by the request layer, applied at the store boundary.
	Viewer *uuid.UUID `json:"-"`
}

// IsEmpty reports whether the request carries no filter criteria at all.
// A whitespace-only query counts as no query. OrderBy and Viewer alone do
// not make a request non-empty.
func (r *SearchRequest) IsEmpty() bool {
	return strings.TrimSpace(r.Query) == "" &&
		len(r.Ingredients) == 0 &&
		len(r.ExcludeIngredients) == 0 &&
		len(r.Categories) == 0 &&
		len(r.Tags) == 0 &&
		len(r.DietaryRestrictions) == 0 &&
		r.Difficulty == "" &&
		r.CookingMethod == "" &&
		r.Author == "" &&
		r.MinRating == 0 &&
		r.MaxPrepTime == 0 &&
		r.MaxCookTime == 0 &&
		r.MaxTotalTime == 0 &&
		r.MinServings == 0 &&
		r.MaxServings == 0 &&
		r.HasNutritionInfo == nil
}

// SuggestionBundle groups autocomplete candidates by kind. Each list is
// independently capped by the requested limit.
type SuggestionBundle struct {
	Recipes     []string `json:"recipes"`
	Ingredients []string `json:"ingredients"`
	Categories  []string `json:"categories"`
	Tags        []string `json:"tags"`
	Authors     []string `json:"authors"`
}
