// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Difficulty grades how hard a recipe is to prepare.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// CookingMethod describes the primary preparation technique of a recipe.
type CookingMethod string

const (
	MethodBaking      CookingMethod = "baking"
	MethodFrying      CookingMethod = "frying"
	MethodGrilling    CookingMethod = "grilling"
	MethodRoasting    CookingMethod = "roasting"
	MethodBoiling     CookingMethod = "boiling"
	MethodSteaming    CookingMethod = "steaming"
	MethodSlowCooking CookingMethod = "slow_cooking"
	MethodNoCook      CookingMethod = "no_cook"
)

// Ingredient is a single ordered entry in a recipe's ingredient list.
type Ingredient struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Amount   string    `json:"amount"`
	Unit     string    `json:"unit"`
	Position int       `json:"position"`
}

// NutritionInfo holds optional per-serving nutrition facts, stored as JSONB.
type NutritionInfo struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Recipe is a recipe record as seen by the search engine. Ingredients,
// tags, category links, and the rating aggregate are virtual fields
// populated by store methods.
type Recipe struct {
	ID              uuid.UUID      `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Instructions    string         `json:"instructions"`
	Difficulty      Difficulty     `json:"difficulty"`
	CookingMethod   CookingMethod  `json:"cooking_method"`
	PrepTimeMinutes int            `json:"prep_time_minutes"`
	CookTimeMinutes int            `json:"cook_time_minutes"`
	Servings        int            `json:"servings"`
	IsPublished     bool           `json:"is_published"`
	AuthorID        uuid.UUID      `json:"author_id"`
	AuthorHandle    string         `json:"author_handle"`
	Nutrition       *NutritionInfo `json:"nutrition,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`

	Ingredients   []Ingredient `json:"ingredients"`
	Tags          []string     `json:"tags"`
	Categories    []Category   `json:"categories"`
	AverageRating float64      `json:"average_rating"`
	RatingCount   int          `json:"rating_count"`
}

// TotalTimeMinutes returns prep plus cook time.
func (r *Recipe) TotalTimeMinutes() int {
	return r.PrepTimeMinutes + r.CookTimeMinutes
}

// HasNutrition reports whether nutrition facts were recorded for the recipe.
func (r *Recipe) HasNutrition() bool {
	return r.Nutrition != nil
}
