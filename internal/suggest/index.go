// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package suggest derives autocomplete candidates and popular-search
// terms from the live recipe corpus: recipe titles, cleaned ingredient
// tokens, active category names, tags, and author handles.
package suggest

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"platepress/internal/models"
)

// MinQueryLength gates suggestions: shorter prefixes return an all-empty
// bundle rather than scanning the corpus.
const MinQueryLength = 2

// DefaultLimit caps each suggestion list when the caller passes no limit.
const DefaultLimit = 10

// RecipeSource provides the published-recipe snapshot the index
// tokenizes. A nil viewer keeps drafts out of suggestions.
type RecipeSource interface {
	ListForSearch(ctx context.Context, viewer *uuid.UUID) ([]models.Recipe, error)
}

// CategorySource provides the category list with published-recipe counts.
type CategorySource interface {
	List(ctx context.Context) ([]models.Category, error)
}

// Index computes suggestions from the live corpus, with an optional
// Valkey cache in front.
type Index struct {
	recipes    RecipeSource
	categories CategorySource
	cache      *Cache // nil disables caching
}

// New builds a suggestion index. cache may be nil.
func New(recipes RecipeSource, categories CategorySource, cache *Cache) *Index {
	return &Index{recipes: recipes, categories: categories, cache: cache}
}

// Suggest returns up to limit matches per list for the partial query.
// Queries shorter than MinQueryLength return an empty bundle.
func (ix *Index) Suggest(ctx context.Context, query string, limit int) (models.SuggestionBundle, error) {
	empty := models.SuggestionBundle{
		Recipes:     []string{},
		Ingredients: []string{},
		Categories:  []string{},
		Tags:        []string{},
		Authors:     []string{},
	}

	query = strings.TrimSpace(query)
	if len([]rune(query)) < MinQueryLength {
		return empty, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	if ix.cache != nil {
		if bundle, ok := ix.cache.GetBundle(ctx, strings.ToLower(query), limit); ok {
			return bundle, nil
		}
	}

	recipes, err := ix.recipes.ListForSearch(ctx, nil)
	if err != nil {
		return empty, fmt.Errorf("suggest: %w", err)
	}
	cats, err := ix.categories.List(ctx)
	if err != nil {
		return empty, fmt.Errorf("suggest: %w", err)
	}

	bundle := models.SuggestionBundle{
		Recipes:     matchTitles(recipes, query, limit),
		Ingredients: matchTokens(ingredientFrequencies(recipes), query, limit),
		Categories:  matchCategories(cats, query, limit),
		Tags:        matchTokens(tagFrequencies(recipes), query, limit),
		Authors:     matchAuthors(recipes, query, limit),
	}

	if ix.cache != nil {
		ix.cache.SetBundle(ctx, strings.ToLower(query), limit, bundle)
	}
	return bundle, nil
}

// PopularSearches combines the most frequent cleaned ingredient tokens
// with the categories referenced by the most published recipes, half the
// limit each.
func (ix *Index) PopularSearches(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	if ix.cache != nil {
		if terms, ok := ix.cache.GetPopular(ctx, limit); ok {
			return terms, nil
		}
	}

	recipes, err := ix.recipes.ListForSearch(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("popular searches: %w", err)
	}
	cats, err := ix.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("popular searches: %w", err)
	}

	half := limit / 2
	terms := topTokens(ingredientFrequencies(recipes), half)

	// Categories ranked by published-recipe count; ties go to the older
	// category.
	active := make([]models.Category, 0, len(cats))
	for _, c := range cats {
		if c.IsActive {
			active = append(active, c)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].RecipeCount != active[j].RecipeCount {
			return active[i].RecipeCount > active[j].RecipeCount
		}
		return active[i].CreatedAt.Before(active[j].CreatedAt)
	})
	for i := 0; i < len(active) && i < half; i++ {
		terms = append(terms, active[i].Name)
	}

	if ix.cache != nil {
		ix.cache.SetPopular(ctx, limit, terms)
	}
	return terms, nil
}

// frequency is a token with its corpus occurrence count, ordered most
// common first with an alphabetical tie-break for determinism.
type frequency struct {
	token string
	count int
}

func ingredientFrequencies(recipes []models.Recipe) []frequency {
	counts := make(map[string]int)
	for i := range recipes {
		for _, ing := range recipes[i].Ingredients {
			if token := CleanIngredient(ing.Name); token != "" {
				counts[token]++
			}
		}
	}
	return orderByCount(counts)
}

func tagFrequencies(recipes []models.Recipe) []frequency {
	counts := make(map[string]int)
	for i := range recipes {
		for _, tag := range recipes[i].Tags {
			if tag = strings.TrimSpace(tag); tag != "" {
				counts[strings.ToLower(tag)]++
			}
		}
	}
	return orderByCount(counts)
}

func orderByCount(counts map[string]int) []frequency {
	out := make([]frequency, 0, len(counts))
	for token, count := range counts {
		out = append(out, frequency{token: token, count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].token < out[j].token
	})
	return out
}

func topTokens(freqs []frequency, limit int) []string {
	out := make([]string, 0, limit)
	for i := 0; i < len(freqs) && i < limit; i++ {
		out = append(out, freqs[i].token)
	}
	return out
}

func matchTitles(recipes []models.Recipe, query string, limit int) []string {
	out := []string{}
	for i := range recipes {
		if len(out) == limit {
			break
		}
		if containsFold(recipes[i].Title, query) {
			out = append(out, recipes[i].Title)
		}
	}
	return out
}

func matchTokens(freqs []frequency, query string, limit int) []string {
	out := []string{}
	for _, f := range freqs {
		if len(out) == limit {
			break
		}
		if containsFold(f.token, query) {
			out = append(out, f.token)
		}
	}
	return out
}

func matchCategories(cats []models.Category, query string, limit int) []string {
	out := []string{}
	for _, c := range cats {
		if len(out) == limit {
			break
		}
		if c.IsActive && containsFold(c.Name, query) {
			out = append(out, c.Name)
		}
	}
	return out
}

func matchAuthors(recipes []models.Recipe, query string, limit int) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for i := range recipes {
		if len(out) == limit {
			break
		}
		handle := recipes[i].AuthorHandle
		if _, dup := seen[handle]; dup {
			continue
		}
		if containsFold(handle, query) {
			seen[handle] = struct{}{}
			out = append(out, handle)
		}
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
