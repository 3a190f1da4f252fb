// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"platepress/internal/category"
	"platepress/internal/markdown"
	"platepress/internal/models"
)

// Searcher is the search engine surface the public handlers need.
type Searcher interface {
	Search(ctx context.Context, req models.SearchRequest) ([]models.Recipe, error)
}

// Suggester serves autocomplete and popular-search reads.
type Suggester interface {
	Suggest(ctx context.Context, query string, limit int) (models.SuggestionBundle, error)
	PopularSearches(ctx context.Context, limit int) ([]string, error)
}

// RecipeFinder fetches a single recipe for the detail endpoint.
type RecipeFinder interface {
	FindByID(ctx context.Context, viewer *uuid.UUID, id uuid.UUID) (*models.Recipe, error)
}

// TreeLoader provides a category tree snapshot for subtree expansion and
// the category listing.
type TreeLoader interface {
	Load(ctx context.Context) (*category.Tree, error)
}

// Public groups the read-only JSON endpoints.
type Public struct {
	engine      Searcher
	suggestions Suggester
	recipes     RecipeFinder
	categories  TreeLoader
}

// NewPublic creates the public handler group.
func NewPublic(engine Searcher, suggestions Suggester, recipes RecipeFinder, categories TreeLoader) *Public {
	return &Public{
		engine:      engine,
		suggestions: suggestions,
		recipes:     recipes,
		categories:  categories,
	}
}

// Search handles GET /api/recipes/search. The engine returns the full
// ordered sequence; pagination is applied here, over that order.
func (p *Public) Search(w http.ResponseWriter, r *http.Request) {
	req := searchRequestFromQuery(r)

	if msg := validateSearchInput(req.Query,
		req.Ingredients, req.ExcludeIngredients, req.Categories,
		req.Tags, req.DietaryRestrictions,
	); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	// subtree=true widens each requested category to its active
	// descendants before the engine's direct-membership filter runs.
	if len(req.Categories) > 0 && parseBool(r.URL.Query().Get("subtree")) {
		tree, err := p.categories.Load(r.Context())
		if err != nil {
			slog.Error("load category tree failed", "error", err)
			writeError(w, http.StatusInternalServerError, "search failed")
			return
		}
		req.Categories = tree.ExpandSlugs(req.Categories)
	}

	items, err := p.engine.Search(r.Context(), req)
	if err != nil {
		slog.Error("search failed", "error", err)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	limit := clampInt(parseInt(r.URL.Query().Get("limit"), 20), 1, 100)
	offset := parseInt(r.URL.Query().Get("offset"), 0)
	if offset < 0 {
		offset = 0
	}

	total := len(items)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total":  total,
		"limit":  limit,
		"offset": offset,
		"items":  items[offset:end],
	})
}

// Suggest handles GET /api/suggest.
func (p *Public) Suggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if msg := validateSearchInput(query); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	limit := clampInt(parseInt(r.URL.Query().Get("limit"), 10), 1, 25)

	bundle, err := p.suggestions.Suggest(r.Context(), query, limit)
	if err != nil {
		slog.Error("suggest failed", "error", err)
		writeError(w, http.StatusInternalServerError, "suggest failed")
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

// PopularSearches handles GET /api/popular-searches.
func (p *Public) PopularSearches(w http.ResponseWriter, r *http.Request) {
	limit := clampInt(parseInt(r.URL.Query().Get("limit"), 10), 1, 50)

	terms, err := p.suggestions.PopularSearches(r.Context(), limit)
	if err != nil {
		slog.Error("popular searches failed", "error", err)
		writeError(w, http.StatusInternalServerError, "popular searches failed")
		return
	}
	if terms == nil {
		terms = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"terms": terms})
}

// recipeDetail is a Recipe plus rendered HTML for the text fields.
type recipeDetail struct {
	models.Recipe
	DescriptionHTML  string `json:"description_html"`
	InstructionsHTML string `json:"instructions_html"`
}

// RecipeDetail handles GET /api/recipes/{id}.
func (p *Public) RecipeDetail(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid recipe id")
		return
	}

	recipe, err := p.recipes.FindByID(r.Context(), nil, id)
	if err != nil {
		slog.Error("find recipe failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	if recipe == nil {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}

	detail := recipeDetail{Recipe: *recipe}
	if detail.DescriptionHTML, err = markdown.ToHTML(recipe.Description); err != nil {
		slog.Warn("render description failed", "id", id, "error", err)
	}
	if detail.InstructionsHTML, err = markdown.ToHTML(recipe.Instructions); err != nil {
		slog.Warn("render instructions failed", "id", id, "error", err)
	}
	writeJSON(w, http.StatusOK, detail)
}

// Categories handles GET /api/categories, returning the nested tree.
func (p *Public) Categories(w http.ResponseWriter, r *http.Request) {
	tree, err := p.categories.Load(r.Context())
	if err != nil {
		slog.Error("load category tree failed", "error", err)
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": tree.Nested()})
}

// searchRequestFromQuery maps URL query parameters onto a SearchRequest.
func searchRequestFromQuery(r *http.Request) models.SearchRequest {
	q := r.URL.Query()
	return models.SearchRequest{
		Query:               strings.TrimSpace(q.Get("q")),
		Ingredients:         parseList(q, "ingredients"),
		ExcludeIngredients:  parseList(q, "exclude_ingredients"),
		Categories:          parseList(q, "categories"),
		Tags:                parseList(q, "tags"),
		DietaryRestrictions: parseList(q, "dietary"),
		Difficulty:          models.Difficulty(q.Get("difficulty")),
		CookingMethod:       models.CookingMethod(q.Get("cooking_method")),
		Author:              strings.TrimSpace(q.Get("author")),
		MinRating:           parseFloat(q.Get("min_rating")),
		MaxPrepTime:         parseInt(q.Get("max_prep_time"), 0),
		MaxCookTime:         parseInt(q.Get("max_cook_time"), 0),
		MaxTotalTime:        parseInt(q.Get("max_total_time"), 0),
		MinServings:         parseInt(q.Get("min_servings"), 0),
		MaxServings:         parseInt(q.Get("max_servings"), 0),
		HasNutritionInfo:    parseOptionalBool(q.Get("has_nutrition")),
		OrderBy:             models.SortOrder(q.Get("order_by")),
	}
}

// parseList accepts both repeated parameters (tags=a&tags=b) and a
// single comma-separated value (tags=a,b).
func parseList(q map[string][]string, key string) []string {
	values := q[key]
	if len(values) == 1 && strings.Contains(values[0], ",") {
		values = strings.Split(values[0], ",")
	}
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && b
}

func parseOptionalBool(s string) *bool {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	return &b
}

func clampInt(n, min, max int) int {
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}
