// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package search

import (
	"strings"

	"github.com/google/uuid"

	"platepress/internal/models"
)

// predicate is one independent filter over a recipe. A search request
// compiles into a conjunction of these; each sub-predicate may itself be
// a disjunction (category OR, synonym OR).
type predicate func(r *models.Recipe) bool

// buildPredicates compiles the request into its sub-predicates. Each is
// added only when the corresponding field is present; order is
// irrelevant since they are ANDed.
func buildPredicates(req models.SearchRequest) []predicate {
	var preds []predicate

	if q := strings.TrimSpace(req.Query); q != "" {
		preds = append(preds, textMatch(q))
	}
	if len(req.Ingredients) > 0 {
		preds = append(preds, ingredientInclude(req.Ingredients))
	}
	if len(req.ExcludeIngredients) > 0 {
		preds = append(preds, ingredientExclude(req.ExcludeIngredients))
	}
	if len(req.Categories) > 0 {
		preds = append(preds, categoryMatch(req.Categories))
	}
	if len(req.Tags) > 0 {
		preds = append(preds, tagMatch(req.Tags))
	}
	if len(req.DietaryRestrictions) > 0 {
		preds = append(preds, dietaryMatch(req.DietaryRestrictions))
	}
	if req.Difficulty != "" {
		preds = append(preds, func(r *models.Recipe) bool {
			return r.Difficulty == req.Difficulty
		})
	}
	if req.CookingMethod != "" {
		preds = append(preds, func(r *models.Recipe) bool {
			return r.CookingMethod == req.CookingMethod
		})
	}
	if req.Author != "" {
		preds = append(preds, authorMatch(req.Author))
	}
	if req.MinRating > 0 {
		preds = append(preds, func(r *models.Recipe) bool {
			// A recipe with no ratings aggregates to average 0, so any
			// positive threshold excludes it.
			return r.AverageRating >= req.MinRating
		})
	}
	if req.MaxPrepTime > 0 {
		preds = append(preds, func(r *models.Recipe) bool {
			return r.PrepTimeMinutes <= req.MaxPrepTime
		})
	}
	if req.MaxCookTime > 0 {
		preds = append(preds, func(r *models.Recipe) bool {
			return r.CookTimeMinutes <= req.MaxCookTime
		})
	}
	if req.MaxTotalTime > 0 {
		preds = append(preds, func(r *models.Recipe) bool {
			return r.TotalTimeMinutes() <= req.MaxTotalTime
		})
	}
	if req.MinServings > 0 {
		preds = append(preds, func(r *models.Recipe) bool {
			return r.Servings >= req.MinServings
		})
	}
	if req.MaxServings > 0 {
		preds = append(preds, func(r *models.Recipe) bool {
			return r.Servings <= req.MaxServings
		})
	}
	if req.HasNutritionInfo != nil {
		want := *req.HasNutritionInfo
		preds = append(preds, func(r *models.Recipe) bool {
			return r.HasNutrition() == want
		})
	}

	return preds
}

// matchesAll reports whether the recipe satisfies every sub-predicate.
func matchesAll(r *models.Recipe, preds []predicate) bool {
	for _, p := range preds {
		if !p(r) {
			return false
		}
	}
	return true
}

// textMatch is the fallback free-text predicate: a case-insensitive
// substring match against title, description, tags, and category names.
func textMatch(query string) predicate {
	return func(r *models.Recipe) bool {
		if containsFold(r.Title, query) || containsFold(r.Description, query) {
			return true
		}
		for _, tag := range r.Tags {
			if containsFold(tag, query) {
				return true
			}
		}
		for _, c := range r.Categories {
			if containsFold(c.Name, query) {
				return true
			}
		}
		return false
	}
}

// ingredientInclude requires every term to substring-match some
// ingredient name.
func ingredientInclude(terms []string) predicate {
	return func(r *models.Recipe) bool {
		for _, term := range terms {
			if !hasIngredient(r, term) {
				return false
			}
		}
		return true
	}
}

// ingredientExclude rejects the recipe if any term substring-matches an
// ingredient name ("peanut" also removes "peanut butter").
func ingredientExclude(terms []string) predicate {
	return func(r *models.Recipe) bool {
		for _, term := range terms {
			if hasIngredient(r, term) {
				return false
			}
		}
		return true
	}
}

func hasIngredient(r *models.Recipe, term string) bool {
	for _, ing := range r.Ingredients {
		if containsFold(ing.Name, term) {
			return true
		}
	}
	return false
}

// categoryMatch accepts the recipe when it belongs directly to at least
// one category whose slug or name equals a requested token. Subtree
// semantics are the caller's job: expand through the tree first.
func categoryMatch(tokens []string) predicate {
	return func(r *models.Recipe) bool {
		for _, token := range tokens {
			for _, c := range r.Categories {
				if strings.EqualFold(c.Slug, token) || strings.EqualFold(c.Name, token) {
					return true
				}
			}
		}
		return false
	}
}

// tagMatch requires every requested tag to be present in the tag set.
func tagMatch(tags []string) predicate {
	return func(r *models.Recipe) bool {
		for _, want := range tags {
			found := false
			for _, tag := range r.Tags {
				if strings.EqualFold(tag, want) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	}
}

// dietaryMatch ANDs the restrictions; a restriction matches when any of
// its synonyms appears in the tags, description, or category names.
func dietaryMatch(restrictions []string) predicate {
	return func(r *models.Recipe) bool {
		for _, restriction := range restrictions {
			if !matchesRestriction(r, expandRestriction(restriction)) {
				return false
			}
		}
		return true
	}
}

func matchesRestriction(r *models.Recipe, synonyms []string) bool {
	for _, syn := range synonyms {
		for _, tag := range r.Tags {
			if containsFold(tag, syn) {
				return true
			}
		}
		if containsFold(r.Description, syn) {
			return true
		}
		for _, c := range r.Categories {
			if containsFold(c.Name, syn) {
				return true
			}
		}
	}
	return false
}

// authorMatch resolves the token as a handle or, failing that, an ID.
func authorMatch(token string) predicate {
	id, idErr := uuid.Parse(token)
	return func(r *models.Recipe) bool {
		if strings.EqualFold(r.AuthorHandle, token) {
			return true
		}
		return idErr == nil && r.AuthorID == id
	}
}

// containsFold is a case-insensitive substring test.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
