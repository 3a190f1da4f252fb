// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package search implements the recipe discovery engine: it compiles a
// SearchRequest into a conjunction of filter predicates, applies them to
// the visible recipe snapshot, and ranks the result with a deterministic
// strategy table. The engine is stateless per request and never mutates
// the records it reads.
package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"platepress/internal/models"
)

// RecipeSource provides the visibility-filtered recipe snapshot: all
// published recipes, plus the viewer's own unpublished ones when a
// viewer is given.
type RecipeSource interface {
	ListForSearch(ctx context.Context, viewer *uuid.UUID) ([]models.Recipe, error)
}

// Engine is the search, filter, and ranking engine. Dependencies arrive
// via the constructor; the engine holds no mutable state.
type Engine struct {
	recipes RecipeSource
	ranker  TextRanker
}

// NewEngine builds an Engine over the given source and relevance ranker.
func NewEngine(recipes RecipeSource, ranker TextRanker) *Engine {
	return &Engine{recipes: recipes, ranker: ranker}
}

// Search returns the ranked, de-duplicated recipes matching the request.
// A request with no criteria short-circuits to an empty result without
// touching the store. Store failures propagate immediately; the engine
// performs no retries.
func (e *Engine) Search(ctx context.Context, req models.SearchRequest) ([]models.Recipe, error) {
	if req.IsEmpty() {
		return []models.Recipe{}, nil
	}

	all, err := e.recipes.ListForSearch(ctx, req.Viewer)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	preds := buildPredicates(req)
	matched := make([]models.Recipe, 0, len(all))
	seen := make(map[uuid.UUID]struct{}, len(all))
	for i := range all {
		if _, dup := seen[all[i].ID]; dup {
			continue
		}
		if matchesAll(&all[i], preds) {
			seen[all[i].ID] = struct{}{}
			matched = append(matched, all[i])
		}
	}

	rank(matched, req.OrderBy, e.relevanceScores(ctx, req, matched))
	return matched, nil
}

// relevanceScores fetches ranker scores when the strategy needs them.
// A ranker failure degrades to the heuristic scores rather than failing
// the search.
func (e *Engine) relevanceScores(ctx context.Context, req models.SearchRequest, matched []models.Recipe) scores {
	if req.OrderBy != models.SortRelevance && req.OrderBy != "" {
		return nil
	}
	sc, err := e.ranker.Scores(ctx, req.Query, matched)
	if err != nil {
		slog.Warn("text ranker failed, using heuristic scores",
			"ranker", e.ranker.Name(), "error", err)
		sc, _ = HeuristicRanker{}.Scores(ctx, req.Query, matched)
	}
	return sc
}
