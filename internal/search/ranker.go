// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package search

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"platepress/internal/models"
)

// Heuristic relevance weights, applied when no text index is available.
// Title matches outrank description matches, which outrank tag matches;
// anything else that passed the text predicate gets the floor weight.
const (
	weightTitle       = 1.0
	weightDescription = 0.8
	weightTag         = 0.6
	weightOther       = 0.4
)

// TextRanker scores recipes against a free-text query for the relevance
// strategy. Implementations must not mutate the recipes.
type TextRanker interface {
	Name() string
	Scores(ctx context.Context, query string, recipes []models.Recipe) (map[uuid.UUID]float64, error)
}

// TextRankStore is the store capability the native ranker needs.
type TextRankStore interface {
	SupportsTextRank(ctx context.Context) bool
	TextRankScores(ctx context.Context, query string) (map[uuid.UUID]float64, error)
}

// SelectRanker picks the ranking strategy once at startup: the store's
// native text index when the capability probe succeeds, the heuristic
// substring ranker otherwise.
func SelectRanker(ctx context.Context, store TextRankStore) TextRanker {
	if store != nil && store.SupportsTextRank(ctx) {
		slog.Info("text ranker selected", "ranker", "native")
		return &NativeRanker{store: store}
	}
	slog.Info("text ranker selected", "ranker", "heuristic")
	return HeuristicRanker{}
}

// HeuristicRanker scores by where the query matches: title, description,
// tag, or anywhere else (category names). It never fails.
type HeuristicRanker struct{}

// Name identifies the ranker in logs.
func (HeuristicRanker) Name() string { return "heuristic" }

// Scores assigns each recipe the weight of its best-matching field. An
// empty query scores everything 0, which leaves ordering to the
// relevance tie-break (created_at desc).
func (HeuristicRanker) Scores(_ context.Context, query string, recipes []models.Recipe) (map[uuid.UUID]float64, error) {
	out := make(map[uuid.UUID]float64, len(recipes))
	if query == "" {
		return out, nil
	}
	for i := range recipes {
		out[recipes[i].ID] = heuristicScore(&recipes[i], query)
	}
	return out, nil
}

func heuristicScore(r *models.Recipe, query string) float64 {
	if containsFold(r.Title, query) {
		return weightTitle
	}
	if containsFold(r.Description, query) {
		return weightDescription
	}
	for _, tag := range r.Tags {
		if containsFold(tag, query) {
			return weightTag
		}
	}
	return weightOther
}

// NativeRanker delegates scoring to the store's text index.
type NativeRanker struct {
	store TextRankStore
}

// Name identifies the ranker in logs.
func (*NativeRanker) Name() string { return "native" }

// Scores fetches index rank scores for the query. Recipes the index did
// not score (e.g. the viewer's own drafts) default to 0.
func (n *NativeRanker) Scores(ctx context.Context, query string, _ []models.Recipe) (map[uuid.UUID]float64, error) {
	if query == "" {
		return map[uuid.UUID]float64{}, nil
	}
	return n.store.TextRankScores(ctx, query)
}
