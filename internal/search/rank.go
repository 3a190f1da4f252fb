// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package search

import (
	"sort"

	"github.com/google/uuid"

	"platepress/internal/models"
)

// lessFunc orders two recipes. Ties fall through to the documented
// tie-break keys so repeated queries over unchanged data return the same
// order.
type lessFunc func(a, b *models.Recipe) bool

// scores holds per-recipe relevance scores; only the relevance strategy
// consumes it.
type scores map[uuid.UUID]float64

// comparators maps each sort order to its comparator. Ranking never
// fails: an unknown selector falls through to newest in comparatorFor.
var comparators = map[models.SortOrder]func(sc scores) lessFunc{
	models.SortRelevance: func(sc scores) lessFunc {
		return func(a, b *models.Recipe) bool {
			if sc[a.ID] != sc[b.ID] {
				return sc[a.ID] > sc[b.ID]
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
	},
	models.SortRating: func(scores) lessFunc {
		return func(a, b *models.Recipe) bool {
			if a.AverageRating != b.AverageRating {
				return a.AverageRating > b.AverageRating
			}
			if a.RatingCount != b.RatingCount {
				return a.RatingCount > b.RatingCount
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
	},
	models.SortPopularity: func(scores) lessFunc {
		return func(a, b *models.Recipe) bool {
			if a.RatingCount != b.RatingCount {
				return a.RatingCount > b.RatingCount
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
	},
	models.SortNewest: func(scores) lessFunc {
		return func(a, b *models.Recipe) bool {
			return a.CreatedAt.After(b.CreatedAt)
		}
	},
	models.SortOldest: func(scores) lessFunc {
		return func(a, b *models.Recipe) bool {
			return a.CreatedAt.Before(b.CreatedAt)
		}
	},
	models.SortTitle: func(scores) lessFunc {
		return func(a, b *models.Recipe) bool {
			return a.Title < b.Title
		}
	},
	models.SortPrepTime: func(scores) lessFunc {
		return func(a, b *models.Recipe) bool {
			return a.PrepTimeMinutes < b.PrepTimeMinutes
		}
	},
	models.SortCookTime: func(scores) lessFunc {
		return func(a, b *models.Recipe) bool {
			return a.CookTimeMinutes < b.CookTimeMinutes
		}
	},
	models.SortTotalTime: func(scores) lessFunc {
		return func(a, b *models.Recipe) bool {
			return a.TotalTimeMinutes() < b.TotalTimeMinutes()
		}
	},
}

// comparatorFor looks up the comparator for an order. An unset order
// means relevance (the default strategy); an unrecognized one falls back
// to newest so ranking never fails.
func comparatorFor(order models.SortOrder, sc scores) lessFunc {
	if order == "" {
		order = models.SortRelevance
	}
	if build, ok := comparators[order]; ok {
		return build(sc)
	}
	return comparators[models.SortNewest](sc)
}

// rank orders the filtered set in place. Stable sort over the store's
// deterministic snapshot order keeps remaining ties reproducible.
func rank(items []models.Recipe, order models.SortOrder, sc scores) {
	less := comparatorFor(order, sc)
	sort.SliceStable(items, func(i, j int) bool {
		return less(&items[i], &items[j])
	})
}
