// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package search

import "strings"

// dietarySynonyms expands a restriction name into the phrases that count
// as a match in a recipe's tags, description, or category names. The sets
// are heuristic configuration data carried over as-is: they may under- or
// over-match, and tuning them is a product decision, not a code fix.
var dietarySynonyms = map[string][]string{
	"vegan":       {"vegan", "plant-based", "plant based"},
	"vegetarian":  {"vegetarian", "veggie"},
	"gluten-free": {"gluten-free", "gluten free", "gf"},
	"dairy-free":  {"dairy-free", "dairy free", "lactose-free", "lactose free"},
	"keto":        {"keto", "ketogenic"},
	"paleo":       {"paleo", "paleolithic"},
	"low-carb":    {"low-carb", "low carb"},
	"nut-free":    {"nut-free", "nut free"},
}

// expandRestriction returns the synonym set for a restriction name. An
// unknown restriction matches only its own (normalized) name.
func expandRestriction(name string) []string {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, " ", "-")
	if syns, ok := dietarySynonyms[key]; ok {
		return syns
	}
	return []string{strings.ToLower(strings.TrimSpace(name))}
}
