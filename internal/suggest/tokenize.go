// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package suggest

import (
	"strings"
	"unicode"
)

// unitWords are measurement tokens stripped from ingredient names before
// they become suggestion candidates. Heuristic configuration data, like
// the dietary synonym table: extend deliberately, not reflexively.
var unitWords = wordSet(
	"cup", "cups", "tbsp", "tablespoon", "tablespoons", "tsp", "teaspoon",
	"teaspoons", "oz", "ounce", "ounces", "lb", "lbs", "pound", "pounds",
	"gram", "grams", "g", "kg", "ml", "l", "liter", "liters", "litre",
	"litres", "pinch", "dash", "clove", "cloves", "slice", "slices",
	"can", "cans", "piece", "pieces",
)

// prepWords are preparation adjectives stripped from ingredient names.
var prepWords = wordSet(
	"chopped", "diced", "sliced", "minced", "grated", "shredded", "peeled",
	"crushed", "melted", "softened", "beaten", "ground", "fresh", "frozen",
	"dried", "cooked", "large", "medium", "small",
)

// transforms is the ingredient normalization pipeline, applied in order:
// strip digits, strip unit words, strip prep adjectives, trim
// punctuation, title-case. Each stage is a pure string transform.
var transforms = []func(string) string{
	stripDigits,
	stripWords(unitWords),
	stripWords(prepWords),
	trimPunctuation,
	titleCase,
}

// CleanIngredient normalizes a raw ingredient name ("2 cups chopped
// fresh basil") into a suggestion token ("Basil"). Returns "" when
// nothing survives the pipeline.
func CleanIngredient(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	for _, t := range transforms {
		s = t(s)
	}
	return s
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func stripDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func stripWords(set map[string]struct{}) func(string) string {
	return func(s string) string {
		fields := strings.Fields(s)
		kept := fields[:0]
		for _, f := range fields {
			if _, drop := set[strings.Trim(f, ".,")]; drop {
				continue
			}
			kept = append(kept, f)
		}
		return strings.Join(kept, " ")
	}
}

func trimPunctuation(s string) string {
	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, ".,;:!?()[]/\"'-")
		if f != "" {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}

func titleCase(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		r := []rune(f)
		r[0] = unicode.ToUpper(r[0])
		fields[i] = string(r)
	}
	return strings.Join(fields, " ")
}
