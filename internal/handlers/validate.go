package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for search and category inputs.
const (
	maxQueryLen       = 200
	maxFilterTerms    = 20
	maxFilterTermLen  = 100
	maxCategoryName   = 120
	maxCategorySlug   = 120
	maxDescriptionLen = 2_000
)

// validateSearchInput checks free-text query and filter term lists,
// returning the first error found as a user-facing message.
func validateSearchInput(query string, termLists ...[]string) string {
	if utf8.RuneCountInString(query) > maxQueryLen {
		return "Query is too long (max 200 characters)."
	}
	for _, terms := range termLists {
		if len(terms) > maxFilterTerms {
			return "Too many filter terms (max 20 per filter)."
		}
		for _, term := range terms {
			if utf8.RuneCountInString(term) > maxFilterTermLen {
				return "Filter term is too long (max 100 characters)."
			}
		}
	}
	return ""
}

// validateCategoryInput checks category form inputs and returns the
// first error found.
func validateCategoryInput(name, slug, description string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxCategoryName {
		return "Name is too long (max 120 characters)."
	}
	if utf8.RuneCountInString(slug) > maxCategorySlug {
		return "Slug is too long (max 120 characters)."
	}
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return "Description is too long (max 2,000 characters)."
	}
	return ""
}
