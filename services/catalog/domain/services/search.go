package services

import (
	"strings"

	"github.com/rentrobe/rentrobe/services/catalog/domain/models"
)

// Search limits.
const (
	MinSearchLength        = 2
	SearchItemLimit        = 20
	CategorySuggestLimit   = 5
	PopularTermSuggestions = 3
	MaxSuggestions         = 8
)

// PopularTerms are suggested when they contain the query.
var PopularTerms = []string{"evening dress", "wedding suit", "party dress", "formal wear", "casual outfit"}

// NormalizeQuery trims q and reports whether it is long enough to search.
func NormalizeQuery(q string) (string, bool) {
	q = strings.TrimSpace(q)
	return q, len([]rune(q)) >= MinSearchLength
}

// Suggest lists completions for q: names of matching categories first, then
// matching popular terms, capped at MaxSuggestions.
func Suggest(q string, categories []*models.Category) []string {
	suggestions := make([]string, 0, MaxSuggestions)
	for _, c := range categories {
		if len(suggestions) == CategorySuggestLimit {
			break
		}
		if models.ContainsFold(c.Name, q) {
			suggestions = append(suggestions, c.Name)
		}
	}
	terms := 0
	for _, term := range PopularTerms {
		if terms == PopularTermSuggestions {
			break
		}
		if models.ContainsFold(term, q) {
			suggestions = append(suggestions, term)
			terms++
		}
	}
	if len(suggestions) > MaxSuggestions {
		suggestions = suggestions[:MaxSuggestions]
	}
	return suggestions
}
