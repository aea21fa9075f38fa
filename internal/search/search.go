package search

import (
	"github.com/nikbrunner/starter/internal/model"
	"github.com/sahilm/fuzzy"
)

// SearchResult represents a fuzzy search match.
type SearchResult struct {
	Character      *model.Character
	MatchedIndexes []int
	Score          int
}

// characterNames implements fuzzy.Source for a character slice.
type characterNames []*model.Character

func (cn characterNames) String(i int) string {
	return cn[i].Name
}

func (cn characterNames) Len() int {
	return len(cn)
}

// FuzzySearchCharacters searches characters by name using fuzzy matching.
// Returns results sorted by match score (best first).
func FuzzySearchCharacters(chars []model.Character, query string) []SearchResult {
	if query == "" {
		return nil
	}

	names := make(characterNames, len(chars))
	for i := range chars {
		names[i] = &chars[i]
	}

	matches := fuzzy.FindFrom(query, names)

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		results[i] = SearchResult{
			Character:      names[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}
