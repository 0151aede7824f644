package commands

import (
	"context"
	"sort"
	"strings"

	"nanodesign/internal/application"
	"nanodesign/internal/domain"
)

// SearchResult wraps StrandInfo with a relevance score
type SearchResult struct {
	StrandInfo
	Score int
}

// SearchStrandsCommand finds strands whose label or sequence matches a query
type SearchStrandsCommand struct {
	structure *domain.Structure
	Query     string
}

// NewSearchStrandsCommand creates a new SearchStrandsCommand
func NewSearchStrandsCommand(s *domain.Structure, query string) *SearchStrandsCommand {
	return &SearchStrandsCommand{
		structure: s,
		Query:     query,
	}
}

// Execute runs the search command and returns scored, sorted results
func (c *SearchStrandsCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	if c.structure == nil {
		return nil, application.ErrNoStructure
	}
	if len(c.Query) < 2 {
		return nil, nil
	}

	infos := make([]StrandInfo, 0, len(c.structure.Strands))
	for i := range c.structure.Strands {
		infos = append(infos, DescribeStrand(c.structure, &c.structure.Strands[i]))
	}
	return FuzzySort(infos, c.Query), nil
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	// Check for exact substring match first (highest priority)
	if strings.Contains(target, query) {
		score := 100
		// Bonus if it starts with query
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// Fuzzy match: check if chars appear in order
	score := 0
	queryIdx := 0
	prevMatchIdx := -1

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] == query[queryIdx] {
			if prevMatchIdx == i-1 {
				score += 10 // consecutive chars
			}
			if i == 0 {
				score += 15 // start of string
			}
			if i > 0 && (target[i-1] == ' ' || target[i-1] == '[' || target[i-1] == '>') {
				score += 10 // after separator
			}
			score += 1
			prevMatchIdx = i
			queryIdx++
		}
	}

	if queryIdx == len(query) {
		return score
	}
	return 0
}

// FuzzySort scores strands against the query by label, then by sequence
// substring, and sorts them by relevance. Sequences only match exactly since
// a scattered letter match in DNA is meaningless.
func FuzzySort(strands []StrandInfo, query string) []SearchResult {
	scored := make([]SearchResult, 0, len(strands))

	for _, st := range strands {
		best := FuzzyScore(st.Label(), query)
		if strings.Contains(st.Sequence, strings.ToUpper(query)) {
			best = max(best, 100)
		}

		if best > 0 {
			scored = append(scored, SearchResult{
				StrandInfo: st,
				Score:      best,
			})
		}
	}

	// Sort by score descending, then id for stable output
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].ID < scored[j].ID
	})

	return scored
}
