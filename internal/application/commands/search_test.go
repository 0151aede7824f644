package commands

import (
	"context"
	"testing"

	"github.com/go-logr/logr/testr"

	"nanodesign/internal/domain"
)

func TestFuzzyScore(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		query     string
		wantScore int
		wantMin   int // use this for relative comparisons
	}{
		{
			name:      "exact match",
			target:    "staple",
			query:     "staple",
			wantScore: 150, // 100 for contains + 50 for prefix
		},
		{
			name:      "prefix match",
			target:    "staple 3 #000005 0[3]->0[0]",
			query:     "staple 3",
			wantScore: 150,
		},
		{
			name:      "substring match",
			target:    "staple 3 #000005 0[3]->0[0]",
			query:     "#000005",
			wantScore: 100,
		},
		{
			name:    "fuzzy match across separators",
			target:  "scaffold 0 - 0[0]->0[3]",
			query:   "s00",
			wantMin: 1,
		},
		{
			name:      "no match",
			target:    "scaffold 0 - 0[0]->0[3]",
			query:     "xyz",
			wantScore: 0,
		},
		{
			name:      "empty query",
			target:    "scaffold",
			query:     "",
			wantScore: 0,
		},
		{
			name:    "case insensitive",
			target:  "STAPLE",
			query:   "staple",
			wantMin: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := FuzzyScore(tt.target, tt.query)

			if tt.wantScore > 0 {
				if score != tt.wantScore {
					t.Errorf("expected score %d, got %d", tt.wantScore, score)
				}
			} else if tt.wantMin > 0 {
				if score < tt.wantMin {
					t.Errorf("expected score >= %d, got %d", tt.wantMin, score)
				}
			} else {
				if score != 0 {
					t.Errorf("expected score 0, got %d", score)
				}
			}
		})
	}
}

func TestFuzzySort(t *testing.T) {
	strands := []StrandInfo{
		{ID: 0, Role: "scaffold", Color: domain.NoColor, Sequence: "ACGT"},
		{ID: 1, Role: "staple", Color: 5, Sequence: "TTTT"},
		{ID: 2, Role: "staple", Color: 7, Sequence: "GGAC"},
	}

	sorted := FuzzySort(strands, "gac")

	if len(sorted) == 0 || sorted[0].ID != 2 {
		t.Fatalf("expected strand 2 first by sequence match, got %+v", sorted)
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Score > sorted[i-1].Score {
			t.Errorf("results not sorted by score: %d > %d at index %d",
				sorted[i].Score, sorted[i-1].Score, i)
		}
	}
}

func TestSearchStrandsCommand(t *testing.T) {
	s, err := domain.Build(testDesign(), domain.DefaultParameters(), false, testr.New(t))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	results, err := NewSearchStrandsCommand(s, "#000007").Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Color != 7 {
		t.Errorf("expected the color 7 staple, got %+v", results)
	}

	short, _ := NewSearchStrandsCommand(s, "s").Execute(context.Background())
	if short != nil {
		t.Errorf("expected no results for a one-letter query, got %d", len(short))
	}
}
