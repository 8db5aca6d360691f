package search_test

import (
	"errors"
	"testing"

	"github.com/worklinkhq/worklink/internal/app"
	"github.com/worklinkhq/worklink/internal/search"
	"github.com/worklinkhq/worklink/pkg/models"
)

func catalog() []*models.Job {
	return []*models.Job{
		{
			ID:          "1",
			Title:       "Senior React Developer",
			Company:     "TechCorp",
			Location:    "San Francisco, CA (Remote)",
			JobType:     "remote",
			Experience:  "senior",
			Description: "We are seeking an experienced React developer to join our frontend team.",
			MatchScore:  92,
		},
		{
			ID:          "2",
			Title:       "UX/UI Designer",
			Company:     "DesignHub",
			Location:    "New York, NY",
			JobType:     "on-site",
			Experience:  "mid",
			Description: "Design intuitive and beautiful user experiences for web and mobile.",
			MatchScore:  85,
		},
		{
			ID:          "3",
			Title:       "Full Stack Engineer",
			Company:     "StartupInc",
			Location:    "Austin, TX (Hybrid)",
			JobType:     "hybrid",
			Experience:  "mid",
			Description: "Versatile developer comfortable with React, Node.js, and MongoDB.",
			MatchScore:  78,
		},
		{
			ID:          "4",
			Title:       "Product Manager",
			Company:     "ProductPro",
			Location:    "Seattle, WA",
			JobType:     "on-site",
			Experience:  "senior",
			Description: "Lead the development of new product features from conception to launch.",
			MatchScore:  73,
		},
	}
}

func ids(jobs []*models.Job) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.ID
	}
	return out
}

func equalIDs(a []string, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		query search.Query
		want  []string
	}{
		{
			name:  "empty query returns the source unchanged",
			query: search.Query{},
			want:  []string{"1", "2", "3", "4"},
		},
		{
			name:  "unset filters are ignored",
			query: search.Query{Filters: map[string]string{"location": "", "jobType": ""}},
			want:  []string{"1", "2", "3", "4"},
		},
		{
			name:  "free text matches title case-insensitively",
			query: search.Query{FreeText: "react"},
			want:  []string{"1", "3"},
		},
		{
			name:  "free text matches company",
			query: search.Query{FreeText: "designhub"},
			want:  []string{"2"},
		},
		{
			name:  "free text matches description",
			query: search.Query{FreeText: "conception to launch"},
			want:  []string{"4"},
		},
		{
			name:  "location remote matches substring of location field",
			query: search.Query{Filters: map[string]string{"location": "remote"}},
			want:  []string{"1"},
		},
		{
			name:  "experience filter",
			query: search.Query{Filters: map[string]string{"experience": "senior"}},
			want:  []string{"1", "4"},
		},
		{
			name: "predicates are conjunctive",
			query: search.Query{
				FreeText: "react",
				Filters:  map[string]string{"jobType": "hybrid"},
			},
			want: []string{"3"},
		},
		{
			name:  "no match is a valid empty result",
			query: search.Query{FreeText: "blockchain"},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := search.Filter(catalog(), tt.query)
			if err != nil {
				t.Fatalf("Filter returned error: %v", err)
			}
			if !equalIDs(ids(got), tt.want) {
				t.Errorf("Filter ids = %v, want %v", ids(got), tt.want)
			}
		})
	}
}

// The documented semantics for location substring matching: "remote" selects
// every job whose location mentions it, regardless of case or decoration.
func TestFilterLocationRemoteFixture(t *testing.T) {
	jobs := []*models.Job{
		{ID: "sf", Title: "A", Company: "A", Location: "San Francisco, CA (Remote)"},
		{ID: "ny", Title: "B", Company: "B", Location: "New York, NY"},
		{ID: "atx", Title: "C", Company: "C", Location: "Austin, TX (Remote)"},
	}
	got, err := search.Filter(jobs, search.Query{Filters: map[string]string{"location": "remote"}})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if !equalIDs(ids(got), []string{"sf", "atx"}) {
		t.Errorf("Filter ids = %v, want [sf atx]", ids(got))
	}
}

func TestFilterIsStableSubsequence(t *testing.T) {
	source := catalog()
	got, err := search.Filter(source, search.Query{Filters: map[string]string{"experience": "mid"}})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}

	// Every result must appear in the source, in the same relative order.
	pos := -1
	for _, j := range got {
		found := -1
		for i, s := range source {
			if s.ID == j.ID {
				found = i
				break
			}
		}
		if found < 0 {
			t.Fatalf("result %s not in source", j.ID)
		}
		if found <= pos {
			t.Errorf("result order diverges from source order at %s", j.ID)
		}
		pos = found
	}
}

func TestFilterDoesNotMutateSource(t *testing.T) {
	source := catalog()
	before := ids(source)

	if _, err := search.Filter(source, search.Query{FreeText: "react"}); err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if !equalIDs(ids(source), before) {
		t.Error("Filter reordered or mutated the source collection")
	}
}

func TestFilterUnknownKey(t *testing.T) {
	_, err := search.Filter(catalog(), search.Query{Filters: map[string]string{"salary": "100k"}})
	if !errors.Is(err, app.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestFilterPassesMatchScoreThrough(t *testing.T) {
	got, err := search.Filter(catalog(), search.Query{FreeText: "react"})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if got[0].MatchScore != 92 || got[1].MatchScore != 78 {
		t.Errorf("match scores not passed through unchanged: %d, %d", got[0].MatchScore, got[1].MatchScore)
	}
}

func TestQueryIsEmpty(t *testing.T) {
	if !(search.Query{}).IsEmpty() {
		t.Error("zero query should be empty")
	}
	if !(search.Query{Filters: map[string]string{"location": ""}}).IsEmpty() {
		t.Error("query with only unset filters should be empty")
	}
	if (search.Query{FreeText: "go"}).IsEmpty() {
		t.Error("query with free text should not be empty")
	}
}
