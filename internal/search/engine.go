// Package search filters a job collection by free text and structured
// criteria. It is pure: it never mutates its input and always preserves the
// source order, so result order never surprises the user between searches.
package search

import (
	"fmt"
	"strings"

	"github.com/worklinkhq/worklink/internal/app"
	"github.com/worklinkhq/worklink/pkg/models"
)

// Filter keys accepted in a Query. Anything else is an invalid query.
const (
	FilterLocation   = "location"
	FilterJobType    = "jobType"
	FilterExperience = "experience"
)

// Query is a search request. An empty FreeText and no set filters matches
// everything. Filter values are matched as case-insensitive substrings of
// the corresponding structured field; an empty value means unset.
type Query struct {
	FreeText string
	Filters  map[string]string
}

// IsEmpty reports whether the query constrains nothing.
func (q Query) IsEmpty() bool {
	if strings.TrimSpace(q.FreeText) != "" {
		return false
	}
	for _, v := range q.Filters {
		if v != "" {
			return false
		}
	}
	return true
}

// Filter returns the jobs matching q, in source order. All predicates are
// conjunctive. An empty result is a valid outcome; the only error is an
// unknown filter key, reported as ErrInvalidQuery.
func Filter(jobs []*models.Job, q Query) ([]*models.Job, error) {
	for key := range q.Filters {
		switch key {
		case FilterLocation, FilterJobType, FilterExperience:
		default:
			return nil, fmt.Errorf("unknown filter %q: %w", key, app.ErrInvalidQuery)
		}
	}

	out := make([]*models.Job, 0, len(jobs))
	for _, job := range jobs {
		if matches(job, q) {
			out = append(out, job)
		}
	}
	return out, nil
}

func matches(job *models.Job, q Query) bool {
	if text := strings.TrimSpace(q.FreeText); text != "" {
		if !containsFold(job.Title, text) &&
			!containsFold(job.Company, text) &&
			!containsFold(job.Description, text) {
			return false
		}
	}

	for key, value := range q.Filters {
		if value == "" {
			continue
		}
		if !containsFold(structuredField(job, key), value) {
			return false
		}
	}
	return true
}

func structuredField(job *models.Job, key string) string {
	switch key {
	case FilterLocation:
		return job.Location
	case FilterJobType:
		return job.JobType
	case FilterExperience:
		return job.Experience
	}
	return ""
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
