package models

import (
	"errors"
	"strings"
)

// FilterAll is the filter value that matches every row.
const FilterAll = "all"

// ErrEmptyBrief is returned when a match is triggered without a campaign brief.
// It is non-fatal: the caller should prompt for a brief, no computation runs.
var ErrEmptyBrief = errors.New("campaign brief cannot be empty")

// MatchQuery is a request to score the active dataset against a campaign brief.
type MatchQuery struct {
	Brief    string `json:"brief"`
	Niche    string `json:"niche,omitempty"`
	Location string `json:"location,omitempty"`
	TopK     int    `json:"top_k,omitempty"`
	// Force recomputes even when the cached generation is still valid.
	Force bool `json:"force,omitempty"`
}

// Validate trims the brief, rejects empty briefs, and normalizes TopK.
func (q *MatchQuery) Validate() error {
	q.Brief = strings.TrimSpace(q.Brief)
	if q.Brief == "" {
		return ErrEmptyBrief
	}
	if q.TopK <= 0 {
		q.TopK = 10
	}
	return nil
}

// FilterMatches reports whether a row value passes a filter. An empty filter
// or FilterAll passes everything; otherwise the comparison is exact and
// case-sensitive, matching the source data verbatim.
func FilterMatches(filter, value string) bool {
	return filter == "" || filter == FilterAll || filter == value
}
