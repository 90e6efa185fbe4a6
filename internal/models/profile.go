// Package models defines core data structures for creator profiles, match
// queries, and match results.
package models

// CreatorProfile is one row of an uploaded creator dataset. Profiles are
// immutable once loaded.
type CreatorProfile struct {
	Name     string `json:"name"`
	Bio      string `json:"bio"`
	Niche    string `json:"niche"`
	Location string `json:"location"`
	// AudienceRaw is the audience_size cell exactly as uploaded. It is what
	// gets exported, so malformed values survive the pipeline untouched.
	AudienceRaw string `json:"audience_size"`
	// AudienceSize is the best-effort parse of AudienceRaw; 0 when unparseable.
	AudienceSize int64 `json:"-"`
	// Extra holds values of columns beyond the required five, keyed by header.
	Extra map[string]string `json:"extra,omitempty"`
}
