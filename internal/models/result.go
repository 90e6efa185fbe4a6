package models

// MatchResult is one scored profile. Score is cosine similarity in [-1, 1].
type MatchResult struct {
	Profile *CreatorProfile `json:"profile"`
	Score   float64         `json:"similarity_score"`
	Rank    int             `json:"rank"`
}

// MatchResponse is the response for a match request.
type MatchResponse struct {
	Results []*MatchResult `json:"results"`
	// Total is the number of rows that passed the filters, before top-K truncation.
	Total int    `json:"total"`
	Brief string `json:"brief"`
	// Cached is true when the scores were reused from the previous generation
	// rather than recomputed.
	Cached    bool  `json:"cached"`
	QueryTime int64 `json:"query_time_ms"`
}
