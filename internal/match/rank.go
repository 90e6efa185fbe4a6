package match

import (
	"sort"

	"github.com/hyperjump/erabu/internal/models"
)

// Rank applies the niche and location filters, sorts by similarity descending,
// and truncates to topK. The sort is stable: equal scores keep dataset row
// order (no secondary key). total is the filtered size before truncation;
// fewer than topK survivors return all of them.
//
// profiles and scores are parallel slices; fresh MatchResult values are built
// so cached scores are never mutated.
func Rank(profiles []*models.CreatorProfile, scores []float64, niche, location string, topK int) (results []*models.MatchResult, total int) {
	results = make([]*models.MatchResult, 0, len(profiles))
	for i, p := range profiles {
		if i >= len(scores) {
			break
		}
		if !models.FilterMatches(niche, p.Niche) || !models.FilterMatches(location, p.Location) {
			continue
		}
		results = append(results, &models.MatchResult{Profile: p, Score: scores[i]})
	}
	total = len(results)

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if topK > 0 && topK < len(results) {
		results = results[:topK]
	}
	for i, r := range results {
		r.Rank = i + 1
	}
	return results, total
}
