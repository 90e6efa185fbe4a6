// Package cli renders match results for terminal output.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hyperjump/erabu/internal/models"
	"github.com/hyperjump/erabu/pkg/utils"
)

// OutputFormat is the format for match result output.
type OutputFormat string

const (
	// OutputText is human-readable creator cards (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteMatchResults writes the response to w in the given format.
func WriteMatchResults(w io.Writer, response *models.MatchResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	default:
		writeMatchResultsText(w, response)
		return nil
	}
}

func writeMatchResultsText(w io.Writer, response *models.MatchResponse) {
	source := "computed"
	if response.Cached {
		source = "cached"
	}
	fmt.Fprintf(w, "\nTop %d of %d matching creators in %dms (%s)\n\n",
		len(response.Results), response.Total, response.QueryTime, source)
	if len(response.Results) == 0 {
		fmt.Fprintln(w, "No matching creators found. Adjust your filters or campaign brief.")
		return
	}
	for _, r := range response.Results {
		writeCreatorCard(w, r)
	}
}

func writeCreatorCard(w io.Writer, r *models.MatchResult) {
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "#%d %s | Score: %.4f\n", r.Rank, r.Profile.Name, r.Score)
	fmt.Fprintf(w, "Niche: %s | Location: %s | Audience: %s\n",
		r.Profile.Niche, r.Profile.Location, audienceLabel(r.Profile))
	fmt.Fprintf(w, "\n%s\n\n", utils.Truncate(r.Profile.Bio, 200))
}

// audienceLabel prefers the compact parsed count; unparseable cells are shown raw.
func audienceLabel(p *models.CreatorProfile) string {
	if p.AudienceSize > 0 {
		return utils.FormatCount(p.AudienceSize)
	}
	if p.AudienceRaw != "" {
		return p.AudienceRaw
	}
	return "unknown"
}
