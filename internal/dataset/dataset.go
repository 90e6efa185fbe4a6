// Package dataset loads and validates uploaded creator datasets (CSV or XLSX).
package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"github.com/hyperjump/erabu/internal/models"
)

// RequiredColumns are the headers every uploaded dataset must contain.
// Extra columns are tolerated and passed through to export.
var RequiredColumns = []string{"name", "bio", "niche", "location", "audience_size"}

// Dataset is a loaded, validated creator dataset.
type Dataset struct {
	// Name is the uploaded file name.
	Name string
	// Headers is the full column list in original order, extras included.
	Headers []string
	// Profiles holds one entry per data row, in file order.
	Profiles []*models.CreatorProfile
	// Fingerprint is the content hash of the raw upload. Identical re-uploads
	// fingerprint identically regardless of file name.
	Fingerprint string
}

// Fingerprint returns the hex sha256 of the raw file content.
func Fingerprint(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Niches returns the sorted distinct non-empty niche values.
func (d *Dataset) Niches() []string {
	return d.distinct(func(p *models.CreatorProfile) string { return p.Niche })
}

// Locations returns the sorted distinct non-empty location values.
func (d *Dataset) Locations() []string {
	return d.distinct(func(p *models.CreatorProfile) string { return p.Location })
}

func (d *Dataset) distinct(field func(*models.CreatorProfile) string) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, p := range d.Profiles {
		v := field(p)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// Value returns the cell for header in the given profile, for export.
func (d *Dataset) Value(p *models.CreatorProfile, header string) string {
	switch header {
	case "name":
		return p.Name
	case "bio":
		return p.Bio
	case "niche":
		return p.Niche
	case "location":
		return p.Location
	case "audience_size":
		return p.AudienceRaw
	default:
		return p.Extra[header]
	}
}
