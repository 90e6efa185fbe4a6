// Package e2e provides end-to-end tests; this file builds creator dataset fixtures.
package e2e

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Creator is one fixture row. Engagement is an extra column beyond the
// required set; it must survive the pipeline untouched.
type Creator struct {
	Name       string
	Bio        string
	Niche      string
	Location   string
	Audience   string
	Engagement string
}

// FixtureCreators is the standard corpus for end-to-end tests. Bios are
// written so that a beauty brief overlaps Priya on two terms, Neha on one,
// and Aman on none, giving a deterministic ranking under the mock embedder.
var FixtureCreators = []Creator{
	{"Neha Sharma", "Fashion & lifestyle influencer", "Fashion", "Mumbai", "180000", "4.2"},
	{"Aman Raj", "Tech enthusiast | Gadget reviews", "Tech", "Delhi", "95000", "3.1"},
	{"Priya Patel", "Skincare and makeup tutorials", "Beauty", "Mumbai", "220000", "5.0"},
}

var fixtureHeaders = []string{"name", "bio", "niche", "location", "audience_size", "engagement_rate"}

func (c Creator) row() []string {
	return []string{c.Name, c.Bio, c.Niche, c.Location, c.Audience, c.Engagement}
}

// FixtureCSV renders the corpus as CSV content.
func FixtureCSV() string {
	var sb strings.Builder
	sb.WriteString(strings.Join(fixtureHeaders, ","))
	sb.WriteByte('\n')
	for _, c := range FixtureCreators {
		sb.WriteString(strings.Join(c.row(), ","))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FixtureXLSX renders the corpus as an xlsx workbook.
func FixtureXLSX() ([]byte, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for col, h := range fixtureHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	for i, c := range FixtureCreators {
		for col, v := range c.row() {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
