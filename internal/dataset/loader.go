package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hyperjump/erabu/internal/models"
)

// Load parses an uploaded tabular file. The format is picked by extension:
// .csv is parsed as delimited text, .xlsx/.xls as a spreadsheet (first sheet).
// Returns UnsupportedFileTypeError for anything else and MissingColumnError
// when required headers are absent.
func Load(filename string, content []byte) (*Dataset, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	var (
		rows [][]string
		err  error
	)
	switch ext {
	case ".csv":
		rows, err = readCSV(content)
	case ".xlsx", ".xls":
		rows, err = readExcel(content)
	default:
		return nil, &UnsupportedFileTypeError{Ext: ext}
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset %q has no header row", filename)
	}

	headers := rows[0]
	if missing := missingColumns(headers); len(missing) > 0 {
		return nil, &MissingColumnError{Columns: missing}
	}

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		if _, ok := index[h]; !ok {
			index[h] = i
		}
	}

	profiles := make([]*models.CreatorProfile, 0, len(rows)-1)
	for _, row := range rows[1:] {
		profiles = append(profiles, buildProfile(headers, index, row))
	}

	return &Dataset{
		Name:        filename,
		Headers:     headers,
		Profiles:    profiles,
		Fingerprint: Fingerprint(content),
	}, nil
}

func readCSV(content []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse CSV: %w", err)
	}
	return rows, nil
}

func readExcel(content []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("get rows for sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func missingColumns(headers []string) []string {
	present := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		present[h] = struct{}{}
	}
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

func buildProfile(headers []string, index map[string]int, row []string) *models.CreatorProfile {
	cell := func(col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}
	p := &models.CreatorProfile{
		Name:        cell("name"),
		Bio:         cell("bio"),
		Niche:       cell("niche"),
		Location:    cell("location"),
		AudienceRaw: cell("audience_size"),
	}
	p.AudienceSize = parseAudience(p.AudienceRaw)

	for i, h := range headers {
		if isRequired(h) || i >= len(row) {
			continue
		}
		if p.Extra == nil {
			p.Extra = make(map[string]string)
		}
		p.Extra[h] = row[i]
	}
	return p
}

func isRequired(header string) bool {
	for _, col := range RequiredColumns {
		if header == col {
			return true
		}
	}
	return false
}

// parseAudience is best-effort: thousands separators are stripped, floats are
// truncated, anything else yields 0. The raw cell is kept for export either way.
func parseAudience(s string) int64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return 0
}
