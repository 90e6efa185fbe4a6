// Package export serializes ranked match results to downloadable tabular files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/hyperjump/erabu/internal/dataset"
	"github.com/hyperjump/erabu/internal/models"
)

// ScoreColumn is the extra column appended to exports.
const ScoreColumn = "similarity_score"

// Format selects the export serialization.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Write serializes results in the given format. Rows carry every original
// dataset column plus similarity_score, in the displayed (ranked) order.
func Write(w io.Writer, ds *dataset.Dataset, results []*models.MatchResult, format Format) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, ds, results)
	case FormatXLSX:
		return WriteXLSX(w, ds, results)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// WriteCSV writes results as delimited text. Scores use the shortest
// representation that round-trips exactly.
func WriteCSV(w io.Writer, ds *dataset.Dataset, results []*models.MatchResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeaders(ds)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range results {
		if err := cw.Write(exportRow(ds, r)); err != nil {
			return fmt.Errorf("write row for %q: %w", r.Profile.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes results as a single-sheet spreadsheet.
func WriteXLSX(w io.Writer, ds *dataset.Dataset, results []*models.MatchResult) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetList()[0]

	if err := setRow(f, sheet, 1, exportHeaders(ds)); err != nil {
		return err
	}
	for i, r := range results {
		if err := setRow(f, sheet, i+2, exportRow(ds, r)); err != nil {
			return err
		}
	}
	return f.Write(w)
}

func setRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	for j, v := range values {
		cell, err := excelize.CoordinatesToCellName(j+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}

func exportHeaders(ds *dataset.Dataset) []string {
	headers := make([]string, 0, len(ds.Headers)+1)
	headers = append(headers, ds.Headers...)
	return append(headers, ScoreColumn)
}

func exportRow(ds *dataset.Dataset, r *models.MatchResult) []string {
	row := make([]string, 0, len(ds.Headers)+1)
	for _, h := range ds.Headers {
		row = append(row, ds.Value(r.Profile, h))
	}
	return append(row, strconv.FormatFloat(r.Score, 'f', -1, 64))
}
