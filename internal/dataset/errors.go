package dataset

import (
	"fmt"
	"strings"
)

// MissingColumnError reports required columns absent from an uploaded dataset.
// The upload is rejected as a whole; Columns lists every missing header.
type MissingColumnError struct {
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return "dataset is missing required column(s): " + strings.Join(e.Columns, ", ")
}

// UnsupportedFileTypeError reports an upload whose extension is not a
// supported tabular format.
type UnsupportedFileTypeError struct {
	Ext string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("unsupported file type %q: upload a .csv or .xlsx file", e.Ext)
}
