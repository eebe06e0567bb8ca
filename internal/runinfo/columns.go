package runinfo

import (
	"fmt"
	"strings"
)

// Column names as they appear in the portal's RunInfo header
const (
	ColRun            = "Run"
	ColBioProject     = "BioProject"
	ColBioSample      = "BioSample"
	ColExperiment     = "Experiment"
	ColSampleTitle    = "Sample_title"
	ColLibraryLayout  = "LibraryLayout"
	ColPlatform       = "Platform"
	ColFileName       = "FileName"
	ColFileSize       = "FileSize"
	ColDownloadPath   = "Download_path"
	ColTaxID          = "TaxID"
	ColScientificName = "ScientificName"
)

// MaxColumns is how many leading columns of the export are trusted. Fields
// past this point may contain embedded commas that break naive splitting, so
// the raw CSV is truncated to this width before any parsing.
const MaxColumns = 22

// Columns maps header names to field positions for one RunInfo export.
type Columns struct {
	index map[string]int
}

// NewColumns builds a column map from the header row of a RunInfo export.
// Required columns must all be present.
func NewColumns(header []string) (*Columns, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	for _, required := range []string{ColRun, ColBioSample, ColFileName, ColDownloadPath} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("%w: header missing column %q", ErrMalformedRow, required)
		}
	}

	return &Columns{index: index}, nil
}

// Get returns the trimmed value of the named column, or "" when the column
// is absent or the row is too short.
func (c *Columns) Get(row []string, name string) string {
	i, ok := c.index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Has reports whether the header declared the named column.
func (c *Columns) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}
