package runinfo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gsaget/gsa-downloader/internal/model"
)

// ListSeparator splits the multi-file fields of a RunInfo row (FileName,
// FileSize, Download_path).
const ListSeparator = "|"

// ParseRow turns one raw RunInfo row into a RunRecord. The row is a plain
// comma-split field list; cols maps names to positions.
//
// Required: Run, BioSample, FileName, Download_path. The FileName, FileSize
// and Download_path lists must agree in cardinality (FileSize only when the
// column is present and non-empty). Sizes that fail to parse become -1 rather
// than failing the row.
func ParseRow(cols *Columns, row []string) (*model.RunRecord, error) {
	run := cols.Get(row, ColRun)
	bioSample := cols.Get(row, ColBioSample)
	fileNames := splitList(cols.Get(row, ColFileName))
	urls := splitList(cols.Get(row, ColDownloadPath))

	if run == "" {
		return nil, fmt.Errorf("%w: missing Run", ErrMalformedRow)
	}
	if bioSample == "" {
		return nil, fmt.Errorf("%w: run %s missing BioSample", ErrMalformedRow, run)
	}
	if len(fileNames) == 0 {
		return nil, fmt.Errorf("%w: run %s has no FileName entries", ErrMalformedRow, run)
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("%w: run %s has no Download_path entries", ErrMalformedRow, run)
	}
	if len(urls) != len(fileNames) {
		return nil, fmt.Errorf("%w: run %s has %d file names but %d URLs",
			ErrMalformedRow, run, len(fileNames), len(urls))
	}

	sizes, err := parseSizes(cols.Get(row, ColFileSize), len(fileNames))
	if err != nil {
		return nil, fmt.Errorf("%w: run %s: %v", ErrMalformedRow, run, err)
	}

	record := &model.RunRecord{
		Run:            run,
		BioProject:     cols.Get(row, ColBioProject),
		BioSample:      bioSample,
		Experiment:     cols.Get(row, ColExperiment),
		SampleTitle:    cols.Get(row, ColSampleTitle),
		LibraryLayout:  cols.Get(row, ColLibraryLayout),
		Platform:       cols.Get(row, ColPlatform),
		FileNames:      fileNames,
		FileSizes:      sizes,
		DownloadURLs:   urls,
		TaxID:          cols.Get(row, ColTaxID),
		ScientificName: cols.Get(row, ColScientificName),
		Raw:            row,
	}

	return record, nil
}

// splitList splits a pipe-delimited field into trimmed non-empty parts
func splitList(field string) []string {
	if field == "" {
		return nil
	}
	parts := strings.Split(field, ListSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseSizes parses the FileSize list. An empty field yields -1 for every
// file; a non-empty field must match the file count. Individual entries that
// fail to parse as integers yield -1.
func parseSizes(field string, fileCount int) ([]int64, error) {
	sizes := make([]int64, fileCount)
	if field == "" {
		for i := range sizes {
			sizes[i] = -1
		}
		return sizes, nil
	}

	parts := splitList(field)
	if len(parts) != fileCount {
		return nil, fmt.Errorf("%d sizes for %d files", len(parts), fileCount)
	}

	for i, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n < 0 {
			sizes[i] = -1
			continue
		}
		sizes[i] = n
	}
	return sizes, nil
}

// IsDownloadableURL reports whether the portal URL uses a scheme the
// downloader can fetch. The export mixes in site-relative links that are not
// direct file URLs.
func IsDownloadableURL(url string) bool {
	return strings.HasPrefix(url, "http://") ||
		strings.HasPrefix(url, "https://") ||
		strings.HasPrefix(url, "ftp://")
}
