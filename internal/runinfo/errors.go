package runinfo

import "errors"

var (
	// ErrMalformedRow marks a RunInfo row whose required fields are missing
	// or whose file/size/URL lists disagree in cardinality. Rows failing this
	// way are dropped and logged, never silently truncated.
	ErrMalformedRow = errors.New("malformed runinfo row")

	// ErrDuplicateBioSampleConflict marks two runs of one BioSample reporting
	// different organism names. Signals upstream scraping inconsistency;
	// handled as a warning with first-wins.
	ErrDuplicateBioSampleConflict = errors.New("duplicate biosample conflict")
)
