package model

// RunRecord is one row of origin metadata for a sequencing run, as parsed
// from the portal's RunInfo export. FileNames, FileSizes and DownloadURLs are
// parallel lists: same length, same order.
type RunRecord struct {
	Run            string
	BioProject     string
	BioSample      string
	Experiment     string
	SampleTitle    string
	LibraryLayout  string // "Paired" or "Single"
	Platform       string
	FileNames      []string
	FileSizes      []int64 // -1 where the portal value did not parse
	DownloadURLs   []string
	TaxID          string
	ScientificName string

	// Raw keeps the original comma-split fields for the provenance CSV.
	Raw []string
}

// FileCount returns the number of files attached to the run
func (r *RunRecord) FileCount() int {
	return len(r.FileNames)
}

// IsPaired reports whether the portal tagged the run as paired-end
func (r *RunRecord) IsPaired() bool {
	return r.LibraryLayout == "Paired"
}

// BioSampleMetadata is one row per unique BioSample within a taxon, built by
// grouping run records and scraped attribute tables. Descriptive fields are
// free text and may be empty.
type BioSampleMetadata struct {
	BioSample            string
	BioProject           string
	CollectedBy          string
	CollectionDate       string
	Description          string
	GeographicLocation   string
	Host                 string
	HostDisease          string
	HostSex              string
	IsolationSource      string
	LatitudeAndLongitude string
	Organism             string

	// Runs lists the run IDs grouped under this BioSample, in first-seen order.
	Runs []string
}
