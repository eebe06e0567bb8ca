package model

// ReadManifestEntry is one row of the per-taxon read manifest: the layout
// classification of a single BioSample and the file paths backing it.
//
// The layout invariant: LayoutShortOnly populates exactly ShortRead1 and
// ShortRead2; LayoutLongOnly populates LongReadPrimary (and possibly
// LongReadExtra); LayoutHybrid populates both sides.
type ReadManifestEntry struct {
	BioSamplePath   string
	FastqCount      int
	Status          LayoutStatus
	ShortRead1      string
	ShortRead2      string
	LongReadPrimary string
	LongReadExtra   []string
}
