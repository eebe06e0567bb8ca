package manifest

// Package manifest writes the three per-taxon output tables: the BioSample
// metadata TSV, the read manifest TSV, and the raw RunInfo provenance CSV.
// Re-running a build overwrites the tables but never touches read files.

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gsaget/gsa-downloader/internal/classify"
	"github.com/gsaget/gsa-downloader/internal/model"
	"github.com/gsaget/gsa-downloader/internal/platform"
	"github.com/gsaget/gsa-downloader/internal/runinfo"
)

// ErrOutputWrite marks a manifest table that could not be written. Fatal for
// the taxon it belongs to; other taxa in the run continue.
var ErrOutputWrite = errors.New("manifest output write failed")

// Table file suffixes
const (
	BioSampleMetadataSuffix = "_biosample_metadata.tsv"
	ReadManifestSuffix      = "_read_manifest.tsv"
	RunInfoSuffix           = "_RunInfo.csv"
)

// ExtraSeparator joins multiple extra long-read paths in one manifest cell
const ExtraSeparator = "|"

// biosampleMetadataHeader is the fixed column order of the metadata TSV
var biosampleMetadataHeader = []string{
	"BioSample", "BioProject_Accession", "Collected_by", "Collection_date",
	"Description", "Geographic_location", "Host", "Host_disease", "Host_sex",
	"Isolation_source", "Latitude_and_longitude", "Organism",
}

// readManifestHeader is the fixed column order of the read manifest TSV
var readManifestHeader = []string{
	"biosample_path", "fastq_count", "status", "short_read_1", "short_read_2",
	"long_read_primary", "long_read_extra",
}

// Builder writes the output tables for one taxon.
type Builder struct {
	taxonDir string
	prefix   string
}

// NewBuilder prepares the output directory for a taxon. Failure to create it
// wraps ErrOutputWrite.
func NewBuilder(downloadDir, taxon string) (*Builder, error) {
	dirName := platform.TaxonDirName(taxon)
	taxonDir := filepath.Join(downloadDir, dirName)
	if err := platform.CreateDirectoryIfNotExists(taxonDir); err != nil {
		return nil, fmt.Errorf("%w: create %s: %v", ErrOutputWrite, taxonDir, err)
	}
	return &Builder{taxonDir: taxonDir, prefix: dirName}, nil
}

// TaxonDir returns the taxon's output directory
func (b *Builder) TaxonDir() string {
	return b.taxonDir
}

// BioSampleDir returns the directory read files for one BioSample land in
func (b *Builder) BioSampleDir(bioSample string) string {
	return filepath.Join(b.taxonDir, bioSample)
}

// WriteBioSampleMetadata writes the per-BioSample metadata TSV
func (b *Builder) WriteBioSampleMetadata(metas []*model.BioSampleMetadata) error {
	rows := make([][]string, 0, len(metas))
	for _, m := range metas {
		rows = append(rows, []string{
			m.BioSample, m.BioProject, m.CollectedBy, m.CollectionDate,
			m.Description, m.GeographicLocation, m.Host, m.HostDisease,
			m.HostSex, m.IsolationSource, m.LatitudeAndLongitude, m.Organism,
		})
	}
	return b.writeTSV(b.prefix+BioSampleMetadataSuffix, biosampleMetadataHeader, rows)
}

// WriteReadManifest writes the read manifest TSV
func (b *Builder) WriteReadManifest(entries []*model.ReadManifestEntry) error {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.BioSamplePath,
			fmt.Sprintf("%d", e.FastqCount),
			e.Status.String(),
			e.ShortRead1,
			e.ShortRead2,
			e.LongReadPrimary,
			strings.Join(e.LongReadExtra, ExtraSeparator),
		})
	}
	return b.writeTSV(b.prefix+ReadManifestSuffix, readManifestHeader, rows)
}

// RunInfoPath returns where the provenance CSV lives for this taxon
func (b *Builder) RunInfoPath() string {
	return filepath.Join(b.taxonDir, b.prefix+RunInfoSuffix)
}

// WriteRunInfo writes the raw run rows verbatim for provenance
func (b *Builder) WriteRunInfo(table *runinfo.Table) error {
	path := b.RunInfoPath()
	if err := table.WriteTo(path); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrOutputWrite, path, err)
	}
	return nil
}

func (b *Builder) writeTSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(b.taxonDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrOutputWrite, path, err)
	}

	w := bufio.NewWriter(f)
	writeLine := func(fields []string) {
		w.WriteString(strings.Join(fields, "\t"))
		w.WriteByte('\n')
	}
	writeLine(header)
	for _, row := range rows {
		writeLine(row)
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("%w: %s: %v", ErrOutputWrite, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrOutputWrite, path, err)
	}
	return nil
}

// EntryFromResult turns a classification into a manifest row. File names are
// joined onto the BioSample directory path so downstream tooling can consume
// the manifest without reconstructing the layout.
func EntryFromResult(bioSamplePath string, res classify.Result) *model.ReadManifestEntry {
	entry := &model.ReadManifestEntry{
		BioSamplePath: bioSamplePath,
		FastqCount:    res.FastqCount,
		Status:        res.Status,
	}

	join := func(name string) string {
		if name == "" {
			return ""
		}
		return filepath.Join(bioSamplePath, name)
	}

	entry.ShortRead1 = join(res.ShortRead1)
	entry.ShortRead2 = join(res.ShortRead2)
	entry.LongReadPrimary = join(res.LongReadPrimary)
	for _, extra := range res.LongReadExtra {
		entry.LongReadExtra = append(entry.LongReadExtra, join(extra))
	}

	return entry
}
