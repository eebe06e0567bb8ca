package pipeline

// Package pipeline wires the stages together: scrape, parse, normalize,
// classify, write tables, download. Each taxon's working set is independent;
// the metadata phase is single-threaded by design and only the download phase
// (and BioSample scraping) fan out.

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gsaget/gsa-downloader/internal/classify"
	"github.com/gsaget/gsa-downloader/internal/config"
	"github.com/gsaget/gsa-downloader/internal/manifest"
	"github.com/gsaget/gsa-downloader/internal/model"
	"github.com/gsaget/gsa-downloader/internal/platform"
	"github.com/gsaget/gsa-downloader/internal/runinfo"
)

// Pipeline runs the whole flow for a list of taxa.
type Pipeline struct {
	cfg         *config.Config
	log         *zap.Logger
	source      MetadataSource
	downloader  Downloader
	conventions []classify.Convention
}

// New assembles a pipeline. Fails when the configured short-read conventions
// do not compile.
func New(cfg *config.Config, log *zap.Logger, source MetadataSource, downloader Downloader) (*Pipeline, error) {
	conventions, err := cfg.Conventions()
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		cfg:         cfg,
		log:         log,
		source:      source,
		downloader:  downloader,
		conventions: conventions,
	}, nil
}

// Run processes every taxon from the input list, then executes the combined
// download batch. Structural failures (unreadable input, uncreatable
// download root) return an error; everything else is isolated per taxon, row
// or file and lands in the summary.
func (p *Pipeline) Run(ctx context.Context) (*RunSummary, error) {
	taxa, err := platform.ReadTaxonList(p.cfg.InputFile)
	if err != nil {
		return nil, err
	}
	if err := platform.CreateDirectoryIfNotExists(p.cfg.DownloadDir); err != nil {
		return nil, fmt.Errorf("create download dir: %w", err)
	}

	summary := &RunSummary{DryRun: p.cfg.DryRun}
	var tasks []*model.DownloadTask
	taxonDirs := make(map[string]string)

	for _, taxon := range taxa {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}

		result := p.processTaxon(ctx, taxon)
		summary.Taxa = append(summary.Taxa, result)
		if result.Err != nil {
			p.log.Error("taxon failed", zap.String("taxon", taxon), zap.Error(result.Err))
			continue
		}
		tasks = append(tasks, result.tasks...)
		if result.taxonDir != "" {
			taxonDirs[taxon] = result.taxonDir
		}
	}

	if p.cfg.DryRun {
		p.log.Info("dry run: skipping download phase", zap.Int("tasks", len(tasks)))
		return summary, nil
	}

	dlSummary, err := p.downloader.Run(ctx, tasks)
	summary.Download = dlSummary
	if err != nil {
		return summary, err
	}

	// Rebuild each taxon's read manifest from what actually landed, so the
	// table stays truthful when transfers failed.
	for taxon, dir := range taxonDirs {
		if err := p.refreshManifest(dir, taxon); err != nil {
			p.log.Warn("manifest refresh failed", zap.String("taxon", taxon), zap.Error(err))
		}
	}

	return summary, nil
}

// TaxonResult is the per-taxon outcome kept for the final summary.
type TaxonResult struct {
	Taxon       string
	Err         error
	NoResults   bool
	RunCount    int
	DroppedRows int
	BioSamples  int
	TaskCount   int

	tasks    []*model.DownloadTask
	taxonDir string
}

// processTaxon runs the metadata phase for one taxon and prepares its
// download tasks. The download phase itself runs later, across all taxa.
func (p *Pipeline) processTaxon(ctx context.Context, taxon string) TaxonResult {
	result := TaxonResult{Taxon: taxon}
	p.log.Info("processing taxon", zap.String("taxon", taxon))

	builder, err := manifest.NewBuilder(p.cfg.DownloadDir, taxon)
	if err != nil {
		result.Err = err
		return result
	}
	result.taxonDir = builder.TaxonDir()

	rawPath, err := p.source.FetchRunInfo(ctx, taxon, builder.TaxonDir())
	if err != nil {
		result.Err = err
		return result
	}
	if rawPath == "" {
		result.NoResults = true
		return result
	}

	table, err := runinfo.ReadTable(rawPath)
	if err != nil {
		result.Err = err
		return result
	}
	table.FilterByScientificName(taxon)

	if err := builder.WriteRunInfo(table); err != nil {
		result.Err = err
		return result
	}
	p.removeRawExport(rawPath, builder)

	if len(table.Rows) == 0 {
		p.log.Info("no matching rows after filtering", zap.String("taxon", taxon))
		result.NoResults = true
		return result
	}

	records := p.parseRows(table, &result)
	result.RunCount = len(records)
	if len(records) == 0 {
		result.NoResults = true
		return result
	}

	metas, conflicts := runinfo.Normalize(records)
	for _, conflict := range conflicts {
		p.log.Warn("biosample conflict", zap.String("taxon", taxon), zap.Error(conflict))
	}
	result.BioSamples = len(metas)

	p.enrichMetadata(ctx, metas)
	if err := builder.WriteBioSampleMetadata(metas); err != nil {
		result.Err = err
		return result
	}

	result.tasks = p.buildTasks(taxon, builder, records)
	result.TaskCount = len(result.tasks)

	if err := p.writeExpectedManifest(builder, metas, result.tasks); err != nil {
		result.Err = err
		return result
	}

	return result
}

// parseRows runs the row parser over the filtered table, dropping and
// counting malformed rows
func (p *Pipeline) parseRows(table *runinfo.Table, result *TaxonResult) []*model.RunRecord {
	var records []*model.RunRecord
	for _, row := range table.Rows {
		rec, err := runinfo.ParseRow(table.Cols, row)
		if err != nil {
			result.DroppedRows++
			p.log.Warn("dropping malformed row", zap.Error(err))
			continue
		}
		records = append(records, rec)
	}
	return records
}

// enrichMetadata fills descriptive fields from the scraped per-BioSample
// attribute tables
func (p *Pipeline) enrichMetadata(ctx context.Context, metas []*model.BioSampleMetadata) {
	ids := make([]string, 0, len(metas))
	for _, m := range metas {
		ids = append(ids, m.BioSample)
	}

	attrs := p.source.AllBioSampleAttributes(ctx, ids, p.cfg.Threads)
	for _, m := range metas {
		if a, ok := attrs[m.BioSample]; ok {
			runinfo.ApplyAttributes(m, a)
		}
	}
}

// buildTasks resolves each run's URLs into download tasks with destination
// paths under the BioSample directory
func (p *Pipeline) buildTasks(taxon string, builder *manifest.Builder, records []*model.RunRecord) []*model.DownloadTask {
	var tasks []*model.DownloadTask
	for _, rec := range records {
		for i, url := range rec.DownloadURLs {
			if !runinfo.IsDownloadableURL(url) {
				p.log.Warn("skipping non-downloadable URL",
					zap.String("run", rec.Run), zap.String("url", url))
				continue
			}
			tasks = append(tasks, &model.DownloadTask{
				ID:           uuid.NewString(),
				URL:          url,
				DestPath:     filepath.Join(builder.BioSampleDir(rec.BioSample), destFileName(rec, i, url)),
				ExpectedSize: rec.FileSizes[i],
				Taxon:        taxon,
				BioSample:    rec.BioSample,
				Run:          rec.Run,
				Status:       model.TaskStatusPending,
			})
		}
	}
	return tasks
}

// destFileName picks the local file name for one run file, following the
// archive's layout: <run>_f1.fq.gz / <run>_r2.fq.gz for a paired pair,
// <run>.fastq.gz for a single file. Runs with other shapes keep the remote
// base name so nothing collides.
func destFileName(rec *model.RunRecord, index int, url string) string {
	if rec.IsPaired() && rec.FileCount() == 2 {
		if index == 0 {
			return rec.Run + "_f1.fq.gz"
		}
		return rec.Run + "_r2.fq.gz"
	}
	if rec.FileCount() == 1 {
		return rec.Run + ".fastq.gz"
	}
	if base := path.Base(url); base != "." && base != "/" && base != "" {
		return base
	}
	return fmt.Sprintf("%s_%d.fastq.gz", rec.Run, index)
}

// writeExpectedManifest classifies each BioSample from its expected file
// names and writes the pre-download read manifest. In dry-run mode this is
// the final manifest; otherwise it is refreshed from disk after downloads.
func (p *Pipeline) writeExpectedManifest(builder *manifest.Builder, metas []*model.BioSampleMetadata, tasks []*model.DownloadTask) error {
	expected := make(map[string][]string)
	for _, task := range tasks {
		expected[task.BioSample] = append(expected[task.BioSample], task.FileName())
	}

	var entries []*model.ReadManifestEntry
	for _, m := range metas {
		res := classify.Classify(expected[m.BioSample], p.conventions)
		entries = append(entries, manifest.EntryFromResult(builder.BioSampleDir(m.BioSample), res))
	}
	return builder.WriteReadManifest(entries)
}

// refreshManifest rewrites a taxon's read manifest from the files on disk
func (p *Pipeline) refreshManifest(taxonDir, taxon string) error {
	entries, err := manifest.Rescan(taxonDir, p.conventions)
	if err != nil {
		return err
	}
	builder, err := manifest.NewBuilder(filepath.Dir(taxonDir), taxon)
	if err != nil {
		return err
	}
	return builder.WriteReadManifest(entries)
}

// removeRawExport clears the portal's raw export files once their content is
// rewritten as the provenance CSV
func (p *Pipeline) removeRawExport(rawPath string, builder *manifest.Builder) {
	if filepath.Clean(rawPath) == filepath.Clean(builder.RunInfoPath()) {
		return
	}
	if err := platform.RemoveIfExists(rawPath); err != nil {
		p.log.Warn("could not remove raw export", zap.String("path", rawPath), zap.Error(err))
	}
	// The portal sometimes drops a default-named file next to the export.
	if err := platform.RemoveIfExists(filepath.Join(builder.TaxonDir(), "RunInfo.csv")); err != nil {
		p.log.Warn("could not remove default RunInfo.csv", zap.Error(err))
	}
}
