package pipeline

import (
	"go.uber.org/zap"

	"github.com/gsaget/gsa-downloader/internal/download"
)

// RunSummary aggregates the whole run for the final report and exit status.
type RunSummary struct {
	Taxa     []TaxonResult
	Download download.Summary
	DryRun   bool
}

// ExitCode is non-zero iff any download task ended failed
func (s *RunSummary) ExitCode() int {
	if s.Download.HasFailures() {
		return 1
	}
	return 0
}

// FailedTaxa lists taxa whose metadata phase failed outright
func (s *RunSummary) FailedTaxa() []TaxonResult {
	var failed []TaxonResult
	for _, t := range s.Taxa {
		if t.Err != nil {
			failed = append(failed, t)
		}
	}
	return failed
}

// DroppedRows totals the malformed rows dropped across all taxa
func (s *RunSummary) DroppedRows() int {
	n := 0
	for _, t := range s.Taxa {
		n += t.DroppedRows
	}
	return n
}

// Log writes the operator-facing end-of-run report: what was skipped, what
// failed, and why.
func (s *RunSummary) Log(log *zap.Logger) {
	for _, t := range s.Taxa {
		switch {
		case t.Err != nil:
			log.Error("taxon could not be processed",
				zap.String("taxon", t.Taxon), zap.Error(t.Err))
		case t.NoResults:
			log.Info("taxon had no results", zap.String("taxon", t.Taxon))
		default:
			log.Info("taxon processed",
				zap.String("taxon", t.Taxon),
				zap.Int("runs", t.RunCount),
				zap.Int("biosamples", t.BioSamples),
				zap.Int("dropped_rows", t.DroppedRows),
				zap.Int("tasks", t.TaskCount))
		}
	}

	if s.DryRun {
		log.Info("dry run complete: no files transferred")
		return
	}

	log.Info("download phase complete",
		zap.Int("total", s.Download.Total),
		zap.Int("completed", s.Download.Completed),
		zap.Int("skipped_exists", s.Download.Skipped),
		zap.Int("failed", s.Download.Failed))

	for _, f := range s.Download.Failures {
		log.Error("download failed",
			zap.String("dest", f.DestPath),
			zap.String("url", f.URL),
			zap.String("reason", f.Reason))
	}
}
