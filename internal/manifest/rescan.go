package manifest

import (
	"path/filepath"

	"github.com/gsaget/gsa-downloader/internal/classify"
	"github.com/gsaget/gsa-downloader/internal/model"
	"github.com/gsaget/gsa-downloader/internal/platform"
)

// Rescan rebuilds read manifest entries from what actually sits on disk: one
// entry per BioSample subdirectory of the taxon directory, classified from
// the fastq files found there. Used after the download phase so the manifest
// reflects reality even when some transfers failed.
func Rescan(taxonDir string, conventions []classify.Convention) ([]*model.ReadManifestEntry, error) {
	bioSamples, err := platform.ListSubdirectories(taxonDir)
	if err != nil {
		return nil, err
	}

	var entries []*model.ReadManifestEntry
	for _, bioSample := range bioSamples {
		bioSamplePath := filepath.Join(taxonDir, bioSample)
		files, err := platform.ListFastqFiles(bioSamplePath)
		if err != nil {
			return nil, err
		}
		res := classify.Classify(files, conventions)
		entries = append(entries, EntryFromResult(bioSamplePath, res))
	}

	return entries, nil
}
