package pipeline

import (
	"context"

	"github.com/gsaget/gsa-downloader/internal/download"
	"github.com/gsaget/gsa-downloader/internal/model"
)

// MetadataSource is the scraping collaborator: something that can produce a
// RunInfo export and per-BioSample attribute tables for a taxon. The
// production implementation drives a browser (internal/scrape); tests use a
// canned source.
type MetadataSource interface {
	// FetchRunInfo exports the taxon's RunInfo table into destDir and
	// returns the path of the exported file. An empty path with a nil error
	// means the portal had no results for the taxon.
	FetchRunInfo(ctx context.Context, taxon, destDir string) (string, error)

	// AllBioSampleAttributes scrapes attribute tables for the given
	// BioSamples with at most workers in flight. Unscrapeable BioSamples are
	// simply absent from the result.
	AllBioSampleAttributes(ctx context.Context, bioSamples []string, workers int) map[string]map[string]string
}

// Downloader executes a batch of download tasks. Satisfied by
// download.Service.
type Downloader interface {
	Run(ctx context.Context, tasks []*model.DownloadTask) (download.Summary, error)
}
