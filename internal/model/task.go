package model

import (
	"path/filepath"
	"time"
)

// DownloadTask represents a single file transfer: one (BioSample, file) pair.
// Tasks are created by the pipeline once URLs are resolved and consumed
// exactly once by the download service.
type DownloadTask struct {
	ID           string
	URL          string
	DestPath     string
	ExpectedSize int64 // bytes; -1 when the portal did not report a size
	Taxon        string
	BioSample    string
	Run          string
	Status       TaskStatus
	Attempts     int
	LastError    string // last error message if any
	StartedAt    time.Time
	FinishedAt   time.Time
}

// FileName returns the base name of the destination path
func (dt *DownloadTask) FileName() string {
	return filepath.Base(dt.DestPath)
}

// HasExpectedSize reports whether the portal gave a usable byte size for the
// post-download sanity check
func (dt *DownloadTask) HasExpectedSize() bool {
	return dt.ExpectedSize >= 0
}
