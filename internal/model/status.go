package model

// TaskStatus represents the status of a download task
type TaskStatus string

const (
	// TaskStatusPending means the task is queued but not started
	TaskStatusPending TaskStatus = "pending"

	// TaskStatusDownloading means the transfer is in progress
	TaskStatusDownloading TaskStatus = "downloading"

	// TaskStatusCompleted means the file was transferred and moved into place
	TaskStatusCompleted TaskStatus = "completed"

	// TaskStatusSkippedExists means the destination already existed with the
	// expected size, so no transfer was performed
	TaskStatusSkippedExists TaskStatus = "skipped-exists"

	// TaskStatusFailed means the task exhausted its retries
	TaskStatusFailed TaskStatus = "failed"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsTerminal returns true if the task is in one of its final states
func (ts TaskStatus) IsTerminal() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusSkippedExists || ts == TaskStatusFailed
}

// LayoutStatus classifies the read layout of a BioSample from the set of its
// resolved file names.
type LayoutStatus string

const (
	// LayoutShortOnly means exactly one forward/reverse short-read pair
	LayoutShortOnly LayoutStatus = "short_only"

	// LayoutLongOnly means long-read files and no short-read pair
	LayoutLongOnly LayoutStatus = "long_only"

	// LayoutHybrid means a short-read pair plus at least one long-read file
	LayoutHybrid LayoutStatus = "hybrid"

	// LayoutUnknown means no recognizable combination; downstream assembly
	// tooling skips these
	LayoutUnknown LayoutStatus = "unknown"
)

// String returns the string representation of LayoutStatus
func (ls LayoutStatus) String() string {
	return string(ls)
}

// IsUsable returns true if downstream assembly tooling can act on the layout
func (ls LayoutStatus) IsUsable() bool {
	return ls == LayoutShortOnly || ls == LayoutLongOnly || ls == LayoutHybrid
}
