package download

// Failure records one task that exhausted its retries.
type Failure struct {
	DestPath string
	URL      string
	Reason   string
}

// Summary aggregates the terminal states of one batch.
type Summary struct {
	Total     int
	Completed int
	Skipped   int
	Failed    int
	Failures  []Failure
}

// HasFailures reports whether any task ended failed; the process exit status
// is non-zero when true.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// Transferred returns how many tasks actually moved bytes
func (s Summary) Transferred() int {
	return s.Completed
}
