package download

// Package download implements the transfer phase: a fixed-size worker pool
// executing independent file downloads with skip-if-exists, temp-file plus
// atomic rename, and per-file retry. A failed file never aborts the batch.
