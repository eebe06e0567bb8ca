package platform

// Package platform contains filesystem glue shared by the pipeline: directory
// creation, the taxon input list, and download-directory scanning.
