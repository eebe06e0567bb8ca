package model

// Package model defines domain data structures used across the pipeline: run
// records scraped from the GSA portal, normalized BioSample metadata, read
// manifest entries, download tasks, and status enums. Structures are plain
// values with explicit state transitions; nothing here touches the network.
