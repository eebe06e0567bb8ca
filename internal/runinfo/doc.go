package runinfo

// Package runinfo turns the portal's RunInfo export into typed records: the
// row parser, the BioSample grouping/normalization pass, and the raw CSV
// read/write helpers used for the provenance table.
