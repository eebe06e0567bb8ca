package scrape

// Package scrape drives a Chromium instance against the GSA portal: it runs
// the per-taxon search, exports the RunInfo table through the portal's
// "Send to" dialog, and reads per-BioSample attribute tables. The rest of
// the pipeline only sees rows of text, so this collaborator can be swapped
// for a direct HTTP fetch if the portal ever permits one.
