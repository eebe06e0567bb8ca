package scrape

import "errors"

// ErrScrapeUnavailable marks a taxon whose metadata could not be scraped:
// the portal is unreachable or its page structure no longer matches
// expectations. Fatal for that taxon only; the run continues.
var ErrScrapeUnavailable = errors.New("scrape unavailable")
