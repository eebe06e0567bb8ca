package runinfo

import (
	"fmt"

	"github.com/gsaget/gsa-downloader/internal/model"
)

// Normalize groups run records by BioSample ID and emits one metadata row per
// group, in first-seen order. Descriptive fields come from the first record
// of each group; later duplicates are not merged.
//
// The returned conflicts wrap ErrDuplicateBioSampleConflict, one per
// BioSample whose runs disagree on organism name. First-wins is still applied
// for those; callers log them as warnings.
func Normalize(records []*model.RunRecord) ([]*model.BioSampleMetadata, []error) {
	byID := make(map[string]*model.BioSampleMetadata)
	var order []string
	var conflicts []error

	for _, rec := range records {
		meta, seen := byID[rec.BioSample]
		if !seen {
			meta = &model.BioSampleMetadata{
				BioSample:  rec.BioSample,
				BioProject: rec.BioProject,
				Organism:   rec.ScientificName,
			}
			byID[rec.BioSample] = meta
			order = append(order, rec.BioSample)
		} else if rec.ScientificName != "" && meta.Organism != "" && rec.ScientificName != meta.Organism {
			conflicts = append(conflicts, fmt.Errorf(
				"%w: %s reports organism %q and %q",
				ErrDuplicateBioSampleConflict, rec.BioSample, meta.Organism, rec.ScientificName))
		}
		meta.Runs = append(meta.Runs, rec.Run)
	}

	out := make([]*model.BioSampleMetadata, 0, len(order))
	for _, id := range order {
		out = append(out, byID[id])
	}
	return out, conflicts
}

// Scraped attribute keys recognized by ApplyAttributes. The portal renders
// these with spaces; the scraper normalizes whitespace to underscores.
const (
	AttrCollectedBy          = "Collected_by"
	AttrCollectionDate       = "Collection_date"
	AttrDescription          = "Description"
	AttrGeographicLocation   = "Geographic_location"
	AttrHost                 = "Host"
	AttrHostDisease          = "Host_disease"
	AttrHostSex              = "Host_sex"
	AttrIsolationSource      = "Isolation_source"
	AttrLatitudeAndLongitude = "Latitude_and_longitude"
	AttrOrganism             = "Organism"
)

// ApplyAttributes fills the descriptive fields of a metadata row from a
// scraped BioSample attribute table. Empty scraped values never overwrite
// values already present.
func ApplyAttributes(meta *model.BioSampleMetadata, attrs map[string]string) {
	set := func(dst *string, key string) {
		if v, ok := attrs[key]; ok && v != "" && *dst == "" {
			*dst = v
		}
	}

	set(&meta.CollectedBy, AttrCollectedBy)
	set(&meta.CollectionDate, AttrCollectionDate)
	set(&meta.Description, AttrDescription)
	set(&meta.GeographicLocation, AttrGeographicLocation)
	set(&meta.Host, AttrHost)
	set(&meta.HostDisease, AttrHostDisease)
	set(&meta.HostSex, AttrHostSex)
	set(&meta.IsolationSource, AttrIsolationSource)
	set(&meta.LatitudeAndLongitude, AttrLatitudeAndLongitude)
	set(&meta.Organism, AttrOrganism)
}
