package scrape

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-rod/rod"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// normalizeKey turns a scraped attribute label into a column-safe key:
// trimmed, inner whitespace collapsed to single underscores.
func normalizeKey(label string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(label), "_")
}

// BioSampleAttributes scrapes the attribute tables of one BioSample browse
// page into a key/value map. A page without the attribute table yields a nil
// map and no error; callers treat that as "no metadata published".
func (p *Portal) BioSampleAttributes(ctx context.Context, bioSample string) (map[string]string, error) {
	page, err := p.browser.NewPage()
	if err != nil {
		return nil, err
	}
	defer page.Close()
	page = page.Context(ctx)

	url := BioSampleURL(bioSample)
	if err := page.Timeout(PageLoadTimeout).Navigate(url); err != nil {
		return nil, fmt.Errorf("%w: navigate biosample %s: %v", ErrScrapeUnavailable, bioSample, err)
	}

	if _, err := page.Timeout(NoItemsWaitTimeout).Element("#attribute_table"); err != nil {
		p.log.Warn("biosample page not found", zap.String("biosample", bioSample))
		return nil, nil
	}

	attrs := map[string]string{"BioSample": bioSample}
	p.collectRows(page, "//table[@id='attribute_table']//tr", attrs, false)
	// Release date, Submitter and friends live outside the attribute table.
	p.collectRows(page, "//tr[th and td and not(ancestor::table[@id='attribute_table'])]", attrs, true)

	return attrs, nil
}

// collectRows reads th/td pairs from every row the xpath matches. Empty
// values are dropped; protectAccession keeps the portal's Accession row from
// clobbering the BioSample key.
func (p *Portal) collectRows(page *rod.Page, xpath string, attrs map[string]string, protectAccession bool) {
	rows, err := page.Timeout(ElementWaitTimeout).ElementsX(xpath)
	if err != nil {
		return
	}

	for _, row := range rows {
		key, val, ok := rowKeyValue(row)
		if !ok || val == "" {
			continue
		}
		if protectAccession && key == "Accession" {
			continue
		}
		attrs[key] = val
	}
}

func rowKeyValue(row *rod.Element) (string, string, bool) {
	th, err := row.Element("th")
	if err != nil {
		return "", "", false
	}
	td, err := row.Element("td")
	if err != nil {
		return "", "", false
	}
	key, err := th.Text()
	if err != nil {
		return "", "", false
	}
	val, err := td.Text()
	if err != nil {
		return "", "", false
	}
	return normalizeKey(key), strings.TrimSpace(val), true
}

// AllBioSampleAttributes scrapes several BioSamples with a bounded worker
// group. Individual failures are logged and skipped; the map only carries
// the BioSamples that yielded attributes.
func (p *Portal) AllBioSampleAttributes(ctx context.Context, bioSamples []string, workers int) map[string]map[string]string {
	var mu sync.Mutex
	results := make(map[string]map[string]string)

	g, gctx := errgroup.WithContext(ctx)
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)

	for _, id := range bioSamples {
		id := id
		g.Go(func() error {
			attrs, err := p.BioSampleAttributes(gctx, id)
			if err != nil {
				p.log.Warn("biosample scrape failed", zap.String("biosample", id), zap.Error(err))
				return nil
			}
			if attrs == nil {
				return nil
			}
			mu.Lock()
			results[id] = attrs
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}
