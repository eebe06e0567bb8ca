package scrape

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/gsaget/gsa-downloader/internal/platform"
)

// PortalBaseURL is the archive's public entry point
const PortalBaseURL = "https://ngdc.cncb.ac.cn"

// searchFilter narrows results to raw WGS fastq submissions hosted by the
// archive itself. The portal expects its own pre-encoded query syntax, so
// this stays encoded exactly as the search UI produces it.
const searchFilter = "%28%28%28%22NGDC%22%5Bcenter%5D%29+AND+" +
	"%22fastq%22%5BfileType%5D+AND+" +
	"%22WGS%22%5Bstrategy%5D%29+AND+" +
	"%22GENOMIC%22%5Bsource%5D%29+AND+"

var totalItemsRe = regexp.MustCompile(`Total\s+Items:\s*(\d+)`)

// SearchURL builds the portal search URL for one taxon
func SearchURL(taxon string) string {
	quoted := strings.ReplaceAll(strings.TrimSpace(taxon), " ", "+")
	return PortalBaseURL + "/gsa/search?searchTerm=" + searchFilter +
		"%22" + quoted + "%22+NOT+%22PCR%22"
}

// BioSampleURL builds the browse URL for one BioSample accession
func BioSampleURL(bioSample string) string {
	return PortalBaseURL + "/biosample/browse/" + bioSample
}

// parseTotalItems extracts the result count from the portal's
// "Total Items: N" banner text. Unparseable text counts as zero results.
func parseTotalItems(text string) int {
	m := totalItemsRe.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// Portal scrapes the GSA search UI through a shared browser.
type Portal struct {
	browser *Browser
	log     *zap.Logger
}

// NewPortal wraps a launched browser
func NewPortal(browser *Browser, log *zap.Logger) *Portal {
	return &Portal{browser: browser, log: log}
}

// FetchRunInfo runs the taxon search and exports the RunInfo CSV into
// destDir via the portal's "Send to" dialog. Returns the path of the
// exported file, or "" with a nil error when the portal reports no results
// for the taxon.
func (p *Portal) FetchRunInfo(ctx context.Context, taxon, destDir string) (string, error) {
	page, err := p.browser.NewPage()
	if err != nil {
		return "", err
	}
	defer page.Close()
	page = page.Context(ctx)

	if err := p.browser.AllowDownloads(page, destDir); err != nil {
		return "", fmt.Errorf("%w: set download dir: %v", ErrScrapeUnavailable, err)
	}

	url := SearchURL(taxon)
	p.log.Debug("navigating to search", zap.String("taxon", taxon), zap.String("url", url))
	if err := page.Timeout(PageLoadTimeout).Navigate(url); err != nil {
		return "", fmt.Errorf("%w: navigate search: %v", ErrScrapeUnavailable, err)
	}
	if err := page.Timeout(PageLoadTimeout).WaitLoad(); err != nil {
		return "", fmt.Errorf("%w: load search page: %v", ErrScrapeUnavailable, err)
	}

	if p.pageHasNoItems(page) {
		p.log.Info("no items found", zap.String("taxon", taxon))
		return "", nil
	}

	if _, err := page.Timeout(ElementWaitTimeout).Element("#downloadContainer"); err != nil {
		return "", fmt.Errorf("%w: results container missing for %s: %v", ErrScrapeUnavailable, taxon, err)
	}

	count := p.totalItems(page)
	p.log.Info("search results", zap.String("taxon", taxon), zap.Int("total_items", count))
	if count == 0 {
		return "", nil
	}

	started := time.Now()
	if err := p.exportRunInfo(page); err != nil {
		return "", err
	}

	path, err := p.waitForExport(ctx, destDir, started)
	if err != nil {
		return "", err
	}
	return path, nil
}

// pageHasNoItems detects the portal's empty-result panel
func (p *Portal) pageHasNoItems(page *rod.Page) bool {
	_, err := page.Timeout(NoItemsWaitTimeout).ElementX(
		"//div[contains(@class,'panel-heading')][contains(., 'No items found')]")
	return err == nil
}

// totalItems reads the result-count banner; absent banner counts as zero
func (p *Portal) totalItems(page *rod.Page) int {
	el, err := page.Timeout(NoItemsWaitTimeout).ElementX("//*[contains(text(), 'Total Items')]")
	if err != nil {
		return 0
	}
	text, err := el.Text()
	if err != nil {
		return 0
	}
	return parseTotalItems(text)
}

// exportRunInfo walks the portal's Send to -> File -> RunInfo -> Create
// files sequence. The RunInfo option is selected by script because the
// portal only rebuilds the form on a change event.
func (p *Portal) exportRunInfo(page *rod.Page) error {
	sendTo, err := page.Timeout(ElementWaitTimeout).ElementX("//a[contains(text(),'Send to')]")
	if err != nil {
		return fmt.Errorf("%w: Send to link missing: %v", ErrScrapeUnavailable, err)
	}
	if err := sendTo.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("%w: click Send to: %v", ErrScrapeUnavailable, err)
	}

	fileRadio, err := page.Timeout(ElementWaitTimeout).Element("#radio1")
	if err != nil {
		return fmt.Errorf("%w: File radio missing: %v", ErrScrapeUnavailable, err)
	}
	if err := fileRadio.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("%w: click File radio: %v", ErrScrapeUnavailable, err)
	}

	sel, err := page.Timeout(ElementWaitTimeout).Element("#downloadFile")
	if err != nil {
		return fmt.Errorf("%w: download select missing: %v", ErrScrapeUnavailable, err)
	}
	if _, err := sel.Eval(`() => { this.value = "run"; this.dispatchEvent(new Event("change")); }`); err != nil {
		return fmt.Errorf("%w: select RunInfo: %v", ErrScrapeUnavailable, err)
	}

	create, err := page.Timeout(ElementWaitTimeout).Element("#createFiles")
	if err != nil {
		return fmt.Errorf("%w: Create files button missing: %v", ErrScrapeUnavailable, err)
	}
	if err := create.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("%w: click Create files: %v", ErrScrapeUnavailable, err)
	}

	return nil
}

// waitForExport polls destDir until a table newer than the export click
// lands with no in-progress marker next to it
func (p *Portal) waitForExport(ctx context.Context, destDir string, since time.Time) (string, error) {
	deadline := time.Now().Add(ExportWaitTimeout)
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Second):
		}

		path, err := platform.LatestTableFile(destDir, since)
		if err != nil {
			return "", fmt.Errorf("%w: scan download dir: %v", ErrScrapeUnavailable, err)
		}
		if path != "" {
			p.log.Debug("runinfo export detected", zap.String("path", path))
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: runinfo export did not appear within %s", ErrScrapeUnavailable, ExportWaitTimeout)
}
