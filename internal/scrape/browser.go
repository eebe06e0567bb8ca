package scrape

import (
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// Navigation timeouts
const (
	PageLoadTimeout    = 90 * time.Second
	ElementWaitTimeout = 30 * time.Second
	NoItemsWaitTimeout = 5 * time.Second
	ExportWaitTimeout  = 60 * time.Second
)

// Browser owns the launched Chromium instance shared by all scraping.
type Browser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	log      *zap.Logger
}

// Launch starts Chromium with the flags the archive's HPC environment needs
// and connects to it. Callers must Close.
func Launch(log *zap.Logger, headless bool) (*Browser, error) {
	log.Info("starting chromium", zap.Bool("headless", headless))

	l := launcher.New().
		Headless(headless).
		Set("no-sandbox").
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("disable-software-rasterizer").
		Set("disable-extensions").
		Set("disable-background-networking").
		Set("disable-sync").
		Set("mute-audio").
		Set("no-first-run")

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: launch chromium: %v", ErrScrapeUnavailable, err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("%w: connect to chromium: %v", ErrScrapeUnavailable, err)
	}

	return &Browser{browser: b, launcher: l, log: log}, nil
}

// NewPage opens a blank page ready to navigate
func (b *Browser) NewPage() (*rod.Page, error) {
	page, err := b.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("%w: open page: %v", ErrScrapeUnavailable, err)
	}
	return page, nil
}

// AllowDownloads routes browser-initiated downloads for a page into dir
func (b *Browser) AllowDownloads(page *rod.Page, dir string) error {
	return proto.PageSetDownloadBehavior{
		Behavior:     proto.PageSetDownloadBehaviorBehaviorAllow,
		DownloadPath: dir,
	}.Call(page)
}

// Close shuts the browser down and cleans up the launcher's temp state
func (b *Browser) Close() {
	if err := b.browser.Close(); err != nil {
		b.log.Warn("browser close failed", zap.Error(err))
	}
	b.launcher.Cleanup()
}
