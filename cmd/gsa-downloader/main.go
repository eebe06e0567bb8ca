package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gsaget/gsa-downloader/internal/config"
	"github.com/gsaget/gsa-downloader/internal/download"
	"github.com/gsaget/gsa-downloader/internal/logging"
	"github.com/gsaget/gsa-downloader/internal/pipeline"
	"github.com/gsaget/gsa-downloader/internal/scrape"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

var flags struct {
	configPath  string
	inputFile   string
	downloadDir string
	threads     int
	dryRun      bool
	noHeadless  bool
	verbose     bool
}

func main() {
	root := &cobra.Command{
		Use:     "gsa-downloader",
		Short:   "Bulk downloader for GSA sequencing runs",
		Long:    "Scrapes RunInfo tables from the GSA portal for a list of taxa,\nbuilds per-taxon metadata and read manifests, and downloads the raw reads.",
		Version: version,
		RunE:    run,

		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.Flags().StringVarP(&flags.configPath, "config", "c", "", "path to YAML config file")
	root.Flags().StringVarP(&flags.inputFile, "input", "i", "", "file with one taxon name per line")
	root.Flags().StringVarP(&flags.downloadDir, "download-dir", "d", "", "root directory for downloads")
	root.Flags().IntVarP(&flags.threads, "threads", "t", 0, fmt.Sprintf("parallel downloads (%d-%d)", config.MinThreads, config.MaxThreads))
	root.Flags().BoolVar(&flags.dryRun, "dry-run", false, "build metadata and manifests without downloading")
	root.Flags().BoolVar(&flags.noHeadless, "no-headless", false, "show the browser window")
	root.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting run",
		zap.String("version", version),
		zap.String("input", cfg.InputFile),
		zap.String("download_dir", cfg.DownloadDir),
		zap.Int("threads", cfg.Threads),
		zap.Bool("dry_run", cfg.DryRun))

	browser, err := scrape.Launch(log, cfg.Headless)
	if err != nil {
		return fmt.Errorf("launch browser: %w", err)
	}
	defer browser.Close()

	downloader := download.NewService(log, download.Options{
		Workers:  cfg.Threads,
		Attempts: cfg.RetryAttempts,
		Backoff:  cfg.RetryBackoff(),
	})

	p, err := pipeline.New(cfg, log, scrape.NewPortal(browser, log), downloader)
	if err != nil {
		return err
	}

	summary, err := p.Run(ctx)
	if err != nil {
		if summary != nil {
			summary.Log(log)
		}
		return err
	}

	summary.Log(log)
	if code := summary.ExitCode(); code != 0 {
		browser.Close()
		log.Sync() //nolint:errcheck
		os.Exit(code)
	}
	return nil
}

// loadConfig layers CLI flags over the optional config file over defaults
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if flags.configPath != "" {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if flags.inputFile != "" {
		cfg.InputFile = flags.inputFile
	}
	if flags.downloadDir != "" {
		cfg.DownloadDir = flags.downloadDir
	}
	if flags.threads != 0 {
		cfg.Threads = flags.threads
	}
	if flags.dryRun {
		cfg.DryRun = true
	}
	if flags.noHeadless {
		cfg.Headless = false
	}
	if flags.verbose {
		cfg.Verbose = true
	}

	cfg.Clamp()
	return cfg, cfg.Validate()
}
