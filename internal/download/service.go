package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gsaget/gsa-downloader/internal/model"
	"github.com/gsaget/gsa-downloader/internal/platform"
)

// Defaults for the retry policy; both are configurable.
const (
	DefaultAttempts = 3
	DefaultBackoff  = 2 * time.Second
	DefaultWorkers  = 4
)

// TempSuffix marks an in-progress transfer. Files only reach their final
// path through a rename, so a crash never leaves a truncated read file where
// downstream tooling would pick it up.
const TempSuffix = ".part"

// Options configures a Service.
type Options struct {
	Workers  int           // worker pool size
	Attempts int           // transfer attempts per task
	Backoff  time.Duration // linear backoff unit between attempts
	Client   *http.Client
}

// Service executes download tasks on a fixed-size worker pool.
type Service struct {
	client   *http.Client
	log      *zap.Logger
	workers  int
	attempts int
	backoff  time.Duration

	mu      sync.Mutex
	summary Summary
}

// NewService creates a download service. Zero option fields fall back to the
// defaults.
func NewService(log *zap.Logger, opts Options) *Service {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Attempts <= 0 {
		opts.Attempts = DefaultAttempts
	}
	if opts.Backoff <= 0 {
		opts.Backoff = DefaultBackoff
	}
	if opts.Client == nil {
		opts.Client = &http.Client{}
	}
	return &Service{
		client:   opts.Client,
		log:      log,
		workers:  opts.Workers,
		attempts: opts.Attempts,
		backoff:  opts.Backoff,
	}
}

// Run executes all tasks and blocks until every started task reaches a
// terminal state. Cancelling ctx stops new tasks from starting and aborts
// in-flight transfers to their temp paths. The returned error only reports a
// cancelled context; per-task failures land in the Summary instead.
func (s *Service) Run(ctx context.Context, tasks []*model.DownloadTask) (Summary, error) {
	s.mu.Lock()
	s.summary = Summary{Total: len(tasks)}
	s.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, task := range tasks {
		if ctx.Err() != nil {
			break // stop dispatching, leave the rest pending
		}
		task := task
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			s.runTask(gctx, task)
			return nil
		})
	}

	_ = g.Wait()

	s.mu.Lock()
	summary := s.summary
	s.mu.Unlock()
	return summary, ctx.Err()
}

// runTask drives one task to a terminal state
func (s *Service) runTask(ctx context.Context, task *model.DownloadTask) {
	task.Status = model.TaskStatusDownloading
	task.StartedAt = time.Now()

	if s.canSkip(task) {
		s.finish(task, model.TaskStatusSkippedExists, nil)
		return
	}

	var lastErr error
	for attempt := 1; attempt <= s.attempts; attempt++ {
		task.Attempts = attempt
		if attempt > 1 {
			s.log.Info("retrying download",
				zap.String("dest", task.DestPath),
				zap.Int("attempt", attempt))
			select {
			case <-time.After(time.Duration(attempt-1) * s.backoff):
			case <-ctx.Done():
				s.finish(task, model.TaskStatusFailed, ctx.Err())
				return
			}
		}

		lastErr = s.fetchOnce(ctx, task)
		if lastErr == nil {
			s.finish(task, model.TaskStatusCompleted, nil)
			return
		}
		if ctx.Err() != nil {
			break
		}
		s.log.Warn("download attempt failed",
			zap.String("url", task.URL),
			zap.Int("attempt", attempt),
			zap.Error(lastErr))
	}

	s.finish(task, model.TaskStatusFailed, lastErr)
}

// canSkip reports whether the destination already holds the file: present
// with the expected size, or simply present when no size is known. A file
// with the wrong size is re-downloaded, not skipped.
func (s *Service) canSkip(task *model.DownloadTask) bool {
	if !platform.FileExists(task.DestPath) {
		return false
	}
	if !task.HasExpectedSize() {
		return true
	}
	return platform.FileSizeMatches(task.DestPath, task.ExpectedSize)
}

// fetchOnce performs one transfer attempt: GET to the temp path, size check,
// atomic rename into place.
func (s *Service) fetchOnce(ctx context.Context, task *model.DownloadTask) error {
	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(task.DestPath)); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, task.URL, nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	tmpPath := task.DestPath + TempSuffix
	out, err := os.Create(tmpPath)
	if err != nil {
		return err
	}
	n, err := io.Copy(out, resp.Body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	if task.HasExpectedSize() && n != task.ExpectedSize {
		_ = platform.RemoveIfExists(tmpPath)
		return fmt.Errorf("size mismatch: got %d bytes, expected %d", n, task.ExpectedSize)
	}

	return os.Rename(tmpPath, task.DestPath)
}

// finish records the terminal state of a task in the shared summary
func (s *Service) finish(task *model.DownloadTask, status model.TaskStatus, cause error) {
	task.Status = status
	task.FinishedAt = time.Now()
	if cause != nil {
		task.LastError = cause.Error()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	switch status {
	case model.TaskStatusCompleted:
		s.summary.Completed++
		s.log.Info("download completed", zap.String("dest", task.DestPath))
	case model.TaskStatusSkippedExists:
		s.summary.Skipped++
		s.log.Debug("download skipped, file exists", zap.String("dest", task.DestPath))
	case model.TaskStatusFailed:
		s.summary.Failed++
		s.summary.Failures = append(s.summary.Failures, Failure{
			DestPath: task.DestPath,
			URL:      task.URL,
			Reason:   task.LastError,
		})
		s.log.Error("download failed",
			zap.String("dest", task.DestPath),
			zap.String("reason", task.LastError))
	}
}
