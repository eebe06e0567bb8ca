package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Threads != DefaultThreads {
		t.Errorf("Expected default threads %d, got %d", DefaultThreads, cfg.Threads)
	}
	if !cfg.Headless {
		t.Error("Expected headless by default")
	}
	if cfg.RetryAttempts != DefaultRetryAttempts {
		t.Errorf("Expected default retry attempts %d, got %d", DefaultRetryAttempts, cfg.RetryAttempts)
	}
}

func TestClamp(t *testing.T) {
	cfg := Default()

	cfg.Threads = 0
	cfg.Clamp()
	if cfg.Threads != MinThreads {
		t.Errorf("Threads should be clamped to minimum %d, got %d", MinThreads, cfg.Threads)
	}

	cfg.Threads = 32
	cfg.Clamp()
	if cfg.Threads != MaxThreads {
		t.Errorf("Threads should be clamped to maximum %d, got %d", MaxThreads, cfg.Threads)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "input_file: species_list.txt\n" +
		"download_dir: DLs\n" +
		"threads: 6\n" +
		"dry_run: true\n" +
		"retry_backoff_seconds: 5\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.InputFile != "species_list.txt" {
		t.Errorf("Expected input file 'species_list.txt', got '%s'", cfg.InputFile)
	}
	if cfg.Threads != 6 {
		t.Errorf("Expected 6 threads, got %d", cfg.Threads)
	}
	if !cfg.DryRun {
		t.Error("Expected dry_run to be true")
	}
	if cfg.RetryBackoff() != 5*time.Second {
		t.Errorf("Expected 5s backoff, got %v", cfg.RetryBackoff())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error for empty config")
	}

	cfg.InputFile = "species_list.txt"
	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error for missing download dir")
	}

	cfg.DownloadDir = "DLs"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestConventions_Custom(t *testing.T) {
	cfg := Default()
	cfg.ShortReadConventions = []ConventionConfig{
		{Name: "plain", R1: `_1\.fq\.gz$`, R2: `_2\.fq\.gz$`},
	}

	convs, err := cfg.Conventions()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(convs) != 1 || convs[0].Name != "plain" {
		t.Errorf("Unexpected conventions: %+v", convs)
	}
}

func TestConventions_BadPattern(t *testing.T) {
	cfg := Default()
	cfg.ShortReadConventions = []ConventionConfig{{Name: "broken", R1: "(", R2: ")"}}

	if _, err := cfg.Conventions(); err == nil {
		t.Error("Expected error for invalid pattern")
	}
}
