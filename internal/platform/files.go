package platform

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// ReadTaxonList reads the input file: one taxon name per line, blank lines
// ignored. A missing or unreadable file is fatal to the whole run.
func ReadTaxonList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read taxon list: %w", err)
	}
	defer f.Close()

	var taxa []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		taxa = append(taxa, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read taxon list: %w", err)
	}

	return taxa, nil
}

// TaxonDirName converts a taxon name to its directory form: spaces become
// underscores, matching the layout the manifest tables reference.
func TaxonDirName(taxon string) string {
	return strings.ReplaceAll(strings.TrimSpace(taxon), " ", "_")
}

// ListFastqFiles returns the sorted base names of fastq files directly inside
// dir (*.fq.gz and *.fastq.gz).
func ListFastqFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".fq.gz") || strings.HasSuffix(name, ".fastq.gz") {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// ListSubdirectories returns the sorted names of the immediate
// subdirectories of dir.
func ListSubdirectories(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// FileSizeMatches reports whether path exists as a regular file with exactly
// size bytes. Any stat error counts as no match.
func FileSizeMatches(path string, size int64) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Size() == size
}

// FileExists reports whether path exists as a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// RemoveIfExists deletes path when present; a missing file is not an error.
func RemoveIfExists(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// LatestTableFile finds the most recently modified CSV/TSV/TXT file under
// dir, skipping files that still have an in-progress browser download marker
// next to them and files not modified after newerThan. The cutoff keeps a
// previous run's tables from shadowing a fresh export. Returns "" when none
// qualifies.
func LatestTableFile(dir string, newerThan time.Time) (string, error) {
	var latest string
	var latestMod int64

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".csv", ".tsv", ".txt":
		default:
			return nil
		}
		if FileExists(path + ".crdownload") {
			return nil
		}
		info, err := d.Info()
		if err != nil || info.Size() == 0 {
			return nil
		}
		if !info.ModTime().After(newerThan) {
			return nil
		}
		if mod := info.ModTime().UnixNano(); mod > latestMod {
			latest = path
			latestMod = mod
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return latest, nil
}
