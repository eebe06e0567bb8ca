package platform

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestReadTaxonList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "species_list.txt")
	content := "Proteus mirabilis\n\n  \nSalmonella\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	taxa, err := ReadTaxonList(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(taxa) != 2 {
		t.Fatalf("Expected 2 taxa, got %d", len(taxa))
	}
	if taxa[0] != "Proteus mirabilis" || taxa[1] != "Salmonella" {
		t.Errorf("Unexpected taxa: %v", taxa)
	}
}

func TestReadTaxonList_MissingFile(t *testing.T) {
	_, err := ReadTaxonList(filepath.Join(t.TempDir(), "absent.txt"))
	if err == nil {
		t.Error("Expected error for missing input file")
	}
}

func TestTaxonDirName(t *testing.T) {
	tests := []struct {
		taxon    string
		expected string
	}{
		{"Proteus mirabilis", "Proteus_mirabilis"},
		{"Proteus", "Proteus"},
		{"  Proteus vulgaris ", "Proteus_vulgaris"},
	}

	for _, test := range tests {
		if got := TaxonDirName(test.taxon); got != test.expected {
			t.Errorf("TaxonDirName(%q) = %q, expected %q", test.taxon, got, test.expected)
		}
	}
}

func TestListFastqFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b_r2.fq.gz", "a_f1.fq.gz", "long.fastq.gz", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	names, err := ListFastqFiles(dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expected := []string{"a_f1.fq.gz", "b_r2.fq.gz", "long.fastq.gz"}
	if len(names) != len(expected) {
		t.Fatalf("Expected %d files, got %d: %v", len(expected), len(names), names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("Expected names[%d]=%s, got %s", i, expected[i], names[i])
		}
	}
}

func TestFileSizeMatches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reads.fq.gz")
	if err := os.WriteFile(path, []byte("12345"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if !FileSizeMatches(path, 5) {
		t.Error("Expected size 5 to match")
	}
	if FileSizeMatches(path, 6) {
		t.Error("Expected size 6 to not match")
	}
	if FileSizeMatches(filepath.Join(t.TempDir(), "absent"), 0) {
		t.Error("Expected missing file to not match")
	}
}

func TestLatestTableFile(t *testing.T) {
	dir := t.TempDir()

	if got, err := LatestTableFile(dir, time.Time{}); err != nil || got != "" {
		t.Fatalf("Expected no file in empty dir, got %q err %v", got, err)
	}

	old := filepath.Join(dir, "old.csv")
	if err := os.WriteFile(old, []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}
	// A file with an in-progress marker must be skipped.
	partial := filepath.Join(dir, "partial.csv")
	if err := os.WriteFile(partial, []byte("b"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(partial+".crdownload", []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LatestTableFile(dir, time.Time{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != old {
		t.Errorf("Expected %s, got %s", old, got)
	}

	// The cutoff hides everything written before it.
	if got, err := LatestTableFile(dir, time.Now().Add(time.Hour)); err != nil || got != "" {
		t.Errorf("Expected no file newer than cutoff, got %q err %v", got, err)
	}
}
