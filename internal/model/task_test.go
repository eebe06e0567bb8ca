package model

import (
	"testing"
	"time"
)

func TestDownloadTask_FileName(t *testing.T) {
	tests := []struct {
		destPath string
		expected string
	}{
		{"DLs/Proteus/SAMC0001/CRR001_f1.fq.gz", "CRR001_f1.fq.gz"},
		{"CRR002.fastq.gz", "CRR002.fastq.gz"},
	}

	for _, test := range tests {
		task := &DownloadTask{DestPath: test.destPath}
		if got := task.FileName(); got != test.expected {
			t.Errorf("FileName() with DestPath='%s' = '%s', expected '%s'", test.destPath, got, test.expected)
		}
	}
}

func TestDownloadTask_HasExpectedSize(t *testing.T) {
	task := &DownloadTask{ExpectedSize: -1}
	if task.HasExpectedSize() {
		t.Error("Expected HasExpectedSize to be false for -1")
	}

	task.ExpectedSize = 0
	if !task.HasExpectedSize() {
		t.Error("Expected HasExpectedSize to be true for 0")
	}
}

func TestDownloadTask_Creation(t *testing.T) {
	now := time.Now()
	task := &DownloadTask{
		ID:           "task-123",
		URL:          "https://example.org/CRR001_f1.fq.gz",
		DestPath:     "/tmp/DLs/Proteus/SAMC0001/CRR001_f1.fq.gz",
		ExpectedSize: 1024,
		Taxon:        "Proteus",
		BioSample:    "SAMC0001",
		Run:          "CRR001",
		Status:       TaskStatusPending,
		StartedAt:    now,
	}

	if task.Status != TaskStatusPending {
		t.Errorf("Expected status to be TaskStatusPending, got %s", task.Status)
	}

	if !task.StartedAt.Equal(now) {
		t.Errorf("Expected StartedAt to be %v, got %v", now, task.StartedAt)
	}
}
