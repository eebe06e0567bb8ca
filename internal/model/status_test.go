package model

import "testing"

func TestTaskStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status   TaskStatus
		terminal bool
	}{
		{TaskStatusPending, false},
		{TaskStatusDownloading, false},
		{TaskStatusCompleted, true},
		{TaskStatusSkippedExists, true},
		{TaskStatusFailed, true},
	}

	for _, test := range tests {
		if got := test.status.IsTerminal(); got != test.terminal {
			t.Errorf("IsTerminal() for %s = %v, expected %v", test.status, got, test.terminal)
		}
	}
}

func TestLayoutStatus_IsUsable(t *testing.T) {
	tests := []struct {
		status LayoutStatus
		usable bool
	}{
		{LayoutShortOnly, true},
		{LayoutLongOnly, true},
		{LayoutHybrid, true},
		{LayoutUnknown, false},
	}

	for _, test := range tests {
		if got := test.status.IsUsable(); got != test.usable {
			t.Errorf("IsUsable() for %s = %v, expected %v", test.status, got, test.usable)
		}
	}
}
