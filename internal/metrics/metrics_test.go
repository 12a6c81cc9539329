package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

// TestMetricsInit verifies that Init() is idempotent and registers metrics
func TestMetricsInit(t *testing.T) {
	// Call Init multiple times - should be idempotent via sync.Once
	Init()
	Init()

	if FilesRemovedTotal == nil {
		t.Error("FilesRemovedTotal should be initialized")
	}
	if DryRunReportsTotal == nil {
		t.Error("DryRunReportsTotal should be initialized")
	}
	if EntriesSkippedTotal == nil {
		t.Error("EntriesSkippedTotal should be initialized")
	}
	if RemovalErrorsTotal == nil {
		t.Error("RemovalErrorsTotal should be initialized")
	}
	if RunDuration == nil {
		t.Error("RunDuration should be initialized")
	}
	if LastRunTimestamp == nil {
		t.Error("LastRunTimestamp should be initialized")
	}
	if FreeSpacePercent == nil {
		t.Error("FreeSpacePercent should be initialized")
	}

	// Metrics must actually be registered with the default registry
	mfs, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	want := map[string]bool{
		"fsdircleaner_files_removed_total":   false,
		"fsdircleaner_entries_skipped_total": false,
		"fsdircleaner_removal_errors_total":  false,
		"fsdircleaner_run_duration_seconds":  false,
		"fsdircleaner_last_run_timestamp":    false,
		"fsdircleaner_dry_run_reports_total": false,
	}
	for _, mf := range mfs {
		if _, ok := want[mf.GetName()]; ok {
			want[mf.GetName()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("Metric %s not found in default registry", name)
		}
	}
}
