package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	initOnce sync.Once

	// FilesRemovedTotal tracks total files removed in execute mode
	FilesRemovedTotal prometheus.Counter

	// DryRunReportsTotal tracks files that would have been removed in dry-run mode
	DryRunReportsTotal prometheus.Counter

	// EntriesSkippedTotal tracks top-level entries skipped by the age filter
	EntriesSkippedTotal prometheus.Counter

	// RemovalErrorsTotal tracks failed removal attempts
	RemovalErrorsTotal prometheus.Counter

	// RunDuration tracks how long cleanup runs take
	RunDuration prometheus.Histogram

	// LastRunTimestamp records Unix timestamp of the last cleanup run
	LastRunTimestamp prometheus.Gauge

	// FreeSpacePercent tracks current free space percentage for the cleaned root
	FreeSpacePercent *prometheus.GaugeVec
)

// Init initializes and registers all metrics with Prometheus.
// Safe to call multiple times (uses sync.Once).
func Init() {
	initOnce.Do(func() {
		FilesRemovedTotal = NewCounter(
			"fsdircleaner_files_removed_total",
			"Total number of files removed.",
		)
		DryRunReportsTotal = NewCounter(
			"fsdircleaner_dry_run_reports_total",
			"Total number of files reported for removal in dry-run mode.",
		)
		EntriesSkippedTotal = NewCounter(
			"fsdircleaner_entries_skipped_total",
			"Total number of top-level entries skipped by the age filter.",
		)
		RemovalErrorsTotal = NewCounter(
			"fsdircleaner_removal_errors_total",
			"Total number of failed removal attempts.",
		)
		RunDuration = NewDurationHistogram(
			"fsdircleaner_run_duration_seconds",
			"Duration of cleanup runs in seconds.",
		)
		LastRunTimestamp = NewGauge(
			"fsdircleaner_last_run_timestamp",
			"Timestamp of the last cleanup run (Unix epoch seconds).",
		)
		FreeSpacePercent = NewGaugeVec(
			"fsdircleaner_free_space_percent",
			"Current free space percentage for the cleaned root.",
			[]string{"path"},
		)

		prometheus.MustRegister(
			FilesRemovedTotal,
			DryRunReportsTotal,
			EntriesSkippedTotal,
			RemovalErrorsTotal,
			RunDuration,
			LastRunTimestamp,
			FreeSpacePercent,
		)

		// Initialize so the gauge appears in /metrics before the first run
		LastRunTimestamp.Set(0)
	})
}

// RecordRun stamps the last-run gauge with the current time.
func RecordRun() {
	LastRunTimestamp.Set(float64(time.Now().Unix()))
}
