package cleaner

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/LASTRADA-Software/fs-directory-cleaner/internal/database"
	"github.com/LASTRADA-Software/fs-directory-cleaner/internal/fsops"
	"github.com/LASTRADA-Software/fs-directory-cleaner/internal/metrics"
	"github.com/LASTRADA-Software/fs-directory-cleaner/internal/safety"

	"github.com/prometheus/client_golang/prometheus"
)

// RunMode selects whether removals are simulated or performed.
// Immutable for the duration of one run.
type RunMode int

const (
	DryRun RunMode = iota
	Execute
)

func (m RunMode) String() string {
	if m == Execute {
		return "execute"
	}
	return "dry-run"
}

// ANSI styling for the notice stream. Process-wide immutable values.
const (
	colorReset  = "\033[0m"
	colorYellow = "\033[33;1m"
	colorRed    = "\033[31;1m"
	colorGreen  = "\033[32;1m"
)

// Logger interface for structured logging in the cleaner
type Logger interface {
	Info(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// stdLogger wraps standard log.Logger to implement Logger interface
type stdLogger struct {
	*log.Logger
}

func (l *stdLogger) Info(msg string, args ...interface{}) {
	l.logWithLevel("INFO", msg, args...)
}

func (l *stdLogger) Error(msg string, args ...interface{}) {
	l.logWithLevel("ERROR", msg, args...)
}

func (l *stdLogger) logWithLevel(level, msg string, args ...interface{}) {
	var parts []interface{}
	parts = append(parts, fmt.Sprintf("[%s]", level), msg)
	parts = append(parts, args...)
	l.Logger.Println(parts...)
}

// Metrics interface for cleaner metrics
type Metrics interface {
	FilesRemovedTotal() prometheus.Counter
	DryRunReportsTotal() prometheus.Counter
	EntriesSkippedTotal() prometheus.Counter
	RemovalErrorsTotal() prometheus.Counter
}

// cleanerMetrics wraps global metrics to implement Metrics interface
type cleanerMetrics struct{}

func (m *cleanerMetrics) FilesRemovedTotal() prometheus.Counter {
	return metrics.FilesRemovedTotal
}

func (m *cleanerMetrics) DryRunReportsTotal() prometheus.Counter {
	return metrics.DryRunReportsTotal
}

func (m *cleanerMetrics) EntriesSkippedTotal() prometheus.Counter {
	return metrics.EntriesSkippedTotal
}

func (m *cleanerMetrics) RemovalErrorsTotal() prometheus.Counter {
	return metrics.RemovalErrorsTotal
}

// Cleaner walks directory trees depth-first and removes leaf files,
// mediating every filesystem query and mutation through fsops.FS.
type Cleaner struct {
	fs        fsops.FS
	mode      RunMode
	logger    Logger
	metrics   Metrics
	out       io.Writer // notice sink for skip/remove/dry-run lines
	noColor   bool
	db        *database.HistoryDB // optional removal history
	validator *safety.Validator   // optional delete-target guard
}

// New creates a Cleaner in the given mode. Notices go to out.
func New(fs fsops.FS, mode RunMode, logger *log.Logger, out io.Writer) *Cleaner {
	if logger == nil {
		logger = log.Default()
	}
	if out == nil {
		out = io.Discard
	}
	return &Cleaner{
		fs:      fs,
		mode:    mode,
		logger:  &stdLogger{Logger: logger},
		metrics: &cleanerMetrics{},
		out:     out,
	}
}

// SetDatabase attaches a history database; every event gets one row.
func (c *Cleaner) SetDatabase(db *database.HistoryDB) {
	c.db = db
}

// SetValidator attaches a safety validator consulted before every removal.
func (c *Cleaner) SetValidator(v *safety.Validator) {
	c.validator = v
}

// SetNoColor disables ANSI styling on the notice stream.
func (c *Cleaner) SetNoColor(noColor bool) {
	c.noColor = noColor
}

// SetMetrics overrides the default global-backed metrics, for tests.
func (c *Cleaner) SetMetrics(m Metrics) {
	c.metrics = m
}

// DeleteDirectoriesIfOlderThan lists the immediate children of baseDirectory
// and recursively deletes each child whose modification time is strictly
// older than oldestAllowed. Younger children are reported skipped and never
// descended into: the age check applies at this one level only.
func (c *Cleaner) DeleteDirectoriesIfOlderThan(baseDirectory string, oldestAllowed time.Time) {
	c.logger.Info("Deleting directories older than",
		"threshold", oldestAllowed.Format(time.RFC3339),
		"base", baseDirectory,
	)

	for _, entry := range c.fs.ListDir(baseDirectory) {
		if entry.ModTime.Before(oldestAllowed) {
			c.notice(colorRed, "Deleting:", entry.Path)
			c.DeleteRecursively(entry.Path)
		} else {
			c.notice(colorGreen, "Skipping:", entry.Path)
			c.metrics.EntriesSkippedTotal().Inc()
			c.record(database.ActionSkip, entry.Path,
				fmt.Sprintf("modified %s, younger than threshold", entry.ModTime.UTC().Format(time.RFC3339)), "")
		}
	}
}

// DeleteRecursively deletes the tree rooted at path depth-first. Directories
// are recursed into; everything else is removed (or reported, in dry-run).
// A directory node itself is never passed to Remove, so directories that end
// up empty are left in place.
func (c *Cleaner) DeleteRecursively(path string) {
	if c.fs.IsDirectory(path) {
		for _, entry := range c.fs.ListDir(path) {
			c.DeleteRecursively(entry.Path)
		}
		return
	}

	if c.validator != nil {
		if err := c.validator.ValidateDeleteTarget(path); err != nil {
			c.logger.Error("Refusing to remove", "path", path, "error", err)
			c.record(database.ActionSkip, path, "safety_violation", err.Error())
			return
		}
	}

	switch c.mode {
	case DryRun:
		c.notice(colorYellow, "Removing (dry-run):", path)
		c.metrics.DryRunReportsTotal().Inc()
		c.record(database.ActionDryRun, path, "", "")
	case Execute:
		c.notice(colorRed, "Removing:", path)
		if err := c.fs.Remove(path); err != nil {
			// Non-fatal: the entry may have vanished under us, or be
			// unremovable. Siblings still get processed.
			c.logger.Error("Failed to remove", "path", path, "error", err)
			c.metrics.RemovalErrorsTotal().Inc()
			c.record(database.ActionError, path, "", err.Error())
			return
		}
		c.metrics.FilesRemovedTotal().Inc()
		c.record(database.ActionRemove, path, "", "")
	}
}

// notice writes one styled human-readable line to the notice sink.
func (c *Cleaner) notice(color, label, path string) {
	if c.noColor {
		fmt.Fprintf(c.out, "%s %s\n", label, path)
		return
	}
	fmt.Fprintf(c.out, "%s%s%s %s\n", color, label, colorReset, path)
}

// record writes one event row when a history database is attached.
func (c *Cleaner) record(action, path, reason, errorMsg string) {
	if c.db == nil {
		return
	}
	if err := c.db.RecordEvent(action, path, c.mode.String(), reason, errorMsg); err != nil {
		// A history write failure never aborts the run
		c.logger.Error("Failed to record event", "path", path, "error", err)
	}
}
