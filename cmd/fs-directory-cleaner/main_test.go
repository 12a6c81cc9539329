package main

import (
	"os"
	"path/filepath"
	"testing"
)

// TestCheckRootRejectsMissingPath proves a nonexistent root is refused
// before any traversal instead of running to a silent empty result
func TestCheckRootRejectsMissingPath(t *testing.T) {
	if err := checkRoot(filepath.Join(t.TempDir(), "no-such-root")); err == nil {
		t.Error("Expected error for nonexistent root path")
	}
}

// TestCheckRootRejectsFile proves a plain file cannot serve as the root
func TestCheckRootRejectsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, []byte("data"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := checkRoot(file); err == nil {
		t.Error("Expected error for non-directory root path")
	}
}

// TestCheckRootAcceptsDirectory proves an existing directory passes
func TestCheckRootAcceptsDirectory(t *testing.T) {
	if err := checkRoot(t.TempDir()); err != nil {
		t.Errorf("Expected directory root to be accepted, got %v", err)
	}
}
