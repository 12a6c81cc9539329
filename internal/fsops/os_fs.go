package fsops

import (
	"os"
	"path/filepath"
)

// OSFS implements FS using real os package calls
type OSFS struct{}

func (OSFS) IsDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func (OSFS) Remove(path string) error {
	return os.Remove(path)
}

func (OSFS) ListDir(path string) []Entry {
	dirEntries, err := os.ReadDir(path)
	if err != nil {
		// Unreadable directory: no children visible to us
		return nil
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		info, err := de.Info()
		if err != nil {
			// Entry vanished or is inaccessible; skip it
			continue
		}
		entries = append(entries, Entry{
			Path:    filepath.Join(path, de.Name()),
			ModTime: info.ModTime(),
		})
	}
	return entries
}
