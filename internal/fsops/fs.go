package fsops

import "time"

// Entry is one immediate child of a listed directory together with the
// metadata cached at listing time.
type Entry struct {
	Path    string
	ModTime time.Time
}

// FS abstracts the filesystem operations the deletion engine performs.
// Enables substituting a fake in tests to prove dry-run never deletes.
type FS interface {
	// IsDirectory reports whether path currently denotes a directory.
	// A non-existent path is not a directory; no error is returned.
	IsDirectory(path string) bool

	// Remove deletes the single filesystem object at path.
	Remove(path string) error

	// ListDir returns the immediate children of path. Entries the caller
	// lacks permission to access are omitted, not reported as errors.
	ListDir(path string) []Entry
}
