package fsops

import (
	"os"
	"path/filepath"
	"sort"
	"time"
)

type fakeNode struct {
	isDir   bool
	modTime time.Time
}

// FakeFS implements FS over an in-memory tree for testing.
// Records all Remove calls without touching real storage.
type FakeFS struct {
	nodes map[string]fakeNode

	// Denied paths are omitted from ListDir results, mirroring the
	// silent permission-denied policy of the real implementation.
	Denied map[string]bool

	// RemoveErrs injects a failure for specific paths.
	RemoveErrs map[string]error

	// Calls holds every Remove invocation in order.
	Calls []string
}

func NewFakeFS() *FakeFS {
	return &FakeFS{
		nodes:      make(map[string]fakeNode),
		Denied:     make(map[string]bool),
		RemoveErrs: make(map[string]error),
	}
}

// AddDir registers a directory at path with the given modification time.
func (f *FakeFS) AddDir(path string, modTime time.Time) {
	f.nodes[filepath.Clean(path)] = fakeNode{isDir: true, modTime: modTime}
}

// AddFile registers a regular file at path with the given modification time.
func (f *FakeFS) AddFile(path string, modTime time.Time) {
	f.nodes[filepath.Clean(path)] = fakeNode{isDir: false, modTime: modTime}
}

// Exists reports whether path is still present in the fake tree.
func (f *FakeFS) Exists(path string) bool {
	_, ok := f.nodes[filepath.Clean(path)]
	return ok
}

func (f *FakeFS) IsDirectory(path string) bool {
	node, ok := f.nodes[filepath.Clean(path)]
	return ok && node.isDir
}

func (f *FakeFS) Remove(path string) error {
	path = filepath.Clean(path)
	f.Calls = append(f.Calls, "rm:"+path)
	if err, ok := f.RemoveErrs[path]; ok {
		return err
	}
	if _, ok := f.nodes[path]; !ok {
		return &os.PathError{Op: "remove", Path: path, Err: os.ErrNotExist}
	}
	delete(f.nodes, path)
	return nil
}

func (f *FakeFS) ListDir(path string) []Entry {
	path = filepath.Clean(path)
	var entries []Entry
	for p, node := range f.nodes {
		if filepath.Dir(p) != path || p == path {
			continue
		}
		if f.Denied[p] {
			continue
		}
		entries = append(entries, Entry{Path: p, ModTime: node.modTime})
	}
	// Map iteration order is random; tests want stable output.
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries
}
