package testutil

import (
	"fmt"
	"io/fs"
	"iter"
	"path"
	"strings"
	"time"

	"frame-go/internal/frame"
)

// MockFile represents an entry in the mock filesystem.
type MockFile struct {
	ModTime     time.Time
	IsDirectory bool
	// StatErr, when set, is returned by Stat for this entry.
	StatErr error
	// Unreadable marks a directory that cannot be listed.
	Unreadable bool
}

// MockFilesystemManager is an in-memory filesystem for testing.
// Paths use forward slashes. Entries are walked in the order they were added.
type MockFilesystemManager struct {
	files map[string]*MockFile
	order []string
}

// NewMockFilesystemManager creates a new mock filesystem.
func NewMockFilesystemManager() *MockFilesystemManager {
	return &MockFilesystemManager{
		files: make(map[string]*MockFile),
	}
}

func (m *MockFilesystemManager) add(p string, f *MockFile) *MockFile {
	p = path.Clean(p)
	if _, ok := m.files[p]; !ok {
		m.order = append(m.order, p)
	}
	m.files[p] = f
	return f
}

// AddFile adds a regular file modified at modTime.
func (m *MockFilesystemManager) AddFile(p string, modTime time.Time) *MockFile {
	return m.add(p, &MockFile{ModTime: modTime})
}

// AddDirectory adds a directory.
func (m *MockFilesystemManager) AddDirectory(p string) *MockFile {
	return m.add(p, &MockFile{ModTime: time.Now(), IsDirectory: true})
}

// File returns the entry at p, or nil.
func (m *MockFilesystemManager) File(p string) *MockFile {
	return m.files[path.Clean(p)]
}

func (m *MockFilesystemManager) Walk(root string, recursive bool) (iter.Seq[*frame.Candidate], error) {
	root = path.Clean(root)
	dir, ok := m.files[root]

	if !recursive {
		switch {
		case !ok:
			return nil, &frame.DirectoryError{Path: root, Err: fs.ErrNotExist}
		case !dir.IsDirectory:
			return nil, &frame.DirectoryError{Path: root, Err: fmt.Errorf("not a directory")}
		case dir.Unreadable:
			return nil, &frame.DirectoryError{Path: root, Err: fs.ErrPermission}
		}
	}

	return func(yield func(*frame.Candidate) bool) {
		if !ok || dir.Unreadable {
			return
		}
		if !dir.IsDirectory {
			yield(frame.NewCandidate(root, path.Base(root)))
			return
		}
		for _, p := range m.order {
			f := m.files[p]
			if f.IsDirectory || !m.within(root, p, recursive) {
				continue
			}
			if !yield(frame.NewCandidate(p, path.Base(p))) {
				return
			}
		}
	}, nil
}

// within reports whether p is reachable from root without crossing an
// unreadable directory.
func (m *MockFilesystemManager) within(root, p string, recursive bool) bool {
	if !strings.HasPrefix(p, root+"/") {
		return false
	}
	parent := path.Dir(p)
	if !recursive {
		return parent == root
	}
	for ; parent != root; parent = path.Dir(parent) {
		if d, ok := m.files[parent]; ok && d.Unreadable {
			return false
		}
	}
	return true
}

func (m *MockFilesystemManager) Stat(c *frame.Candidate) (fs.FileInfo, error) {
	f, ok := m.files[c.Path()]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: c.Path(), Err: fs.ErrNotExist}
	}
	if f.StatErr != nil {
		return nil, &fs.PathError{Op: "stat", Path: c.Path(), Err: f.StatErr}
	}
	return &mockFileInfo{
		name:    path.Base(c.Path()),
		modTime: f.ModTime,
		isDir:   f.IsDirectory,
	}, nil
}

func (m *MockFilesystemManager) ListDirs(root string, recursive bool, skip func(string, error)) []string {
	root = path.Clean(root)
	dirs := []string{root}
	if !recursive {
		return dirs
	}
	var visit func(dir string)
	visit = func(dir string) {
		if d, ok := m.files[dir]; !ok || d.Unreadable {
			if skip != nil {
				skip(dir, fs.ErrPermission)
			}
			return
		}
		for _, p := range m.order {
			if m.files[p].IsDirectory && path.Dir(p) == dir && p != dir {
				dirs = append(dirs, p)
				visit(p)
			}
		}
	}
	visit(root)
	return dirs
}

// mockFileInfo implements fs.FileInfo
type mockFileInfo struct {
	name    string
	modTime time.Time
	isDir   bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return 0 }
func (m *mockFileInfo) Mode() fs.FileMode  { return 0644 }
func (m *mockFileInfo) ModTime() time.Time { return m.modTime }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() any           { return nil }

// Compile-time check
var _ frame.FilesystemManager = (*MockFilesystemManager)(nil)
