package fs

import (
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"frame-go/internal/frame"
)

// readBatch is the number of directory entries read per ReadDir call in
// non-recursive walks.
const readBatch = 256

var errNotDirectory = errors.New("not a directory")

// OSFilesystemManager is the real filesystem implementation of FilesystemManager.
// It performs read-only operations using the os package.
type OSFilesystemManager struct{}

// NewOSFilesystemManager creates a new filesystem manager that operates on the real filesystem.
func NewOSFilesystemManager() *OSFilesystemManager {
	return &OSFilesystemManager{}
}

// Walk discovers regular files under root.
func (m *OSFilesystemManager) Walk(root string, recursive bool) (iter.Seq[*frame.Candidate], error) {
	if recursive {
		return walkTree(root), nil
	}

	dir, err := os.Open(root)
	if err != nil {
		return nil, &frame.DirectoryError{Path: root, Err: err}
	}
	info, err := dir.Stat()
	if err != nil {
		dir.Close()
		return nil, &frame.DirectoryError{Path: root, Err: err}
	}
	if !info.IsDir() {
		dir.Close()
		return nil, &frame.DirectoryError{Path: root, Err: errNotDirectory}
	}

	return func(yield func(*frame.Candidate) bool) {
		defer dir.Close()
		for {
			entries, err := dir.ReadDir(readBatch)
			for _, entry := range entries {
				fullPath := joinPath(root, entry.Name())
				if !isRegularFile(fullPath, entry) {
					continue
				}
				if !yield(frame.NewCandidate(fullPath, entry.Name())) {
					return
				}
			}
			// ReadDir already drops entries that vanish between getdents and
			// lstat, so a non-EOF error here is a failure of the handle itself
			// and another call would return it again.
			if err != nil {
				return
			}
		}
	}, nil
}

// walkTree yields every regular file in the subtree rooted at root, in
// lexical order per directory. The root itself is resolved through a symlink;
// links below it are not followed. Unreadable entries are skipped.
func walkTree(root string) iter.Seq[*frame.Candidate] {
	return func(yield func(*frame.Candidate) bool) {
		info, err := os.Stat(root)
		if err != nil {
			return
		}
		switch {
		case info.IsDir():
			walkDir(root, yield)
		case info.Mode().IsRegular():
			yield(frame.NewCandidate(root, filepath.Base(root)))
		}
	}
}

// walkDir reports false once yield asks to stop.
func walkDir(dir string, yield func(*frame.Candidate) bool) bool {
	// On error ReadDir still returns the entries it read.
	entries, _ := os.ReadDir(dir)
	for _, entry := range entries {
		p := joinPath(dir, entry.Name())
		switch {
		case entry.IsDir():
			if !walkDir(p, yield) {
				return false
			}
		case entry.Type().IsRegular():
			if !yield(frame.NewCandidate(p, entry.Name())) {
				return false
			}
		}
	}
	return true
}

// joinPath appends name to dir without cleaning dir, so "./" and "." keep
// their leading component the way the caller spelled it.
func joinPath(dir, name string) string {
	if dir != "" && os.IsPathSeparator(dir[len(dir)-1]) {
		return dir + name
	}
	return dir + string(filepath.Separator) + name
}

// isRegularFile reports whether entry is a regular file, following a symlink
// to its target.
func isRegularFile(fullPath string, entry fs.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(fullPath)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// Stat returns fresh file info for a candidate.
func (m *OSFilesystemManager) Stat(c *frame.Candidate) (fs.FileInfo, error) {
	return os.Stat(c.Path())
}

// ListDirs returns root and, when recursive, every directory below it in
// depth-first pre-order. Entries within a directory are visited in name order.
func (m *OSFilesystemManager) ListDirs(root string, recursive bool, skip func(path string, err error)) []string {
	var dirs []string
	m.collectDirs(root, recursive, skip, &dirs)
	return dirs
}

func (m *OSFilesystemManager) collectDirs(dir string, recursive bool, skip func(string, error), dirs *[]string) {
	*dirs = append(*dirs, dir)
	if !recursive {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if skip != nil {
			skip(dir, err)
		}
	}
	// ReadDir returns the entries read before an error, so keep going with those.
	for _, entry := range entries {
		if entry.IsDir() {
			m.collectDirs(joinPath(dir, entry.Name()), recursive, skip, dirs)
		}
	}
}

// Compile-time check that OSFilesystemManager implements frame.FilesystemManager interface
var _ frame.FilesystemManager = (*OSFilesystemManager)(nil)
