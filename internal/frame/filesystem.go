package frame

import (
	"io/fs"
	"iter"
)

// FilesystemManager enumerates and inspects scan candidates.
// It abstracts file access to enable testing without touching the real filesystem.
type FilesystemManager interface {
	// Walk starts a traversal of root and returns the regular files it finds.
	// When recursive is false, only direct children of root are considered and
	// an unopenable root is reported as a *DirectoryError. When recursive is
	// true, an unreadable root yields an empty sequence. Entries that cannot be
	// inspected are skipped. The sequence is lazy and runs the traversal once
	// per call to Walk.
	Walk(root string, recursive bool) (iter.Seq[*Candidate], error)

	// Stat returns fresh file info for a candidate, following symlinks.
	Stat(c *Candidate) (fs.FileInfo, error)

	// ListDirs returns root followed by its subdirectories in depth-first
	// pre-order. Only root is returned when recursive is false. Directories
	// that cannot be listed are reported through skip and are not descended.
	ListDirs(root string, recursive bool, skip func(path string, err error)) []string
}
