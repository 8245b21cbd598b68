package frame

// Candidate is a regular file found during traversal.
// Candidates are created by FilesystemManager.Walk and live for one scan.
type Candidate struct {
	path string
	name string
}

// NewCandidate creates a Candidate from its full path and base name.
// This is primarily for use by FilesystemManager implementations.
func NewCandidate(path, name string) *Candidate {
	return &Candidate{path: path, name: name}
}

// Path returns the full path as yielded by the traversal.
func (c *Candidate) Path() string {
	return c.path
}

// Name returns the base name of the entry.
func (c *Candidate) Name() string {
	return c.name
}
