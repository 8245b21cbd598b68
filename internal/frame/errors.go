package frame

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPattern is matched by errors returned when a filter is not a valid regular expression.
	ErrInvalidPattern = errors.New("invalid regex pattern")
	// ErrDirectoryUnreadable is matched by errors returned when a scan root cannot be listed.
	ErrDirectoryUnreadable = errors.New("directory unreadable")
)

// PatternError reports a filter that failed to compile.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid regex pattern: %v", e.Err)
}

func (e *PatternError) Unwrap() []error { return []error{ErrInvalidPattern, e.Err} }

// DirectoryError reports a scan root that could not be opened for listing.
type DirectoryError struct {
	Path string
	Err  error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("error reading directory %s: %v", e.Path, e.Err)
}

func (e *DirectoryError) Unwrap() []error { return []error{ErrDirectoryUnreadable, e.Err} }
