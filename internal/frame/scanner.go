package frame

import "unicode/utf8"

// Scanner builds file lists for the photo frame.
// Per-entry failures never fail a scan: the entry is logged at debug level
// and left out of the result.
type Scanner struct {
	fsmgr  FilesystemManager
	logger Logger
	clock  Clock
	random Random
}

// NewScanner creates a Scanner with the given dependencies.
func NewScanner(fsmgr FilesystemManager, logger Logger, clock Clock, random Random) *Scanner {
	return &Scanner{
		fsmgr:  fsmgr,
		logger: logger,
		clock:  clock,
		random: random,
	}
}

// Scan returns the full paths of the regular files under req.Root whose base
// names match req.Pattern, in traversal order. When req.AgeBias is set, each
// match is additionally kept or dropped by an AgeFilter.
//
// Scan fails only if the pattern does not compile, or if a non-recursive
// scan cannot open its root.
func (s *Scanner) Scan(req ScanRequest) ([]string, error) {
	matcher, err := CompilePattern(req.Pattern)
	if err != nil {
		return nil, err
	}

	candidates, err := s.fsmgr.Walk(req.Root, req.Recursive)
	if err != nil {
		return nil, err
	}

	var ageFilter *AgeFilter
	if req.AgeBias {
		ageFilter = NewAgeFilter(s.clock, s.random)
	}

	files := []string{}
	var seen, aged int
	for c := range candidates {
		seen++
		switch s.judge(c, matcher, ageFilter) {
		case included:
			files = append(files, c.Path())
		case ageFiltered:
			aged++
		}
	}

	s.logger.Info("scan complete",
		"root", req.Root,
		"recursive", req.Recursive,
		"age_bias", req.AgeBias,
		"candidates", seen,
		"matched", len(files),
		"age_filtered", aged,
	)
	return files, nil
}

type verdict int

const (
	included verdict = iota
	excluded
	ageFiltered
)

// judge decides whether c belongs in the result.
func (s *Scanner) judge(c *Candidate, matcher *Matcher, ageFilter *AgeFilter) verdict {
	name := c.Name()
	if !utf8.ValidString(name) {
		s.logger.Debug("skipping entry with non-UTF-8 name", "path", c.Path())
		return excluded
	}
	if !matcher.Match(name) {
		return excluded
	}

	if ageFilter != nil {
		info, err := s.fsmgr.Stat(c)
		if err != nil {
			// No metadata: keep the file without applying the age bias.
			s.logger.Debug("age check skipped", "path", c.Path(), "error", err)
		} else if !ageFilter.Accept(info.ModTime()) {
			return ageFiltered
		}
	}

	if !utf8.ValidString(c.Path()) {
		s.logger.Debug("skipping entry with non-UTF-8 path", "path", c.Path())
		return excluded
	}
	return included
}

// ListFolders returns root followed by the folders under it. Subfolders are
// only included when recursive is set. Unreadable folders are logged and skipped.
func (s *Scanner) ListFolders(root string, recursive bool) []string {
	return s.fsmgr.ListDirs(root, recursive, func(path string, err error) {
		s.logger.Warn("error reading directory", "path", path, "error", err)
	})
}

// Shuffle reorders paths in place using a Fisher-Yates shuffle.
func (s *Scanner) Shuffle(paths []string) {
	for i := len(paths) - 1; i > 0; i-- {
		j := s.random.IntN(i + 1)
		paths[i], paths[j] = paths[j], paths[i]
	}
}
