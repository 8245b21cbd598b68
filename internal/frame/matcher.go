package frame

import "regexp"

// DefaultImagePattern selects the image formats a photo frame can display.
const DefaultImagePattern = `\.(jpg|jpeg|jpe|gif|png|bmp)$`

// Matcher tests file base names against a case-insensitive regular expression.
type Matcher struct {
	re *regexp.Regexp
}

// CompilePattern compiles pattern for case-insensitive matching.
// A syntax error is returned as a *PatternError.
func CompilePattern(pattern string) (*Matcher, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	return &Matcher{re: re}, nil
}

// Match reports whether name contains a match of the pattern.
func (m *Matcher) Match(name string) bool {
	return m.re.MatchString(name)
}
