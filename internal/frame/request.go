package frame

// ScanRequest describes one scan. It is passed by value and not modified.
type ScanRequest struct {
	// Root is the directory to scan.
	Root string
	// Pattern is a regular expression tested case-insensitively against base names.
	Pattern string
	// Recursive includes files in subdirectories at any depth.
	Recursive bool
	// AgeBias enables the age-weighted probabilistic exclusion.
	AgeBias bool
}
