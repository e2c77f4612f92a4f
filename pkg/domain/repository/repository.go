package repository

// PresetMatcher answers membership queries against the preset blocklist
type PresetMatcher interface {
	// Contains reports whether domain is on the list, ignoring case
	Contains(domain string) bool
	// Len returns the number of distinct entries
	Len() int
}

// ReportWriter writes the rendered report to its sink
type ReportWriter interface {
	// Write writes the whole report
	Write(report []byte) error
	// Close closes the writer
	Close() error
}
