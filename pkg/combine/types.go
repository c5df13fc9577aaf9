package combine

import "time"

// Candidate is a file-system entry discovered by the walker.
type Candidate struct {
	Path  string // On-disk path, used for reading.
	Rel   string // Slash-separated path relative to the walk root, used for matching and headers.
	IsDir bool
	Size  int64
}

// IsFile reports whether the candidate is a regular file.
func (c Candidate) IsFile() bool {
	return !c.IsDir
}

// FileContent holds a candidate's content after it has been read.
type FileContent struct {
	Path    string // Relative path written in the delimiter line.
	Content string // Decoded text content.
	Err     error  // Non-nil when the file was skipped.
}

// Result reports what the Aggregator wrote.
type Result struct {
	Processed int      // Files written to the output.
	Skipped   int      // Files skipped because they could not be read or decoded.
	Filtered  int      // Files rejected by the selector, including content filters.
	Included  []string // Relative paths written, in output order.
}

// Summary is returned by Run.
type Summary struct {
	RunID      string
	Output     string
	Candidates int
	Processed  int
	Skipped    int
	Filtered   int
	Elapsed    time.Duration
	Aborted    bool // The operator declined to overwrite the output.
}
