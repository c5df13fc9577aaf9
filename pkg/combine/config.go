// File: pkg/combine/config.go
package combine

// Options holds the configuration of one run. It is built once by the CLI
// layer and passed by value; nothing in the engine modifies it.
type Options struct {
	Root             string   // Directory to walk.
	Output           string   // Destination path for the aggregated output.
	Tree             string   // Optional destination for a tree listing of the aggregated files.
	Extensions       []string // Extensions to include; empty means all.
	Exclude          []string // User exclusion patterns, compiled after the defaults.
	Filters          []Filter // Optional name, path and content filters.
	SuppressPreamble bool     // Omit the self-identifying header.
	Force            bool     // Overwrite the output without inspecting it.
	IncludeHidden    bool     // Descend into hidden files and directories.
	GlobalIgnoreFile string   // Optional ignore file applied from the root.
	MaxFileSizeKB    int      // Files larger than this are skipped; 0 disables the limit.
	MaxWorkers       int      // Concurrent readers; values below 2 read sequentially.
}

// WalkOptions configures Walk.
type WalkOptions struct {
	IncludeHidden    bool     // Descend into hidden files and directories.
	GlobalIgnoreFile string   // Optional ignore file applied from the root.
	MaxFileSizeKB    int      // Files larger than this are skipped; 0 disables the limit.
	Exclude          []string // Absolute paths never returned, such as the run's own output.
}
