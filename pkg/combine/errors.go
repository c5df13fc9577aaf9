// File: pkg/combine/errors.go
package combine

import "errors"

// Sentinel errors returned by the combine engine.
var (
	// ErrInvalidPattern marks a malformed exclusion pattern. Fatal at startup.
	ErrInvalidPattern = errors.New("invalid exclusion pattern")
	// ErrNotText marks file content that is not valid UTF-8 text.
	ErrNotText = errors.New("content is not valid text")
	// ErrOutputInspect marks an unexpected failure while reading an existing output file.
	ErrOutputInspect = errors.New("failed to inspect existing output")
	// ErrOutputLocked is returned when another run holds the output lock.
	ErrOutputLocked = errors.New("output is locked by another run")
	// ErrNotDirectory is returned when the walk root is not a directory.
	ErrNotDirectory = errors.New("not a directory")
)
