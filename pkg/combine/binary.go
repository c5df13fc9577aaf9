// File: pkg/combine/binary.go
package combine

import (
	"fmt"
	"unicode/utf8"
)

// decodeText converts raw file bytes to a string, rejecting content that is
// not valid UTF-8. NUL bytes are valid UTF-8 and kept as is.
func decodeText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: invalid UTF-8", ErrNotText)
	}
	return string(data), nil
}

// isTextLine reports whether a line read from an existing output file is valid text.
func isTextLine(line []byte) bool {
	return utf8.Valid(line)
}
