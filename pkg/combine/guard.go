// File: pkg/combine/guard.go
package combine

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// OutputDecision is the Guard's verdict on an output path.
type OutputDecision int

const (
	// Proceed means the output may be created or truncated.
	Proceed OutputDecision = iota
	// PromptUser means the operator must confirm the overwrite.
	PromptUser
	// Abort means the run must stop without touching the output.
	Abort
)

func (d OutputDecision) String() string {
	switch d {
	case Proceed:
		return "proceed"
	case PromptUser:
		return "prompt"
	case Abort:
		return "abort"
	default:
		return "unknown"
	}
}

// Guard decides whether an existing output file may be overwritten.
// The operator is prompted through in/out, which are usually stdin and stdout.
type Guard struct {
	in     *bufio.Reader
	out    io.Writer
	logger *zap.Logger
}

// NewGuard creates a Guard reading answers from in and writing prompts to out.
func NewGuard(in io.Reader, out io.Writer, logger *zap.Logger) *Guard {
	if logger == nil {
		logger = zap.NewNop()
	}
	if in == nil {
		in = strings.NewReader("")
	}
	if out == nil {
		out = io.Discard
	}
	return &Guard{in: bufio.NewReader(in), out: out, logger: logger}
}

// Decide runs the full decision: force skips all inspection, otherwise the
// existing file is inspected and the operator asked when needed.
func (g *Guard) Decide(path string, force bool) (OutputDecision, error) {
	if force {
		g.logger.Debug("Forced overwrite, skipping output inspection", zap.String("output", path))
		return Proceed, nil
	}

	decision, err := g.Inspect(path)
	if err != nil {
		return Abort, err
	}
	if decision != PromptUser {
		return decision, nil
	}
	return g.Confirm(path)
}

// Inspect examines the file at path without prompting. It returns Proceed
// when the file is missing, empty, produced by a previous run or not text,
// and PromptUser when it holds foreign content.
func (g *Guard) Inspect(path string) (OutputDecision, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Proceed, nil
	}
	if err != nil {
		return Abort, fmt.Errorf("%w: %s: %v", ErrOutputInspect, path, err)
	}
	if info.IsDir() {
		return Abort, fmt.Errorf("%w: %s is a directory", ErrOutputInspect, path)
	}
	if info.Size() == 0 {
		return Proceed, nil
	}

	line, err := readFirstLine(path)
	if err != nil {
		return Abort, fmt.Errorf("%w: %s: %v", ErrOutputInspect, path, err)
	}

	if !isTextLine(line) {
		g.logger.Warn("Existing output is not valid text, overwriting without confirmation",
			zap.String("output", path))
		return Proceed, nil
	}

	if string(line) == PreambleFirstLine {
		g.logger.Debug("Existing output was produced by a previous run", zap.String("output", path))
		return Proceed, nil
	}

	return PromptUser, nil
}

// Confirm asks the operator whether path may be overwritten. Only "y" or "Y"
// proceeds; any other answer, including end of input, aborts.
func (g *Guard) Confirm(path string) (OutputDecision, error) {
	fmt.Fprintf(g.out, "Output file %s already exists and was not generated by codedump. Overwrite? (y/n): ", path)

	response, err := g.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return Abort, fmt.Errorf("failed to read user input: %w", err)
	}

	if strings.EqualFold(strings.TrimSpace(response), "y") {
		return Proceed, nil
	}
	g.logger.Info("Operator declined to overwrite output", zap.String("output", path))
	return Abort, nil
}

// readFirstLine returns the first line of the file without its line ending,
// reading at most ReadChunkSize bytes.
func readFirstLine(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := bufio.NewReaderSize(f, ReadChunkSize)
	line, err := reader.ReadSlice('\n')
	switch {
	case err == nil, errors.Is(err, io.EOF):
		line = bytes.TrimRight(line, "\r\n")
	case errors.Is(err, bufio.ErrBufferFull):
		line = trimPartialRune(line)
	default:
		return nil, err
	}
	return append([]byte(nil), line...), nil
}

// trimPartialRune drops a multi-byte character cut off at the end of buf.
func trimPartialRune(buf []byte) []byte {
	for i := 1; i < utf8.UTFMax && i <= len(buf); i++ {
		start := len(buf) - i
		if utf8.RuneStart(buf[start]) {
			if !utf8.FullRune(buf[start:]) {
				return buf[:start]
			}
			break
		}
	}
	return buf
}
