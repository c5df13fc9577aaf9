package combine

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

// ProcessSingleFile reads and decodes the content of a single candidate.
// Failures are reported through FileContent.Err so that one bad file never
// stops the run.
func ProcessSingleFile(c Candidate, logger *zap.Logger) FileContent {
	logger.Debug("Reading file content", zap.String("filePath", c.Path))

	fileBytes, err := os.ReadFile(c.Path)
	if err != nil {
		return FileContent{Path: c.Rel, Err: fmt.Errorf("error reading file %s: %w", c.Path, err)}
	}

	content, err := decodeText(fileBytes)
	if err != nil {
		return FileContent{Path: c.Rel, Err: fmt.Errorf("%s: %w", c.Path, err)}
	}

	logger.Debug("Successfully read file content",
		zap.String("filePath", c.Path),
		zap.Int("contentSizeBytes", len(fileBytes)))

	return FileContent{Path: c.Rel, Content: content}
}

// writePreamble writes the two-line header that identifies the output.
func writePreamble(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n\n", PreambleFirstLine, PreambleSecondLine)
	return err
}

// writeEntry writes one file delimited by its path line.
func writeEntry(w io.Writer, fc FileContent) error {
	if _, err := fmt.Fprintf(w, "\n--- %s ---\n", fc.Path); err != nil {
		return err
	}
	if _, err := io.WriteString(w, fc.Content); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
