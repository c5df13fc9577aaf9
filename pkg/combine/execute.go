// File: pkg/combine/execute.go
package combine

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// writeOutput creates or truncates outputPath and streams the candidates
// into it through a single buffered writer, flushed once at the end. The
// writer is flushed even when the aggregation is interrupted so that every
// entry already written is complete on disk.
func writeOutput(ctx context.Context, outputPath string, agg *Aggregator, candidates []Candidate, logger *zap.Logger) (res Result, err error) {
	logger.Debug("Writing combined content to output file", zap.String("combinedFile", outputPath))

	outFile, err := os.Create(outputPath)
	if err != nil {
		logger.Error("Failed to create output file", zap.String("file", outputPath), zap.Error(err))
		return res, fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := outFile.Close(); closeErr != nil {
			logger.Error("Failed to close output file", zap.String("file", outputPath), zap.Error(closeErr))
			if err == nil {
				err = fmt.Errorf("failed to close output file: %w", closeErr)
			}
		}
	}()

	writer := bufio.NewWriter(outFile)
	res, err = agg.Write(ctx, writer, candidates)

	if flushErr := writer.Flush(); flushErr != nil {
		logger.Error("Failed to flush output file", zap.String("file", outputPath), zap.Error(flushErr))
		if err == nil {
			err = fmt.Errorf("failed to flush output: %w", flushErr)
		}
	}
	return res, err
}

// ensureDirectory ensures a directory exists, creating it if necessary.
func ensureDirectory(path string, logger *zap.Logger) error {
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		logger.Error("Failed to create directory", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Ensured directory exists", zap.String("path", path))
	return nil
}

// writeToFile writes data to a file and logs the operation.
func writeToFile(path string, data []byte, perm os.FileMode, logger *zap.Logger) error {
	if err := os.WriteFile(path, data, perm); err != nil {
		logger.Error("Failed to write file", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Successfully wrote file", zap.String("path", path))
	return nil
}
