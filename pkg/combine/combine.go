// Package combine selects files from a directory tree and streams them into
// a single text artifact, one delimited entry per file.
package combine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Env carries the collaborators of a run.
type Env struct {
	In       io.Reader   // Operator answers to the overwrite prompt.
	Out      io.Writer   // Where the overwrite prompt is written.
	Logger   *zap.Logger // Diagnostics; a no-op logger is used when nil.
	Progress Progress    // Optional progress reporter.
}

// Run orchestrates one aggregation: it compiles the rules, checks the output
// path with the Guard, walks the tree and writes the output. When the
// operator declines the overwrite, Run returns a Summary with Aborted set and
// a nil error, and the output file is left untouched.
func Run(ctx context.Context, opts Options, env Env) (Summary, error) {
	startTime := time.Now()
	logger := env.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	runID := uuid.NewString()
	logger = logger.With(zap.String("runID", runID))
	summary := Summary{RunID: runID, Output: opts.Output}

	if opts.Output == "" {
		return summary, errors.New("output path is required")
	}
	logger.Info("Starting combination process", zap.String("directory", opts.Root), zap.String("output", opts.Output))

	rules, err := BuildRuleSet(opts.Exclude)
	if err != nil {
		logger.Error("Failed to compile exclusion rules", zap.Error(err))
		return summary, err
	}
	selector := NewSelector(rules, NewExtensionSet(opts.Extensions...), opts.Filters)
	logger.Debug("Compiled exclusion rules", zap.Int("totalPatterns", rules.Len()))

	if err := ensureDirectory(filepath.Dir(opts.Output), logger); err != nil {
		return summary, fmt.Errorf("failed to create output directory: %w", err)
	}

	lock, err := lockOutput(opts.Output)
	if err != nil {
		logger.Error("Failed to lock output", zap.String("output", opts.Output), zap.Error(err))
		return summary, err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("Failed to release output lock", zap.Error(err))
		}
	}()

	guard := NewGuard(env.In, env.Out, logger)
	decision, err := guard.Decide(opts.Output, opts.Force)
	if err != nil {
		logger.Error("Failed to validate output file", zap.String("output", opts.Output), zap.Error(err))
		return summary, err
	}
	if decision == Abort {
		logger.Info("User chose to abort the combine process")
		summary.Aborted = true
		summary.Elapsed = time.Since(startTime)
		return summary, nil
	}

	exclude := []string{opts.Output, lock.path}
	if opts.Tree != "" {
		exclude = append(exclude, opts.Tree)
	}
	candidates, err := Walk(ctx, opts.Root, selector, WalkOptions{
		IncludeHidden:    opts.IncludeHidden,
		GlobalIgnoreFile: opts.GlobalIgnoreFile,
		MaxFileSizeKB:    opts.MaxFileSizeKB,
		Exclude:          exclude,
	}, logger)
	if err != nil {
		return summary, fmt.Errorf("failed to collect files: %w", err)
	}
	summary.Candidates = len(candidates)

	if len(candidates) == 0 {
		logger.Warn("No files to process after filtering")
	}

	agg := NewAggregator(selector, logger,
		WithPreamble(!opts.SuppressPreamble),
		WithWorkers(opts.MaxWorkers),
		WithProgress(env.Progress),
	)
	res, err := writeOutput(ctx, opts.Output, agg, candidates, logger)
	summary.Processed = res.Processed
	summary.Skipped = res.Skipped
	summary.Filtered = res.Filtered
	if err != nil {
		summary.Elapsed = time.Since(startTime)
		return summary, fmt.Errorf("failed to write combined file: %w", err)
	}

	if opts.Tree != "" {
		if err := ensureDirectory(filepath.Dir(opts.Tree), logger); err != nil {
			return summary, fmt.Errorf("failed to create tree output directory: %w", err)
		}
		treeRoot, absErr := filepath.Abs(opts.Root)
		if absErr != nil {
			treeRoot = opts.Root
		}
		treeContent := RenderTree(treeRoot, res.Included)
		if err := writeToFile(opts.Tree, []byte(treeContent), 0o644, logger); err != nil {
			return summary, fmt.Errorf("failed to write tree structure: %w", err)
		}
	}

	summary.Elapsed = time.Since(startTime)
	logger.Info("Successfully combined files",
		zap.String("outputFile", opts.Output),
		zap.Int("totalFiles", summary.Processed),
		zap.Int("skippedFiles", summary.Skipped),
		zap.Duration("elapsed", summary.Elapsed),
	)
	return summary, nil
}

// DefaultOutputPath names the output after the walked directory, in the
// current working directory.
func DefaultOutputPath(root string) string {
	name := "directory"
	if abs, err := filepath.Abs(root); err == nil {
		if base := filepath.Base(abs); base != string(os.PathSeparator) && base != "." {
			name = base
		}
	}
	return name + ".txt"
}
