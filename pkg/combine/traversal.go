// File: pkg/combine/traversal.go
package combine

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"codedump/pkg/ignore"

	"go.uber.org/zap"
)

// Walk traverses root and returns the files that pass path evaluation, in
// lexical walk order. Directories matching the rule set or an ignore file
// are pruned before they are read. Unreadable entries are logged and skipped.
func Walk(ctx context.Context, root string, selector *Selector, opts WalkOptions, logger *zap.Logger) ([]Candidate, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if selector == nil {
		selector = NewSelector(nil, nil, nil)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to access %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	gi := ignore.NewMatcher(absRoot, logger)
	if err := gi.LoadGlobal(opts.GlobalIgnoreFile); err != nil {
		logger.Warn("Failed to load global ignore file", zap.String("file", opts.GlobalIgnoreFile), zap.Error(err))
	}

	excluded := make(map[string]struct{}, len(opts.Exclude))
	for _, p := range opts.Exclude {
		if abs, err := filepath.Abs(p); err == nil {
			excluded[abs] = struct{}{}
		}
	}

	var candidates []Candidate
	logger.Debug("Starting file traversal and collection", zap.String("root", absRoot), zap.Int("maxFileSizeKB", opts.MaxFileSizeKB))

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == absRoot {
				return err
			}
			logger.Warn("Error accessing path during traversal", zap.String("path", path), zap.Error(err))
			return nil
		}

		if path == absRoot {
			if err := gi.LoadRoot(); err != nil {
				logger.Warn("Failed to load ignore files", zap.String("dir", absRoot), zap.Error(err))
			}
			return nil
		}

		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			logger.Warn("Unable to determine relative path", zap.String("path", path), zap.Error(err))
			return nil
		}
		relPath = normalizePath(relPath)

		if d.IsDir() {
			return visitDir(d, relPath, selector, gi, opts, logger)
		}

		if !opts.IncludeHidden && isHidden(d.Name()) {
			return nil
		}
		if _, skip := excluded[path]; skip {
			logger.Debug("Skipping run output", zap.String("filePath", path))
			return nil
		}
		if gi.MatchesPath(relPath, false) {
			logger.Debug("Skipping ignored file during traversal", zap.String("filePath", relPath))
			return nil
		}
		if selector.Evaluate(relPath) == Reject {
			logger.Debug("File rejected by selector", zap.String("filePath", relPath))
			return nil
		}

		info, ok := regularFileInfo(path, d, logger)
		if !ok {
			return nil
		}
		if opts.MaxFileSizeKB > 0 && info.Size() > int64(opts.MaxFileSizeKB)*1024 {
			logger.Debug("Skipping file due to size limit during traversal",
				zap.String("filePath", relPath), zap.Int64("sizeBytes", info.Size()))
			return nil
		}

		candidates = append(candidates, Candidate{Path: path, Rel: relPath, Size: info.Size()})
		return nil
	})

	if err != nil {
		logger.Error("Error during file traversal", zap.Error(err))
		return candidates, err
	}

	logger.Debug("Completed file traversal and collection", zap.Int("candidates", len(candidates)))
	return candidates, nil
}

// visitDir decides whether the walk descends into a directory and loads its
// ignore files when it does.
func visitDir(d fs.DirEntry, relPath string, selector *Selector, gi *ignore.Matcher, opts WalkOptions, logger *zap.Logger) error {
	if d.Name() == ".git" {
		return filepath.SkipDir
	}
	if !opts.IncludeHidden && isHidden(d.Name()) {
		logger.Debug("Skipping hidden directory", zap.String("directory", relPath))
		return filepath.SkipDir
	}
	if gi.MatchesPath(relPath, true) {
		logger.Debug("Skipping ignored directory during traversal", zap.String("directory", relPath))
		return filepath.SkipDir
	}
	if selector.PruneDir(relPath) {
		selector.Rules().logMatch(logger, relPath, true)
		return filepath.SkipDir
	}
	if err := gi.LoadDir(relPath); err != nil {
		logger.Warn("Failed to load ignore files", zap.String("dir", relPath), zap.Error(err))
	}
	return nil
}

// regularFileInfo returns file info for regular files and for symlinks that
// point at regular files. Everything else is skipped.
func regularFileInfo(path string, d fs.DirEntry, logger *zap.Logger) (fs.FileInfo, bool) {
	if d.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(path)
		if err != nil {
			logger.Warn("Failed to resolve symlink during traversal", zap.String("filePath", path), zap.Error(err))
			return nil, false
		}
		return info, info.Mode().IsRegular()
	}
	if !d.Type().IsRegular() {
		return nil, false
	}
	info, err := d.Info()
	if err != nil {
		logger.Warn("Failed to get file info during traversal", zap.String("filePath", path), zap.Error(err))
		return nil, false
	}
	return info, true
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
