// Package ignore applies version-control ignore files to a directory walk.
// Every directory may carry a .gitignore or .ignore file whose patterns apply
// to the paths below it; the root may also carry .git/info/exclude.
package ignore

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"
)

// FileNames are the per-directory ignore files, in load order.
var FileNames = []string{".gitignore", ".ignore"}

// ExcludeFile is the repository-local exclude file, relative to the root.
const ExcludeFile = ".git/info/exclude"

// Matcher holds the compiled ignore files of a tree, keyed by the
// slash-separated directory they were found in ("" for the root).
type Matcher struct {
	root   string
	levels map[string]*gitignore.GitIgnore
	global *gitignore.GitIgnore
	logger *zap.Logger
}

// NewMatcher initializes a Matcher for the tree at root with an optional logger.
func NewMatcher(root string, logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{
		root:   root,
		levels: make(map[string]*gitignore.GitIgnore),
		logger: logger,
	}
}

// LoadRoot loads the root directory's ignore files and the repository exclude file.
func (m *Matcher) LoadRoot() error {
	lines, err := readLines(filepath.Join(m.root, filepath.FromSlash(ExcludeFile)))
	if err != nil {
		return err
	}
	return m.load("", lines)
}

// LoadDir loads the ignore files of the directory at rel, if it has any.
func (m *Matcher) LoadDir(rel string) error {
	rel = normalizeDir(rel)
	if rel == "" {
		return m.LoadRoot()
	}
	return m.load(rel, nil)
}

// LoadGlobal loads an ignore file kept outside the tree whose patterns apply
// from the root. A missing file is not an error.
func (m *Matcher) LoadGlobal(fpath string) error {
	if fpath == "" {
		return nil
	}
	lines, err := readLines(fpath)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		m.logger.Debug("Global ignore file not found", zap.String("filePath", fpath))
		return nil
	}
	m.global = gitignore.CompileIgnoreLines(lines...)
	m.logger.Debug("Compiled global ignore patterns", zap.String("filePath", fpath), zap.Int("lineCount", len(lines)))
	return nil
}

func (m *Matcher) load(rel string, extra []string) error {
	dir := filepath.Join(m.root, filepath.FromSlash(rel))
	lines := append([]string(nil), extra...)
	for _, name := range FileNames {
		fileLines, err := readLines(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		lines = append(lines, fileLines...)
	}
	if len(lines) == 0 {
		return nil
	}

	m.levels[rel] = gitignore.CompileIgnoreLines(lines...)
	m.logger.Debug("Compiled ignore patterns", zap.String("dir", rel), zap.Int("lineCount", len(lines)))
	return nil
}

// MatchesPath reports whether the slash-separated path rel, relative to the
// root, is ignored by any ignore file on its ancestor directories.
func (m *Matcher) MatchesPath(rel string, isDir bool) bool {
	rel = strings.Trim(filepath.ToSlash(rel), "/")
	if rel == "" || rel == "." {
		return false
	}

	if m.global != nil {
		sub := rel
		if isDir {
			sub += "/"
		}
		if m.global.MatchesPath(sub) {
			return true
		}
	}

	for dir := path.Dir(rel); ; dir = path.Dir(dir) {
		level := normalizeDir(dir)
		if gi, ok := m.levels[level]; ok {
			sub := rel
			if level != "" {
				sub = strings.TrimPrefix(rel, level+"/")
			}
			if isDir {
				sub += "/"
			}
			if gi.MatchesPath(sub) {
				return true
			}
		}
		if level == "" {
			return false
		}
	}
}

// readLines returns the lines of an ignore file, or nothing when it does not exist.
func readLines(fpath string) ([]string, error) {
	content, err := os.ReadFile(fpath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return strings.Split(string(content), "\n"), nil
}

func normalizeDir(dir string) string {
	dir = strings.Trim(filepath.ToSlash(dir), "/")
	if dir == "." {
		return ""
	}
	return dir
}
