package combine

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runOnce(t *testing.T, opts Options, answer string) (Summary, string, error) {
	t.Helper()
	var prompt bytes.Buffer
	summary, err := Run(context.Background(), opts, Env{In: strings.NewReader(answer), Out: &prompt})
	return summary, prompt.String(), err
}

func TestRunBasic(t *testing.T) {
	root := makeTree(t, map[string]string{
		"test.txt":  "hello",
		"src/a.go":  "package src",
		"image.png": "not really",
	})
	output := filepath.Join(t.TempDir(), "out", "dump.txt")

	summary, _, err := runOnce(t, Options{Root: root, Output: output, MaxWorkers: 1}, "")
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	want := PreambleFirstLine + "\n" + PreambleSecondLine + "\n\n" +
		"\n--- src/a.go ---\npackage src\n" +
		"\n--- test.txt ---\nhello\n"
	assert.Equal(t, want, string(content))

	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, output, summary.Output)
	assert.Equal(t, 2, summary.Candidates)
	assert.Equal(t, 2, summary.Processed)
	assert.False(t, summary.Aborted)
}

func TestRunIsRepeatable(t *testing.T) {
	root := makeTree(t, map[string]string{"test.txt": "hello"})
	output := filepath.Join(t.TempDir(), "dump.txt")
	opts := Options{Root: root, Output: output, MaxWorkers: 4}

	_, _, err := runOnce(t, opts, "")
	require.NoError(t, err)
	first, err := os.ReadFile(output)
	require.NoError(t, err)

	_, prompt, err := runOnce(t, opts, "n\n")
	require.NoError(t, err)
	assert.Empty(t, prompt)
	second, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRunDeclinedOverwrite(t *testing.T) {
	root := makeTree(t, map[string]string{"test.txt": "hello"})
	output := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(output, []byte("This is a test file."), 0o644))

	summary, prompt, err := runOnce(t, Options{Root: root, Output: output}, "n\n")
	require.NoError(t, err)
	assert.True(t, summary.Aborted)
	assert.Contains(t, prompt, output)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "This is a test file.", string(content))
}

func TestRunForceOverwrite(t *testing.T) {
	root := makeTree(t, map[string]string{"test.txt": "hello"})
	output := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(output, []byte("This is a test file."), 0o644))

	summary, prompt, err := runOnce(t, Options{Root: root, Output: output, Force: true, SuppressPreamble: true}, "")
	require.NoError(t, err)
	assert.False(t, summary.Aborted)
	assert.Empty(t, prompt)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "\n--- test.txt ---\nhello\n", string(content))
}

func TestRunOutputInsideRoot(t *testing.T) {
	root := makeTree(t, map[string]string{"a.txt": "a"})
	output := filepath.Join(root, "dump.txt")

	for i := 0; i < 2; i++ {
		summary, _, err := runOnce(t, Options{Root: root, Output: output}, "")
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Processed)
	}

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "--- dump.txt ---")
}

func TestRunInvalidPattern(t *testing.T) {
	root := makeTree(t, map[string]string{"a.txt": "a"})
	output := filepath.Join(t.TempDir(), "dump.txt")

	_, _, err := runOnce(t, Options{Root: root, Output: output, Exclude: []string{"/"}}, "")
	assert.ErrorIs(t, err, ErrInvalidPattern)
	assert.NoFileExists(t, output)
}

func TestRunRequiresOutput(t *testing.T) {
	_, _, err := runOnce(t, Options{Root: t.TempDir()}, "")
	assert.Error(t, err)
}

func TestRunMissingRoot(t *testing.T) {
	output := filepath.Join(t.TempDir(), "dump.txt")
	_, _, err := runOnce(t, Options{Root: filepath.Join(t.TempDir(), "missing"), Output: output}, "")
	assert.Error(t, err)
	assert.NoFileExists(t, output)
}

func TestRunWritesTree(t *testing.T) {
	root := makeTree(t, map[string]string{
		"a.txt":      "a",
		"src/b.go":   "b",
		"src/c/d.go": "d",
	})
	dir := t.TempDir()
	output := filepath.Join(dir, "dump.txt")
	tree := filepath.Join(dir, "tree", "tree.txt")

	_, _, err := runOnce(t, Options{Root: root, Output: output, Tree: tree}, "")
	require.NoError(t, err)

	content, err := os.ReadFile(tree)
	require.NoError(t, err)
	want := filepath.Base(root) + "/\n" +
		"├── src/\n" +
		"│   ├── c/\n" +
		"│   │   └── d.go\n" +
		"│   └── b.go\n" +
		"└── a.txt\n"
	assert.Equal(t, want, string(content))
}

func TestRunFiltersAndExtensions(t *testing.T) {
	root := makeTree(t, map[string]string{
		"cmd/main.go":  "package main",
		"pkg/util.go":  "// TODO: tidy",
		"pkg/other.go": "package pkg",
		"README.md":    "# readme",
	})
	output := filepath.Join(t.TempDir(), "dump.txt")

	summary, _, err := runOnce(t, Options{
		Root:       root,
		Output:     output,
		Extensions: []string{"go"},
		Filters:    []Filter{NameFilter("main"), ContentFilter("TODO")},
		MaxWorkers: 2,
	}, "")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 1, summary.Filtered)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "--- cmd/main.go ---")
	assert.Contains(t, string(content), "--- pkg/util.go ---")
	assert.NotContains(t, string(content), "other.go")
	assert.NotContains(t, string(content), "README.md")
}

func TestRunOutputLocked(t *testing.T) {
	root := makeTree(t, map[string]string{"a.txt": "a"})
	output := filepath.Join(t.TempDir(), "dump.txt")

	held := flock.New(output + LockSuffix)
	locked, err := held.TryLock()
	require.NoError(t, err)
	require.True(t, locked)
	defer held.Unlock()

	_, _, err = runOnce(t, Options{Root: root, Output: output}, "")
	assert.ErrorIs(t, err, ErrOutputLocked)
	assert.NoFileExists(t, output)
}

func TestRunCancelled(t *testing.T) {
	root := makeTree(t, map[string]string{"a.txt": "a"})
	output := filepath.Join(t.TempDir(), "dump.txt")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Options{Root: root, Output: output}, Env{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDefaultOutputPath(t *testing.T) {
	assert.Equal(t, "project.txt", DefaultOutputPath(filepath.Join(t.TempDir(), "project")))
	assert.Equal(t, "directory.txt", DefaultOutputPath(string(os.PathSeparator)))
}

func TestRunKeepsExistingLockFile(t *testing.T) {
	root := makeTree(t, map[string]string{"a.txt": "a"})
	output := filepath.Join(t.TempDir(), "dump.txt")
	require.NoError(t, os.WriteFile(output+LockSuffix, []byte("precious user data"), 0o644))

	summary, _, err := runOnce(t, Options{Root: root, Output: output}, "")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Processed)

	content, err := os.ReadFile(output + LockSuffix)
	require.NoError(t, err)
	assert.Equal(t, "precious user data", string(content))
}
