package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"codedump/pkg/combine"
	"codedump/pkg/config"
	"codedump/pkg/version"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeRoot(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvVar, "")

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := executeRoot(t, "", "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, version.Version+"\n", out)

	out, err = executeRoot(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "codedump version "+version.Version)
}

func TestRootRequiresDirectory(t *testing.T) {
	_, err := executeRoot(t, "")
	assert.Error(t, err)
}

func TestRootWritesOutput(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "test.txt"), []byte("hello"), 0o644))
	output := filepath.Join(t.TempDir(), "dump.txt")

	out, err := executeRoot(t, "", root, "-o", output, "--suppress-prompt")
	require.NoError(t, err)
	assert.Contains(t, out, "Number of files processed")
	assert.Contains(t, out, "Output written to: ")
	assert.Contains(t, out, output)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "\n--- test.txt ---\nhello\n", string(content))
}

func TestRootAbortLeavesOutput(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "test.txt"), []byte("hello"), 0o644))
	output := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(output, []byte("keep me"), 0o644))

	out, err := executeRoot(t, "n\n", root, "-o", output)
	require.NoError(t, err)
	assert.Contains(t, out, "Overwrite? (y/n)")
	assert.Contains(t, out, "Aborted: output file left unchanged.")

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(content))
}

func parseFlags(t *testing.T, args ...string) (*pflag.FlagSet, dumpFlags) {
	t.Helper()
	var f dumpFlags
	fs := pflag.NewFlagSet("codedump", pflag.ContinueOnError)
	bindFlags(fs, &f)
	require.NoError(t, fs.Parse(args))
	return fs, f
}

func TestResolveOptionsDefaults(t *testing.T) {
	t.Setenv(config.EnvVar, "")
	root := filepath.Join(t.TempDir(), "project")
	require.NoError(t, os.Mkdir(root, 0o755))

	fs, f := parseFlags(t)
	opts, err := resolveOptions(fs, f, root)
	require.NoError(t, err)

	assert.Equal(t, root, opts.Root)
	assert.Equal(t, "project.txt", opts.Output)
	assert.Equal(t, 1, opts.MaxWorkers)
	assert.Empty(t, opts.Extensions)
	assert.Empty(t, opts.Filters)
	assert.False(t, opts.Force)
}

func TestResolveOptionsMergesConfigFile(t *testing.T) {
	t.Setenv(config.EnvVar, "")
	root := t.TempDir()
	cfg := `
output: from-config.txt
extensions: [go]
exclude: ["*_test.go"]
filters:
  path: [internal/]
hidden: true
workers: 3
`
	require.NoError(t, os.WriteFile(filepath.Join(root, config.FileName), []byte(cfg), 0o644))

	fs, f := parseFlags(t, "-e", "md", "-e", "txt", "--workers", "0", "--name", "main", "-f")
	opts, err := resolveOptions(fs, f, root)
	require.NoError(t, err)

	assert.Equal(t, "from-config.txt", opts.Output)
	assert.Equal(t, []string{"md", "txt"}, opts.Extensions)
	assert.Equal(t, []string{"*_test.go"}, opts.Exclude)
	assert.True(t, opts.IncludeHidden)
	assert.True(t, opts.Force)
	assert.Equal(t, runtime.NumCPU(), opts.MaxWorkers)
	assert.Equal(t, []combine.Filter{combine.NameFilter("main"), combine.PathFilter("internal/")}, opts.Filters)
}

func TestResolveOptionsExplicitConfig(t *testing.T) {
	t.Setenv(config.EnvVar, "")
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tree: tree.txt\nfilters:\n  content: [TODO]\n"), 0o644))

	fs, f := parseFlags(t, "--config", path)
	opts, err := resolveOptions(fs, f, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "tree.txt", opts.Tree)
	assert.Equal(t, []combine.Filter{combine.ContentFilter("TODO")}, opts.Filters)
}

func TestResolveOptionsRejectsNegativeValues(t *testing.T) {
	t.Setenv(config.EnvVar, "")

	fs, f := parseFlags(t, "--max-size=-1")
	_, err := resolveOptions(fs, f, t.TempDir())
	assert.ErrorContains(t, err, "--max-size")

	fs, f = parseFlags(t, "--workers=-4")
	_, err = resolveOptions(fs, f, t.TempDir())
	assert.ErrorContains(t, err, "--workers")
}
