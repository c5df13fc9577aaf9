package cmd

import (
	"fmt"
	"runtime"

	"codedump/pkg/combine"
	"codedump/pkg/config"

	"github.com/spf13/pflag"
)

// dumpFlags holds the raw command-line values of the root command.
type dumpFlags struct {
	configPath     string
	output         string
	extensions     []string
	exclude        []string
	names          []string
	paths          []string
	contents       []string
	suppressPrompt bool
	force          bool
	hidden         bool
	globalIgnore   string
	maxSizeKB      int
	workers        int
	tree           string
}

func bindFlags(fs *pflag.FlagSet, f *dumpFlags) {
	fs.StringVarP(&f.configPath, "config", "c", "", "Config file (default: $"+config.EnvVar+" or <directory>/"+config.FileName+")")
	fs.StringVarP(&f.output, "output", "o", "", "Output file path (default: <directory name>.txt)")
	fs.StringSliceVarP(&f.extensions, "extension", "e", nil, "File extensions to include (e.g., -e go -e md)")
	fs.StringArrayVarP(&f.exclude, "exclude", "x", nil, "Glob patterns to exclude, in addition to the defaults")
	fs.StringArrayVar(&f.names, "name", nil, "Include files whose name contains this text")
	fs.StringArrayVar(&f.paths, "path", nil, "Include files whose relative path contains this text")
	fs.StringArrayVar(&f.contents, "content", nil, "Include files whose content contains this text")
	fs.BoolVar(&f.suppressPrompt, "suppress-prompt", false, "Suppress the output preamble describing the file format")
	fs.BoolVarP(&f.force, "force", "f", false, "Overwrite the output file without asking")
	fs.BoolVar(&f.hidden, "hidden", false, "Include hidden files and directories")
	fs.StringVar(&f.globalIgnore, "global-ignore", "", "Additional ignore file applied from the directory root")
	fs.IntVar(&f.maxSizeKB, "max-size", 0, "Skip files larger than this many KB (0 = no limit)")
	fs.IntVarP(&f.workers, "workers", "w", 1, "Concurrent file readers (0 = number of CPUs)")
	fs.StringVar(&f.tree, "tree", "", "Also write a tree listing of the aggregated files to this path")
}

// resolveOptions merges the config file with the flags; flags set on the
// command line take precedence over config values.
func resolveOptions(fs *pflag.FlagSet, f dumpFlags, root string) (combine.Options, error) {
	cfg, err := config.LoadConfig(config.Resolve(f.configPath, root))
	if err != nil {
		return combine.Options{}, err
	}

	pickString := func(name, flagValue, cfgValue string) string {
		if fs.Changed(name) {
			return flagValue
		}
		return cfgValue
	}
	pickStrings := func(name string, flagValue, cfgValue []string) []string {
		if fs.Changed(name) {
			return flagValue
		}
		return cfgValue
	}
	pickBool := func(name string, flagValue, cfgValue bool) bool {
		if fs.Changed(name) {
			return flagValue
		}
		return cfgValue
	}
	pickInt := func(name string, flagValue, cfgValue int) int {
		if fs.Changed(name) {
			return flagValue
		}
		return cfgValue
	}

	opts := combine.Options{
		Root:             root,
		Output:           pickString("output", f.output, cfg.Output),
		Tree:             pickString("tree", f.tree, cfg.Tree),
		Extensions:       pickStrings("extension", f.extensions, cfg.Extensions),
		Exclude:          pickStrings("exclude", f.exclude, cfg.Exclude),
		SuppressPreamble: pickBool("suppress-prompt", f.suppressPrompt, cfg.SuppressPrompt),
		Force:            pickBool("force", f.force, cfg.Force),
		IncludeHidden:    pickBool("hidden", f.hidden, cfg.Hidden),
		GlobalIgnoreFile: pickString("global-ignore", f.globalIgnore, cfg.GlobalIgnore),
		MaxFileSizeKB:    pickInt("max-size", f.maxSizeKB, cfg.MaxFileSizeKB),
		MaxWorkers:       pickInt("workers", f.workers, cfg.Workers),
	}

	names := pickStrings("name", f.names, cfg.Filters.Name)
	paths := pickStrings("path", f.paths, cfg.Filters.Path)
	contents := pickStrings("content", f.contents, cfg.Filters.Content)
	for _, n := range names {
		opts.Filters = append(opts.Filters, combine.NameFilter(n))
	}
	for _, p := range paths {
		opts.Filters = append(opts.Filters, combine.PathFilter(p))
	}
	for _, c := range contents {
		opts.Filters = append(opts.Filters, combine.ContentFilter(c))
	}

	if opts.MaxFileSizeKB < 0 {
		return combine.Options{}, fmt.Errorf("--max-size must be >= 0, got %d", opts.MaxFileSizeKB)
	}
	if opts.MaxWorkers < 0 {
		return combine.Options{}, fmt.Errorf("--workers must be >= 0, got %d", opts.MaxWorkers)
	}
	if opts.MaxWorkers == 0 {
		opts.MaxWorkers = runtime.NumCPU()
	}
	if opts.Output == "" {
		opts.Output = combine.DefaultOutputPath(root)
	}

	return opts, nil
}
