package cmd

import (
	"context"
	"fmt"
	"os"

	"codedump/pkg/combine"
	"codedump/pkg/logging"
	"codedump/pkg/progress"
	"codedump/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewRootCommand creates the root command, which aggregates a directory.
func NewRootCommand() *cobra.Command {
	var f dumpFlags

	cmd := &cobra.Command{
		Use:   "codedump <directory>",
		Short: "Convert local directory contents into a single text file",
		Long: `codedump walks a directory, selects files by extension, name, path and
content filters and exclusion patterns, and writes them into one text file
with a delimiter line per file, ready to hand to an LLM.

Version-control ignore files are respected, and licence files, VCS metadata,
node_modules and binary or media extensions are always excluded.`,
		Args:          cobra.ExactArgs(1),
		Version:       version.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, err := cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("error reading flags: %w", err)
			}
			if err := logging.Setup(debug, "codedump", version.Get().Version); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, args[0], f)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	bindFlags(cmd.Flags(), &f)

	cmd.AddCommand(newVersionCommand())
	return cmd
}

// Execute runs the root command with ctx, which cancels the run when done.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func runDump(cmd *cobra.Command, root string, f dumpFlags) error {
	opts, err := resolveOptions(cmd.Flags(), f, root)
	if err != nil {
		return err
	}

	logger := logging.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	env := combine.Env{
		In:     cmd.InOrStdin(),
		Out:    cmd.OutOrStdout(),
		Logger: logger,
	}
	if bar := progress.ForTerminal(os.Stderr); bar != nil {
		env.Progress = bar
	}

	summary, err := combine.Run(cmd.Context(), opts, env)
	if err != nil {
		return err
	}

	if summary.Aborted {
		fmt.Fprintln(cmd.OutOrStdout(), "\nAborted: output file left unchanged.")
		return nil
	}

	printSummary(cmd.OutOrStdout(), summary)
	return nil
}
