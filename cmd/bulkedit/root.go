package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/bulkedit/pkg/bulkedit/editor"
	"github.com/jamesainslie/bulkedit/pkg/bulkedit/manifest"
	"github.com/jamesainslie/bulkedit/pkg/bulkedit/reconcile"
	"github.com/jamesainslie/bulkedit/pkg/bulkedit/workspace"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "bulkedit",
		Short: "Batch rename or remove files with your text editor",
		Long: `Bulkedit turns batch file operations into a text editing session.

It writes the target file names into a temporary manifest, opens the
manifest in your editor, and reconciles your edits back into renames or
removals when you save and quit. Quitting without editing cancels the
operation.

Examples:
  bulkedit rename *.jpg          # Edit names of all jpg files
  bulkedit remove                # Select files in . for deletion
  bulkedit remove ~/Downloads    # Select files in a directory
  bulkedit remove ~/Downloads vi # Use a specific editor
  bulkedit history               # Show applied batches`,
		SilenceUsage: true,
	}
)

func init() {
	// Persistent flags (available to all commands). File and environment
	// configuration is loaded per run by config.Load; the flags override
	// the loaded values in loadConfig.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/bulkedit/config.yaml)")
	rootCmd.PersistentFlags().String("editor", "", "editor application for the manifest")
	rootCmd.PersistentFlags().Bool("stealth", false, "use the private OS temp dir and skip the journal")
	rootCmd.PersistentFlags().StringP("output", "o", "", "report format (pretty, plain, json, yaml)")
	rootCmd.PersistentFlags().BoolP("yes", "y", false, "skip the rename confirmation prompt")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "minimal output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug output")
	rootCmd.PersistentFlags().Bool("no-trash", false, "delete permanently instead of using the system trash")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// errPartial marks a batch where at least one entry failed; the rest of
// the batch was still applied.
var errPartial = errors.New("some operations failed")

// exitCode maps the error taxonomy to specific exit codes. "Nothing to
// do" and a declined confirmation never reach here; both are success.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, workspace.ErrInvalidTarget):
		return 2
	case errors.Is(err, workspace.ErrInvalidApplication):
		return 3
	case errors.Is(err, workspace.ErrEmptyTarget):
		return 4
	case errors.Is(err, manifest.ErrTempFile):
		return 5
	case errors.Is(err, editor.ErrEditor):
		return 6
	case errors.Is(err, reconcile.ErrLineMismatch):
		return 7
	default:
		return 1
	}
}

// getVerbose returns true if verbose mode is enabled.
func getVerbose() bool {
	v, _ := rootCmd.PersistentFlags().GetBool("verbose")
	return v
}

// getQuiet returns true if quiet mode is enabled.
func getQuiet() bool {
	q, _ := rootCmd.PersistentFlags().GetBool("quiet")
	return q
}

// printInfo prints a message if quiet mode is not enabled.
func printInfo(format string, args ...interface{}) {
	if !getQuiet() {
		fmt.Printf(format+"\n", args...)
	}
}

// printWarn prints a warning message to stderr.
func printWarn(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}
