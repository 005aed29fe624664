package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/bulkedit/pkg/bulkedit/apply"
	"github.com/jamesainslie/bulkedit/pkg/bulkedit/editor"
	"github.com/jamesainslie/bulkedit/pkg/bulkedit/logging"
	"github.com/jamesainslie/bulkedit/pkg/bulkedit/manifest"
	"github.com/jamesainslie/bulkedit/pkg/bulkedit/prompt"
	"github.com/jamesainslie/bulkedit/pkg/bulkedit/reconcile"
	"github.com/jamesainslie/bulkedit/pkg/bulkedit/types"
)

var renameCmd = &cobra.Command{
	Use:   "rename PATH...",
	Short: "Rename files in bulk with your editor",
	Long: `Write the given paths into a manifest, open it in your editor, and
apply every name you changed. Lines must stay in place: line N of the
manifest always means argument N, so adding or removing lines aborts
the batch.

This is the same bulk rename flow used by fff, ranger, and nnn.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRename,
}

func init() {
	rootCmd.AddCommand(renameCmd)
}

// runRename executes the rename pipeline end to end.
func runRename(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	initLogging(cfg)
	defer logging.Close()

	logger := logging.Get("rename")
	ctx := cmd.Context()

	workspaceDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	originals, entries := cleanRenameArgs(args)
	if len(originals) == 0 {
		return fmt.Errorf("rename: no valid file names")
	}

	man, err := manifest.Create(cfg.EffectiveScratchDir(), manifest.ModeRename, entries)
	if err != nil {
		return err
	}
	defer func() {
		if err := man.Remove(); err != nil {
			printWarn("%v", err)
		}
	}()

	session := &editor.Session{Path: man.Path(), App: cfg.Editor}
	if err := session.Run(ctx); err != nil {
		return err
	}

	changed, err := man.Changed()
	if err != nil {
		return err
	}
	if !changed {
		printInfo("rename: Nothing to do")
		return nil
	}

	edited, err := man.Parse()
	if err != nil {
		return err
	}

	pairs, err := reconcile.Renames(originals, edited)
	if err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	if len(pairs) == 0 {
		printInfo("rename: Nothing to do")
		return nil
	}

	for _, p := range pairs {
		printInfo("%s -> %s", p.Old, p.New)
	}
	if cfg.Confirm {
		ok, err := prompt.Confirm("Continue?")
		if err != nil {
			return err
		}
		if !ok {
			printInfo("rename: Aborted")
			return nil
		}
	}

	logger.Info("applying rename batch", "pending", len(pairs))
	rep := apply.Renames(ctx, pairs, workspaceDir, len(originals)-len(pairs))

	renderReport(cfg, &rep)
	appendJournal(cfg, &rep)

	if !rep.OK() {
		return fmt.Errorf("rename: %w", errPartial)
	}
	return nil
}

// cleanRenameArgs normalizes the rename arguments and derives their
// manifest entries. Arguments under "./" or "../" are resolved to full
// paths first; paths that cannot be stat'ed are skipped with a warning
// rather than aborting, so one bad argument does not kill the batch.
func cleanRenameArgs(args []string) ([]string, []types.Entry) {
	var originals []string
	var entries []types.Entry

	for _, arg := range args {
		path := filepath.Clean(arg)
		if strings.HasPrefix(arg, "./") || strings.HasPrefix(arg, "../") {
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
		}

		info, err := os.Lstat(path)
		if err != nil {
			printWarn("rename: %q: %v", arg, err)
			continue
		}

		originals = append(originals, path)
		entries = append(entries, types.Entry{Name: path, Kind: types.KindFromMode(info.Mode())})
	}

	return originals, entries
}
