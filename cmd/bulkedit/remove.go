package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/bulkedit/pkg/bulkedit/apply"
	"github.com/jamesainslie/bulkedit/pkg/bulkedit/editor"
	"github.com/jamesainslie/bulkedit/pkg/bulkedit/logging"
	"github.com/jamesainslie/bulkedit/pkg/bulkedit/manifest"
	"github.com/jamesainslie/bulkedit/pkg/bulkedit/reconcile"
	"github.com/jamesainslie/bulkedit/pkg/bulkedit/trash"
	"github.com/jamesainslie/bulkedit/pkg/bulkedit/workspace"
)

var removeCmd = &cobra.Command{
	Use:   "remove [TARGET] [APPLICATION]",
	Short: "Select files for removal with your editor",
	Long: `List a directory into a manifest, open it in your editor, and remove
every entry whose line you deleted. Saving the manifest unchanged (or
quitting without saving) cancels the operation; the editing itself is
the confirmation.

TARGET defaults to the current directory. When TARGET is not a
directory but resolves to an executable, it is used as the editor and
the current directory is listed instead.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

// runRemove executes the removal pipeline end to end.
func runRemove(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	initLogging(cfg)
	defer logging.Close()

	logger := logging.Get("remove")
	ctx := cmd.Context()

	workspaceDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	var targetArg, appArg string
	if len(args) > 0 {
		targetArg = args[0]
	}
	if len(args) > 1 {
		appArg = args[1]
	}

	target, err := workspace.ResolveTarget(targetArg)
	if err != nil {
		return fmt.Errorf("remove: %w", err)
	}

	app := cfg.Editor
	targetDir := ""
	var snap workspace.Snapshot

	switch target.Kind {
	case workspace.TargetDirectory:
		targetDir = target.Path
		if snap, err = workspace.List(target.Path); err != nil {
			return fmt.Errorf("remove: %w", err)
		}
		if appArg != "" {
			if app, err = workspace.ResolveApplication(appArg); err != nil {
				return fmt.Errorf("remove: %w", err)
			}
		}
	case workspace.TargetApplication:
		app = target.Path
		fallthrough
	default:
		if snap, err = workspace.Ambient(); err != nil {
			return fmt.Errorf("remove: %w", err)
		}
	}

	man, err := manifest.Create(cfg.EffectiveScratchDir(), manifest.ModeRemove, snap.Entries)
	if err != nil {
		return err
	}
	defer func() {
		if err := man.Remove(); err != nil {
			printWarn("%v", err)
		}
	}()

	session := &editor.Session{Path: man.Path(), App: app}
	if err := session.Run(ctx); err != nil {
		return err
	}

	// Two independent no-op signals: an untouched mtime, or a manifest
	// that still holds at least as many entry lines as were written.
	changed, err := man.Changed()
	if err != nil {
		return err
	}
	kept, countErr := man.LineCount()
	if countErr != nil {
		return countErr
	}
	if !changed || kept >= man.Count() {
		printInfo("remove: Nothing to do")
		return nil
	}

	keptLines, err := man.Parse()
	if err != nil {
		return err
	}

	paths := reconcile.Removals(snap, keptLines, targetDir, workspaceDir)
	if len(paths) == 0 {
		printInfo("remove: Nothing to do")
		return nil
	}

	logger.Info("applying remove batch", "pending", len(paths), "trash", cfg.Trash.Enabled)
	remover := trash.New(cfg.Trash.Enabled)
	rep := apply.Removals(ctx, paths, remover, workspaceDir, len(snap.Entries)-len(paths))

	renderReport(cfg, &rep)
	appendJournal(cfg, &rep)

	if !rep.OK() {
		return fmt.Errorf("remove: %w", errPartial)
	}
	return nil
}
