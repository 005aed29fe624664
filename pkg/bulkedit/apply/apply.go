// Package apply executes the pending operations computed by reconcile.
// Renames are attempted atomically with a cross-device fallback to an
// external move; removals are delegated to the trash primitive. Both are
// best-effort per entry: a failure is recorded and the batch continues.
package apply

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"github.com/jamesainslie/bulkedit/pkg/bulkedit/logging"
	"github.com/jamesainslie/bulkedit/pkg/bulkedit/trash"
	"github.com/jamesainslie/bulkedit/pkg/bulkedit/types"
	"github.com/jamesainslie/bulkedit/pkg/bulkedit/workspace"
)

// logger is the package-level logger for apply operations.
var logger = logging.Get("apply")

// Renames applies each pending pair in order. A single trailing path
// separator is stripped from the new path first, since some rename
// implementations reject it on directory targets. A rename failing with
// EXDEV is retried through the external move helper; any other failure is
// recorded for that pair and the batch moves on. unchanged is the number
// of entries the user left as-is, carried into the report.
func Renames(ctx context.Context, pairs []types.RenamePair, workspaceDir string, unchanged int) types.Report {
	start := time.Now()
	rep := types.Report{Operation: types.OpRename, Unchanged: unchanged}

	for _, pair := range pairs {
		newPath := stripTrailingSeparator(pair.New)

		if err := renameOne(ctx, pair.Old, newPath); err != nil {
			logger.Warn("rename failed", "old", pair.Old, "new", newPath, "error", err)
			rep.Failed = append(rep.Failed, types.Failure{Path: pair.Old, Reason: err.Error()})
			continue
		}

		rep.Renamed = append(rep.Renamed, types.RenamePair{Old: pair.Old, New: newPath})
		if workspace.Contains(workspaceDir, pair.Old) || workspace.Contains(workspaceDir, newPath) {
			rep.WorkspaceTouched = true
		}
	}

	rep.Elapsed = time.Since(start)
	return rep
}

// renameOne renames a single entry, falling back to mv when the source
// and destination sit on different devices.
func renameOne(ctx context.Context, oldPath, newPath string) error {
	err := os.Rename(oldPath, newPath)
	if err == nil {
		return nil
	}
	if !errors.Is(err, unix.EXDEV) {
		return err
	}

	logger.Debug("cross-device rename, using mv", "old", oldPath, "new", newPath)
	cmd := exec.CommandContext(ctx, "mv", "--", oldPath, newPath)
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// stripTrailingSeparator removes one trailing separator, keeping a bare
// root path intact.
func stripTrailingSeparator(path string) string {
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		return path[:len(path)-1]
	}
	return path
}

// Removals hands the computed path list to the removal primitive and
// surfaces its result verbatim as a report. unchanged is the number of
// entries the user kept.
func Removals(ctx context.Context, paths []string, rm trash.Remover, workspaceDir string, unchanged int) types.Report {
	start := time.Now()
	rep := types.Report{Operation: types.OpRemove, Unchanged: unchanged}

	res := rm.Remove(ctx, paths)
	rep.Removed = res.Removed
	rep.Failed = res.Failed
	rep.BytesFreed = res.BytesFreed

	for _, p := range res.Removed {
		if workspace.Contains(workspaceDir, p) {
			rep.WorkspaceTouched = true
			break
		}
	}

	rep.Elapsed = time.Since(start)
	return rep
}
