// Package trash is the removal primitive behind the remove workflow.
// It moves entries to the system trash where available (Finder on macOS,
// gio or trash-cli on Linux) and falls back to permanent deletion when no
// trash support is detected or trash use is disabled. Failures are
// aggregated per path; one failed removal never aborts the batch.
package trash

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/jamesainslie/bulkedit/pkg/bulkedit/types"
)

// commandTimeout is the maximum time to wait for a single trash command.
const commandTimeout = 30 * time.Second

// Result aggregates the outcome of a batch removal.
type Result struct {
	// Removed contains the paths removed successfully.
	Removed []string

	// Failed contains per-path failures with the underlying reason.
	Failed []types.Failure

	// BytesFreed is the total size of the removed entries, as reported
	// by lstat before removal. Directory sizes are not recursed.
	BytesFreed int64
}

// Remover removes a batch of paths. The interface exists so the applier
// can be tested without touching the real trash tools.
type Remover interface {
	Remove(ctx context.Context, paths []string) Result
}

// Trash is the system-trash backed Remover.
type Trash struct {
	// UseTrash selects the system trash; false deletes permanently.
	UseTrash bool
}

// New returns a Trash remover.
func New(useTrash bool) *Trash {
	return &Trash{UseTrash: useTrash}
}

// Remove removes each path in turn, collecting per-path results.
func (t *Trash) Remove(ctx context.Context, paths []string) Result {
	var res Result
	for _, path := range paths {
		info, err := os.Lstat(path)
		if err != nil {
			res.Failed = append(res.Failed, types.Failure{Path: path, Reason: err.Error()})
			continue
		}

		if err := t.removeOne(ctx, path); err != nil {
			res.Failed = append(res.Failed, types.Failure{Path: path, Reason: err.Error()})
			continue
		}

		res.Removed = append(res.Removed, path)
		if info.Mode().IsRegular() {
			res.BytesFreed += info.Size()
		}
	}
	return res
}

// removeOne removes a single entry, preferring the system trash.
func (t *Trash) removeOne(ctx context.Context, path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("cannot resolve absolute path for %q: %w", path, err)
	}

	if !t.UseTrash {
		return permanentDelete(absPath)
	}

	switch runtime.GOOS {
	case "darwin":
		return trashDarwin(ctx, absPath)
	case "linux":
		return trashLinux(ctx, absPath)
	default:
		return permanentDelete(absPath)
	}
}

// trashDarwin moves a file to Trash via Finder, which keeps "Put Back"
// working. Falls back to permanent deletion when AppleScript fails.
func trashDarwin(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	script := fmt.Sprintf(`tell application "Finder" to delete POSIX file %q`, path)
	if err := exec.CommandContext(ctx, "osascript", "-e", script).Run(); err != nil {
		return permanentDelete(path)
	}
	return nil
}

// trashLinux tries gio, then trash-cli, then permanent deletion.
func trashLinux(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	if gio, err := exec.LookPath("gio"); err == nil {
		if err := exec.CommandContext(ctx, gio, "trash", path).Run(); err == nil {
			return nil
		}
	}

	if tp, err := exec.LookPath("trash-put"); err == nil {
		if err := exec.CommandContext(ctx, tp, path).Run(); err == nil {
			return nil
		}
	}

	return permanentDelete(path)
}

// permanentDelete removes a file or directory tree outright.
func permanentDelete(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to delete %q: %w", path, err)
	}
	return nil
}

// Ensure Trash implements Remover.
var _ Remover = (*Trash)(nil)
