// Package reconcile turns an edited manifest back into concrete pending
// operations. The rename variant pairs original entries against edited
// lines strictly by position; the remove variant computes the set of
// original entries whose name no longer appears in the edited manifest.
package reconcile

import (
	"errors"
	"fmt"

	"github.com/jamesainslie/bulkedit/pkg/bulkedit/types"
	"github.com/jamesainslie/bulkedit/pkg/bulkedit/workspace"
)

// ErrLineMismatch indicates the edited manifest does not contain exactly
// as many entry lines as the original enumeration. Positional pairing is
// unsafe to apply partially, so nothing is renamed.
var ErrLineMismatch = errors.New("line mismatch in edited manifest")

// Renames pairs originals against edited lines by position and returns
// the pairs whose text differs. The count equality check comes first: an
// added or removed line invalidates the positional correspondence for
// every entry after it, so the whole batch is rejected.
func Renames(originals, edited []string) ([]types.RenamePair, error) {
	if len(edited) != len(originals) {
		return nil, fmt.Errorf("%w: expected %d entries, found %d",
			ErrLineMismatch, len(originals), len(edited))
	}

	var pairs []types.RenamePair
	for i, old := range originals {
		if edited[i] == old {
			continue
		}
		pairs = append(pairs, types.RenamePair{Old: old, New: edited[i]})
	}
	return pairs, nil
}

// Removals returns the full paths of snapshot entries whose name is
// absent from the kept lines. Presence is an exact string match, and the
// "." and ".." pseudo-entries are never candidates no matter what the
// edited manifest contains. Paths are reconstructed relative to the
// explicit target directory when one was given, otherwise under the
// snapshot directory itself.
func Removals(snap workspace.Snapshot, kept []string, targetDir, workspaceDir string) []string {
	keep := make(map[string]struct{}, len(kept))
	for _, name := range kept {
		keep[name] = struct{}{}
	}

	var paths []string
	for _, e := range snap.Entries {
		if e.Name == "." || e.Name == ".." {
			continue
		}
		if _, ok := keep[e.Name]; ok {
			continue
		}
		paths = append(paths, workspace.EntryPath(workspaceDir, targetDir, e.Name))
	}
	return paths
}
