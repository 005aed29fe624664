// Package workspace models the directory set a bulk operation works on.
// A Snapshot is an explicit, deterministically ordered listing of one flat
// directory; it replaces any notion of shared global listing state. The
// package also resolves the dual-purpose "directory or application"
// argument of the remove command into a tagged Target, decided once.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jamesainslie/bulkedit/pkg/bulkedit/types"
)

// Sentinel errors for target and application resolution.
var (
	// ErrInvalidTarget indicates the argument is neither a directory nor
	// an executable name.
	ErrInvalidTarget = errors.New("invalid target")

	// ErrInvalidApplication indicates the argument does not resolve to an
	// executable.
	ErrInvalidApplication = errors.New("invalid application")

	// ErrEmptyTarget indicates the target directory has no real entries.
	ErrEmptyTarget = errors.New("directory empty")
)

// Snapshot is an ordered listing of one directory at a point in time.
// Entries are sorted lexicographically and never include the "." and ".."
// pseudo-entries, so repeated runs over the same directory are stable.
type Snapshot struct {
	// Dir is the directory the snapshot was taken from, as given by the
	// caller (absolute or relative).
	Dir string

	// Entries are the directory entries in lexicographic order.
	Entries []types.Entry
}

// Names returns the entry names in snapshot order.
func (s Snapshot) Names() []string {
	names := make([]string, len(s.Entries))
	for i, e := range s.Entries {
		names[i] = e.Name
	}
	return names
}

// List takes a snapshot of dir. It returns ErrEmptyTarget when the
// directory contains no entries besides the pseudo-entries.
func List(dir string) (Snapshot, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return Snapshot{}, fmt.Errorf("listing %q: %w", dir, err)
	}
	if len(ents) == 0 {
		return Snapshot{}, fmt.Errorf("%q: %w", dir, ErrEmptyTarget)
	}

	snap := Snapshot{Dir: dir, Entries: make([]types.Entry, 0, len(ents))}
	for _, e := range ents {
		kind := types.KindUnknown
		if info, err := e.Info(); err == nil {
			kind = types.KindFromMode(info.Mode())
		}
		snap.Entries = append(snap.Entries, types.Entry{Name: e.Name(), Kind: kind})
	}

	sort.Slice(snap.Entries, func(i, j int) bool {
		return snap.Entries[i].Name < snap.Entries[j].Name
	})

	return snap, nil
}

// Ambient takes a snapshot of the current working directory.
func Ambient() (Snapshot, error) {
	wd, err := os.Getwd()
	if err != nil {
		return Snapshot{}, fmt.Errorf("resolving working directory: %w", err)
	}
	return List(wd)
}

// TargetKind discriminates the resolved meaning of the first remove
// argument.
type TargetKind int

// Target kinds.
const (
	// TargetAmbient means no argument was given; the operation runs on
	// the ambient working directory.
	TargetAmbient TargetKind = iota

	// TargetDirectory means the argument is an explicit directory to
	// enumerate.
	TargetDirectory

	// TargetApplication means the argument is an editor application
	// name; the target reverts to the ambient working directory.
	TargetApplication
)

// Target is the resolved form of the dual-purpose remove argument.
type Target struct {
	// Kind tells how Path is to be interpreted.
	Kind TargetKind

	// Path is the directory path for TargetDirectory, or the application
	// name for TargetApplication. Empty for TargetAmbient.
	Path string
}

// ResolveTarget decides once what the first remove argument means.
// An empty argument is the ambient workspace. A directory argument has a
// single trailing separator stripped. A non-directory argument that
// resolves on PATH is reinterpreted as the editor application. Anything
// else is ErrInvalidTarget, distinguishing "does not exist" from "not a
// directory".
func ResolveTarget(arg string) (Target, error) {
	if arg == "" {
		return Target{Kind: TargetAmbient}, nil
	}

	info, statErr := os.Stat(arg)
	if statErr == nil && info.IsDir() {
		if len(arg) > 1 {
			arg = strings.TrimSuffix(arg, string(filepath.Separator))
		}
		return Target{Kind: TargetDirectory, Path: arg}, nil
	}

	if _, err := exec.LookPath(arg); err == nil {
		return Target{Kind: TargetApplication, Path: arg}, nil
	}

	reason := "no such file or directory"
	if statErr == nil {
		reason = "not a directory"
	}
	return Target{}, fmt.Errorf("%q: %s: %w", arg, reason, ErrInvalidTarget)
}

// ResolveApplication validates the explicit application argument. Unlike
// the first argument it has only one meaning, so a PATH miss is fatal.
func ResolveApplication(arg string) (string, error) {
	if arg == "" {
		return "", nil
	}
	if _, err := exec.LookPath(arg); err != nil {
		return "", fmt.Errorf("%q: %w", arg, ErrInvalidApplication)
	}
	return arg, nil
}

// EntryPath reconstructs the full path of a snapshot entry. Entries of an
// absolute target join directly under it; entries of a relative target
// are anchored under the ambient workspace directory.
func EntryPath(workspaceDir, targetDir, name string) string {
	if targetDir == "" || targetDir == workspaceDir {
		return filepath.Join(workspaceDir, name)
	}
	if filepath.IsAbs(targetDir) {
		return filepath.Join(targetDir, name)
	}
	return filepath.Join(workspaceDir, targetDir, name)
}

// Contains reports whether path sits inside dir (or is dir itself) after
// both are made absolute. Used to decide whether the caller's listing of
// the ambient workspace went stale.
func Contains(dir, path string) bool {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
