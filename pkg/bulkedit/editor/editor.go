// Package editor runs the external editor session over a manifest file.
// The session is the one blocking point of the pipeline: the process is
// spawned in the foreground with the terminal attached, and the caller
// suspends until it exits.
package editor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// ErrEditor indicates the editor or associated handler failed to launch
// or exited abnormally.
var ErrEditor = errors.New("editor session failed")

// Session describes one editor invocation over a manifest file.
type Session struct {
	// Path is the manifest file to edit.
	Path string

	// App is the explicit application name. Empty delegates to the
	// associated-handler chain.
	App string
}

// Run launches the editor and blocks until it exits. Spawn failures and
// non-zero exits both map to ErrEditor with the cause attached.
func (s *Session) Run(ctx context.Context) error {
	app := s.App
	if app == "" {
		app = associatedHandler()
	}
	if app == "" {
		return fmt.Errorf("%w: no editor available (set $VISUAL or $EDITOR)", ErrEditor)
	}

	cmd := exec.CommandContext(ctx, app, s.Path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s %q: %v", ErrEditor, app, s.Path, err)
	}
	return nil
}

// associatedHandler resolves the system's associated text handler for the
// manifest: $VISUAL, then $EDITOR, then a platform opener.
func associatedHandler() string {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	for _, fallback := range platformOpeners() {
		if _, err := exec.LookPath(fallback); err == nil {
			return fallback
		}
	}
	return ""
}

// platformOpeners lists generic open commands per platform, tried after
// the editor environment variables.
func platformOpeners() []string {
	if runtime.GOOS == "darwin" {
		return []string{"open"}
	}
	return []string{"xdg-open", "sensible-editor", "vi"}
}
