// Package manifest writes the editable manifest file handed to the user's
// editor and reads it back after the session. The manifest is plain UTF-8
// text: a block of #-prefixed instructions followed by one entry per line,
// each suffixed with a kind marker when the entry is not a regular file.
//
// Line i of the manifest corresponds to entry i of the original
// enumeration for the whole lifetime of the file; the parser preserves
// that ordering, and comment and blank lines never consume a positional
// slot. The file is created exclusively under a collision-free name and
// deleted on every exit path of the invocation that created it.
package manifest

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jamesainslie/bulkedit/pkg/bulkedit/types"
)

// ErrTempFile indicates the manifest temp file could not be created or
// written. Nothing further is attempted after this error.
var ErrTempFile = errors.New("temporary file error")

// Mode selects the instruction header written at the top of the manifest.
type Mode int

// Manifest modes.
const (
	// ModeRename is the batch rename manifest.
	ModeRename Mode = iota

	// ModeRemove is the select-for-deletion manifest.
	ModeRemove
)

// header returns the instruction comment block for the mode.
func (m Mode) header() string {
	switch m {
	case ModeRemove:
		return `# bulkedit - Remove files in bulk
# Delete the lines of the files you want removed, save, and quit
# the editor. Quit without editing to cancel the operation.

`
	default:
		return `# bulkedit - Rename files in bulk
# Edit the file names, save, and quit the editor (you will be
# asked for confirmation). Do not add or remove lines.
# Quit without editing to cancel the operation.

`
	}
}

// Manifest is an editable manifest file on disk plus the change snapshot
// captured right after writing it.
type Manifest struct {
	path        string
	mode        Mode
	count       int
	mtimeBefore time.Time
}

// Create writes a new manifest for entries into scratchDir. The file name
// embeds a UUID and the file is opened with create-exclusive semantics,
// so two concurrent invocations never share a manifest. The descriptor is
// closed before Create returns; the editor gets only the path.
func Create(scratchDir string, mode Mode, entries []types.Entry) (*Manifest, error) {
	if err := os.MkdirAll(scratchDir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: creating %q: %v", ErrTempFile, scratchDir, err)
	}

	path := filepath.Join(scratchDir, fmt.Sprintf("bulkedit-%s.txt", uuid.NewString()))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("%w: open %q: %v", ErrTempFile, path, err)
	}

	w := bufio.NewWriter(f)
	if _, err := w.WriteString(mode.header()); err != nil {
		return nil, writeFailed(f, path, err)
	}
	for _, e := range entries {
		if _, err := w.WriteString(e.Line() + "\n"); err != nil {
			return nil, writeFailed(f, path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return nil, writeFailed(f, path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("%w: close %q: %v", ErrTempFile, path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("%w: stat %q: %v", ErrTempFile, path, err)
	}

	return &Manifest{
		path:        path,
		mode:        mode,
		count:       len(entries),
		mtimeBefore: info.ModTime(),
	}, nil
}

// writeFailed closes and unlinks the half-written manifest.
func writeFailed(f *os.File, path string, err error) error {
	_ = f.Close()
	_ = os.Remove(path)
	return fmt.Errorf("%w: write %q: %v", ErrTempFile, path, err)
}

// Path returns the manifest file path.
func (m *Manifest) Path() string { return m.path }

// Count returns the number of entries written at creation time.
func (m *Manifest) Count() int { return m.count }

// Changed reports whether the file's modification time moved since the
// manifest was written. Editors that quit without saving leave the mtime
// untouched, which short-circuits the whole operation.
func (m *Manifest) Changed() (bool, error) {
	info, err := os.Stat(m.path)
	if err != nil {
		return false, fmt.Errorf("stat %q: %w", m.path, err)
	}
	return !info.ModTime().Equal(m.mtimeBefore), nil
}

// LineCount re-reads the manifest and counts lines that are neither
// comments nor blank. It is the second no-op signal: an editor may touch
// the mtime while rewriting identical content, but a removal that kept
// every line has nothing to do.
func (m *Manifest) LineCount() (int, error) {
	f, err := os.Open(m.path)
	if err != nil {
		return 0, fmt.Errorf("open %q: %w", m.path, err)
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		n++
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("reading %q: %w", m.path, err)
	}
	return n, nil
}

// Parse reads the edited manifest back into an ordered list of names.
// Comment and blank lines are skipped entirely and a single trailing kind
// marker is stripped from each remaining line. No path is validated for
// existence here.
func (m *Manifest) Parse() ([]string, error) {
	f, err := os.Open(m.path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", m.path, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if len(line) > 1 && types.IsMarker(line[len(line)-1]) {
			line = line[:len(line)-1]
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %q: %w", m.path, err)
	}
	return lines, nil
}

// Remove deletes the manifest file. It is safe to call more than once and
// is deferred on every exit path, so no manifest outlives its invocation.
func (m *Manifest) Remove() error {
	err := os.Remove(m.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("unlink %q: %w", m.path, err)
	}
	return nil
}
