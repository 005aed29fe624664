// Package types provides core data types for bulkedit batch operations.
// It includes the entry model written into editable manifests, the rename
// pair and failure records produced by reconciliation, and the report
// structure summarizing an applied batch.
package types

import (
	"io/fs"
	"time"
)

// Kind classifies a directory entry for manifest display purposes.
// The kind is rendered as a single trailing marker character so the
// manifest is readable; it carries no meaning once parsed back.
type Kind int

// Entry kinds recognized by the manifest writer.
const (
	// KindRegular is a plain regular file (no marker).
	KindRegular Kind = iota

	// KindDir is a directory.
	KindDir

	// KindSymlink is a symbolic link.
	KindSymlink

	// KindSocket is a Unix domain socket.
	KindSocket

	// KindFifo is a named pipe.
	KindFifo

	// KindUnknown is an entry whose type could not be determined.
	KindUnknown
)

// Marker returns the single trailing character used to display the kind
// in a manifest, or 0 for regular files.
func (k Kind) Marker() byte {
	switch k {
	case KindDir:
		return '/'
	case KindSymlink:
		return '@'
	case KindSocket:
		return '='
	case KindFifo:
		return '|'
	case KindUnknown:
		return '?'
	default:
		return 0
	}
}

// KindFromMode derives the entry kind from a file mode.
func KindFromMode(m fs.FileMode) Kind {
	switch {
	case m.IsRegular():
		return KindRegular
	case m.IsDir():
		return KindDir
	case m&fs.ModeSymlink != 0:
		return KindSymlink
	case m&fs.ModeSocket != 0:
		return KindSocket
	case m&fs.ModeNamedPipe != 0:
		return KindFifo
	default:
		return KindUnknown
	}
}

// IsMarker reports whether c is one of the recognized trailing marker
// characters stripped during manifest parsing.
func IsMarker(c byte) bool {
	switch c {
	case '/', '@', '=', '|', '?':
		return true
	default:
		return false
	}
}

// Entry is a single file-system entry listed in a manifest.
type Entry struct {
	// Name is the entry name as presented in the manifest, one per line.
	Name string `json:"name"`

	// Kind is the entry type, used only for the display marker.
	Kind Kind `json:"kind"`
}

// Line returns the manifest line for the entry: the name followed by the
// kind marker when the entry is not a regular file.
func (e Entry) Line() string {
	if m := e.Kind.Marker(); m != 0 {
		return e.Name + string(m)
	}
	return e.Name
}

// RenamePair is a single pending rename computed by positional comparison
// of the original entries against the edited manifest.
type RenamePair struct {
	// Old is the current path.
	Old string `json:"old"`

	// New is the edited path.
	New string `json:"new"`
}

// Failure records a single operation that could not be applied.
type Failure struct {
	// Path is the offending path.
	Path string `json:"path"`

	// Reason is the underlying system reason.
	Reason string `json:"reason"`
}

// Operation identifies which bulk workflow produced a report.
type Operation string

// Supported bulk operations.
const (
	// OpRename is the batch rename workflow.
	OpRename Operation = "rename"

	// OpRemove is the select-for-deletion workflow.
	OpRemove Operation = "remove"
)

// Report summarizes one applied batch. It is the value handed to the
// output formatters and recorded in the history journal.
type Report struct {
	// Operation is the workflow that produced this report.
	Operation Operation `json:"operation"`

	// Renamed contains the successfully applied rename pairs.
	Renamed []RenamePair `json:"renamed,omitempty"`

	// Removed contains the successfully removed paths.
	Removed []string `json:"removed,omitempty"`

	// Failed contains per-path failures; the batch continues past them.
	Failed []Failure `json:"failed,omitempty"`

	// Unchanged is the number of entries the user left untouched.
	Unchanged int `json:"unchanged"`

	// BytesFreed is the total size of removed entries, when known.
	BytesFreed int64 `json:"bytes_freed,omitempty"`

	// WorkspaceTouched indicates an entry inside the ambient workspace
	// was renamed or removed, so the caller's listing is stale.
	WorkspaceTouched bool `json:"workspace_touched"`

	// Elapsed is the time spent applying the batch.
	Elapsed time.Duration `json:"elapsed"`
}

// Mutated returns the number of entries actually changed on disk.
func (r *Report) Mutated() int {
	return len(r.Renamed) + len(r.Removed)
}

// OK reports whether the batch completed without any per-path failure.
func (r *Report) OK() bool {
	return len(r.Failed) == 0
}
