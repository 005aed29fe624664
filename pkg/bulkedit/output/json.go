package output

import (
	"bytes"
	"encoding/json"

	"github.com/jamesainslie/bulkedit/pkg/bulkedit/types"
)

// jsonReport is the JSON output structure.
type jsonReport struct {
	Operation        string             `json:"operation"`
	Renamed          []types.RenamePair `json:"renamed"`
	Removed          []string           `json:"removed"`
	Failed           []types.Failure    `json:"failed"`
	Unchanged        int                `json:"unchanged"`
	BytesFreed       int64              `json:"bytes_freed,omitempty"`
	WorkspaceTouched bool               `json:"workspace_touched"`
	Elapsed          string             `json:"elapsed"`
}

// JSONFormatter formats reports as a single indented JSON object.
type JSONFormatter struct{}

// Format writes the formatted report to the buffer.
func (f *JSONFormatter) Format(w *bytes.Buffer, r *types.Report) error {
	out := jsonReport{
		Operation:        string(r.Operation),
		Renamed:          emptyIfNilPairs(r.Renamed),
		Removed:          emptyIfNil(r.Removed),
		Failed:           emptyIfNilFailures(r.Failed),
		Unchanged:        r.Unchanged,
		BytesFreed:       r.BytesFreed,
		WorkspaceTouched: r.WorkspaceTouched,
		Elapsed:          r.Elapsed.String(),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// emptyIfNil keeps JSON arrays as [] rather than null.
func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func emptyIfNilPairs(s []types.RenamePair) []types.RenamePair {
	if s == nil {
		return []types.RenamePair{}
	}
	return s
}

func emptyIfNilFailures(s []types.Failure) []types.Failure {
	if s == nil {
		return []types.Failure{}
	}
	return s
}

func init() {
	Register("json", func() Formatter {
		return &JSONFormatter{}
	})
}

// Ensure JSONFormatter implements Formatter.
var _ Formatter = (*JSONFormatter)(nil)
