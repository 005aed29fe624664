package output

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/jamesainslie/bulkedit/pkg/bulkedit/types"
)

// yamlReport is the YAML output structure.
type yamlReport struct {
	Operation        string          `yaml:"operation"`
	Renamed          []yamlPair      `yaml:"renamed,omitempty"`
	Removed          []string        `yaml:"removed,omitempty"`
	Failed           []types.Failure `yaml:"failed,omitempty"`
	Unchanged        int             `yaml:"unchanged"`
	BytesFreed       int64           `yaml:"bytes_freed,omitempty"`
	WorkspaceTouched bool            `yaml:"workspace_touched"`
	Elapsed          string          `yaml:"elapsed"`
}

// yamlPair is a rename pair in YAML output.
type yamlPair struct {
	Old string `yaml:"old"`
	New string `yaml:"new"`
}

// YAMLFormatter formats reports as a YAML document.
type YAMLFormatter struct{}

// Format writes the formatted report to the buffer.
func (f *YAMLFormatter) Format(w *bytes.Buffer, r *types.Report) error {
	out := yamlReport{
		Operation:        string(r.Operation),
		Removed:          r.Removed,
		Failed:           r.Failed,
		Unchanged:        r.Unchanged,
		BytesFreed:       r.BytesFreed,
		WorkspaceTouched: r.WorkspaceTouched,
		Elapsed:          r.Elapsed.String(),
	}
	for _, p := range r.Renamed {
		out.Renamed = append(out.Renamed, yamlPair{Old: p.Old, New: p.New})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return err
	}
	return enc.Close()
}

func init() {
	Register("yaml", func() Formatter {
		return &YAMLFormatter{}
	})
}

// Ensure YAMLFormatter implements Formatter.
var _ Formatter = (*YAMLFormatter)(nil)
