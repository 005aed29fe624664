package output

import (
	"bytes"
	"text/tabwriter"

	"github.com/jamesainslie/bulkedit/pkg/bulkedit/types"
)

// PlainFormatter formats reports as simple tab-separated text with no
// styling, suitable for scripting and piping.
type PlainFormatter struct{}

// Format writes the formatted report to the buffer.
func (f *PlainFormatter) Format(w *bytes.Buffer, r *types.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)

	for _, p := range r.Renamed {
		if _, err := tw.Write([]byte("renamed\t" + p.Old + "\t" + p.New + "\n")); err != nil {
			return err
		}
	}
	for _, p := range r.Removed {
		if _, err := tw.Write([]byte("removed\t" + p + "\n")); err != nil {
			return err
		}
	}
	for _, fl := range r.Failed {
		if _, err := tw.Write([]byte("failed\t" + fl.Path + "\t" + fl.Reason + "\n")); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	w.WriteString(summaryLine(r) + "\n")
	return nil
}

func init() {
	Register("plain", func() Formatter {
		return &PlainFormatter{}
	})
}

// Ensure PlainFormatter implements Formatter.
var _ Formatter = (*PlainFormatter)(nil)
