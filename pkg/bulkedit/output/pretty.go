package output

import (
	"bytes"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/jamesainslie/bulkedit/pkg/bulkedit/types"
)

// PrettyFormatter formats reports with colors and styling using lipgloss.
// It is the default for terminal display.
type PrettyFormatter struct{}

// Format writes the formatted report to the buffer.
func (f *PrettyFormatter) Format(w *bytes.Buffer, r *types.Report) error {
	switch r.Operation {
	case types.OpRemove:
		w.WriteString(TitleStyle.Render("Removed") + "\n")
		for _, p := range r.Removed {
			w.WriteString("  " + SuccessStyle.Render(p) + "\n")
		}
		if len(r.Removed) == 0 {
			w.WriteString(MutedStyle.Render("  nothing removed") + "\n")
		}
	default:
		w.WriteString(TitleStyle.Render("Renamed") + "\n")
		for _, p := range r.Renamed {
			w.WriteString(fmt.Sprintf("  %s %s %s\n",
				p.Old, ArrowStyle.Render("->"), SuccessStyle.Render(p.New)))
		}
		if len(r.Renamed) == 0 {
			w.WriteString(MutedStyle.Render("  nothing renamed") + "\n")
		}
	}

	if len(r.Failed) > 0 {
		w.WriteString(TitleStyle.Render("Failed") + "\n")
		for _, fl := range r.Failed {
			w.WriteString("  " + FailureStyle.Render(fmt.Sprintf("%s: %s", fl.Path, fl.Reason)) + "\n")
		}
	}

	summary := summaryLine(r)
	if r.BytesFreed > 0 {
		summary += MutedStyle.Render(fmt.Sprintf(" (%s freed)", humanize.IBytes(uint64(r.BytesFreed))))
	}
	if r.Unchanged > 0 {
		summary += MutedStyle.Render(fmt.Sprintf(", %d unchanged", r.Unchanged))
	}
	w.WriteString(SummaryStyle.Render(summary) + "\n")

	return nil
}

func init() {
	Register("pretty", func() Formatter {
		return &PrettyFormatter{}
	})
}

// Ensure PrettyFormatter implements Formatter.
var _ Formatter = (*PrettyFormatter)(nil)
