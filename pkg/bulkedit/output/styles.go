package output

import "github.com/charmbracelet/lipgloss"

// Color constants using the ANSI 256-color palette, shared across the
// styled formatters.
const (
	// ColorPrimary is used for primary elements like headers (bright blue).
	ColorPrimary = lipgloss.Color("39")

	// ColorSuccess is used for applied operations (green).
	ColorSuccess = lipgloss.Color("42")

	// ColorWarning is used for skipped or unchanged entries (orange).
	ColorWarning = lipgloss.Color("214")

	// ColorDanger is used for failures (red).
	ColorDanger = lipgloss.Color("196")

	// ColorMuted is used for secondary text (gray).
	ColorMuted = lipgloss.Color("245")
)

// Text styles for the pretty formatter.
var (
	// TitleStyle is used for the report title line.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// ArrowStyle renders the old -> new separator.
	ArrowStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle is used for applied entries.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// FailureStyle is used for per-path failures.
	FailureStyle = lipgloss.NewStyle().
			Foreground(ColorDanger)

	// MutedStyle is used for counts and secondary notes.
	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SummaryStyle is used for the closing summary line.
	SummaryStyle = lipgloss.NewStyle().
			Bold(true)
)
