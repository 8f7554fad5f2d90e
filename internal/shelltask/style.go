package shelltask

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// colorEnabled reports whether status lines should be rendered with ANSI
// color: stdout must be a terminal, and the caller must not have disabled
// color with --no-color.
func colorEnabled(disabled bool) bool {
	if disabled {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// statusLine renders a single task_display status line, green on success and
// red on failure, or plain text when color is disabled.
func statusLine(display string, success bool, color bool) string {
	if !color {
		if success {
			return "[ok] " + display
		}
		return "[fail] " + display
	}
	if success {
		return successStyle.Render("[ok] " + display)
	}
	return failureStyle.Render("[fail] " + display)
}
