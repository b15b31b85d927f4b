package runner

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	colorPrimary = lipgloss.Color("#00D4FF") // Cyan
	colorSuccess = lipgloss.Color("#10B981") // Green
	colorError   = lipgloss.Color("#EF4444") // Red
	colorMuted   = lipgloss.Color("#6B7280") // Gray
)

var (
	agentStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	toolStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	toolOKStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	toolErrStyle = lipgloss.NewStyle().
			Foreground(colorError)
)

func (r *Runner) printAgent(name string) {
	fmt.Fprintln(r.out, agentStyle.Render("▸ "+name))
}

func (r *Runner) printToolStart(toolName string) {
	fmt.Fprintln(r.out, toolStyle.Render("  ⚙ "+toolName+" ..."))
}

func (r *Runner) printToolComplete(toolName string, success bool, duration time.Duration) {
	if success {
		fmt.Fprintln(r.out, toolOKStyle.Render(fmt.Sprintf("  ✔ %s (%dms)", toolName, duration.Milliseconds())))
		return
	}
	fmt.Fprintln(r.out, toolErrStyle.Render(fmt.Sprintf("  ✘ %s (%dms)", toolName, duration.Milliseconds())))
}
