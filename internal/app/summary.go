package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/kiln/internal/ui/output"
	"go.trai.ch/kiln/internal/ui/style"
)

// renderSummary prints one line per step followed by the totals. Colors
// follow the terminal capabilities of w.
func renderSummary(w io.Writer, results []StepResult) {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(output.New(w).Profile)

	icons := map[StepStatus]string{
		StepPassed:  r.NewStyle().Foreground(style.Green).Render(style.Check),
		StepFailed:  r.NewStyle().Foreground(style.Red).Render(style.Cross),
		StepIgnored: r.NewStyle().Foreground(style.Yellow).Render(style.Tilde),
		StepDryRun:  r.NewStyle().Foreground(style.Slate).Render(style.Dot),
	}
	detail := r.NewStyle().Foreground(style.Slate)

	width := 0
	for _, res := range results {
		width = max(width, len(res.Name))
	}

	counts := make(map[StepStatus]int, len(icons))
	for _, res := range results {
		counts[res.Status]++
		_, _ = fmt.Fprintf(w, "%s %-*s  %s\n", icons[res.Status], width, res.Name, detail.Render(res.Detail))
	}

	parts := []string{fmt.Sprintf("%d passed", counts[StepPassed])}
	if n := counts[StepFailed]; n > 0 {
		parts = append(parts, r.NewStyle().Foreground(style.Red).Bold(true).Render(fmt.Sprintf("%d failed", n)))
	}
	if n := counts[StepIgnored]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d ignored", n))
	}
	if n := counts[StepDryRun]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d dry run", n))
	}

	_, _ = fmt.Fprintf(w, "\n%s %s\n",
		r.NewStyle().Foreground(style.Iris).Bold(true).Render(fmt.Sprintf("%d steps:", len(results))),
		strings.Join(parts, ", "))
}
