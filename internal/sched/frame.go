package sched

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/multiclock/internal/clock"
)

// Frame styles. Soft palette: dimmed labels, warm running entries,
// coral for expired ones.
var (
	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	runningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5")).
			Bold(true)
)

// composeFrame renders one full screen: the current time on the first
// line, then every active timer in slot order, then every active
// alarm, with no gap between the sections. Done entries stay in their
// slot position for the grace window rather than being grouped.
func composeFrame(snap clock.Snapshot) []string {
	hour, minute, second := snap.Now.Clock()
	lines := []string{
		labelStyle.Render("Current Time: ") + timeStyle.Render(fmt.Sprintf("%02d:%02d:%02d", hour, minute, second)),
	}

	for _, t := range snap.Timers {
		if t.Done {
			lines = append(lines, doneStyle.Render("TIMER DONE"))
			continue
		}
		lines = append(lines, labelStyle.Render("Timer: ")+
			runningStyle.Render(fmt.Sprintf("%02d:%02d:%02d", t.Hours, t.Minutes, t.Seconds)))
	}

	for _, a := range snap.Alarms {
		if a.Done {
			lines = append(lines, doneStyle.Render("ALARM DONE"))
			continue
		}
		lines = append(lines, labelStyle.Render("Alarm set for ")+
			runningStyle.Render(fmt.Sprintf("%02d:%02d:%02d", a.Hours, a.Minutes, a.Seconds)))
	}

	return lines
}
