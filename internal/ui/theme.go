package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Ramadhan Adventure theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconRocket  = "🚀"
	IconStar    = "⭐"
	IconMoon    = "🌙"
	IconDone    = "✅"
	IconMissed  = "▫️"
	IconCrew    = "🧑‍🚀"
	IconSparkle = "✨"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconSync    = "🔄"
	IconFlag    = "🚩"
	IconClock   = "🕰️"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// ProgressBar renders a fixed-width bar of earned vs. possible stars. The
// ratio is allowed to exceed 100% (the ceiling shrinks when missions are
// disabled) and is capped only visually.
func ProgressBar(earned, max, width int) string {
	if width < 4 {
		width = 4
	}
	ratio := 0.0
	if max > 0 {
		ratio = float64(earned) / float64(max)
	}
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	bar := Gold.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", width-filled))
	pct := 0
	if max > 0 {
		pct = int(ratio*100 + 0.5)
	}
	return fmt.Sprintf("%s %d%%", bar, pct)
}

func TierBadge(tier string) string {
	switch strings.ToLower(strings.TrimSpace(tier)) {
	case "captain":
		return Gold.Render("CAPT")
	case "commander":
		return Good.Render("CMDR")
	case "pilot":
		return H2.Render("PILOT")
	default:
		return Muted.Render("CADET")
	}
}
