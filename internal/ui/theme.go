package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lakshaymaurya-felt/devsweep/internal/core"
)

// ─── Color tokens ────────────────────────────────────────────────────────────

var (
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#7c3aed", Dark: "#a78bfa"}
	ColorSecondary = lipgloss.AdaptiveColor{Light: "#0891b2", Dark: "#22d3ee"}
	ColorCoral     = lipgloss.AdaptiveColor{Light: "#e11d48", Dark: "#fb7185"}
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#16a34a", Dark: "#4ade80"}
	ColorWarning   = lipgloss.AdaptiveColor{Light: "#ca8a04", Dark: "#facc15"}
	ColorError     = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
	ColorText      = lipgloss.AdaptiveColor{Light: "#1f2937", Dark: "#e5e7eb"}
	ColorTextDim   = lipgloss.AdaptiveColor{Light: "#4b5563", Dark: "#9ca3af"}
	ColorMuted     = lipgloss.AdaptiveColor{Light: "#9ca3af", Dark: "#6b7280"}
)

// ─── Icons ───────────────────────────────────────────────────────────────────

const (
	IconDiamond = "◆"
	IconCheck   = "✓"
	IconCross   = "✗"
	IconWarning = "!"
	IconBullet  = "•"
	IconPipe    = "│"
	IconArrow   = "→"
)

// ─── Styles ──────────────────────────────────────────────────────────────────

// TitleStyle renders section headings.
func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
}

// DimStyle renders secondary text.
func DimStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorTextDim)
}

// WarningStyle renders warnings.
func WarningStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorWarning)
}

// ErrorStyle renders errors.
func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(ColorError)
}

// SuccessStyle renders positive outcomes.
func SuccessStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)
}

// StatusStyle colors a task status cell.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "OK":
		return SuccessStyle()
	case "FAIL":
		return ErrorStyle()
	default:
		return lipgloss.NewStyle().Foreground(ColorMuted)
	}
}

// FormatSize is core.FormatSize, re-exported for render code.
func FormatSize(n int64) string {
	return core.FormatSize(n)
}

// Heading renders a title line with a divider below it.
func Heading(title string, width int) string {
	if width < 20 {
		width = 20
	}
	return TitleStyle().Render(IconDiamond+" "+title) + "\n" +
		DimStyle().Render(strings.Repeat("─", width))
}

// UsageBar renders a usage bar colored by how full it is.
func UsageBar(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct / 100 * float64(width))
	empty := width - filled

	color := ColorSuccess
	switch {
	case pct >= 90:
		color = ColorError
	case pct >= 75:
		color = ColorWarning
	}

	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(ColorMuted).Render(strings.Repeat("░", empty))
}
