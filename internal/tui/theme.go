package tui

import "github.com/charmbracelet/lipgloss"

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted      = ac("240", "243")
	colorAccent     = ac("#5f5fd7", "#87afff")
	colorSelectedBg = ac("#e9e9e9", "#262626")
	colorSelectedFg = ac("235", "255")
	colorErrorFg    = ac("#ffffff", "#ffffff")
	colorErrorBg    = ac("#d70000", "#af0000")
	colorSkeleton   = ac("252", "238")

	statusColors = map[string]lipgloss.AdaptiveColor{
		"TO_DO":       ac("240", "250"),
		"IN_PROGRESS": ac("#af8700", "#ffd75f"),
		"COMPLETED":   ac("#008700", "#87d787"),
	}
)

func styleMuted() lipgloss.Style { return lipgloss.NewStyle().Foreground(colorMuted) }

func styleTitle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
}

func styleSelected() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
}

func styleBanner() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorErrorFg).Background(colorErrorBg).Padding(0, 1)
}

func styleSkeleton() lipgloss.Style { return lipgloss.NewStyle().Foreground(colorSkeleton) }

func styleStatus(s string) lipgloss.Style {
	st := lipgloss.NewStyle()
	if c, ok := statusColors[s]; ok {
		st = st.Foreground(c)
	}
	return st
}
