package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#16a34a")
	muted  = lipgloss.Color("241")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(accent).
			Padding(0, 1)

	paramStyle = lipgloss.NewStyle().
			Bold(true).
			PaddingRight(2)

	cursorStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1)

	activeValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ffffff")).
				Background(accent).
				Bold(true).
				Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(muted).
			PaddingTop(1)

	previewStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(muted).
			Width(10)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d97706"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#dc2626"))
)
