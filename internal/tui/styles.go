package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	colorRed     = lipgloss.Color("#ff5555")
	colorGreen   = lipgloss.Color("#50fa7b")
	colorYellow  = lipgloss.Color("#f1fa8c")
	colorBlue    = lipgloss.Color("#8be9fd")
	colorPurple  = lipgloss.Color("#bd93f9")
	colorOrange  = lipgloss.Color("#ffb86c")
	colorDim     = lipgloss.Color("#6272a4")
	colorBgLight = lipgloss.Color("#343746")
	colorFg      = lipgloss.Color("#f8f8f2")
	colorBorder  = lipgloss.Color("#44475a")
)

// Style definitions.
var (
	sectionListStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder).
				Padding(0, 1)

	sectionItemStyle = lipgloss.NewStyle().
				Foreground(colorFg)

	sectionItemSelectedStyle = lipgloss.NewStyle().
					Foreground(colorFg).
					Background(colorBorder).
					Bold(true)

	detailViewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	detailHeaderStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true).
				Padding(0, 0, 1, 0)

	riskLowStyle      = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	riskMediumStyle   = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	riskHighStyle     = lipgloss.NewStyle().Foreground(colorOrange).Bold(true)
	riskCriticalStyle = lipgloss.NewStyle().Foreground(colorRed).Bold(true)

	severityHighStyle   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	severityMediumStyle = lipgloss.NewStyle().Foreground(colorOrange)

	addedStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	deletedStyle = lipgloss.NewStyle().Foreground(colorRed)
	dimStyle     = lipgloss.NewStyle().Foreground(colorDim)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Background(colorBgLight).
			Padding(0, 1)

	helpBarStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorYellow)
)
