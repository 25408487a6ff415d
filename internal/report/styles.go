package report

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ducdmdev/prrisk/internal/model"
)

// Color palette.
var (
	colorRed    = lipgloss.Color("#ff5555")
	colorGreen  = lipgloss.Color("#50fa7b")
	colorYellow = lipgloss.Color("#f1fa8c")
	colorBlue   = lipgloss.Color("#8be9fd")
	colorPurple = lipgloss.Color("#bd93f9")
	colorOrange = lipgloss.Color("#ffb86c")
	colorDim    = lipgloss.Color("#6272a4")
	colorFg     = lipgloss.Color("#f8f8f2")
)

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Foreground(colorPurple).
			Bold(true).
			Padding(1, 0, 0, 0)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	pathStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	addedStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	deletedStyle = lipgloss.NewStyle().Foreground(colorRed)

	severityHighStyle   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	severityMediumStyle = lipgloss.NewStyle().Foreground(colorOrange)

	riskLowStyle      = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	riskMediumStyle   = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	riskHighStyle     = lipgloss.NewStyle().Foreground(colorOrange).Bold(true)
	riskCriticalStyle = lipgloss.NewStyle().Foreground(colorRed).Bold(true)

	barFilledStyle = lipgloss.NewStyle().Foreground(colorPurple)
	barEmptyStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

func riskStyle(level model.RiskLevel) lipgloss.Style {
	switch level {
	case model.RiskCritical:
		return riskCriticalStyle
	case model.RiskHigh:
		return riskHighStyle
	case model.RiskMedium:
		return riskMediumStyle
	default:
		return riskLowStyle
	}
}

func severityStyle(s model.Severity) lipgloss.Style {
	if s == model.SeverityHigh {
		return severityHighStyle
	}
	return severityMediumStyle
}
