// Package tui implements the Bubble Tea result viewer.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ducdmdev/prrisk/internal/model"
)

type section struct {
	title string
	lines []string
}

// Model is the top-level Bubble Tea model for the result viewer.
type Model struct {
	analysis *model.PRAnalysis
	sections []section

	// UI state
	width  int
	height int

	sectionIndex int
	scrollOffset int
	viewHeight   int

	showHelp bool
}

// New creates a viewer model for a completed analysis.
func New(a *model.PRAnalysis) Model {
	return Model{
		analysis: a,
		sections: buildSections(a),
	}
}

// Run opens the interactive viewer and blocks until the user quits.
func Run(a *model.PRAnalysis) error {
	p := tea.NewProgram(New(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewHeight = m.height - 6 // status bar + help bar + borders
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Down):
			if m.scrollOffset < len(m.currentSection().lines)-1 {
				m.scrollOffset++
			}

		case key.Matches(msg, keys.Up):
			if m.scrollOffset > 0 {
				m.scrollOffset--
			}

		case key.Matches(msg, keys.NextSection):
			if m.sectionIndex < len(m.sections)-1 {
				m.sectionIndex++
				m.scrollOffset = 0
			}

		case key.Matches(msg, keys.PrevSection):
			if m.sectionIndex > 0 {
				m.sectionIndex--
				m.scrollOffset = 0
			}

		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
		}
	}
	return m, nil
}

func (m Model) currentSection() section {
	if len(m.sections) == 0 {
		return section{}
	}
	return m.sections[m.sectionIndex]
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	list := m.renderSectionList()
	detail := m.renderDetail()
	body := lipgloss.JoinHorizontal(lipgloss.Top, list, detail)

	status := m.renderStatusBar()
	help := m.renderHelpBar()

	return lipgloss.JoinVertical(lipgloss.Left, body, status, help)
}

func (m Model) renderSectionList() string {
	var b strings.Builder
	for i, s := range m.sections {
		style := sectionItemStyle
		if i == m.sectionIndex {
			style = sectionItemSelectedStyle
		}
		b.WriteString(style.Render(s.title))
		if i < len(m.sections)-1 {
			b.WriteString("\n")
		}
	}
	return sectionListStyle.Height(m.viewHeight).Render(b.String())
}

func (m Model) renderDetail() string {
	s := m.currentSection()

	visible := s.lines
	if m.scrollOffset < len(visible) {
		visible = visible[m.scrollOffset:]
	}
	if m.viewHeight > 0 && len(visible) > m.viewHeight {
		visible = visible[:m.viewHeight]
	}

	content := detailHeaderStyle.Render(s.title) + "\n" + strings.Join(visible, "\n")
	width := m.width - lipgloss.Width(m.renderSectionList()) - 4
	if width < 20 {
		width = 20
	}
	return detailViewStyle.Width(width).Height(m.viewHeight).Render(content)
}

func (m Model) renderStatusBar() string {
	r := m.analysis.RiskScore
	return statusBarStyle.Width(m.width).Render(fmt.Sprintf(
		"%s..%s  %s  %s",
		m.analysis.BaseBranch, m.analysis.HeadBranch,
		riskStyle(r.Level).Render(fmt.Sprintf("%d/100 %s", r.Score, r.Level)),
		dimStyle.Render(fmt.Sprintf("section %d/%d", m.sectionIndex+1, len(m.sections))),
	))
}

func (m Model) renderHelpBar() string {
	if m.showHelp {
		parts := []string{}
		for _, b := range []key.Binding{keys.Up, keys.Down, keys.NextSection, keys.PrevSection, keys.Help, keys.Quit} {
			parts = append(parts, helpKeyStyle.Render(b.Help().Key)+" "+b.Help().Desc)
		}
		return helpBarStyle.Render(strings.Join(parts, "  "))
	}
	return helpBarStyle.Render("? help  q quit")
}

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

func buildSections(a *model.PRAnalysis) []section {
	return []section{
		riskSection(a.RiskScore),
		filesSection(a.ChangedFiles),
		breakingSection(a.BreakingChanges),
		coverageSection(a.TestCoverage),
		docsSection(a.DocStaleness),
		impactSection(a.ImpactGraph),
	}
}

func riskSection(r model.RiskAssessment) section {
	lines := []string{
		riskStyle(r.Level).Render(fmt.Sprintf("%d/100 %s", r.Score, r.Level)),
		"",
	}
	for _, f := range r.Factors {
		lines = append(lines,
			fmt.Sprintf("%-20s %3d  (weight %.2f)", f.Name, f.Score, f.Weight),
			dimStyle.Render("  "+f.Description),
		)
	}
	return section{title: "Risk", lines: lines}
}

func filesSection(files []model.ChangedFile) section {
	var lines []string
	for _, f := range files {
		line := fmt.Sprintf("%-8s %-8s %s %s/%s",
			f.Status, f.Category, f.Path,
			addedStyle.Render(fmt.Sprintf("+%d", f.Additions)),
			deletedStyle.Render(fmt.Sprintf("-%d", f.Deletions)))
		if f.OldPath != "" {
			line += dimStyle.Render(" (from " + f.OldPath + ")")
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		lines = []string{dimStyle.Render("no changed files")}
	}
	return section{title: fmt.Sprintf("Files (%d)", len(files)), lines: lines}
}

func breakingSection(changes []model.BreakingChange) section {
	var lines []string
	for _, c := range changes {
		sev := severityMediumStyle
		if c.Severity == model.SeverityHigh {
			sev = severityHighStyle
		}
		lines = append(lines, fmt.Sprintf("%s %s %s in %s",
			sev.Render(strings.ToUpper(string(c.Severity))), c.Type, c.SymbolName, c.FilePath))
		for _, d := range c.Details {
			lines = append(lines, dimStyle.Render("  "+d))
		}
		if len(c.Consumers) > 0 {
			lines = append(lines, dimStyle.Render("  imported by "+strings.Join(c.Consumers, ", ")))
		}
	}
	if len(lines) == 0 {
		lines = []string{dimStyle.Render("no breaking changes")}
	}
	return section{title: fmt.Sprintf("Breaking (%d)", len(changes)), lines: lines}
}

func coverageSection(r model.TestCoverageReport) section {
	lines := []string{fmt.Sprintf("%d of %d changed source file(s) have test changes (%.0f%%)",
		r.SourceFilesWithTestChanges, r.ChangedSourceFiles, r.CoverageRatio*100)}
	for _, g := range r.Gaps {
		marker := "no test file"
		if g.TestFileExists {
			marker = "test file unchanged"
		}
		lines = append(lines, fmt.Sprintf("%s %s", g.SourceFile, dimStyle.Render("("+marker+")")))
	}
	return section{title: fmt.Sprintf("Coverage (%d gaps)", len(r.Gaps)), lines: lines}
}

func docsSection(r model.DocStalenessReport) section {
	var lines []string
	for _, s := range r.StaleReferences {
		lines = append(lines, fmt.Sprintf("%s:%d %s %s",
			s.DocFile, s.Line, s.Reference, dimStyle.Render("("+s.Reason+")")))
	}
	if len(lines) == 0 {
		lines = []string{dimStyle.Render("no stale references")}
	}
	return section{title: fmt.Sprintf("Docs (%d)", len(r.StaleReferences)), lines: lines}
}

func impactSection(g model.ImpactGraph) section {
	var lines []string
	for _, f := range g.IndirectlyAffected {
		lines = append(lines, f)
	}
	if len(lines) == 0 {
		lines = []string{dimStyle.Render("no indirect impact")}
	}
	return section{title: fmt.Sprintf("Impact (%d)", len(g.IndirectlyAffected)), lines: lines}
}
