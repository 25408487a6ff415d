// Package report renders a PRAnalysis as styled terminal text,
// markdown, or JSON. Renderers only read the analysis, never alter it.
package report

import (
	"fmt"
	"strings"

	"github.com/ducdmdev/prrisk/internal/model"
)

const barWidth = 20

// Text renders the full analysis as a styled terminal report.
func Text(a *model.PRAnalysis) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Change Risk Analysis"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s  %s..%s", a.RepoPath, a.BaseBranch, a.HeadBranch)))
	b.WriteString("\n")

	writeRiskSection(&b, a.RiskScore)
	writeFilesSection(&b, a.ChangedFiles)
	writeBreakingSection(&b, a.BreakingChanges)
	writeCoverageSection(&b, a.TestCoverage)
	writeDocsSection(&b, a.DocStaleness)
	writeImpactSection(&b, a.ImpactGraph)

	b.WriteString("\n")
	b.WriteString(a.Summary)
	b.WriteString("\n")
	return b.String()
}

func scoreBar(score int) string {
	filled := score * barWidth / 100
	return barFilledStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
}

func writeRiskSection(b *strings.Builder, r model.RiskAssessment) {
	b.WriteString(sectionStyle.Render("Risk"))
	b.WriteString("\n")
	fmt.Fprintf(b, "  %s %s %s\n",
		scoreBar(r.Score),
		riskStyle(r.Level).Render(fmt.Sprintf("%d/100", r.Score)),
		riskStyle(r.Level).Render(string(r.Level)))
	for _, f := range r.Factors {
		fmt.Fprintf(b, "  %-20s %3d  %s\n", f.Name, f.Score, dimStyle.Render(f.Description))
	}
}

func writeFilesSection(b *strings.Builder, files []model.ChangedFile) {
	b.WriteString(sectionStyle.Render(fmt.Sprintf("Changed files (%d)", len(files))))
	b.WriteString("\n")
	for _, f := range files {
		line := fmt.Sprintf("  %-8s %-8s %s", f.Status, f.Category, pathStyle.Render(f.Path))
		if f.OldPath != "" {
			line += dimStyle.Render(" (from " + f.OldPath + ")")
		}
		line += " " + addedStyle.Render(fmt.Sprintf("+%d", f.Additions)) +
			"/" + deletedStyle.Render(fmt.Sprintf("-%d", f.Deletions))
		b.WriteString(line)
		b.WriteString("\n")
	}
}

func writeBreakingSection(b *strings.Builder, changes []model.BreakingChange) {
	if len(changes) == 0 {
		return
	}
	b.WriteString(sectionStyle.Render(fmt.Sprintf("Breaking changes (%d)", len(changes))))
	b.WriteString("\n")
	for _, c := range changes {
		fmt.Fprintf(b, "  %s %s %s in %s\n",
			severityStyle(c.Severity).Render(strings.ToUpper(string(c.Severity))),
			c.Type, c.SymbolName, c.FilePath)
		if c.Before != nil && c.Before.Signature != "" {
			fmt.Fprintf(b, "    - %s\n", highlightCode(c.FilePath, c.SymbolName+c.Before.Signature))
		}
		if c.After != nil && c.After.Signature != "" {
			fmt.Fprintf(b, "    + %s\n", highlightCode(c.FilePath, c.SymbolName+c.After.Signature))
		}
		for _, d := range c.Details {
			fmt.Fprintf(b, "    %s\n", dimStyle.Render(d))
		}
		if len(c.Consumers) > 0 {
			fmt.Fprintf(b, "    %s\n", dimStyle.Render(fmt.Sprintf("imported by %s", strings.Join(c.Consumers, ", "))))
		}
	}
}

func writeCoverageSection(b *strings.Builder, r model.TestCoverageReport) {
	b.WriteString(sectionStyle.Render("Test coverage"))
	b.WriteString("\n")
	fmt.Fprintf(b, "  %d of %d changed source file(s) have test changes (%.0f%%)\n",
		r.SourceFilesWithTestChanges, r.ChangedSourceFiles, r.CoverageRatio*100)
	for _, g := range r.Gaps {
		marker := "no test file"
		if g.TestFileExists {
			marker = "test file unchanged"
		}
		fmt.Fprintf(b, "  %s %s\n", pathStyle.Render(g.SourceFile), dimStyle.Render("("+marker+")"))
	}
}

func writeDocsSection(b *strings.Builder, r model.DocStalenessReport) {
	if len(r.StaleReferences) == 0 {
		return
	}
	b.WriteString(sectionStyle.Render(fmt.Sprintf("Stale documentation (%d)", len(r.StaleReferences))))
	b.WriteString("\n")
	for _, s := range r.StaleReferences {
		fmt.Fprintf(b, "  %s:%d %s %s\n", s.DocFile, s.Line, s.Reference, dimStyle.Render("("+s.Reason+")"))
	}
}

func writeImpactSection(b *strings.Builder, g model.ImpactGraph) {
	if len(g.IndirectlyAffected) == 0 {
		return
	}
	b.WriteString(sectionStyle.Render(fmt.Sprintf("Impact (%d indirect)", len(g.IndirectlyAffected))))
	b.WriteString("\n")
	for _, f := range g.IndirectlyAffected {
		fmt.Fprintf(b, "  %s\n", f)
	}
}
