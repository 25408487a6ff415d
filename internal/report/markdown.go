package report

import (
	"fmt"
	"strings"

	"github.com/ducdmdev/prrisk/internal/model"
)

// Markdown renders the analysis as a PR-comment-ready markdown
// document.
func Markdown(a *model.PRAnalysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Change Risk: %s (%d/100)\n\n", a.RiskScore.Level, a.RiskScore.Score)
	fmt.Fprintf(&b, "`%s..%s` — %s\n\n", a.BaseBranch, a.HeadBranch, a.Summary)

	b.WriteString("| Factor | Score | Weight |\n|---|---|---|\n")
	for _, f := range a.RiskScore.Factors {
		fmt.Fprintf(&b, "| %s | %d | %.2f |\n", f.Name, f.Score, f.Weight)
	}
	b.WriteString("\n")

	if len(a.BreakingChanges) > 0 {
		fmt.Fprintf(&b, "### Breaking changes (%d)\n\n", len(a.BreakingChanges))
		for _, c := range a.BreakingChanges {
			fmt.Fprintf(&b, "- **%s** `%s` in `%s` (%s)\n", c.Type, c.SymbolName, c.FilePath, c.Severity)
			for _, d := range c.Details {
				fmt.Fprintf(&b, "  - %s\n", d)
			}
		}
		b.WriteString("\n")
	}

	if len(a.TestCoverage.Gaps) > 0 {
		fmt.Fprintf(&b, "### Missing test changes (%d)\n\n", len(a.TestCoverage.Gaps))
		for _, g := range a.TestCoverage.Gaps {
			fmt.Fprintf(&b, "- `%s`\n", g.SourceFile)
		}
		b.WriteString("\n")
	}

	if len(a.DocStaleness.StaleReferences) > 0 {
		fmt.Fprintf(&b, "### Stale documentation (%d)\n\n", len(a.DocStaleness.StaleReferences))
		for _, s := range a.DocStaleness.StaleReferences {
			fmt.Fprintf(&b, "- `%s:%d` references `%s` (%s)\n", s.DocFile, s.Line, s.Reference, s.Reason)
		}
		b.WriteString("\n")
	}

	if len(a.ImpactGraph.IndirectlyAffected) > 0 {
		fmt.Fprintf(&b, "### Indirectly affected (%d)\n\n", len(a.ImpactGraph.IndirectlyAffected))
		for _, f := range a.ImpactGraph.IndirectlyAffected {
			fmt.Fprintf(&b, "- `%s`\n", f)
		}
		b.WriteString("\n")
	}

	return b.String()
}
