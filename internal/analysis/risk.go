package analysis

import (
	"fmt"
	"math"
	"path"
	"strings"

	"github.com/ducdmdev/prrisk/internal/model"
)

// Weights controls the contribution of each risk factor. They must sum
// to 1.00.
type Weights struct {
	Breaking     float64 `json:"breaking" yaml:"breaking"`
	Coverage     float64 `json:"coverage" yaml:"coverage"`
	DiffSize     float64 `json:"diffSize" yaml:"diffSize"`
	DocStaleness float64 `json:"docStaleness" yaml:"docStaleness"`
	Config       float64 `json:"config" yaml:"config"`
	Impact       float64 `json:"impact" yaml:"impact"`
}

// DefaultWeights returns the stock weighting.
func DefaultWeights() Weights {
	return Weights{
		Breaking:     0.30,
		Coverage:     0.25,
		DiffSize:     0.15,
		DocStaleness: 0.10,
		Config:       0.10,
		Impact:       0.10,
	}
}

// Validate checks the weights sum to 1.00 within a small epsilon.
func (w Weights) Validate() error {
	sum := w.Breaking + w.Coverage + w.DiffSize + w.DocStaleness + w.Config + w.Impact
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("risk weights sum to %.4f, want 1.00", sum)
	}
	return nil
}

// CI and build-pipeline configuration, where a bad change can block
// every deploy.
var ciConfigNames = map[string]bool{
	"dockerfile":          true,
	"docker-compose.yml":  true,
	"docker-compose.yaml": true,
	"compose.yml":         true,
	"compose.yaml":        true,
	"jenkinsfile":         true,
	"makefile":            true,
	".travis.yml":         true,
	".gitlab-ci.yml":      true,
	"azure-pipelines.yml": true,
}

var ciConfigPrefixes = []string{"webpack.config", "rollup.config", "vite.config"}

func isCIConfig(p string) bool {
	lower := strings.ToLower(p)
	for _, dir := range []string{".github/", ".gitlab/", ".circleci/"} {
		if strings.HasPrefix(lower, dir) {
			return true
		}
	}
	base := path.Base(lower)
	if ciConfigNames[base] {
		return true
	}
	for _, prefix := range ciConfigPrefixes {
		if strings.HasPrefix(base, prefix) {
			return true
		}
	}
	return false
}

func scoreBreaking(changes []model.BreakingChange) model.RiskFactor {
	score := 0
	high, medium := 0, 0
	for _, c := range changes {
		switch c.Severity {
		case model.SeverityHigh:
			high++
		case model.SeverityMedium:
			medium++
		}
	}
	switch {
	case len(changes) == 0:
		score = 0
	case high > 0:
		score = 100
	case medium > 0:
		score = 60
	default:
		score = 30
	}
	return model.RiskFactor{
		Name:        "breaking_changes",
		Score:       score,
		Description: fmt.Sprintf("%d breaking change(s): %d high, %d medium", len(changes), high, medium),
	}
}

func scoreCoverage(report model.TestCoverageReport) model.RiskFactor {
	score := 0
	if report.ChangedSourceFiles > 0 {
		score = int((1-report.CoverageRatio)*100 + 0.5)
	}
	return model.RiskFactor{
		Name:        "untested_changes",
		Score:       score,
		Description: fmt.Sprintf("%d of %d changed source file(s) have test changes", report.SourceFilesWithTestChanges, report.ChangedSourceFiles),
	}
}

func scoreDiffSize(changed []model.ChangedFile) model.RiskFactor {
	total := 0
	for _, f := range changed {
		total += f.Additions + f.Deletions
	}
	var score int
	switch {
	case total < 100:
		score = 0
	case total < 500:
		score = 50
	case total < 1000:
		score = 80
	default:
		score = 100
	}
	return model.RiskFactor{
		Name:        "diff_size",
		Score:       score,
		Description: fmt.Sprintf("%d line(s) changed across %d file(s)", total, len(changed)),
	}
}

func scoreDocStaleness(report model.DocStalenessReport) model.RiskFactor {
	n := len(report.StaleReferences)
	score := n * 20
	if score > 100 {
		score = 100
	}
	return model.RiskFactor{
		Name:        "stale_documentation",
		Score:       score,
		Description: fmt.Sprintf("%d stale documentation reference(s)", n),
	}
}

func scoreConfig(changed []model.ChangedFile) model.RiskFactor {
	var configs []string
	ci := false
	for _, f := range changed {
		if f.Category != model.CategoryConfig {
			continue
		}
		configs = append(configs, f.Path)
		if isCIConfig(f.Path) {
			ci = true
		}
	}
	var score int
	switch {
	case len(configs) == 0:
		score = 0
	case ci:
		score = 100
	default:
		score = 50
	}
	return model.RiskFactor{
		Name:        "config_changes",
		Score:       score,
		Description: fmt.Sprintf("%d configuration file(s) changed", len(configs)),
		Details:     configs,
	}
}

func scoreImpact(graph model.ImpactGraph) model.RiskFactor {
	n := len(graph.IndirectlyAffected)
	score := n * 10
	if score > 100 {
		score = 100
	}
	return model.RiskFactor{
		Name:        "impact_breadth",
		Score:       score,
		Description: fmt.Sprintf("%d file(s) indirectly affected via imports", n),
	}
}

// ComputeRisk evaluates the six risk factors and aggregates them into a
// single weighted score. The returned assessment always carries exactly
// six factors in a stable order.
func ComputeRisk(a *model.PRAnalysis, w Weights) model.RiskAssessment {
	factors := []model.RiskFactor{
		scoreBreaking(a.BreakingChanges),
		scoreCoverage(a.TestCoverage),
		scoreDiffSize(a.ChangedFiles),
		scoreDocStaleness(a.DocStaleness),
		scoreConfig(a.ChangedFiles),
		scoreImpact(a.ImpactGraph),
	}
	weights := []float64{w.Breaking, w.Coverage, w.DiffSize, w.DocStaleness, w.Config, w.Impact}

	var weighted, total float64
	for i := range factors {
		factors[i].Weight = weights[i]
		weighted += float64(factors[i].Score) * weights[i]
		total += weights[i]
	}

	score := 0
	if total > 0 {
		score = int(weighted/total + 0.5)
	}
	return model.RiskAssessment{
		Score:   score,
		Level:   model.LevelForScore(score),
		Factors: factors,
	}
}
