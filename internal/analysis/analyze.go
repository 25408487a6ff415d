package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ducdmdev/prrisk/internal/diff"
	"github.com/ducdmdev/prrisk/internal/git"
	"github.com/ducdmdev/prrisk/internal/model"
)

// VCS is everything the analyzer needs from version control.
type VCS interface {
	IsRepo() bool
	RefExists(ref string) bool
	LocalBranches() ([]string, error)
	DiffSummary(base, head string) (*git.DiffSummary, error)
	ShowFile(ref, path string) (string, error)
}

// Workspace is everything the analyzer needs from the working tree.
type Workspace interface {
	SourceFiles() ([]string, error)
	DocFiles() ([]string, error)
	Exists(path string) bool
	ReadFile(path string) (string, error)
}

// Options configures a single analysis run.
type Options struct {
	RepoPath     string
	BaseBranch   string // default main, falling back to master
	HeadBranch   string // default HEAD
	MaxDepth     int    // impact traversal hops, default DefaultMaxDepth
	SkipBreaking bool
	SkipCoverage bool
	SkipDocs     bool
	Weights      Weights // zero value means DefaultWeights

	// Progress, when set, is called as each pipeline stage starts.
	Progress func(stage string)
}

func (o *Options) progress(stage string) {
	if o.Progress != nil {
		o.Progress(stage)
	}
}

func (o *Options) applyDefaults(vcs VCS) error {
	if o.HeadBranch == "" {
		o.HeadBranch = "HEAD"
	}
	if o.BaseBranch == "" {
		o.BaseBranch = "main"
		if !vcs.RefExists("main") && vcs.RefExists("master") {
			o.BaseBranch = "master"
		}
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.Weights == (Weights{}) {
		o.Weights = DefaultWeights()
	}
	return o.Weights.Validate()
}

// AnalyzePR runs the full pipeline: diff parse, dependency scan, the
// four analyses in parallel, then risk aggregation. Skipped analyses
// contribute neutral zero-value results; the import scan and risk
// model always run. Validation failures (not a repo, unknown refs,
// bad weights) are fatal; per-file failures inside an analysis are
// not.
func AnalyzePR(ctx context.Context, vcs VCS, ws Workspace, opts Options) (*model.PRAnalysis, error) {
	if !vcs.IsRepo() {
		return nil, fmt.Errorf("%s is not a git repository", opts.RepoPath)
	}
	if err := opts.applyDefaults(vcs); err != nil {
		return nil, err
	}
	if !vcs.RefExists(opts.BaseBranch) {
		if branches, err := vcs.LocalBranches(); err == nil && len(branches) > 0 {
			return nil, fmt.Errorf("base ref %q does not exist (local branches: %s)", opts.BaseBranch, strings.Join(branches, ", "))
		}
		return nil, fmt.Errorf("base ref %q does not exist", opts.BaseBranch)
	}
	if !vcs.RefExists(opts.HeadBranch) {
		return nil, fmt.Errorf("head ref %q does not exist", opts.HeadBranch)
	}

	opts.progress("diff")
	changed, err := diff.ParseRefs(vcs, opts.BaseBranch, opts.HeadBranch)
	if err != nil {
		return nil, err
	}
	slog.Debug("diff parsed", "files", len(changed), "base", opts.BaseBranch, "head", opts.HeadBranch)

	opts.progress("imports")
	deps, err := BuildDepMap(ctx, ws)
	if err != nil {
		return nil, fmt.Errorf("scan imports: %w", err)
	}

	a := &model.PRAnalysis{
		RepoPath:     opts.RepoPath,
		BaseBranch:   opts.BaseBranch,
		HeadBranch:   opts.HeadBranch,
		ChangedFiles: changed,
		TestCoverage: model.TestCoverageReport{CoverageRatio: 1},
	}

	opts.progress("analyses")
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if opts.SkipBreaking {
			a.BreakingChanges = []model.BreakingChange{}
			return nil
		}
		a.BreakingChanges = DetectBreakingChanges(vcs, opts.BaseBranch, opts.HeadBranch, changed, deps)
		return ctx.Err()
	})
	g.Go(func() error {
		if !opts.SkipCoverage {
			a.TestCoverage = CheckTestCoverage(ws, changed)
		}
		return ctx.Err()
	})
	g.Go(func() error {
		if opts.SkipDocs {
			a.DocStaleness = model.DocStalenessReport{}
			return nil
		}
		a.DocStaleness = CheckDocStaleness(vcs, ws, changed, opts.BaseBranch, opts.HeadBranch)
		return ctx.Err()
	})
	g.Go(func() error {
		a.ImpactGraph = BuildImpactGraph(changed, deps, opts.MaxDepth)
		return ctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	opts.progress("risk")
	a.RiskScore = ComputeRisk(a, opts.Weights)
	a.Summary = summarize(a)
	return a, nil
}

// AnalyzeChangedFiles runs the pipeline stages that need no VCS access,
// for change sets obtained from a raw unified diff. Breaking change and
// doc staleness detection need ref contents and are skipped.
func AnalyzeChangedFiles(ctx context.Context, ws Workspace, changed []model.ChangedFile, opts Options) (*model.PRAnalysis, error) {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.Weights == (Weights{}) {
		opts.Weights = DefaultWeights()
	}
	if err := opts.Weights.Validate(); err != nil {
		return nil, err
	}

	deps, err := BuildDepMap(ctx, ws)
	if err != nil {
		return nil, fmt.Errorf("scan imports: %w", err)
	}

	a := &model.PRAnalysis{
		RepoPath:        opts.RepoPath,
		BaseBranch:      opts.BaseBranch,
		HeadBranch:      opts.HeadBranch,
		ChangedFiles:    changed,
		BreakingChanges: []model.BreakingChange{},
		TestCoverage:    model.TestCoverageReport{CoverageRatio: 1},
	}
	if !opts.SkipCoverage {
		a.TestCoverage = CheckTestCoverage(ws, changed)
	}
	a.ImpactGraph = BuildImpactGraph(changed, deps, opts.MaxDepth)
	a.RiskScore = ComputeRisk(a, opts.Weights)
	a.Summary = summarize(a)
	return a, nil
}

func summarize(a *model.PRAnalysis) string {
	files, added, deleted := a.Stats()
	s := fmt.Sprintf("%d file(s) changed (+%d/-%d). Risk: %s (%d/100).",
		files, added, deleted, a.RiskScore.Level, a.RiskScore.Score)
	if n := len(a.BreakingChanges); n > 0 {
		s += fmt.Sprintf(" %d breaking change(s).", n)
	}
	if n := len(a.TestCoverage.Gaps); n > 0 {
		s += fmt.Sprintf(" %d file(s) missing test changes.", n)
	}
	if n := len(a.DocStaleness.StaleReferences); n > 0 {
		s += fmt.Sprintf(" %d stale doc reference(s).", n)
	}
	if n := len(a.ImpactGraph.IndirectlyAffected); n > 0 {
		s += fmt.Sprintf(" %d file(s) indirectly affected.", n)
	}
	return s
}
