package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ducdmdev/prrisk/internal/analysis"
	"github.com/ducdmdev/prrisk/internal/config"
	"github.com/ducdmdev/prrisk/internal/diff"
	"github.com/ducdmdev/prrisk/internal/git"
	"github.com/ducdmdev/prrisk/internal/model"
	"github.com/ducdmdev/prrisk/internal/report"
	"github.com/ducdmdev/prrisk/internal/repofs"
	"github.com/ducdmdev/prrisk/internal/tui"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [repo-path]",
	Short: "Analyze the risk of the changes between two refs",
	Long: `Analyze the diff between a base and head ref and print a risk report.
With "-" as the argument, a unified diff is read from stdin instead;
breaking-change and doc-staleness detection are skipped in that mode
because they need ref contents.

Examples:
  prrisk analyze                       # current repo, main..HEAD
  prrisk analyze ~/src/webapp -b develop
  git diff main...HEAD | prrisk analyze -

Exit codes:
  0 — low risk
  1 — medium risk
  2 — high or critical risk`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringP("base", "b", "", "base ref (default main, falling back to master)")
	analyzeCmd.Flags().String("head", "", "head ref (default HEAD)")
	analyzeCmd.Flags().StringP("format", "f", "text", "output format: text, markdown, json")
	analyzeCmd.Flags().StringSlice("skip", nil, "analyses to skip: breaking, coverage, docs")
	analyzeCmd.Flags().Int("max-depth", 0, "impact traversal depth in import hops")
	analyzeCmd.Flags().StringP("config", "c", "", "path to config file (default <repo>/.prrisk.yaml)")
	analyzeCmd.Flags().BoolP("interactive", "i", false, "open the interactive result viewer")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	stdinMode := len(args) == 1 && args[0] == "-"

	repoPath := "."
	if len(args) == 1 && !stdinMode {
		repoPath = args[0]
	}
	repoPath, err := filepath.Abs(repoPath)
	if err != nil {
		return err
	}

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath, repoPath)
	if err != nil {
		return err
	}

	opts := optionsFrom(cmd, cfg, repoPath)

	var a *model.PRAnalysis
	ws := repofs.New(repoPath)
	if stdinMode {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		changed, err := diff.ParseUnified(string(raw))
		if err != nil {
			return fmt.Errorf("parsing diff: %w", err)
		}
		if len(changed) == 0 {
			fmt.Println("No changes to analyze.")
			return nil
		}
		a, err = analysis.AnalyzeChangedFiles(cmd.Context(), ws, changed, opts)
		if err != nil {
			return err
		}
	} else {
		a, err = analysis.AnalyzePR(cmd.Context(), git.NewClient(repoPath), ws, opts)
		if err != nil {
			return err
		}
	}

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		return tui.Run(a)
	}

	format, _ := cmd.Flags().GetString("format")
	out, err := report.Render(a, format)
	if err != nil {
		return err
	}
	fmt.Print(out)

	switch a.RiskScore.Level {
	case model.RiskHigh, model.RiskCritical:
		os.Exit(2)
	case model.RiskMedium:
		os.Exit(1)
	}
	return nil
}

func optionsFrom(cmd *cobra.Command, cfg config.Config, repoPath string) analysis.Options {
	opts := analysis.Options{
		RepoPath:   repoPath,
		BaseBranch: cfg.BaseBranch,
		HeadBranch: cfg.HeadBranch,
		MaxDepth:   cfg.MaxDepth,
		Weights:    cfg.Weights,
	}
	if base, _ := cmd.Flags().GetString("base"); base != "" {
		opts.BaseBranch = base
	}
	if head, _ := cmd.Flags().GetString("head"); head != "" {
		opts.HeadBranch = head
	}
	if depth, _ := cmd.Flags().GetInt("max-depth"); depth > 0 {
		opts.MaxDepth = depth
	}

	skips := cfg.SkipSet()
	if flagSkips, _ := cmd.Flags().GetStringSlice("skip"); len(flagSkips) > 0 {
		skips = make(map[string]bool, len(flagSkips))
		for _, s := range flagSkips {
			skips[s] = true
		}
	}
	opts.SkipBreaking = skips["breaking"]
	opts.SkipCoverage = skips["coverage"]
	opts.SkipDocs = skips["docs"]
	return opts
}
