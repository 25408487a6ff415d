// Package model defines the core data types shared across prrisk.
package model

import "fmt"

// FileStatus describes how a file changed between two refs.
type FileStatus string

const (
	StatusAdded    FileStatus = "added"
	StatusModified FileStatus = "modified"
	StatusDeleted  FileStatus = "deleted"
	StatusRenamed  FileStatus = "renamed"
	StatusCopied   FileStatus = "copied"
)

// FileCategory classifies a repository path by its role.
type FileCategory string

const (
	CategorySource FileCategory = "source"
	CategoryTest   FileCategory = "test"
	CategoryDoc    FileCategory = "doc"
	CategoryConfig FileCategory = "config"
	CategoryOther  FileCategory = "other"
)

// ChangedFile is one entry in a parsed diff between two refs.
type ChangedFile struct {
	Path      string       `json:"path"`
	OldPath   string       `json:"oldPath,omitempty"` // rename/copy source
	Status    FileStatus   `json:"status"`
	Additions int          `json:"additions"`
	Deletions int          `json:"deletions"`
	Language  string       `json:"language"`
	Category  FileCategory `json:"category"`
}

// SymbolKind is the taxonomy of exported symbols.
type SymbolKind string

const (
	KindFunction  SymbolKind = "function"
	KindClass     SymbolKind = "class"
	KindVariable  SymbolKind = "variable"
	KindConst     SymbolKind = "const"
	KindType      SymbolKind = "type"
	KindInterface SymbolKind = "interface"
	KindEnum      SymbolKind = "enum"
)

// ExportedSymbol is a single exported symbol found in a source file.
type ExportedSymbol struct {
	Name      string     `json:"name"`
	Kind      SymbolKind `json:"kind"`
	Signature string     `json:"signature,omitempty"`
	IsDefault bool       `json:"isDefault,omitempty"`
}

// Key identifies a symbol within a file. Default exports occupy a
// separate namespace from named exports.
func (s ExportedSymbol) Key() string {
	if s.IsDefault {
		return "default:" + s.Name
	}
	return "named:" + s.Name
}

func (s ExportedSymbol) String() string {
	if s.Signature != "" {
		return fmt.Sprintf("%s %s%s", s.Kind, s.Name, s.Signature)
	}
	return fmt.Sprintf("%s %s", s.Kind, s.Name)
}

// FileExports is the ordered set of exported symbols in one file,
// deduplicated by (isDefault, name) with first occurrence winning.
type FileExports struct {
	Path    string           `json:"path"`
	Symbols []ExportedSymbol `json:"symbols"`
}

// BreakingChangeType categorizes a breaking change.
type BreakingChangeType string

const (
	RemovedExport    BreakingChangeType = "removed_export"
	ChangedSignature BreakingChangeType = "changed_signature"
	ChangedType      BreakingChangeType = "changed_type"
	// RenamedExport is part of the interchange vocabulary; the detector
	// never emits it because no removal/addition correlation heuristic
	// is implemented.
	RenamedExport BreakingChangeType = "renamed_export"
)

// Severity of a breaking change, fixed by its type.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// SeverityFor returns the severity fixed by a breaking-change type.
func SeverityFor(t BreakingChangeType) Severity {
	switch t {
	case RemovedExport:
		return SeverityHigh
	case ChangedSignature, ChangedType, RenamedExport:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// BreakingChange records a removed or incompatibly altered export.
type BreakingChange struct {
	FilePath   string             `json:"filePath"`
	Type       BreakingChangeType `json:"type"`
	SymbolName string             `json:"symbolName"`
	Before     *ExportedSymbol    `json:"before"`
	After      *ExportedSymbol    `json:"after"` // nil iff Type == RemovedExport
	Severity   Severity           `json:"severity"`
	Details    []string           `json:"details,omitempty"`
	Consumers  []string           `json:"consumers,omitempty"` // importing files, empty when not computed
}

// TestCoverageGap is a changed source file with no correspondingly
// changed test file.
type TestCoverageGap struct {
	SourceFile        string   `json:"sourceFile"`
	ExpectedTestFiles []string `json:"expectedTestFiles"`
	TestFileExists    bool     `json:"testFileExists"`
	TestFileChanged   bool     `json:"testFileChanged"` // always false for a reported gap
}

// TestCoverageReport summarizes which changed source files have a
// correspondingly changed test.
type TestCoverageReport struct {
	ChangedSourceFiles         int               `json:"changedSourceFiles"`
	SourceFilesWithTestChanges int               `json:"sourceFilesWithTestChanges"`
	CoverageRatio              float64           `json:"coverageRatio"` // 1 when no changed source files
	Gaps                       []TestCoverageGap `json:"gaps"`
}

// StaleReference is a documentation line mentioning a path or symbol
// removed or renamed in the change set.
type StaleReference struct {
	DocFile   string `json:"docFile"`
	Line      int    `json:"line"` // 1-based
	Reference string `json:"reference"`
	Reason    string `json:"reason"`
}

// DocStalenessReport lists stale references across all scanned docs.
type DocStalenessReport struct {
	StaleReferences []StaleReference `json:"staleReferences"`
	CheckedFiles    []string         `json:"checkedFiles"`
}

// ImpactEdge is a reverse-import edge: From imports To.
type ImpactEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type"` // always "imports"
}

// ImpactGraph is the blast radius of a change set: directly changed
// source files plus files transitively depending on them via imports.
// DirectlyChanged and IndirectlyAffected are always disjoint.
type ImpactGraph struct {
	DirectlyChanged    []string     `json:"directlyChanged"`
	IndirectlyAffected []string     `json:"indirectlyAffected"`
	Edges              []ImpactEdge `json:"edges"`
}

// RiskLevel buckets a 0-100 risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"      // 0-25
	RiskMedium   RiskLevel = "medium"   // 26-50
	RiskHigh     RiskLevel = "high"     // 51-75
	RiskCritical RiskLevel = "critical" // 76-100
)

// LevelForScore maps a score to its level. The 25/50/75 boundaries
// belong to the lower bucket.
func LevelForScore(score int) RiskLevel {
	switch {
	case score <= 25:
		return RiskLow
	case score <= 50:
		return RiskMedium
	case score <= 75:
		return RiskHigh
	default:
		return RiskCritical
	}
}

// Rank orders levels for exit-code and display decisions.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskLow:
		return 0
	case RiskMedium:
		return 1
	case RiskHigh:
		return 2
	case RiskCritical:
		return 3
	default:
		return -1
	}
}

// RiskFactor is one independently scored contributor to the overall
// risk score.
type RiskFactor struct {
	Name        string   `json:"name"`
	Score       int      `json:"score"` // 0-100
	Weight      float64  `json:"weight"`
	Description string   `json:"description"`
	Details     []string `json:"details,omitempty"`
}

// RiskAssessment is the weighted aggregate of exactly six factors.
// Factor weights sum to 1.00.
type RiskAssessment struct {
	Score   int          `json:"score"` // 0-100
	Level   RiskLevel    `json:"level"`
	Factors []RiskFactor `json:"factors"`
}

// PRAnalysis is the full result of one analysis run. It is the sole
// interchange contract between the engine and any rendering layer;
// renderers may not alter field names or value ranges.
type PRAnalysis struct {
	RepoPath        string             `json:"repoPath"`
	BaseBranch      string             `json:"baseBranch"`
	HeadBranch      string             `json:"headBranch"`
	ChangedFiles    []ChangedFile      `json:"changedFiles"`
	BreakingChanges []BreakingChange   `json:"breakingChanges"`
	TestCoverage    TestCoverageReport `json:"testCoverage"`
	DocStaleness    DocStalenessReport `json:"docStaleness"`
	ImpactGraph     ImpactGraph        `json:"impactGraph"`
	RiskScore       RiskAssessment     `json:"riskScore"`
	Summary         string             `json:"summary"`
}

// Stats returns aggregate line counts across changed files.
func (a *PRAnalysis) Stats() (files, added, deleted int) {
	files = len(a.ChangedFiles)
	for _, f := range a.ChangedFiles {
		added += f.Additions
		deleted += f.Deletions
	}
	return
}
