package model

import (
	"testing"
)

func TestLevelForScore(t *testing.T) {
	tests := []struct {
		score int
		want  RiskLevel
	}{
		{0, RiskLow},
		{25, RiskLow},
		{26, RiskMedium},
		{50, RiskMedium},
		{51, RiskHigh},
		{75, RiskHigh},
		{76, RiskCritical},
		{100, RiskCritical},
	}
	for _, tt := range tests {
		if got := LevelForScore(tt.score); got != tt.want {
			t.Errorf("LevelForScore(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestSeverityFor(t *testing.T) {
	tests := []struct {
		typ  BreakingChangeType
		want Severity
	}{
		{RemovedExport, SeverityHigh},
		{ChangedSignature, SeverityMedium},
		{ChangedType, SeverityMedium},
		{RenamedExport, SeverityMedium},
	}
	for _, tt := range tests {
		if got := SeverityFor(tt.typ); got != tt.want {
			t.Errorf("SeverityFor(%q) = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestSymbolKey(t *testing.T) {
	named := ExportedSymbol{Name: "foo", Kind: KindFunction}
	def := ExportedSymbol{Name: "foo", Kind: KindFunction, IsDefault: true}
	if named.Key() == def.Key() {
		t.Error("default and named exports of the same name must not collide")
	}
}

func TestStats(t *testing.T) {
	a := PRAnalysis{ChangedFiles: []ChangedFile{
		{Path: "a.ts", Additions: 10, Deletions: 2},
		{Path: "b.ts", Additions: 5, Deletions: 8},
	}}
	files, added, deleted := a.Stats()
	if files != 2 || added != 15 || deleted != 10 {
		t.Errorf("Stats() = %d/%d/%d, want 2/15/10", files, added, deleted)
	}
}
