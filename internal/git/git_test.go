package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumstat(t *testing.T) {
	out := "10\t2\tsrc/a.ts\n-\t-\tassets/logo.png\n0\t15\tsrc/old.ts\n"
	entries := ParseNumstat(out)

	assert.Len(t, entries, 3)
	assert.Equal(t, DiffEntry{PathSpec: "src/a.ts", Additions: 10, Deletions: 2}, entries[0])
	assert.True(t, entries[1].Binary)
	assert.Equal(t, "assets/logo.png", entries[1].PathSpec)
	assert.Equal(t, 15, entries[2].Deletions)
}

func TestParseSummary(t *testing.T) {
	out := ` create mode 100644 src/new.ts
 delete mode 100644 src/gone.ts
 rename src/{old => new}/util.ts (95%)
 rename a.ts => b.ts (100%)
`
	created, deleted, renamed := ParseSummary(out)

	assert.Equal(t, []string{"src/new.ts"}, created)
	assert.Equal(t, []string{"src/gone.ts"}, deleted)
	assert.Equal(t, []Rename{
		{From: "src/old/util.ts", To: "src/new/util.ts"},
		{From: "a.ts", To: "b.ts"},
	}, renamed)
}

func TestSplitRenameArrow(t *testing.T) {
	tests := []struct {
		spec string
		from string
		to   string
		ok   bool
	}{
		{"src/{old => new}/util.ts", "src/old/util.ts", "src/new/util.ts", true},
		{"old.ts => new.ts", "old.ts", "new.ts", true},
		{"src/{ => sub}/a.ts", "src/a.ts", "src/sub/a.ts", true},
		{"src/{sub => }/a.ts", "src/sub/a.ts", "src/a.ts", true},
		{"lib/{a.ts => b.ts}", "lib/a.ts", "lib/b.ts", true},
		{"no-arrow-here.ts", "", "", false},
	}
	for _, tt := range tests {
		from, to, ok := SplitRenameArrow(tt.spec)
		assert.Equal(t, tt.ok, ok, tt.spec)
		if ok {
			assert.Equal(t, tt.from, from, tt.spec)
			assert.Equal(t, tt.to, to, tt.spec)
		}
	}
}
