package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ducdmdev/prrisk/internal/model"
)

func buildDeps(t *testing.T, sources map[string]string) *DepMap {
	t.Helper()
	deps, err := BuildDepMap(context.Background(), &fakeWorkspace{sources: sources})
	require.NoError(t, err)
	return deps
}

func TestBuildDepMapResolution(t *testing.T) {
	deps := buildDeps(t, map[string]string{
		"src/core.ts":        "export const x = 1;",
		"src/util/index.ts":  "export const y = 2;",
		"src/a.ts":           "import { x } from './core';\nimport { y } from './util';",
		"src/b.ts":           "const core = require('./core.ts');",
		"src/c.ts":           "import('./core');",
		"src/unrelated.ts":   "import fs from 'fs';",
		"src/bare-import.ts": "import './core';",
	})

	assert.Equal(t, []string{"src/a.ts", "src/b.ts", "src/bare-import.ts", "src/c.ts"}, deps.Importers("src/core.ts"))
	assert.Equal(t, []string{"src/a.ts"}, deps.Importers("src/util/index.ts"))
	assert.Empty(t, deps.Importers("src/unrelated.ts"))
}

func TestBuildDepMapIgnoresPackages(t *testing.T) {
	deps := buildDeps(t, map[string]string{
		"src/a.ts": "import React from 'react';\nimport { z } from '@scope/pkg';",
	})
	assert.Empty(t, deps.Importers("react"))
}

func TestBuildImpactGraph(t *testing.T) {
	// leaf <- mid <- top, and side imports leaf directly
	deps := buildDeps(t, map[string]string{
		"src/leaf.ts": "export const x = 1;",
		"src/mid.ts":  "import { x } from './leaf';",
		"src/top.ts":  "import './mid';",
		"src/side.ts": "import './leaf';",
	})
	changed := []model.ChangedFile{
		{Path: "src/leaf.ts", Status: model.StatusModified, Category: model.CategorySource},
	}

	g := BuildImpactGraph(changed, deps, DefaultMaxDepth)

	assert.Equal(t, []string{"src/leaf.ts"}, g.DirectlyChanged)
	assert.Equal(t, []string{"src/mid.ts", "src/side.ts", "src/top.ts"}, g.IndirectlyAffected)

	for _, e := range g.Edges {
		assert.Equal(t, "imports", e.Type)
	}
	assert.Contains(t, g.Edges, model.ImpactEdge{From: "src/mid.ts", To: "src/leaf.ts", Type: "imports"})
	assert.Contains(t, g.Edges, model.ImpactEdge{From: "src/top.ts", To: "src/mid.ts", Type: "imports"})
}

func TestBuildImpactGraphDepthBound(t *testing.T) {
	deps := buildDeps(t, map[string]string{
		"src/d0.ts": "export const x = 1;",
		"src/d1.ts": "import './d0';",
		"src/d2.ts": "import './d1';",
		"src/d3.ts": "import './d2';",
		"src/d4.ts": "import './d3';",
	})
	changed := []model.ChangedFile{
		{Path: "src/d0.ts", Status: model.StatusModified, Category: model.CategorySource},
	}

	g := BuildImpactGraph(changed, deps, 3)
	assert.Equal(t, []string{"src/d1.ts", "src/d2.ts", "src/d3.ts"}, g.IndirectlyAffected)

	g = BuildImpactGraph(changed, deps, 1)
	assert.Equal(t, []string{"src/d1.ts"}, g.IndirectlyAffected)
}

func TestBuildImpactGraphDisjointAndIdempotent(t *testing.T) {
	deps := buildDeps(t, map[string]string{
		"src/a.ts": "import './b';",
		"src/b.ts": "import './a';", // cycle
	})
	changed := []model.ChangedFile{
		{Path: "src/a.ts", Status: model.StatusModified, Category: model.CategorySource},
		{Path: "src/b.ts", Status: model.StatusModified, Category: model.CategorySource},
	}

	g1 := BuildImpactGraph(changed, deps, DefaultMaxDepth)
	g2 := BuildImpactGraph(changed, deps, DefaultMaxDepth)
	assert.Equal(t, g1, g2)

	direct := make(map[string]bool)
	for _, p := range g1.DirectlyChanged {
		direct[p] = true
	}
	for _, p := range g1.IndirectlyAffected {
		assert.False(t, direct[p], "%s in both sets", p)
	}

	seen := make(map[model.ImpactEdge]bool)
	for _, e := range g1.Edges {
		assert.False(t, seen[e], "duplicate edge %+v", e)
		seen[e] = true
	}
}

func TestBuildImpactGraphNonSourceExcluded(t *testing.T) {
	deps := buildDeps(t, nil)
	changed := []model.ChangedFile{
		{Path: "README.md", Status: model.StatusModified, Category: model.CategoryDoc},
		{Path: "package.json", Status: model.StatusModified, Category: model.CategoryConfig},
	}

	g := BuildImpactGraph(changed, deps, DefaultMaxDepth)
	assert.Empty(t, g.DirectlyChanged)
	assert.Empty(t, g.IndirectlyAffected)
	assert.Empty(t, g.Edges)
}
