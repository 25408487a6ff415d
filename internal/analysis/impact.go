package analysis

import (
	"sort"

	"github.com/ducdmdev/prrisk/internal/model"
)

// DefaultMaxDepth bounds impact traversal when the caller gives none.
const DefaultMaxDepth = 3

// BuildImpactGraph finds files indirectly affected by the change set:
// a bounded breadth-first search from the directly changed source
// files over the reverse import map. The depth bound counts hops;
// files already reached are not re-expanded when reached again over a
// different path, but every traversed edge is still recorded.
func BuildImpactGraph(changed []model.ChangedFile, deps *DepMap, maxDepth int) model.ImpactGraph {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	var direct []string
	directSet := make(map[string]bool)
	for _, f := range changed {
		if f.Category == model.CategorySource {
			direct = append(direct, f.Path)
			directSet[f.Path] = true
		}
	}

	visited := make(map[string]bool, len(direct))
	for _, f := range direct {
		visited[f] = true
	}

	var edges []model.ImpactEdge
	edgeSeen := make(map[string]bool)

	frontier := direct
	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []string
		for _, file := range frontier {
			for _, importer := range deps.Importers(file) {
				key := importer + "\x00" + file
				if !edgeSeen[key] {
					edgeSeen[key] = true
					edges = append(edges, model.ImpactEdge{From: importer, To: file, Type: "imports"})
				}
				if !visited[importer] {
					visited[importer] = true
					next = append(next, importer)
				}
			}
		}
		frontier = next
	}

	var indirect []string
	for f := range visited {
		if !directSet[f] {
			indirect = append(indirect, f)
		}
	}
	sort.Strings(indirect)

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})

	return model.ImpactGraph{
		DirectlyChanged:    direct,
		IndirectlyAffected: indirect,
		Edges:              edges,
	}
}
