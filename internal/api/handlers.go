package api

import (
	"net/http"

	"github.com/ducdmdev/prrisk/internal/analysis"
	"github.com/ducdmdev/prrisk/internal/git"
	"github.com/ducdmdev/prrisk/internal/repofs"
)

// --- Health ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Analyze ---

type analyzeRequest struct {
	RepoPath string   `json:"repoPath"`
	Base     string   `json:"base,omitempty"`
	Head     string   `json:"head,omitempty"`
	MaxDepth int      `json:"maxDepth,omitempty"`
	Skip     []string `json:"skip,omitempty"`
}

func (req analyzeRequest) options() analysis.Options {
	opts := analysis.Options{
		RepoPath:   req.RepoPath,
		BaseBranch: req.Base,
		HeadBranch: req.Head,
		MaxDepth:   req.MaxDepth,
	}
	for _, skip := range req.Skip {
		switch skip {
		case "breaking":
			opts.SkipBreaking = true
		case "coverage":
			opts.SkipCoverage = true
		case "docs":
			opts.SkipDocs = true
		}
	}
	return opts
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	if req.RepoPath == "" {
		writeError(w, http.StatusBadRequest, "repoPath is required")
		return
	}

	vcs := git.NewClient(req.RepoPath)
	ws := repofs.New(req.RepoPath)

	result, err := analysis.AnalyzePR(r.Context(), vcs, ws, req.options())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}
