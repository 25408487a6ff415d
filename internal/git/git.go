// Package git is the read-only VCS collaborator: every query shells
// out to the git binary, nothing ever mutates the working tree.
package git

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ErrNotFound reports that a path does not exist at the requested ref.
var ErrNotFound = errors.New("path not found at ref")

// Rename is an old-path/new-path pair from a diff summary.
type Rename struct {
	From string
	To   string
}

// DiffEntry is one file's numstat line. PathSpec may still carry
// rename-arrow notation ("dir/{old => new}.ts"); resolution is the
// diff parser's job.
type DiffEntry struct {
	PathSpec  string
	Additions int
	Deletions int
	Binary    bool
}

// DiffSummary is the per-file summary of base..head.
type DiffSummary struct {
	Entries []DiffEntry
	Created []string
	Deleted []string
	Renamed []Rename
}

// Client runs git commands against one repository.
type Client struct {
	Dir string
}

// NewClient returns a client rooted at repoDir.
func NewClient(repoDir string) *Client {
	return &Client{Dir: repoDir}
}

func (c *Client) run(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = c.Dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return string(out), nil
}

// IsRepo reports whether Dir is inside a git work tree.
func (c *Client) IsRepo() bool {
	out, err := c.run("rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(out) == "true"
}

// RefExists reports whether ref resolves to a commit.
func (c *Client) RefExists(ref string) bool {
	_, err := c.run("rev-parse", "--verify", "--quiet", ref+"^{commit}")
	return err == nil
}

// LocalBranches lists local branch names.
func (c *Client) LocalBranches() ([]string, error) {
	out, err := c.run("branch", "--format=%(refname:short)")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// DiffSummary produces the per-file diff summary for base..head with
// rename detection enabled.
func (c *Client) DiffSummary(base, head string) (*DiffSummary, error) {
	numstat, err := c.run("diff", "--numstat", "-M", base+".."+head)
	if err != nil {
		return nil, err
	}
	summary, err := c.run("diff", "--summary", "-M", base+".."+head)
	if err != nil {
		return nil, err
	}

	ds := &DiffSummary{Entries: ParseNumstat(numstat)}
	created, deleted, renamed := ParseSummary(summary)
	ds.Created = created
	ds.Deleted = deleted
	ds.Renamed = renamed
	return ds, nil
}

// ShowFile returns a file's content at ref:path. A path missing at
// that ref yields ErrNotFound; other failures are returned as-is.
func (c *Client) ShowFile(ref, path string) (string, error) {
	cmd := exec.Command("git", "show", ref+":"+path)
	cmd.Dir = c.Dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		msg := stderr.String()
		if strings.Contains(msg, "does not exist") ||
			strings.Contains(msg, "exists on disk, but not in") ||
			strings.Contains(msg, "invalid object name") {
			return "", fmt.Errorf("%s at %s: %w", path, ref, ErrNotFound)
		}
		return "", fmt.Errorf("git show %s:%s: %w: %s", ref, path, err, strings.TrimSpace(msg))
	}
	return string(out), nil
}

// ParseNumstat parses `git diff --numstat` output. Binary files show
// "-" counts and are flagged instead of dropped.
func ParseNumstat(out string) []DiffEntry {
	var entries []DiffEntry
	for _, line := range splitLines(out) {
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) != 3 {
			continue
		}
		e := DiffEntry{PathSpec: parts[2]}
		if parts[0] == "-" || parts[1] == "-" {
			e.Binary = true
		} else {
			e.Additions, _ = strconv.Atoi(parts[0])
			e.Deletions, _ = strconv.Atoi(parts[1])
		}
		entries = append(entries, e)
	}
	return entries
}

// ParseSummary parses `git diff --summary` output into created,
// deleted, and renamed file lists.
func ParseSummary(out string) (created, deleted []string, renamed []Rename) {
	for _, line := range splitLines(out) {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "create mode "):
			if p := afterMode(line, "create mode "); p != "" {
				created = append(created, p)
			}
		case strings.HasPrefix(line, "delete mode "):
			if p := afterMode(line, "delete mode "); p != "" {
				deleted = append(deleted, p)
			}
		case strings.HasPrefix(line, "rename "):
			spec := strings.TrimPrefix(line, "rename ")
			// Trailing similarity marker: "rename a => b (92%)"
			if i := strings.LastIndex(spec, " ("); i >= 0 && strings.HasSuffix(spec, "%)") {
				spec = spec[:i]
			}
			if from, to, ok := SplitRenameArrow(spec); ok {
				renamed = append(renamed, Rename{From: from, To: to})
			}
		}
	}
	return created, deleted, renamed
}

// SplitRenameArrow resolves git rename notation: either a braced form
// "prefix{old => new}suffix" or a plain "old => new".
func SplitRenameArrow(spec string) (from, to string, ok bool) {
	open := strings.Index(spec, "{")
	arrow := strings.Index(spec, " => ")
	if arrow < 0 {
		return "", "", false
	}
	if open >= 0 && open < arrow {
		closeIdx := strings.Index(spec[arrow:], "}")
		if closeIdx < 0 {
			return "", "", false
		}
		closeIdx += arrow
		prefix := spec[:open]
		oldPart := spec[open+1 : arrow]
		newPart := spec[arrow+4 : closeIdx]
		suffix := spec[closeIdx+1:]
		from = cleanJoin(prefix, oldPart, suffix)
		to = cleanJoin(prefix, newPart, suffix)
		return from, to, true
	}
	return strings.TrimSpace(spec[:arrow]), strings.TrimSpace(spec[arrow+4:]), true
}

// cleanJoin concatenates rename parts, collapsing the "//" produced by
// an empty brace side ("src/{ => lib}/a.ts").
func cleanJoin(prefix, mid, suffix string) string {
	s := prefix + mid + suffix
	for strings.Contains(s, "//") {
		s = strings.ReplaceAll(s, "//", "/")
	}
	return s
}

// afterMode strips the leading file mode from a summary line tail,
// e.g. "100644 src/a.ts" -> "src/a.ts".
func afterMode(line, prefix string) string {
	rest := strings.TrimPrefix(line, prefix)
	if i := strings.Index(rest, " "); i >= 0 {
		return rest[i+1:]
	}
	return ""
}

func splitLines(s string) []string {
	var lines []string
	for _, l := range strings.Split(s, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
