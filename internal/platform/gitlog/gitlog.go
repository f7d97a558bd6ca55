// Package gitlog is the repository reader spec.md §1 names as an
// external collaborator: "a plain function returning commit records".
// It shells out to the system git binary rather than embedding a Git
// implementation, mirroring the teacher's exec.Command pattern for
// delegating to an external process (cmd/entrypoint/main.go).
package gitlog

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/louisbranch/gitdungeon/internal/chapter"
)

const recordMarker = "@@gitdungeon-commit@@"

// Read runs `git log` against repoPath and returns every commit on the
// first-parent history, oldest first, in the shape chapter.Partition
// expects.
func Read(ctx context.Context, repoPath string) ([]chapter.Commit, error) {
	format := recordMarker + "%n%H%n%h%n%an%n%at%n%s"
	cmd := exec.CommandContext(ctx, "git", "-C", repoPath, "log",
		"--first-parent", "--reverse", "--numstat",
		"--pretty=format:"+format)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("gitlog: git log: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return parseLog(&stdout)
}

// parseLog splits the `git log` output into per-commit records separated
// by recordMarker, each carrying header fields followed by zero or more
// numstat lines.
func parseLog(r *bytes.Buffer) ([]chapter.Commit, error) {
	var commits []chapter.Commit
	var cur *chapter.Commit
	var headerLines []string

	flush := func() {
		if cur != nil {
			commits = append(commits, *cur)
		}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == recordMarker {
			flush()
			cur = &chapter.Commit{}
			headerLines = nil
			continue
		}
		if cur == nil {
			continue
		}
		if len(headerLines) < 4 {
			headerLines = append(headerLines, line)
			if len(headerLines) == 4 {
				cur.Hash = headerLines[0]
				cur.ShortHash = headerLines[1]
				cur.Author = headerLines[2]
				if ts, err := strconv.ParseInt(headerLines[3], 10, 64); err == nil {
					cur.Timestamp = ts
				}
			}
			continue
		}
		if cur.Message == "" && line != "" {
			cur.Message = line
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		add, del, ok := parseNumstat(line)
		if ok {
			cur.Additions += add
			cur.Deletions += del
		}
	}
	flush()
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("gitlog: scan: %w", err)
	}
	return commits, nil
}

// parseNumstat reads one "<additions>\t<deletions>\t<path>" line. Binary
// files report "-" for both counts, which count as zero changes.
func parseNumstat(line string) (int, int, bool) {
	fields := strings.SplitN(line, "\t", 3)
	if len(fields) < 2 {
		return 0, 0, false
	}
	add, aerr := strconv.Atoi(fields[0])
	del, derr := strconv.Atoi(fields[1])
	if aerr != nil || derr != nil {
		return 0, 0, true
	}
	return add, del, true
}

// Fingerprint derives a stable repository identity from its commit hash
// sequence (GLOSSARY "Run fingerprint"). Forwards to chapter.Fingerprint,
// which the engine also calls directly when stamping a new run, so both
// paths agree on the same hash.
func Fingerprint(commits []chapter.Commit) string {
	return chapter.Fingerprint(commits)
}
