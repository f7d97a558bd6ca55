// Package chapter implements the commit-to-encounter translator and the
// chapter partitioner (spec.md §4.3): it turns an ordered list of commit
// records into chapters of a fixed type, and parameterises enemies from
// individual commits.
package chapter

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Commit is the commit record shape the repository reader (an external
// collaborator, §6) is expected to supply.
type Commit struct {
	Hash      string
	ShortHash string
	Message   string
	Author    string
	Timestamp int64
	Additions int
	Deletions int
}

// TotalChanges is additions + deletions, per §3.
func (c Commit) TotalChanges() int {
	return c.Additions + c.Deletions
}

// Fingerprint derives a stable repository identity from a commit hash
// sequence (GLOSSARY "Run fingerprint"). It lives here rather than in the
// repository reader so the deterministic core can stamp a run's
// RepoFingerprint from the commits it was actually given, using the same
// xxhash primitive internal/rng already depends on.
func Fingerprint(commits []Commit) string {
	h := xxhash.New()
	for _, c := range commits {
		_, _ = h.WriteString(c.Hash)
		_, _ = h.WriteString("\n")
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

// IsMerge reports whether the commit message marks a merge commit.
func (c Commit) IsMerge() bool {
	return strings.HasPrefix(strings.ToLower(c.Message), "merge")
}

// IsRevert reports whether the commit message marks a revert commit.
func (c Commit) IsRevert() bool {
	return strings.HasPrefix(strings.ToLower(c.Message), "revert")
}

// DifficultyFactor is the supplemented per-commit scaling input from
// original_source's CommitInfo.difficulty_factor (SPEC_FULL.md
// "Supplemented Features"): large additions, large deletions, merges, and
// reverts each add a documented increment on top of §4.3's mandatory
// commit-type multiplier.
func (c Commit) DifficultyFactor() float64 {
	var f float64
	switch {
	case c.Additions > 100:
		f += 0.5
	case c.Additions > 50:
		f += 0.3
	}
	switch {
	case c.Deletions > 50:
		f += 0.3
	case c.Deletions > 20:
		f += 0.1
	}
	if c.IsMerge() {
		f += 0.2
	}
	if c.IsRevert() {
		f += 0.5
	}
	return round1(f)
}

func round1(f float64) float64 {
	return float64(int(f*10+0.5)) / 10
}

// commitTypePrefixes maps a conventional-commit-style prefix to the
// display name used by CreatureName; order matters only for readability,
// lookup is by exact prefix match against the lowercased message.
var commitTypePrefixes = []struct {
	prefix string
	name   string
}{
	{"feat", "Feature"},
	{"fix", "Bug"},
	{"docs", "Documentation"},
	{"refactor", "Refactor"},
	{"test", "Test"},
	{"chore", "Chore"},
	{"style", "Style"},
	{"perf", "Performance"},
	{"merge", "Merge"},
	{"revert", "Revert"},
	{"ci", "CI"},
	{"build", "Build"},
	{"hotfix", "Hotfix"},
}

// CreatureName derives the enemy's display name from the commit message
// prefix (SPEC_FULL.md "Supplemented Features": get_creature_name).
func (c Commit) CreatureName() string {
	msg := strings.ToLower(strings.TrimSpace(c.Message))
	for _, m := range commitTypePrefixes {
		if strings.HasPrefix(msg, m.prefix) {
			return m.name
		}
	}
	if i := strings.IndexByte(c.Message, '('); i >= 0 {
		if j := strings.IndexByte(c.Message[i:], ')'); j > 0 {
			token := strings.TrimSpace(c.Message[i+1 : i+j])
			if token != "" {
				return capitalize(token)
			}
		}
	}
	fields := strings.Fields(c.Message)
	if len(fields) == 0 {
		return "Unknown"
	}
	return capitalize(fields[0])
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// commitType classifies a commit for the purposes of enemy attack/reward
// scaling (§4.3's "scaled by commit type" table), distinct from chapter
// type classification in partition.go.
type commitType string

const (
	typeFeat     commitType = "feat"
	typeFix      commitType = "fix"
	typeDocs     commitType = "docs"
	typeRefactor commitType = "refactor"
	typeTest     commitType = "test"
	typeChore    commitType = "chore"
	typeMerge    commitType = "merge"
	typeRevert   commitType = "revert"
	typeOther    commitType = "other"
)

func (c Commit) classify() commitType {
	msg := strings.ToLower(strings.TrimSpace(c.Message))
	switch {
	case strings.HasPrefix(msg, "merge"):
		return typeMerge
	case strings.HasPrefix(msg, "revert"):
		return typeRevert
	case strings.HasPrefix(msg, "feat"):
		return typeFeat
	case strings.HasPrefix(msg, "fix"), strings.HasPrefix(msg, "hotfix"):
		return typeFix
	case strings.HasPrefix(msg, "docs"):
		return typeDocs
	case strings.HasPrefix(msg, "refactor"):
		return typeRefactor
	case strings.HasPrefix(msg, "test"):
		return typeTest
	case strings.HasPrefix(msg, "chore"):
		return typeChore
	default:
		return typeOther
	}
}

// attackMultiplier is §4.3's "attack scaled by commit type" table.
var attackMultiplier = map[commitType]float64{
	typeFeat:     1.2,
	typeFix:      1.5,
	typeDocs:     0.3,
	typeRefactor: 0.8,
	typeTest:     0.6,
	typeChore:    0.5,
	typeMerge:    1.5,
	typeRevert:   1.8,
	typeOther:    1.0,
}

// rewardMultiplier scales experience and gold reward by commit type,
// grounded on original_source's per-type bonuses (merge=1.5, refactor=1.2,
// fix=1.1, feat=1.0, docs=0.8; other types default to 1.0).
var rewardMultiplier = map[commitType]float64{
	typeMerge:    1.5,
	typeRefactor: 1.2,
	typeFix:      1.1,
	typeFeat:     1.0,
	typeDocs:     0.8,
	typeTest:     1.0,
	typeChore:    1.0,
	typeRevert:   1.0,
	typeOther:    1.0,
}
