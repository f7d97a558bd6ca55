package chapter

import (
	"strings"

	"github.com/louisbranch/gitdungeon/internal/content"
)

// Chapter is an ordered reference to a contiguous commit slice (§3), with
// the type and configuration that drove its creation.
type Chapter struct {
	Index        int
	Type         content.ChapterType
	Config       content.ChapterConfig
	CommitStart  int // inclusive index into the original commit slice
	CommitEnd    int // exclusive
	Commits      []Commit
}

// Partition walks commits oldest-first and assigns each to a chapter by
// the position and keyword rules of §4.3, closing a chapter once its type
// changes (and it has met its minimum) or it hits its configured maximum.
func Partition(commits []Commit, chapters map[content.ChapterType]content.ChapterConfig) []Chapter {
	if len(commits) == 0 {
		return nil
	}

	types := make([]content.ChapterType, len(commits))
	for i, c := range commits {
		types[i] = classifyChapterType(i, len(commits), c)
	}

	var result []Chapter
	start := 0
	for start < len(commits) {
		curType := types[start]
		cfg := chapters[curType]
		end := start + 1
		for end < len(commits) {
			count := end - start
			if count >= cfg.MaxCommits {
				break
			}
			if types[end] != curType && count >= cfg.MinCommits {
				break
			}
			// Integration and legacy chapters may close after a single
			// commit even if the type run continues.
			if (curType == content.ChapterIntegration || curType == content.ChapterLegacy) && count >= 1 {
				break
			}
			end++
		}
		result = append(result, Chapter{
			Index:       len(result),
			Type:        curType,
			Config:      cfg,
			CommitStart: start,
			CommitEnd:   end,
			Commits:     commits[start:end],
		})
		start = end
	}
	return result
}

// classifyChapterType applies §4.3's position rule then keyword rule.
func classifyChapterType(index, total int, c Commit) content.ChapterType {
	if index < 2 {
		return content.ChapterInitial
	}

	msg := strings.ToLower(strings.TrimSpace(c.Message))
	switch {
	case strings.Contains(msg, "merge"):
		return content.ChapterIntegration
	case strings.Contains(msg, "release"), strings.Contains(msg, "version"), strings.Contains(msg, "tag"):
		return content.ChapterLegacy
	case strings.Contains(msg, "fix"), strings.Contains(msg, "bug"), strings.Contains(msg, "hotfix"):
		return content.ChapterFix
	case strings.Contains(msg, "feat"):
		return content.ChapterFeature
	}

	// Fall back to a position-based bucket: first 40% feature, next 30%
	// fix, remainder legacy.
	if total <= 2 {
		return content.ChapterFeature
	}
	fraction := float64(index) / float64(total)
	switch {
	case fraction < 0.4:
		return content.ChapterFeature
	case fraction < 0.7:
		return content.ChapterFix
	default:
		return content.ChapterLegacy
	}
}
