package chapter

import (
	"testing"

	"github.com/louisbranch/gitdungeon/internal/content"
)

func testChapterConfigs() map[content.ChapterType]content.ChapterConfig {
	r, err := content.Build(content.DefaultBase())
	if err != nil {
		panic(err)
	}
	return r.Chapters
}

func TestFingerprintStableForEqualCommitsAndSensitiveToOrder(t *testing.T) {
	a := []Commit{{Hash: "h1"}, {Hash: "h2"}}
	b := []Commit{{Hash: "h1"}, {Hash: "h2"}}
	c := []Commit{{Hash: "h2"}, {Hash: "h1"}}

	if Fingerprint(a) != Fingerprint(b) {
		t.Fatalf("expected identical commit sequences to fingerprint identically")
	}
	if Fingerprint(a) == Fingerprint(c) {
		t.Fatalf("expected reordered commits to fingerprint differently")
	}
	if Fingerprint(nil) == "" {
		t.Fatal("expected a non-empty fingerprint even for an empty commit list")
	}
}

func TestPartitionFirstTwoCommitsAreInitial(t *testing.T) {
	commits := []Commit{
		{Message: "feat: add login"},
		{Message: "fix: typo"},
		{Message: "feat: add signup"},
		{Message: "feat: add logout"},
		{Message: "feat: add profile"},
		{Message: "feat: add avatar"},
	}
	chapters := Partition(commits, testChapterConfigs())
	if len(chapters) == 0 {
		t.Fatal("expected at least one chapter")
	}
	if chapters[0].Type != content.ChapterInitial {
		t.Fatalf("expected first chapter to be initial, got %s", chapters[0].Type)
	}
	if chapters[0].CommitStart != 0 {
		t.Fatalf("expected first chapter to start at commit 0, got %d", chapters[0].CommitStart)
	}
}

func TestPartitionKeywordRuleMerge(t *testing.T) {
	commits := []Commit{
		{Message: "feat: a"}, {Message: "feat: b"},
		{Message: "feat: c"}, {Message: "feat: d"}, {Message: "feat: e"},
		{Message: "feat: f"}, {Message: "feat: g"},
		{Message: "Merge branch 'release'"},
	}
	chapters := Partition(commits, testChapterConfigs())
	last := chapters[len(chapters)-1]
	if last.Type != content.ChapterIntegration {
		t.Fatalf("expected last chapter to be integration, got %s", last.Type)
	}
}

func TestPartitionEmptyRepo(t *testing.T) {
	chapters := Partition(nil, testChapterConfigs())
	if chapters != nil {
		t.Fatalf("expected nil chapters for empty commit list, got %v", chapters)
	}
}

func TestDifficultyFactorLargeAdditions(t *testing.T) {
	c := Commit{Additions: 150, Deletions: 10}
	if got := c.DifficultyFactor(); got != 0.5 {
		t.Fatalf("expected difficulty 0.5, got %v", got)
	}
}

func TestDifficultyFactorRevertMentioningMerge(t *testing.T) {
	c := Commit{Message: "Revert \"merge stuff\"", Additions: 5, Deletions: 5}
	got := c.DifficultyFactor()
	if got != 0.5 {
		t.Fatalf("expected difficulty 0.5 for revert-only commit, got %v", got)
	}
}

func TestCreatureNameFromPrefix(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"feat: add login", "Feature"},
		{"fix: crash on load", "Bug"},
		{"docs: update readme", "Documentation"},
		{"chore(deps): bump version", "Chore"},
	}
	for _, tt := range tests {
		c := Commit{Message: tt.message}
		if got := c.CreatureName(); got != tt.want {
			t.Errorf("CreatureName(%q) = %q, want %q", tt.message, got, tt.want)
		}
	}
}
