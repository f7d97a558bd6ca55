package content

import "testing"

func TestBuildDefaultBase(t *testing.T) {
	r, err := Build(DefaultBase())
	if err != nil {
		t.Fatalf("build default base: %v", err)
	}
	if _, ok := r.Cards["strike"]; !ok {
		t.Fatal("expected strike card in registry")
	}
	if len(r.Chapters) != 5 {
		t.Fatalf("expected 5 chapter configs, got %d", len(r.Chapters))
	}
}

func TestBuildRejectsConflictingDuplicateCard(t *testing.T) {
	base := DefaultBase()
	overlay := Pack{
		ID: "overlay",
		Cards: []CardDef{
			{ID: "strike", Name: "Strike", Type: CardTypeAttack, Rarity: RarityBasic, Cost: 2,
				Effects: []Effect{{Op: OpDamage, Target: TargetEnemy, Value: 99}}},
		},
	}
	if _, err := Build(base, overlay); err == nil {
		t.Fatal("expected error for conflicting duplicate card")
	}
}

func TestBuildAllowsIdenticalDuplicateCard(t *testing.T) {
	base := DefaultBase()
	strike := base.Cards[0]
	overlay := Pack{ID: "overlay", Cards: []CardDef{strike}}
	if _, err := Build(base, overlay); err != nil {
		t.Fatalf("expected identical redeclaration to be allowed, got %v", err)
	}
}

func TestChapterOverrideMergesFieldWise(t *testing.T) {
	bossChance := 0.9
	overlay := Pack{
		ID: "overlay",
		ChapterOverrides: map[ChapterType]ChapterConfigOverride{
			ChapterFeature: {BossChance: &bossChance},
		},
	}
	r, err := Build(DefaultBase(), overlay)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	cfg := r.Chapters[ChapterFeature]
	if cfg.BossChance != 0.9 {
		t.Fatalf("expected overridden boss chance 0.9, got %v", cfg.BossChance)
	}
	if cfg.MinCommits != 5 {
		t.Fatalf("expected untouched min_commits 5, got %d", cfg.MinCommits)
	}
}

func TestPackIDsSorted(t *testing.T) {
	r, err := Build(DefaultBase(), Pack{ID: "zeta"}, Pack{ID: "alpha"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(r.PackIDs) != 3 || r.PackIDs[0] != "alpha" || r.PackIDs[2] != "zeta" {
		t.Fatalf("expected sorted pack ids, got %v", r.PackIDs)
	}
}

func TestValidateRejectsUnknownStatusReference(t *testing.T) {
	bad := Pack{
		ID: "bad",
		Cards: []CardDef{
			{ID: "broken", Name: "Broken", Type: CardTypeSkill, Rarity: RarityBasic, Cost: 1,
				Effects: []Effect{{Op: OpApplyStatus, StatusID: "nonexistent"}}},
		},
	}
	if _, err := Build(DefaultBase(), bad); err == nil {
		t.Fatal("expected error for unknown status reference")
	}
}

func TestValidateRejectsInvalidRelicHook(t *testing.T) {
	bad := Pack{
		ID: "bad",
		Relics: []RelicDef{
			{ID: "broken_relic", Name: "Broken Relic", Tier: RelicTierCommon,
				Hooks: map[RelicHook][]Effect{"on_level_up": {}}},
		},
	}
	if _, err := Build(DefaultBase(), bad); err == nil {
		t.Fatal("expected error for unsupported relic hook")
	}
}
