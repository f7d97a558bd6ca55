package content

import (
	"fmt"
	"sort"

	"github.com/louisbranch/gitdungeon/internal/gameerr"
)

// Registry is the immutable, shared, read-only bundle of every content
// definition in the game (§3 "Content registry"). It is built once per
// process by Build and never mutated afterward.
type Registry struct {
	Cards      map[string]CardDef
	Relics     map[string]RelicDef
	Statuses   map[string]StatusDef
	Enemies    map[string]EnemyDef
	Events     map[string]EventDef
	Archetypes map[ArchetypeID]ArchetypeDef
	Characters map[string]CharacterDef
	Chapters   map[ChapterType]ChapterConfig

	// PackIDs is the sorted list of pack identifiers that contributed to
	// this registry, used for the run fingerprint (§4.9).
	PackIDs []string
}

// Pack is a unit of content overlaid on the default bundle in a
// deterministic order (§4.2): the base bundle, then CLI-specified packs in
// the order given, then an environment-directory scan sorted by folder
// name.
type Pack struct {
	ID       string
	Cards    []CardDef
	Relics   []RelicDef
	Statuses []StatusDef
	Enemies  []EnemyDef
	Events   []EventDef
	Archetypes []ArchetypeDef
	Characters []CharacterDef
	ChapterOverrides map[ChapterType]ChapterConfigOverride
}

// ChapterConfigOverride carries only the fields a pack wants to change;
// zero-value fields mean "do not override" (merged field-wise, per §4.2
// and the §9 design note on composition over inheritance).
type ChapterConfigOverride struct {
	MinCommits  *int
	MaxCommits  *int
	BossChance  *float64
	ShopEnabled *bool
	GoldBonus   *float64
	ExpBonus    *float64
	HPMult      *float64
	AttackMult  *float64
	BossNames   []string
}

// Build constructs a Registry from a base pack and zero or more overlay
// packs, applied in the given order. ID collisions where the redeclaring
// definition differs structurally are rejected (§4.2, §7
// content-validation).
func Build(base Pack, overlays ...Pack) (*Registry, error) {
	r := &Registry{
		Cards:      map[string]CardDef{},
		Relics:     map[string]RelicDef{},
		Statuses:   map[string]StatusDef{},
		Enemies:    map[string]EnemyDef{},
		Events:     map[string]EventDef{},
		Archetypes: map[ArchetypeID]ArchetypeDef{},
		Characters: map[string]CharacterDef{},
		Chapters:   defaultChapterConfigs(),
	}

	packs := append([]Pack{base}, overlays...)
	for _, p := range packs {
		if err := r.merge(p); err != nil {
			return nil, err
		}
		if p.ID != "" {
			r.PackIDs = append(r.PackIDs, p.ID)
		}
	}
	sort.Strings(r.PackIDs)

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) merge(p Pack) error {
	for _, c := range p.Cards {
		if existing, ok := r.Cards[c.ID]; ok && !cardsEqual(existing, c) {
			return duplicateErr("card", c.ID, p.ID)
		}
		r.Cards[c.ID] = c
	}
	for _, rel := range p.Relics {
		if existing, ok := r.Relics[rel.ID]; ok && !relicsEqual(existing, rel) {
			return duplicateErr("relic", rel.ID, p.ID)
		}
		r.Relics[rel.ID] = rel
	}
	for _, s := range p.Statuses {
		if existing, ok := r.Statuses[s.ID]; ok && fmt.Sprint(existing) != fmt.Sprint(s) {
			return duplicateErr("status", s.ID, p.ID)
		}
		r.Statuses[s.ID] = s
	}
	for _, e := range p.Enemies {
		if existing, ok := r.Enemies[e.ID]; ok && fmt.Sprint(existing) != fmt.Sprint(e) {
			return duplicateErr("enemy", e.ID, p.ID)
		}
		r.Enemies[e.ID] = e
	}
	for _, e := range p.Events {
		if existing, ok := r.Events[e.ID]; ok && fmt.Sprint(existing) != fmt.Sprint(e) {
			return duplicateErr("event", e.ID, p.ID)
		}
		r.Events[e.ID] = e
	}
	for _, a := range p.Archetypes {
		if existing, ok := r.Archetypes[a.ID]; ok && fmt.Sprint(existing) != fmt.Sprint(a) {
			return duplicateErr("archetype", string(a.ID), p.ID)
		}
		r.Archetypes[a.ID] = a
	}
	for _, c := range p.Characters {
		if existing, ok := r.Characters[c.ID]; ok && fmt.Sprint(existing) != fmt.Sprint(c) {
			return duplicateErr("character", c.ID, p.ID)
		}
		r.Characters[c.ID] = c
	}
	for ct, override := range p.ChapterOverrides {
		cfg := r.Chapters[ct]
		applyChapterOverride(&cfg, override)
		r.Chapters[ct] = cfg
	}
	return nil
}

func applyChapterOverride(cfg *ChapterConfig, o ChapterConfigOverride) {
	if o.MinCommits != nil {
		cfg.MinCommits = *o.MinCommits
	}
	if o.MaxCommits != nil {
		cfg.MaxCommits = *o.MaxCommits
	}
	if o.BossChance != nil {
		cfg.BossChance = *o.BossChance
	}
	if o.ShopEnabled != nil {
		cfg.ShopEnabled = *o.ShopEnabled
	}
	if o.GoldBonus != nil {
		cfg.GoldBonus = *o.GoldBonus
	}
	if o.ExpBonus != nil {
		cfg.ExpBonus = *o.ExpBonus
	}
	if o.HPMult != nil {
		cfg.HPMult = *o.HPMult
	}
	if o.AttackMult != nil {
		cfg.AttackMult = *o.AttackMult
	}
	if len(o.BossNames) > 0 {
		cfg.BossNames = o.BossNames
	}
}

func duplicateErr(kind, id, packID string) error {
	return gameerr.New(gameerr.CodeContentDuplicateID,
		"%s %q redeclared by pack %q with a differing definition", kind, id, packID).
		WithMetadata("pack_id", packID)
}

func cardsEqual(a, b CardDef) bool {
	if a.Name != b.Name || a.Type != b.Type || a.Rarity != b.Rarity || a.Cost != b.Cost {
		return false
	}
	return fmt.Sprint(a.Effects) == fmt.Sprint(b.Effects)
}

func relicsEqual(a, b RelicDef) bool {
	if a.Name != b.Name || a.Tier != b.Tier {
		return false
	}
	return fmt.Sprint(a.Hooks) == fmt.Sprint(b.Hooks)
}

// defaultChapterConfigs mirrors original_source's CHAPTER_CONFIGS table
// exactly.
func defaultChapterConfigs() map[ChapterType]ChapterConfig {
	return map[ChapterType]ChapterConfig{
		ChapterInitial: {
			MinCommits: 1, MaxCommits: 3, BossChance: 0,
			ShopEnabled: false, GoldBonus: 0.8, ExpBonus: 0.8,
			HPMult: 0.6, AttackMult: 0.6,
			BossNames: []string{"The First Commit"},
		},
		ChapterFeature: {
			MinCommits: 5, MaxCommits: 30, BossChance: 0.3,
			ShopEnabled: true, GoldBonus: 1.0, ExpBonus: 1.0,
			HPMult: 1.0, AttackMult: 1.0,
			BossNames: []string{"The Scope Creeper", "Feature Overlord"},
		},
		ChapterFix: {
			MinCommits: 3, MaxCommits: 25, BossChance: 0.4,
			ShopEnabled: true, GoldBonus: 1.2, ExpBonus: 1.3,
			HPMult: 1.1, AttackMult: 1.4,
			BossNames: []string{"The Regression", "Heisenbug"},
		},
		ChapterIntegration: {
			MinCommits: 1, MaxCommits: 10, BossChance: 1.0,
			ShopEnabled: true, GoldBonus: 2.0, ExpBonus: 2.0,
			HPMult: 2.0, AttackMult: 1.5,
			BossNames: []string{"The Merge Conflict", "Rebase Horror"},
		},
		ChapterLegacy: {
			MinCommits: 1, MaxCommits: 15, BossChance: 0.3,
			ShopEnabled: true, GoldBonus: 1.5, ExpBonus: 1.5,
			HPMult: 1.3, AttackMult: 1.2,
			BossNames: []string{"The Deprecated", "Tech Debt Incarnate"},
		},
	}
}
