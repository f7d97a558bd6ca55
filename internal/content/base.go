package content

// DefaultBase returns the built-in base content bundle: the minimum set
// of cards, relics, statuses, enemies, archetypes and characters every
// registry ships with before any pack is overlaid. Real deployments are
// expected to layer a much larger YAML pack on top; this is enough to
// start a run and play its battles. It declares no events, so event nodes
// hold no encounter until a pack supplies some.
func DefaultBase() Pack {
	return Pack{
		ID: "base",
		Statuses: []StatusDef{
			{ID: "vulnerable", Kind: StatusVulnerable, MaxStacks: 99},
			{ID: "weak", Kind: StatusWeak, MaxStacks: 99},
			{ID: "block", Kind: StatusBlock, MaxStacks: 999},
			{ID: "burn", Kind: StatusBurn, MaxStacks: 99},
			{ID: "thorns", Kind: StatusThorns, MaxStacks: 99},
			{ID: "charge", Kind: StatusCharge, MaxStacks: 99},
			{ID: "focus", Kind: StatusFocus, MaxStacks: 99, Indefinite: true},
			{ID: "tech_debt", Kind: StatusTechDebt, MaxStacks: 99, Indefinite: true},
			{ID: "bug", Kind: StatusBug, MaxStacks: 99},
		},
		Cards: []CardDef{
			{
				ID: "strike", Name: "Strike", Type: CardTypeAttack, Rarity: RarityBasic, Cost: 1,
				Tags: []string{"basic", "offensive"},
				Effects: []Effect{{Op: OpDamage, Target: TargetEnemy, Value: 6}},
			},
			{
				ID: "defend", Name: "Defend", Type: CardTypeSkill, Rarity: RarityBasic, Cost: 1,
				Tags: []string{"basic", "defensive"},
				Effects: []Effect{{Op: OpBlock, Target: TargetSelf, Value: 5}},
			},
			{
				ID: "debug_strike", Name: "Debug Strike", Type: CardTypeAttack, Rarity: RarityCommon, Cost: 1,
				Tags: []string{"debug", "offensive"},
				Effects: []Effect{{Op: OpDamage, Target: TargetEnemy, Value: 8}},
			},
			{
				ID: "unit_test", Name: "Unit Test", Type: CardTypeSkill, Rarity: RarityCommon, Cost: 1,
				Tags: []string{"test", "defensive"},
				Effects: []Effect{
					{Op: OpBlock, Target: TargetSelf, Value: 4},
					{Op: OpDraw, Value: 1},
				},
			},
			{
				ID: "refactor", Name: "Refactor", Type: CardTypePower, Rarity: RarityCommon, Cost: 2,
				Tags: []string{"refactor", "risk"},
				Effects: []Effect{
					{Op: OpApplyStatus, Target: TargetSelf, StatusID: "focus", Stacks: 1},
					{Op: OpGainEnergy, Value: 1},
				},
			},
		},
		Relics: []RelicDef{
			{
				ID: "lucky_commit", Name: "Lucky Commit", Tier: RelicTierCommon,
				Tags: []string{"debug"},
				Hooks: map[RelicHook][]Effect{
					HookOnReward: {{Op: OpGainEnergy, Value: 0}},
				},
			},
		},
		Enemies: []EnemyDef{
			{
				ID: "generic_bug", Name: "Bug", BaseAttack: 8, BaseDefense: 2,
				AIPattern: AIPatternBasic,
				IntentPreference: map[IntentKind]float64{
					IntentAttack: 0.7, IntentDefend: 0.2, IntentBuff: 0.1,
				},
				EscapeProbability: 0.7,
			},
			{
				ID: "merge_conflict_boss", Name: "Merge Conflict", BaseAttack: 14, BaseDefense: 4,
				IsBoss: true, AIPattern: AIPatternAggressive,
				IntentPreference: map[IntentKind]float64{
					IntentAttack: 0.5, IntentCharge: 0.3, IntentDebuff: 0.2,
				},
			},
		},
		Archetypes: []ArchetypeDef{
			{
				ID: ArchetypeDebug, Name: "Debug Beatdown",
				StarterCards:  []string{"strike", "strike", "defend", "defend", "debug_strike"},
				StarterRelics: []string{},
				Tags:          []string{"debug", "offensive"},
			},
			{
				ID: ArchetypeTest, Name: "Test Shrine",
				StarterCards:  []string{"strike", "defend", "defend", "unit_test", "unit_test"},
				StarterRelics: []string{},
				Tags:          []string{"test", "defensive"},
			},
			{
				ID: ArchetypeRefactor, Name: "Refactor Risk",
				StarterCards:  []string{"strike", "defend", "refactor", "refactor", "unit_test"},
				StarterRelics: []string{},
				Tags:          []string{"refactor", "risk"},
			},
		},
		Characters: []CharacterDef{
			{
				ID: "maintainer", Name: "The Maintainer",
				BaseHP: 75, BaseMP: 20, BaseAttack: 10, BaseDefense: 5,
				BaseSpeed: 10, BaseCritical: 5, BaseEvasion: 5, BaseLuck: 5,
				ArchetypeID: ArchetypeDebug,
			},
		},
	}
}
