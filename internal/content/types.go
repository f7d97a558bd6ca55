// Package content defines the immutable, data-driven definitions that
// back every gameplay entity — cards, relics, statuses, enemies, events,
// archetypes, and characters — plus the registry that holds them and the
// YAML pack loader that builds one (spec.md §4.2).
package content

// CardEffectOp is a tagged opcode used inside both card effect lists and
// event choice effect lists (§4.6, §4.8 share the same vocabulary).
type CardEffectOp string

const (
	OpDamage      CardEffectOp = "damage"
	OpBlock       CardEffectOp = "block"
	OpDraw        CardEffectOp = "draw"
	OpGainEnergy  CardEffectOp = "gain_energy"
	OpApplyStatus CardEffectOp = "apply_status"
	OpHeal        CardEffectOp = "heal"
	OpExhaustSelf CardEffectOp = "exhaust_self"

	// The remaining opcodes extend the shared vocabulary for event
	// choices only (§4.8); cards and relic hooks never emit them.
	OpGainGold     CardEffectOp = "gain_gold"
	OpLoseGold     CardEffectOp = "lose_gold"
	OpTakeDamage   CardEffectOp = "take_damage"
	OpAddCard      CardEffectOp = "add_card"
	OpRemoveCard   CardEffectOp = "remove_card"
	OpUpgradeCard  CardEffectOp = "upgrade_card"
	OpAddRelic     CardEffectOp = "add_relic"
	OpRemoveRelic  CardEffectOp = "remove_relic"
	OpTriggerBattle CardEffectOp = "trigger_battle"
	OpModifyBias   CardEffectOp = "modify_bias"
	OpSetFlag      CardEffectOp = "set_flag"
)

// EffectTarget names who an effect op resolves against.
type EffectTarget string

const (
	TargetSelf  EffectTarget = "self"
	TargetEnemy EffectTarget = "enemy"
)

// Effect is one step of a card's, relic hook's, or event choice's effect
// list (§4.6 and §4.8 share this single opcode vocabulary; a given Op
// only ever reads the fields its own interpreter understands).
type Effect struct {
	Op       CardEffectOp `yaml:"op" json:"op"`
	Target   EffectTarget `yaml:"target,omitempty" json:"target,omitempty"`
	Value    int          `yaml:"value,omitempty" json:"value,omitempty"`
	StatusID string       `yaml:"status_id,omitempty" json:"status_id,omitempty"`
	Stacks   int          `yaml:"stacks,omitempty" json:"stacks,omitempty"`

	// Event-only fields (§4.8).
	CardID      string      `yaml:"card_id,omitempty" json:"card_id,omitempty"`
	RelicID     string      `yaml:"relic_id,omitempty" json:"relic_id,omitempty"`
	ArchetypeID ArchetypeID `yaml:"archetype_id,omitempty" json:"archetype_id,omitempty"`
	Delta       float64     `yaml:"delta,omitempty" json:"delta,omitempty"`
	BattleKind  string      `yaml:"battle_kind,omitempty" json:"battle_kind,omitempty"`
	FlagKey     string      `yaml:"flag_key,omitempty" json:"flag_key,omitempty"`
	FlagValue   string      `yaml:"flag_value,omitempty" json:"flag_value,omitempty"`
}

// CardType groups cards by their primary role; used by the rewards
// pipeline's tag-based pool filtering.
type CardType string

const (
	CardTypeAttack CardType = "attack"
	CardTypeSkill  CardType = "skill"
	CardTypePower  CardType = "power"
)

// CardRarity gates which pools a card is offered from.
type CardRarity string

const (
	RarityBasic    CardRarity = "basic"
	RarityCommon   CardRarity = "common"
	RarityRare     CardRarity = "rare"
	RarityEpic     CardRarity = "epic"
	RarityBoss     CardRarity = "boss"
)

// CardDef is an immutable card definition loaded from content packs.
type CardDef struct {
	ID          string       `yaml:"id" json:"id"`
	Name        string       `yaml:"name" json:"name"`
	Type        CardType     `yaml:"type" json:"type"`
	Rarity      CardRarity   `yaml:"rarity" json:"rarity"`
	Cost        int          `yaml:"cost" json:"cost"`
	ExhaustOnPlay bool       `yaml:"exhaust_on_play,omitempty" json:"exhaust_on_play,omitempty"`
	Tags        []string     `yaml:"tags,omitempty" json:"tags,omitempty"`
	Effects     []Effect     `yaml:"effects" json:"effects"`
	UpgradeEffects []Effect  `yaml:"upgrade_effects,omitempty" json:"upgrade_effects,omitempty"`
}

// RelicTier scales reward rarity and pricing.
type RelicTier string

const (
	RelicTierCommon RelicTier = "common"
	RelicTierRare   RelicTier = "rare"
	RelicTierBoss   RelicTier = "boss"
)

// RelicHook names one of the four points §9(ii) permits a relic to act on.
type RelicHook string

const (
	HookOnTurnStart   RelicHook = "on_turn_start"
	HookOnDamageTaken RelicHook = "on_damage_taken"
	HookOnCardPlayed  RelicHook = "on_card_played"
	HookOnReward      RelicHook = "on_reward"
)

// RelicDef is an immutable relic definition. Hooks map a hook name to its
// effect list; a relic with no hooks is legal (pure flavor) but one
// referencing a hook name outside RelicHook's four values fails content
// validation.
type RelicDef struct {
	ID    string                  `yaml:"id" json:"id"`
	Name  string                  `yaml:"name" json:"name"`
	Tier  RelicTier               `yaml:"tier" json:"tier"`
	Tags  []string                `yaml:"tags,omitempty" json:"tags,omitempty"`
	Hooks map[RelicHook][]Effect  `yaml:"hooks,omitempty" json:"hooks,omitempty"`
}

// StatusKind enumerates the documented status semantics of §4.6.
type StatusKind string

const (
	StatusVulnerable StatusKind = "vulnerable"
	StatusWeak       StatusKind = "weak"
	StatusBlock      StatusKind = "block"
	StatusBurn       StatusKind = "burn"
	StatusThorns     StatusKind = "thorns"
	StatusCharge     StatusKind = "charge"
	StatusFocus      StatusKind = "focus"
	StatusTechDebt   StatusKind = "tech_debt"
	StatusBug        StatusKind = "bug"
)

// StatusDef documents a status's cap and whether it decrements duration
// each turn (all of §4.6's statuses do, except indefinite ones like
// focus which persist until removed explicitly).
type StatusDef struct {
	ID        string     `yaml:"id" json:"id"`
	Kind      StatusKind `yaml:"kind" json:"kind"`
	MaxStacks int        `yaml:"max_stacks" json:"max_stacks"`
	Indefinite bool      `yaml:"indefinite,omitempty" json:"indefinite,omitempty"`
}

// AIPattern selects the enemy intent-selection rule, per §9(i).
type AIPattern string

const (
	AIPatternBasic      AIPattern = "basic"
	AIPatternAggressive AIPattern = "aggressive"
	AIPatternDefensive  AIPattern = "defensive"
	AIPatternCyclic     AIPattern = "cyclic"
)

// IntentKind is the enemy's declared action kind (§3 "Intent").
type IntentKind string

const (
	IntentAttack IntentKind = "attack"
	IntentDefend IntentKind = "defend"
	IntentBuff   IntentKind = "buff"
	IntentDebuff IntentKind = "debuff"
	IntentCharge IntentKind = "charge"
	IntentEscape IntentKind = "escape"
)

// EnemyDef is an immutable enemy template. Runtime enemy state (§3) is
// parameterised from a def plus a commit record (§4.3) and a chapter
// config's multipliers.
type EnemyDef struct {
	ID                string                 `yaml:"id" json:"id"`
	Name              string                 `yaml:"name" json:"name"`
	BaseAttack        int                    `yaml:"base_attack" json:"base_attack"`
	BaseDefense       int                    `yaml:"base_defense" json:"base_defense"`
	IsBoss            bool                   `yaml:"is_boss,omitempty" json:"is_boss,omitempty"`
	AIPattern         AIPattern              `yaml:"ai_pattern" json:"ai_pattern"`
	IntentPreference  map[IntentKind]float64 `yaml:"intent_preference" json:"intent_preference"`
	EscapeProbability float64                `yaml:"escape_probability,omitempty" json:"escape_probability,omitempty"`
}

// EventChoice is one selectable option on an event node.
type EventChoice struct {
	Label   string   `yaml:"label" json:"label"`
	Effects []Effect `yaml:"effects" json:"effects"`
}

// EventDef is an immutable event definition offering one or more choices.
type EventDef struct {
	ID      string        `yaml:"id" json:"id"`
	Title   string        `yaml:"title" json:"title"`
	Choices []EventChoice `yaml:"choices" json:"choices"`
}

// ArchetypeID names one of the bias dimensions (§4.7).
type ArchetypeID string

const (
	ArchetypeDebug    ArchetypeID = "debug"
	ArchetypeTest     ArchetypeID = "test"
	ArchetypeRefactor ArchetypeID = "refactor"
)

// ArchetypeDef documents a starting deck/relic loadout and the tags it
// favours.
type ArchetypeDef struct {
	ID            ArchetypeID `yaml:"id" json:"id"`
	Name          string      `yaml:"name" json:"name"`
	StarterCards  []string    `yaml:"starter_cards" json:"starter_cards"`
	StarterRelics []string    `yaml:"starter_relics,omitempty" json:"starter_relics,omitempty"`
	Tags          []string    `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// CharacterDef documents a playable character's base stats.
type CharacterDef struct {
	ID         string `yaml:"id" json:"id"`
	Name       string `yaml:"name" json:"name"`
	BaseHP     int    `yaml:"base_hp" json:"base_hp"`
	BaseMP     int    `yaml:"base_mp" json:"base_mp"`
	BaseAttack int    `yaml:"base_attack" json:"base_attack"`
	BaseDefense int   `yaml:"base_defense" json:"base_defense"`
	BaseSpeed  int    `yaml:"base_speed" json:"base_speed"`
	BaseCritical int  `yaml:"base_critical" json:"base_critical"`
	BaseEvasion int   `yaml:"base_evasion" json:"base_evasion"`
	BaseLuck   int    `yaml:"base_luck" json:"base_luck"`
	ArchetypeID ArchetypeID `yaml:"archetype_id" json:"archetype_id"`
}

// ChapterType mirrors §3/§4.3's fixed chapter taxonomy.
type ChapterType string

const (
	ChapterInitial     ChapterType = "initial"
	ChapterFeature     ChapterType = "feature"
	ChapterFix         ChapterType = "fix"
	ChapterIntegration ChapterType = "integration"
	ChapterLegacy      ChapterType = "legacy"
)

// ChapterConfig is the per-type configuration table referenced by §4.3,
// overridable field-wise by content packs (§4.2).
type ChapterConfig struct {
	MinCommits int     `yaml:"min_commits" json:"min_commits"`
	MaxCommits int     `yaml:"max_commits" json:"max_commits"`
	BossChance float64 `yaml:"boss_chance" json:"boss_chance"`
	ShopEnabled bool   `yaml:"shop_enabled" json:"shop_enabled"`
	GoldBonus  float64 `yaml:"gold_bonus" json:"gold_bonus"`
	ExpBonus   float64 `yaml:"exp_bonus" json:"exp_bonus"`
	HPMult     float64 `yaml:"hp_mult" json:"hp_mult"`
	AttackMult float64 `yaml:"attack_mult" json:"attack_mult"`
	BossNames  []string `yaml:"boss_names,omitempty" json:"boss_names,omitempty"`
}
