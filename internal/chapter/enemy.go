package chapter

// Mutator is a named preset scaling enemy stats and rewards (GLOSSARY
// "Mutator"). The zero value is the no-op "standard" mutator.
type Mutator struct {
	Name         string
	EnemyScale   float64 // multiplies HP and attack
	RewardScale  float64 // multiplies gold and experience
}

// StandardMutator applies no scaling.
var StandardMutator = Mutator{Name: "standard", EnemyScale: 1.0, RewardScale: 1.0}

// HardMutator is the documented "hard" preset (§4.3): enemies hit harder,
// rewards shrink.
var HardMutator = Mutator{Name: "hard", EnemyScale: 1.35, RewardScale: 0.75}

const baseHPPerChange = 1.5
const baseAttackPerChange = 0.3
const baseDefensePerDeletion = 0.05

// EnemyStats is the set of numbers the combat engine needs to
// parameterise a runtime enemy state from an enemy definition, a source
// commit, a chapter config, and a mutator (§4.3).
type EnemyStats struct {
	MaxHP       int
	Attack      int
	Defense     int
	GoldReward  int
	ExpReward   int
	CreatureName string
}

// ParameteriseEnemy computes §4.3's enemy stats: base HP from total
// changes, attack scaled by commit type, defense from deletions, then the
// chapter's HP/attack multipliers, the supplemented difficulty factor,
// and finally the mutator.
func ParameteriseEnemy(c Commit, ch Chapter, mutator Mutator) EnemyStats {
	totalChanges := c.TotalChanges()
	if totalChanges == 0 {
		totalChanges = 1
	}
	ctype := c.classify()

	baseHP := float64(totalChanges) * baseHPPerChange
	baseAttack := float64(totalChanges) * baseAttackPerChange

	attack := baseAttack * attackMultiplier[ctype]
	defense := float64(c.Deletions) * baseDefensePerDeletion

	difficulty := 1.0 + c.DifficultyFactor()

	hp := baseHP * ch.Config.HPMult * difficulty * mutator.EnemyScale
	attack = attack * ch.Config.AttackMult * difficulty * mutator.EnemyScale
	defense = defense * ch.Config.HPMult

	baseGold := 10.0 * rewardMultiplier[ctype] * ch.Config.GoldBonus
	baseExp := 10.0 * rewardMultiplier[ctype] * ch.Config.ExpBonus

	gold := baseGold * mutator.RewardScale
	exp := baseExp * mutator.RewardScale

	return EnemyStats{
		MaxHP:        maxInt(1, int(hp)),
		Attack:       maxInt(1, int(attack)),
		Defense:      int(defense),
		GoldReward:   maxInt(0, int(gold)),
		ExpReward:    maxInt(0, int(exp)),
		CreatureName: c.CreatureName(),
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
