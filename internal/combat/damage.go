package combat

import "math"

// DamageResult carries every intermediate the caller needs to emit a
// faithful damage_dealt event and update both HP and block.
type DamageResult struct {
	Raw            int
	BlockAbsorbed  int
	FinalDamage    int
	RemainingBlock int
}

// ResolveDamage implements §4.5's fixed five-step damage resolution
// order: (1) raw = value + attacker attack stat, (2) vulnerable
// multiplies by 1 + 0.25*stacks, (3) subtract target block, (4) subtract
// target defense (skipped when trueDamage is set), (5) clamp to at least
// 1 unless allowZero.
func ResolveDamage(value, attackerAttack, targetVulnerableStacks, targetBlock, targetDefense int, trueDamage, allowZero bool) DamageResult {
	raw := float64(value + attackerAttack)
	if targetVulnerableStacks > 0 {
		raw *= 1 + 0.25*float64(targetVulnerableStacks)
	}
	rawInt := int(math.Floor(raw))

	absorbed := targetBlock
	if absorbed > rawInt {
		absorbed = rawInt
	}
	remaining := rawInt - absorbed
	remainingBlock := targetBlock - absorbed

	if !trueDamage {
		remaining -= targetDefense
	}
	if remaining < 1 && !allowZero {
		remaining = 1
	}
	if remaining < 0 {
		remaining = 0
	}

	return DamageResult{
		Raw:            rawInt,
		BlockAbsorbed:  absorbed,
		FinalDamage:    remaining,
		RemainingBlock: remainingBlock,
	}
}
