package engine

import "github.com/louisbranch/gitdungeon/internal/gevent"

// Leveling constants (§3, §4.9), grounded on original_source's
// ProgressionRules: exp required grows geometrically, stat gains scale
// with the new level so milestone levels (every 5th, every 3rd) grant a
// small extra bump.
const (
	baseExpToLevel  = 100
	expGrowthFactor = 1.5

	hpGainPerLevel  = 20
	mpGainPerLevel  = 10
	atkGainPerLevel = 2
	defGainPerLevel = 1
)

// expToNextLevel returns the experience required to advance past level.
func expToNextLevel(level int) int {
	exp := float64(baseExpToLevel)
	for i := 1; i < level; i++ {
		exp *= expGrowthFactor
	}
	return int(exp)
}

// applyLevelUpStats grants newLevel's stat gains to the character's base
// stats (original_source's calculate_level_up_stats): a flat gain per
// level, plus newLevel/5 extra points of attack (one more for every five
// levels reached), an extra point of critical every 5th level, and an
// extra point of speed every 3rd.
func applyLevelUpStats(c *CharacterState, newLevel int) {
	c.MaxHP.Base += hpGainPerLevel
	c.MaxMP.Base += mpGainPerLevel
	c.Attack.Base += atkGainPerLevel + newLevel/5
	c.Defense.Base += defGainPerLevel
	if newLevel%5 == 0 {
		c.Critical.Base++
	}
	if newLevel%3 == 0 {
		c.Speed.Base++
	}
}

// grantExperience adds exp to the player's running total, emits the
// exp_gained event, then levels the character up for as long as the
// accumulated experience clears the next threshold, emitting one
// level_up event per level gained (§4.7, §4.9).
func grantExperience(state *GameState, exp int) []gevent.Event {
	if exp <= 0 {
		return nil
	}
	c := &state.Player.Character
	c.Experience += exp
	events := []gevent.Event{state.emit(gevent.TypeExpGained, gevent.ActorPlayer, gevent.ExpGainedPayload{Amount: exp})}

	for c.Experience >= expToNextLevel(c.Level) {
		c.Experience -= expToNextLevel(c.Level)
		c.Level++
		applyLevelUpStats(c, c.Level)
		events = append(events, state.emit(gevent.TypeLevelUp, gevent.ActorPlayer, gevent.LevelUpPayload{NewLevel: c.Level}))
	}
	return events
}
