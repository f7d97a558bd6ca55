package combat

import (
	"github.com/louisbranch/gitdungeon/internal/content"
	"github.com/louisbranch/gitdungeon/internal/gevent"
)

// Side names which combatant an effect list's caster or target resolves
// to; "self"/"enemy" in content.Effect are always relative to the caster.
type Side int

const (
	ActorSidePlayer Side = iota
	ActorSideEnemy
)

func (b *Battle) hp(side Side) int {
	if side == ActorSidePlayer {
		return b.Player.HP
	}
	return b.Enemy.CurrentHP
}

func (b *Battle) setHP(side Side, v int) {
	if side == ActorSidePlayer {
		if v > b.Player.MaxHP {
			v = b.Player.MaxHP
		}
		if v < 0 {
			v = 0
		}
		b.Player.HP = v
		return
	}
	if v > b.Enemy.MaxHP {
		v = b.Enemy.MaxHP
	}
	if v < 0 {
		v = 0
	}
	b.Enemy.CurrentHP = v
}

func (b *Battle) attack(side Side) int {
	if side == ActorSidePlayer {
		return b.Player.Attack
	}
	return b.Enemy.Attack
}

func (b *Battle) defense(side Side) int {
	if side == ActorSidePlayer {
		return b.Player.Defense
	}
	return b.Enemy.Defense
}

func (b *Battle) statuses(side Side) *StatusStacks {
	if side == ActorSidePlayer {
		return &b.Player.Statuses
	}
	return &b.Enemy.Statuses
}

func (b *Battle) sideName(side Side) string {
	if side == ActorSidePlayer {
		return "player"
	}
	return "enemy"
}

func opposite(side Side) Side {
	if side == ActorSidePlayer {
		return ActorSideEnemy
	}
	return ActorSidePlayer
}

// applyEffects runs a content.Effect list in order (§4.6 card effects,
// §4.8 relic hooks share this interpreter's damage/status primitives).
// It returns the events produced and whether an exhaust_self opcode was
// present.
func (b *Battle) applyEffects(reg *content.Registry, effects []content.Effect, caster Side) ([]gevent.Event, bool) {
	var events []gevent.Event
	exhaustSelf := false

	for _, eff := range effects {
		target := caster
		if eff.Target == content.TargetEnemy {
			target = opposite(caster)
		} else if eff.Target == content.TargetSelf {
			target = caster
		}

		switch eff.Op {
		case content.OpDamage:
			res := ResolveDamage(eff.Value, b.attack(caster), b.statuses(target).Get("vulnerable"), b.statuses(target).Get("block"), b.defense(target), false, false)
			b.applyBlockRemainder(target, res.RemainingBlock)
			b.setHP(target, b.hp(target)-res.FinalDamage)
			events = append(events, gevent.Event{Type: gevent.TypeDamageDealt, Payload: gevent.DamageDealtPayload{
				Source: b.sideName(caster), Target: b.sideName(target), Amount: res.FinalDamage,
			}})
			b.reflectThorns(target, res.FinalDamage, &events)
		case content.OpBlock:
			def := content.StatusDef{ID: "block", Kind: content.StatusBlock, MaxStacks: 999}
			b.statuses(target).Apply(def, eff.Value, DefaultDuration)
			events = append(events, gevent.Event{Type: gevent.TypeStatusApplied, Payload: gevent.StatusAppliedPayload{Target: b.sideName(target), StatusID: "block", Stacks: b.statuses(target).Get("block")}})
		case content.OpDraw:
			if caster == ActorSidePlayer {
				drawn, reshuffled := b.Deck.DrawCards(eff.Value, b.Stream)
				if reshuffled {
					events = append(events, gevent.Event{Type: gevent.TypeDeckShuffled, Payload: gevent.DeckShuffledPayload{CardCount: len(b.Deck.Draw)}})
				}
				events = append(events, gevent.Event{Type: gevent.TypeCardsDrawn, Payload: gevent.CardsDrawnPayload{CardIDs: drawnCardIDs(drawn)}})
			}
		case content.OpGainEnergy:
			if caster == ActorSidePlayer {
				b.Energy.Gain(eff.Value)
			}
		case content.OpApplyStatus:
			if def, ok := reg.Statuses[eff.StatusID]; ok {
				b.statuses(target).Apply(def, eff.Stacks, DefaultDuration)
				events = append(events, gevent.Event{Type: gevent.TypeStatusApplied, Payload: gevent.StatusAppliedPayload{Target: b.sideName(target), StatusID: def.ID, Stacks: b.statuses(target).Get(def.ID)}})
			}
		case content.OpHeal:
			b.setHP(target, b.hp(target)+eff.Value)
		case content.OpExhaustSelf:
			exhaustSelf = true
		}
	}
	return events, exhaustSelf
}

// reflectThorns reflects damage back to the attacker if the damaged side
// carries thorns stacks (§4.6).
func (b *Battle) reflectThorns(damaged Side, _ int, events *[]gevent.Event) {
	stacks := b.statuses(damaged).Get("thorns")
	if stacks <= 0 {
		return
	}
	attacker := opposite(damaged)
	b.setHP(attacker, b.hp(attacker)-stacks)
	*events = append(*events, gevent.Event{Type: gevent.TypeDamageDealt, Payload: gevent.DamageDealtPayload{
		Source: b.sideName(damaged), Target: b.sideName(attacker), Amount: stacks,
	}})
}

// applyBlockRemainder writes back the block stack count left after
// absorbing damage.
func (b *Battle) applyBlockRemainder(side Side, remaining int) {
	st := b.statuses(side)
	current := st.Get("block")
	if current == 0 && remaining == 0 {
		return
	}
	st.Remove("block")
	if remaining > 0 {
		st.Apply(content.StatusDef{ID: "block", Kind: content.StatusBlock, MaxStacks: 999}, remaining, DefaultDuration)
	}
}

// applyTurnStartStatus fires a status's documented on-turn-start trigger:
// charge grants energy at turn start then clears. Block is not handled
// here: startPlayerTurn and runEnemyTurn clear it directly. Burn fires at
// turn end instead, via applyTurnEndStatus. Focus, tech_debt and bug have
// no trigger here, and nothing in the battle engine reads their stacks.
func (b *Battle) applyTurnStartStatus(side Side, st StatusStack) []gevent.Event {
	var events []gevent.Event
	switch st.ID {
	case "charge":
		if side == ActorSidePlayer {
			b.Energy.Gain(st.Stacks)
		}
		b.statuses(side).Remove("charge")
		events = append(events, gevent.Event{Type: gevent.TypeStatusRemoved, Payload: gevent.StatusRemovedPayload{Target: b.sideName(side), StatusID: "charge"}})
	}
	return events
}

// applyTurnEndStatus fires a status's documented on-turn-end trigger:
// burn deals its stack count as damage to the holder, then loses one
// stack, disappearing once it reaches zero (§4.6).
func (b *Battle) applyTurnEndStatus(side Side, st StatusStack) []gevent.Event {
	var events []gevent.Event
	switch st.ID {
	case "burn":
		b.setHP(side, b.hp(side)-st.Stacks)
		events = append(events, gevent.Event{Type: gevent.TypeDamageDealt, Payload: gevent.DamageDealtPayload{
			Source: "burn", Target: b.sideName(side), Amount: st.Stacks,
		}})
		b.statuses(side).DecrementAndPrune("burn", 1)
		if b.statuses(side).Get("burn") == 0 {
			events = append(events, gevent.Event{Type: gevent.TypeStatusRemoved, Payload: gevent.StatusRemovedPayload{Target: b.sideName(side), StatusID: "burn"}})
		}
	}
	return events
}
