// Package eventops interprets event-choice effect lists (spec.md §4.8):
// the same opcode vocabulary combat cards use, extended with the
// gold/card/relic/bias/flag opcodes that only ever appear on events.
package eventops

import (
	"fmt"

	"github.com/louisbranch/gitdungeon/internal/content"
	"github.com/louisbranch/gitdungeon/internal/gevent"
)

// State is the minimal slice of game state an event choice can mutate.
// The orchestrator copies the matching GameState fields into it and back
// out after Interpret; it is defined here, not imported, to keep eventops
// free of any dependency on the top-level engine package.
type State struct {
	Gold       int
	PlayerHP   int
	PlayerMaxHP int
	DeckCardIDs []string
	RelicIDs    []string
	Bias        map[content.ArchetypeID]float64
	Flags       map[string]string
	StatusQueue []string // statuses queued for application at next battle start
	BattleQueued string  // non-empty if trigger_battle requested one
}

// AppliedEffect records one opcode's outcome for the result's audit
// trail.
type AppliedEffect struct {
	Op      content.CardEffectOp
	Failed  bool
	Message string
}

// Result is §4.8's {success, effects_applied[], messages[], state_changes{}}.
type Result struct {
	Success        bool
	EffectsApplied []AppliedEffect
	Messages       []string
}

// Interpret applies an effect list to state in order, per §4.8: an
// unknown opcode is recorded as failed but does not abort the remaining
// effects. Returns the mutated state, the result, and the events the
// interpretation produced.
func Interpret(reg *content.Registry, state State, effects []content.Effect) (State, Result, []gevent.Event) {
	result := Result{Success: true}
	var events []gevent.Event

	for _, eff := range effects {
		applied, msg, ev := apply(reg, &state, eff)
		result.EffectsApplied = append(result.EffectsApplied, AppliedEffect{Op: eff.Op, Failed: !applied, Message: msg})
		if msg != "" {
			result.Messages = append(result.Messages, msg)
		}
		if ev.Type != "" {
			events = append(events, ev)
		}
		if !applied {
			result.Success = false
		}
	}
	return state, result, events
}

func apply(reg *content.Registry, s *State, eff content.Effect) (bool, string, gevent.Event) {
	switch eff.Op {
	case content.OpGainGold:
		s.Gold += eff.Value
		return true, fmt.Sprintf("gained %d gold", eff.Value), gevent.Event{Type: gevent.TypeGoldGained, Payload: gevent.GoldGainedPayload{Amount: eff.Value}}

	case content.OpLoseGold:
		lost := eff.Value
		if lost > s.Gold {
			lost = s.Gold
		}
		s.Gold -= lost
		return true, fmt.Sprintf("lost %d gold", lost), gevent.Event{}

	case content.OpHeal:
		s.PlayerHP += eff.Value
		if s.PlayerHP > s.PlayerMaxHP {
			s.PlayerHP = s.PlayerMaxHP
		}
		return true, fmt.Sprintf("healed %d", eff.Value), gevent.Event{}

	case content.OpTakeDamage:
		s.PlayerHP -= eff.Value
		if s.PlayerHP < 0 {
			s.PlayerHP = 0
		}
		return true, fmt.Sprintf("took %d damage", eff.Value), gevent.Event{Type: gevent.TypeDamageDealt, Payload: gevent.DamageDealtPayload{Source: "event", Target: "player", Amount: eff.Value}}

	case content.OpAddCard:
		if _, ok := reg.Cards[eff.CardID]; !ok {
			return false, "unknown card " + eff.CardID, gevent.Event{}
		}
		s.DeckCardIDs = append(s.DeckCardIDs, eff.CardID)
		return true, "added card " + eff.CardID, gevent.Event{Type: gevent.TypeItemDropped, Payload: gevent.ItemDroppedPayload{ItemID: eff.CardID, Kind: "card"}}

	case content.OpRemoveCard:
		idx := indexOf(s.DeckCardIDs, eff.CardID)
		if idx < 0 {
			return false, "card not in deck: " + eff.CardID, gevent.Event{}
		}
		s.DeckCardIDs = append(s.DeckCardIDs[:idx], s.DeckCardIDs[idx+1:]...)
		return true, "removed card " + eff.CardID, gevent.Event{}

	case content.OpUpgradeCard:
		if _, ok := reg.Cards[eff.CardID]; !ok {
			return false, "unknown card " + eff.CardID, gevent.Event{}
		}
		if indexOf(s.DeckCardIDs, eff.CardID) < 0 {
			return false, "card not in deck: " + eff.CardID, gevent.Event{}
		}
		return true, "upgraded card " + eff.CardID, gevent.Event{}

	case content.OpAddRelic:
		if _, ok := reg.Relics[eff.RelicID]; !ok {
			return false, "unknown relic " + eff.RelicID, gevent.Event{}
		}
		s.RelicIDs = append(s.RelicIDs, eff.RelicID)
		return true, "added relic " + eff.RelicID, gevent.Event{Type: gevent.TypeItemDropped, Payload: gevent.ItemDroppedPayload{ItemID: eff.RelicID, Kind: "relic"}}

	case content.OpRemoveRelic:
		idx := indexOf(s.RelicIDs, eff.RelicID)
		if idx < 0 {
			return false, "relic not held: " + eff.RelicID, gevent.Event{}
		}
		s.RelicIDs = append(s.RelicIDs[:idx], s.RelicIDs[idx+1:]...)
		return true, "removed relic " + eff.RelicID, gevent.Event{}

	case content.OpApplyStatus:
		if _, ok := reg.Statuses[eff.StatusID]; !ok {
			return false, "unknown status " + eff.StatusID, gevent.Event{}
		}
		s.StatusQueue = append(s.StatusQueue, eff.StatusID)
		return true, "queued status " + eff.StatusID, gevent.Event{Type: gevent.TypeStatusApplied, Payload: gevent.StatusAppliedPayload{Target: "player", StatusID: eff.StatusID, Stacks: eff.Stacks}}

	case content.OpTriggerBattle:
		s.BattleQueued = eff.BattleKind
		return true, "queued battle " + eff.BattleKind, gevent.Event{}

	case content.OpModifyBias:
		if s.Bias == nil {
			s.Bias = map[content.ArchetypeID]float64{}
		}
		s.Bias[eff.ArchetypeID] += eff.Delta
		return true, fmt.Sprintf("modified %s bias by %.2f", eff.ArchetypeID, eff.Delta), gevent.Event{}

	case content.OpSetFlag:
		if s.Flags == nil {
			s.Flags = map[string]string{}
		}
		s.Flags[eff.FlagKey] = eff.FlagValue
		return true, "set flag " + eff.FlagKey, gevent.Event{}

	default:
		return false, "unknown opcode: " + string(eff.Op), gevent.Event{}
	}
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
