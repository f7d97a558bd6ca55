package content

import (
	"fmt"

	"github.com/louisbranch/gitdungeon/internal/gameerr"
)

// Validate checks structural soundness of a built registry: required
// fields, and that cross-references (effect status IDs, archetype
// character links) resolve to a known definition (§7 content-validation
// error kind).
func (r *Registry) Validate() error {
	for id, c := range r.Cards {
		if c.Name == "" {
			return missingField("card", id, "name")
		}
		if len(c.Effects) == 0 {
			return missingField("card", id, "effects")
		}
		if err := r.validateEffects("card "+id, c.Effects); err != nil {
			return err
		}
	}
	for id, rel := range r.Relics {
		if rel.Name == "" {
			return missingField("relic", id, "name")
		}
		for hook, effects := range rel.Hooks {
			if !validHook(hook) {
				return gameerr.New(gameerr.CodeContentInvalidRelicHook,
					"relic %q references unsupported hook %q", id, hook)
			}
			if err := r.validateEffects(fmt.Sprintf("relic %s hook %s", id, hook), effects); err != nil {
				return err
			}
		}
	}
	for id, e := range r.Enemies {
		if e.Name == "" {
			return missingField("enemy", id, "name")
		}
		if len(e.IntentPreference) == 0 {
			return missingField("enemy", id, "intent_preference")
		}
	}
	for id, ev := range r.Events {
		if len(ev.Choices) == 0 {
			return missingField("event", id, "choices")
		}
		for _, choice := range ev.Choices {
			if err := r.validateEffects("event "+id, choice.Effects); err != nil {
				return err
			}
		}
	}
	for id, a := range r.Archetypes {
		for _, cardID := range a.StarterCards {
			if _, ok := r.Cards[cardID]; !ok {
				return unknownRef("archetype", string(id), "starter card", cardID)
			}
		}
	}
	for id, ch := range r.Characters {
		if _, ok := r.Archetypes[ch.ArchetypeID]; !ok {
			return unknownRef("character", id, "archetype", string(ch.ArchetypeID))
		}
	}
	return nil
}

func (r *Registry) validateEffects(owner string, effects []Effect) error {
	for _, e := range effects {
		switch e.Op {
		case OpApplyStatus:
			if _, ok := r.Statuses[e.StatusID]; !ok {
				return unknownRef(owner, "", "status", e.StatusID)
			}
		case OpAddCard, OpRemoveCard, OpUpgradeCard:
			if _, ok := r.Cards[e.CardID]; !ok {
				return unknownRef(owner, "", "card", e.CardID)
			}
		case OpAddRelic, OpRemoveRelic:
			if _, ok := r.Relics[e.RelicID]; !ok {
				return unknownRef(owner, "", "relic", e.RelicID)
			}
		case OpModifyBias:
			if _, ok := r.Archetypes[e.ArchetypeID]; !ok {
				return unknownRef(owner, "", "archetype", string(e.ArchetypeID))
			}
		}
	}
	return nil
}

func validHook(h RelicHook) bool {
	switch h {
	case HookOnTurnStart, HookOnDamageTaken, HookOnCardPlayed, HookOnReward:
		return true
	default:
		return false
	}
}

func missingField(kind, id, field string) error {
	return gameerr.New(gameerr.CodeContentMissingField, "%s %q missing required field %q", kind, id, field)
}

func unknownRef(owner, sub, refKind, refID string) error {
	if sub == "" {
		return gameerr.New(gameerr.CodeContentUnknownReference, "%s references unknown %s %q", owner, refKind, refID)
	}
	return gameerr.New(gameerr.CodeContentUnknownReference, "%s %q references unknown %s %q", owner, sub, refKind, refID)
}
