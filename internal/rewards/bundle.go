package rewards

import (
	"sort"

	"github.com/louisbranch/gitdungeon/internal/content"
	"github.com/louisbranch/gitdungeon/internal/gevent"
	"github.com/louisbranch/gitdungeon/internal/rng"
)

// goldJitterSpan is §4.7's "±20% jitter" on the type-weighted gold base.
const goldJitterSpan = 0.4 // [-0.2, +0.2]

const (
	cardOfferCount           = 3
	relicDropProbability     = 0.05
	relicDropProbabilityHigh = 0.10 // boss or merge encounter
	healOfferHPThreshold     = 0.5
)

// EncounterFeatures describes the defeated enemy's encounter shape, used
// to bias the card pool and the relic drop chance (§4.7).
type EncounterFeatures struct {
	LargeDiff bool // total commit changes above the large-diff threshold
	IsMerge   bool
	IsElite   bool
	IsBoss    bool
}

// Bundle is the full reward offer surfaced to the player after a
// combat victory (§4.7, §3 "Reward Bundle").
type Bundle struct {
	Gold        int
	CardOffers  []string
	RelicOffer  string // empty if no relic dropped
	HealOffered bool
}

// Generate builds a reward bundle for a defeated enemy. baseGold is the
// commit-derived gold reward from chapter.EnemyStats; bias is the
// player's current archetype bias; hpFrac is current/max player HP.
func Generate(reg *content.Registry, stream *rng.Stream, baseGold int, bias Bias, features EncounterFeatures, hpFrac float64) (Bundle, []gevent.Event) {
	gold := jitterGold(baseGold, stream)
	cards := pickCardOffers(reg, stream, bias, features)
	relic := maybeDropRelic(reg, stream, features)
	heal := hpFrac < healOfferHPThreshold

	bundle := Bundle{Gold: gold, CardOffers: cards, RelicOffer: relic, HealOffered: heal}

	payload := gevent.RewardOfferedPayload{CardIDs: cards, RelicID: relic, Gold: gold}
	events := []gevent.Event{{Type: gevent.TypeRewardOffered, Payload: payload}}
	if gold > 0 {
		events = append(events, gevent.Event{Type: gevent.TypeGoldGained, Payload: gevent.GoldGainedPayload{Amount: gold}})
	}
	return bundle, events
}

// jitterGold applies §4.7's ±20% jitter to a type-weighted gold base.
func jitterGold(base int, stream *rng.Stream) int {
	if base <= 0 {
		return 0
	}
	jitter := (stream.Float64()*goldJitterSpan - goldJitterSpan/2)
	g := int(float64(base) * (1 + jitter))
	if g < 0 {
		g = 0
	}
	return g
}

// maybeDropRelic rolls the relic drop per §4.7's base probabilities,
// then picks a tier-appropriate relic from the registry deterministically
// via the stream. Returns "" when no relic drops or none qualify.
func maybeDropRelic(reg *content.Registry, stream *rng.Stream, features EncounterFeatures) string {
	prob := relicDropProbability
	if features.IsBoss || features.IsMerge {
		prob = relicDropProbabilityHigh
	}
	if stream.Float64() >= prob {
		return ""
	}

	wantTier := content.RelicTierCommon
	if features.IsBoss {
		wantTier = content.RelicTierBoss
	} else if features.IsElite || features.IsMerge {
		wantTier = content.RelicTierRare
	}

	candidates := relicsOfTier(reg, wantTier)
	if len(candidates) == 0 {
		candidates = relicsOfTier(reg, content.RelicTierCommon)
	}
	if len(candidates) == 0 {
		return ""
	}
	idx := stream.IntRange(0, len(candidates)-1)
	return candidates[idx]
}

func relicsOfTier(reg *content.Registry, tier content.RelicTier) []string {
	var ids []string
	for id, r := range reg.Relics {
		if r.Tier == tier {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// pickCardOffers picks §4.7's three-card offer pool: filtered by
// encounter features, then weighted toward the dominant archetype's
// starter tags.
func pickCardOffers(reg *content.Registry, stream *rng.Stream, bias Bias, features EncounterFeatures) []string {
	pool := eligibleCards(reg, features)
	if len(pool) == 0 {
		return nil
	}

	dominant := bias.Dominant()
	favoredTags := archetypeTags(reg, dominant)

	weights := make([]float64, len(pool))
	for i, id := range pool {
		weights[i] = 1.0
		for _, tag := range reg.Cards[id].Tags {
			if favoredTags[tag] {
				weights[i] += 0.5
			}
		}
	}

	picked := make(map[string]bool, cardOfferCount)
	var offers []string
	for len(offers) < cardOfferCount && len(picked) < len(pool) {
		idx := stream.WeightedIndex(weights)
		id := pool[idx]
		if picked[id] {
			weights[idx] = 0
			continue
		}
		picked[id] = true
		weights[idx] = 0
		offers = append(offers, id)
	}
	return offers
}

// eligibleCards filters the content registry's card pool by §4.7's
// encounter-feature rules: large-diff skews offensive/high-cost, merge
// skews rare, elite/boss requires rare-or-better.
func eligibleCards(reg *content.Registry, features EncounterFeatures) []string {
	var ids []string
	for id, c := range reg.Cards {
		if features.IsElite || features.IsBoss {
			if c.Rarity != content.RarityRare && c.Rarity != content.RarityEpic {
				continue
			}
		}
		if features.IsMerge && c.Rarity == content.RarityBasic {
			continue
		}
		if features.LargeDiff && c.Type != content.CardTypeAttack && c.Cost < 2 {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// archetypeTags collects the tag set a dominant archetype favours, drawn
// from its ArchetypeDef.
func archetypeTags(reg *content.Registry, id content.ArchetypeID) map[string]bool {
	tags := make(map[string]bool)
	if def, ok := reg.Archetypes[id]; ok {
		for _, t := range def.Tags {
			tags[t] = true
		}
	}
	return tags
}
