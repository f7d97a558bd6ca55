package combat

import (
	"sort"

	"github.com/louisbranch/gitdungeon/internal/content"
	"github.com/louisbranch/gitdungeon/internal/rng"
)

// Intent is the enemy's pre-declared next action (§3).
type Intent struct {
	Kind      content.IntentKind
	Value     int
	StatusID  string
	Magnitude int
}

// EnemyState is the runtime enemy during a battle (§3).
type EnemyState struct {
	ContentID  string
	Name       string
	MaxHP      int
	CurrentHP  int
	Attack     int
	Defense    int
	Statuses   StatusStacks
	Intent     Intent
	GoldReward int
	ExpReward  int
	IsBoss     bool

	cyclicOrder []content.IntentKind
	cyclicPos   int
}

// IsDefeated reports whether the enemy's HP has reached zero.
func (e EnemyState) IsDefeated() bool {
	return e.CurrentHP <= 0
}

// Block reads the current block stack count; block is modeled as a
// status (§4.6) rather than a bare field; the battle clears it at its
// owner's turn start, and nothing retains it across that reset.
func (e EnemyState) Block() int {
	return e.Statuses.Get("block")
}

// SelectIntent draws the enemy's next intent per §9(i)'s resolved rules
// for the four AI patterns, consuming stream as documented per pattern.
func SelectIntent(def content.EnemyDef, e *EnemyState, stream *rng.Stream) Intent {
	switch def.AIPattern {
	case content.AIPatternAggressive:
		if intent, ok := weightedAmong(def, e, stream, content.IntentAttack, content.IntentCharge); ok {
			return intent
		}
		return weightedBasic(def, e, stream)
	case content.AIPatternDefensive:
		if intent, ok := weightedAmong(def, e, stream, content.IntentDefend, content.IntentBuff, content.IntentDebuff); ok {
			return intent
		}
		return weightedBasic(def, e, stream)
	case content.AIPatternCyclic:
		return cyclicIntent(def, e, stream)
	default:
		return weightedBasic(def, e, stream)
	}
}

func weightedBasic(def content.EnemyDef, e *EnemyState, stream *rng.Stream) Intent {
	kinds, weights := sortedPreferences(def.IntentPreference)
	idx := stream.WeightedIndex(weights)
	return Intent{Kind: kinds[idx], Value: intentValue(kinds[idx], e)}
}

func weightedAmong(def content.EnemyDef, e *EnemyState, stream *rng.Stream, allowed ...content.IntentKind) (Intent, bool) {
	var kinds []content.IntentKind
	var weights []float64
	for _, k := range allowed {
		if w, ok := def.IntentPreference[k]; ok && w > 0 {
			kinds = append(kinds, k)
			weights = append(weights, w)
		}
	}
	if len(kinds) == 0 {
		return Intent{}, false
	}
	idx := stream.WeightedIndex(weights)
	return Intent{Kind: kinds[idx], Value: intentValue(kinds[idx], e)}, true
}

// cyclicIntent walks a fixed repeating sequence derived once from
// intent_preference by sorting kinds by descending weight; ties are
// broken by an RNG-drawn tiebreaker float drawn once at first roll, per
// §9(i).
func cyclicIntent(def content.EnemyDef, e *EnemyState, stream *rng.Stream) Intent {
	if e.cyclicOrder == nil {
		kinds, weights := sortedPreferences(def.IntentPreference)
		type weighted struct {
			kind      content.IntentKind
			weight    float64
			tiebreak  float64
		}
		ws := make([]weighted, len(kinds))
		for i, k := range kinds {
			ws[i] = weighted{kind: k, weight: weights[i], tiebreak: stream.Float64()}
		}
		sort.SliceStable(ws, func(i, j int) bool {
			if ws[i].weight != ws[j].weight {
				return ws[i].weight > ws[j].weight
			}
			return ws[i].tiebreak > ws[j].tiebreak
		})
		e.cyclicOrder = make([]content.IntentKind, len(ws))
		for i, w := range ws {
			e.cyclicOrder[i] = w.kind
		}
	}
	kind := e.cyclicOrder[e.cyclicPos%len(e.cyclicOrder)]
	e.cyclicPos++
	return Intent{Kind: kind, Value: intentValue(kind, e)}
}

// sortedPreferences returns intent kinds and parallel weights, sorted by
// kind name so that WeightedIndex draws are stable across map iteration.
func sortedPreferences(pref map[content.IntentKind]float64) ([]content.IntentKind, []float64) {
	kinds := make([]content.IntentKind, 0, len(pref))
	for k := range pref {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	weights := make([]float64, len(kinds))
	for i, k := range kinds {
		weights[i] = pref[k]
	}
	return kinds, weights
}

// intentValue is the declared magnitude an intent resolves with: attack
// carries the enemy's current attack stat as its raw damage value (§4.5
// "attack deals declared value"), defend and charge carry fixed small
// magnitudes, buff/debuff/escape carry no numeric value.
func intentValue(kind content.IntentKind, e *EnemyState) int {
	switch kind {
	case content.IntentAttack:
		return e.Attack
	case content.IntentDefend:
		return 5
	case content.IntentCharge:
		return 2
	default:
		return 0
	}
}
