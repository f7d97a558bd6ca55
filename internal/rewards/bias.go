// Package rewards implements the post-combat reward bundle generator and
// the archetype-bias pipeline (spec.md §4.7).
package rewards

import "github.com/louisbranch/gitdungeon/internal/content"

// weightPerOccurrence is the fixed per-pick magnitude each tagged
// card/relic contributes to its archetype, grounded on original_source's
// ArchetypeBias.record_choice (+0.1 per occurrence).
const weightPerOccurrence = 0.1

// tagToArchetype maps a content tag to the archetype dimension it feeds,
// per original_source's rewards.py tag_to_weight table.
var tagToArchetype = map[string]content.ArchetypeID{
	"debug":     content.ArchetypeDebug,
	"offensive": content.ArchetypeDebug,
	"test":      content.ArchetypeTest,
	"defensive": content.ArchetypeTest,
	"refactor":  content.ArchetypeRefactor,
	"risk":      content.ArchetypeRefactor,
}

// Bias is the per-archetype scalar triple accumulated from reward picks
// (§4.7, GLOSSARY "Bias").
type Bias struct {
	Debug    float64
	Test     float64
	Refactor float64
}

func (b *Bias) add(a content.ArchetypeID, amount float64) {
	switch a {
	case content.ArchetypeDebug:
		b.Debug += amount
	case content.ArchetypeTest:
		b.Test += amount
	case content.ArchetypeRefactor:
		b.Refactor += amount
	}
}

// RecordChoice updates the bias from the tags carried by a picked
// card or relic.
func (b *Bias) RecordChoice(tags []string) {
	for _, tag := range tags {
		if a, ok := tagToArchetype[tag]; ok {
			b.add(a, weightPerOccurrence)
		}
	}
}

// ApplyDelta folds a set of per-archetype deltas (as produced by
// eventops' modify_bias opcode, which has no notion of this package's
// named fields) into the bias in place.
func (b *Bias) ApplyDelta(deltas map[content.ArchetypeID]float64) {
	for a, amount := range deltas {
		b.add(a, amount)
	}
}

// Normalized returns the bias scaled so its three components sum to 1,
// for reading at reward time (§4.7 "accumulated magnitudes are
// normalised when read"). A zero bias normalizes to equal thirds.
func (b Bias) Normalized() Bias {
	total := b.Debug + b.Test + b.Refactor
	if total <= 0 {
		return Bias{Debug: 1.0 / 3, Test: 1.0 / 3, Refactor: 1.0 / 3}
	}
	return Bias{Debug: b.Debug / total, Test: b.Test / total, Refactor: b.Refactor / total}
}

// Dominant returns the archetype with the largest normalized weight.
func (b Bias) Dominant() content.ArchetypeID {
	n := b.Normalized()
	dominant := content.ArchetypeDebug
	best := n.Debug
	if n.Test > best {
		dominant, best = content.ArchetypeTest, n.Test
	}
	if n.Refactor > best {
		dominant = content.ArchetypeRefactor
	}
	return dominant
}
