package nodegraph

import (
	"github.com/louisbranch/gitdungeon/internal/rng"
)

// Generate produces the ordered node sequence for one chapter. It derives
// its own sub-stream from (rootSeed, rng.DomainNodeGraph, chapterIndex),
// so the same inputs always produce the same sequence regardless of
// what else in the run has consumed randomness.
func Generate(rootSeed int64, p Params) []Node {
	stream := rng.Derive(rootSeed, rng.DomainNodeGraph, int64(p.ChapterIndex))
	return generateWithStream(stream, p)
}

func generateWithStream(stream *rng.Stream, p Params) []Node {
	if p.EnemyCount == 0 {
		return degenerateChapter(p)
	}

	count := nodeCount(p.EnemyCount)
	kinds := make([]Kind, count)
	for i := range kinds {
		kinds[i] = KindBattle
	}

	lastCombatIdx := count - 1
	if p.HasBoss {
		kinds[count-1] = KindBoss
		lastCombatIdx = count - 2
	}

	// Elite: at most once for chapters of <=6 nodes, at most twice for
	// larger chapters, never on the boss slot.
	eliteBudget := 1
	if count > 6 {
		eliteBudget = 2
	}
	eliteCandidates := battleSlots(kinds, lastCombatIdx)
	for i := 0; i < eliteBudget && len(eliteCandidates) > 0; i++ {
		pick := stream.IntRange(0, len(eliteCandidates)-1)
		idx := eliteCandidates[pick]
		kinds[idx] = KindElite
		eliteCandidates = append(eliteCandidates[:pick], eliteCandidates[pick+1:]...)
	}

	// Rest and shop at roughly even intervals: one of each per ~4 nodes,
	// alternating, never on the first or last slot.
	interval := 4
	nextIsRest := true
	for i := interval; i < lastCombatIdx; i += interval {
		if kinds[i] != KindBattle {
			continue
		}
		if nextIsRest {
			kinds[i] = KindRest
		} else {
			kinds[i] = KindShop
		}
		nextIsRest = !nextIsRest
	}

	// Events only if the chapter has events enabled: roughly one per 5
	// nodes, drawn from remaining battle slots.
	if p.HasEvents {
		eventBudget := count / 5
		candidates := battleSlots(kinds, lastCombatIdx)
		for i := 0; i < eventBudget && len(candidates) > 0; i++ {
			pick := stream.IntRange(0, len(candidates)-1)
			idx := candidates[pick]
			kinds[idx] = KindEvent
			candidates = append(candidates[:pick], candidates[pick+1:]...)
		}
	}

	nodes := make([]Node, count)
	for i, k := range kinds {
		nodes[i] = Node{Position: i, Kind: k, CommitIndex: -1}
	}
	return nodes
}

// degenerateChapter is the zero-commit chapter route spec.md §8 invariant
// 11 requires: no combat nodes (there is nothing to fight), only an
// optional event, then immediate completion.
func degenerateChapter(p Params) []Node {
	if p.HasEvents {
		return []Node{{Position: 0, Kind: KindEvent, CommitIndex: -1}}
	}
	return []Node{{Position: 0, Kind: KindTreasure, CommitIndex: -1}}
}

func battleSlots(kinds []Kind, upTo int) []int {
	var out []int
	for i := 0; i <= upTo && i < len(kinds); i++ {
		if kinds[i] == KindBattle {
			out = append(out, i)
		}
	}
	return out
}
