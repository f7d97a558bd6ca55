package engine

import (
	"sort"

	"github.com/louisbranch/gitdungeon/internal/chapter"
	"github.com/louisbranch/gitdungeon/internal/combat"
	"github.com/louisbranch/gitdungeon/internal/content"
	"github.com/louisbranch/gitdungeon/internal/gameerr"
	"github.com/louisbranch/gitdungeon/internal/gevent"
	"github.com/louisbranch/gitdungeon/internal/nodegraph"
	"github.com/louisbranch/gitdungeon/internal/rng"
)

const defaultEnergyMax = 3

// NewRun builds the initial GameState from a repository's commit list, a
// content registry, a root seed, and a mutator tag (§6 "CLI surface").
// Commits must already be ordered oldest-first. Returns a repository
// error if commits is empty (§8 invariant 10, scenario boundary 10).
func NewRun(reg *content.Registry, commits []chapter.Commit, seed int64, mutator chapter.Mutator, runID string) (*GameState, []gevent.Event, error) {
	if len(commits) == 0 {
		return nil, nil, gameerr.New(gameerr.CodeRepoEmpty, "repository has no commits")
	}

	chapters := chapter.Partition(commits, reg.Chapters)

	characterID := firstCharacterID(reg)
	charDef := reg.Characters[characterID]
	archetype := reg.Archetypes[charDef.ArchetypeID]

	deck := make(combat.Deck, 0, len(archetype.StarterCards))
	for _, id := range archetype.StarterCards {
		deck = append(deck, combat.CardInstance{CardID: id})
	}

	player := PlayerState{
		Character: CharacterState{
			Level: 1,
			HP:    charDef.BaseHP, MaxHP: Stat{Base: charDef.BaseHP},
			MP: charDef.BaseMP, MaxMP: Stat{Base: charDef.BaseMP},
			Attack: Stat{Base: charDef.BaseAttack}, Defense: Stat{Base: charDef.BaseDefense},
			Speed: Stat{Base: charDef.BaseSpeed}, Critical: Stat{Base: charDef.BaseCritical},
			Evasion: Stat{Base: charDef.BaseEvasion}, Luck: Stat{Base: charDef.BaseLuck},
			Statuses: map[string]int{},
		},
		RelicIDs: append([]string{}, archetype.StarterRelics...),
		Deck:     deck,
		Energy:   combat.EnergyState{Max: defaultEnergyMax},
	}

	state := &GameState{
		RunID:           runID,
		RootSeed:        seed,
		SchemaVersion:   CurrentSchemaVersion,
		Mutator:         mutator,
		Player:          player,
		Chapters:        chapters,
		ChapterIndex:    0,
		Route:           RouteState{EventFlags: map[string]string{}},
		TurnPhase:       PhaseOutOfCombat,
		RepoFingerprint: chapter.Fingerprint(commits),
	}

	events := enterChapter(state, reg, 0)
	return state, events, nil
}

// firstCharacterID returns a stable (sorted) default character so a run
// without an explicit character selection is still deterministic.
func firstCharacterID(reg *content.Registry) string {
	var ids []string
	for id := range reg.Characters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

// enterChapter generates the chapter's node graph, maps combat nodes to
// representative commits, resets the route cursor, and emits
// chapter_started (§4.4, §4.9).
func enterChapter(state *GameState, reg *content.Registry, chapterIdx int) []gevent.Event {
	ch := state.Chapters[chapterIdx]
	enemyCount := countCombatEligibleCommits(ch)

	params := nodegraph.Params{
		ChapterIndex: chapterIdx,
		EnemyCount:   enemyCount,
		HasBoss:      ch.Config.BossChance > 0 && enemyCount > 0,
		HasEvents:    true,
	}
	nodes := nodegraph.Generate(state.RootSeed, params)
	nodegraph.MapCombatNodes(nodes, len(ch.Commits))

	state.Nodes = nodes
	state.Route.CurrentNodeID = 0
	state.Route.VisitedNodeIDs = nil
	state.ChapterIndex = chapterIdx

	return []gevent.Event{state.emit(gevent.TypeChapterStarted, gevent.ActorSystem, gevent.ChapterStartedPayload{
		ChapterIndex: chapterIdx, ChapterType: string(ch.Type),
	})}
}

// countCombatEligibleCommits is the chapter's enemy budget: every commit
// in the chapter is combat-eligible (§4.3/§4.4 "every combat-eligible
// commit gets a node").
func countCombatEligibleCommits(ch chapter.Chapter) int {
	return len(ch.Commits)
}

// emit stamps an event with the run's monotonically increasing sequence
// number (§4.9) and advances the counter.
func (s *GameState) emit(t gevent.Type, actor gevent.ActorType, payload any) gevent.Event {
	s.EventSeq++
	return gevent.Event{Type: t, Seq: s.EventSeq, Actor: actor, Payload: payload}
}

// errorEvent builds the single illegal-action error event §8 invariant 4
// requires, without advancing any other state.
func (s *GameState) errorEvent(err error) []gevent.Event {
	return []gevent.Event{s.emit(gevent.TypeError, gevent.ActorSystem, gevent.ErrorPayload{
		Code:    string(gameerr.GetCode(err)),
		Message: err.Error(),
	})}
}

// enemyStreamFor derives the combat sub-stream for a node, scoped by
// chapter and node position so it never collides with node-graph or
// reward randomness for the same indices (§4.1).
func enemyStreamFor(rootSeed int64, chapterIdx, nodeID int) *rng.Stream {
	return rng.Derive(rootSeed, rng.DomainCombatRolls, int64(chapterIdx), int64(nodeID))
}
