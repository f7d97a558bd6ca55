// Package engine implements the run orchestrator (spec.md §4.9): a single
// pure transition `Apply(state, action) -> (state', events)` that
// sequences the RNG, content, chapter, node graph, combat, rewards, and
// event-opcode layers into one deterministic game loop.
package engine

import (
	"github.com/louisbranch/gitdungeon/internal/chapter"
	"github.com/louisbranch/gitdungeon/internal/combat"
	"github.com/louisbranch/gitdungeon/internal/content"
	"github.com/louisbranch/gitdungeon/internal/nodegraph"
	"github.com/louisbranch/gitdungeon/internal/rewards"
)

// Stat is a (base, modifier) pair (§3 "Character state").
type Stat struct {
	Base     int
	Modifier int
}

// Value is the stat's effective value.
func (s Stat) Value() int {
	return s.Base + s.Modifier
}

// CharacterState is the player's stat block plus status stacks (§3).
type CharacterState struct {
	Level      int
	HP         int
	MaxHP      Stat
	MP         int
	MaxMP      Stat
	Experience int
	Attack     Stat
	Defense    Stat
	Speed      Stat
	Critical   Stat
	Evasion    Stat
	Luck       Stat
	Statuses   map[string]int
}

// PlayerState is the character state plus run-level resources (§3).
type PlayerState struct {
	Character CharacterState
	Gold      int
	RelicIDs  []string
	Deck      combat.Deck
	Energy    combat.EnergyState
	Bias      rewards.Bias
}

// RouteState tracks per-run route progress (§3).
type RouteState struct {
	CurrentNodeID int
	VisitedNodeIDs []int
	EventFlags     map[string]string
}

// EncounterKind tags which sub-state, if any, is active.
type EncounterKind string

const (
	EncounterNone   EncounterKind = ""
	EncounterBattle EncounterKind = "battle"
	EncounterEvent  EncounterKind = "event"
	EncounterShop   EncounterKind = "shop"
	EncounterReward EncounterKind = "reward"
)

// ShopOffer is one purchasable entry in a shop encounter.
type ShopOffer struct {
	ID      string
	Kind    string // "card" or "relic"
	RefID   string
	Price   int
}

// ShopState is the active shop encounter's offer list (§4.4 "shop").
type ShopState struct {
	Offers []ShopOffer
}

// EventState is the active event encounter (§4.4 "event").
type EventState struct {
	EventID string
}

// RewardState is the active post-battle reward encounter (§4.7): a
// card offer the player must pick from or skip, plus any relic drop
// pending the same pick.
type RewardState struct {
	CardOffers []string
	RelicOffer string
	HealOffer  bool
}

// Phase mirrors combat.Phase at the orchestrator level, plus the
// out-of-combat default.
type Phase string

const (
	PhaseOutOfCombat Phase = "out_of_combat"
	PhasePlayer      Phase = "player"
	PhaseEnemy       Phase = "enemy"
	PhaseResolution  Phase = "resolution"
)

// GameState is the top-level run state (§3 "Game state").
type GameState struct {
	RunID         string
	RootSeed      int64
	SchemaVersion int
	RepoFingerprint string
	Mutator       chapter.Mutator

	Player PlayerState

	Chapters       []chapter.Chapter
	ChapterIndex   int
	CommitCursor   int
	Nodes          []nodegraph.Node

	EncounterKind EncounterKind
	Battle        *combat.Battle
	Shop          *ShopState
	Event         *EventState
	Reward        *RewardState

	InCombat   bool
	TurnNumber int
	TurnPhase  Phase

	EnemiesDefeated   []string
	ChaptersCompleted []int

	Route RouteState

	IsGameOver bool
	IsVictory  bool
	Difficulty string

	// EventSeq is the monotonically increasing per-run event counter
	// (§4.9); it is incremented before each emitted event is stamped with
	// it, so the first event carries Seq 1.
	EventSeq uint64

	// lastEncounterFeatures carries the active battle's encounter shape
	// from applyStartCombat through to finishBattle, since combat.Battle
	// itself has no notion of reward-pool bias (§4.7's concern, not
	// combat's).
	lastEncounterFeatures rewards.EncounterFeatures
}

// CurrentChapter returns the chapter the run's cursor currently points
// at, or the zero value and false if the run has completed every chapter.
func (s *GameState) CurrentChapter() (chapter.Chapter, bool) {
	if s.ChapterIndex < 0 || s.ChapterIndex >= len(s.Chapters) {
		return chapter.Chapter{}, false
	}
	return s.Chapters[s.ChapterIndex], true
}

// CurrentNode returns the node the route cursor currently points at.
func (s *GameState) CurrentNode() (nodegraph.Node, bool) {
	if s.Route.CurrentNodeID < 0 || s.Route.CurrentNodeID >= len(s.Nodes) {
		return nodegraph.Node{}, false
	}
	return s.Nodes[s.Route.CurrentNodeID], true
}

// Registry is an alias of content.Registry, not a wrapper, so callers
// pass their *content.Registry unchanged.
type Registry = content.Registry
