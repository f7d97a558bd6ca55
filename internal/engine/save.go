package engine

import (
	"sort"

	"github.com/louisbranch/gitdungeon/internal/chapter"
)

// CurrentSchemaVersion is the save format's current version (§6 "Save
// format (stable)"); writers always emit this, readers accept any
// version at or below it via Migrate.
const CurrentSchemaVersion = 1

// ActionRecord is one entry in a SavedRun's action log: enough to
// reconstruct the Action that produced it (§6 "action_log (ordered list
// of action records)").
type ActionRecord struct {
	Kind            ActionKind `json:"kind"`
	HandIndex       int        `json:"hand_index,omitempty"`
	ChoiceIndex     int        `json:"choice_index,omitempty"`
	OfferID         string     `json:"offer_id,omitempty"`
	RestOption      string     `json:"rest_option,omitempty"`
	RewardOption    string     `json:"reward_option,omitempty"`
	RewardCardIndex int        `json:"reward_card_index,omitempty"`
}

// ToAction converts a stored record back into the Action Apply expects.
func (r ActionRecord) ToAction() Action {
	return Action{
		Kind: r.Kind, HandIndex: r.HandIndex, ChoiceIndex: r.ChoiceIndex, OfferID: r.OfferID, RestOption: r.RestOption,
		RewardOption: r.RewardOption, RewardCardIndex: r.RewardCardIndex,
	}
}

// FromAction captures an Action as a storable record.
func FromAction(a Action) ActionRecord {
	return ActionRecord{
		Kind: a.Kind, HandIndex: a.HandIndex, ChoiceIndex: a.ChoiceIndex, OfferID: a.OfferID, RestOption: a.RestOption,
		RewardOption: a.RewardOption, RewardCardIndex: a.RewardCardIndex,
	}
}

// SavedRun is §6's stable save document shape: an external collaborator
// owns the actual JSON codec/file I/O, but this struct is the concrete,
// round-trippable record it marshals.
type SavedRun struct {
	SchemaVersion  int            `json:"schema_version"`
	RunID          string         `json:"run_id"`
	Seed           int64          `json:"seed"`
	Mutator        string         `json:"mutator"`
	ContentPackIDs []string       `json:"content_pack_ids"`
	ActionLog      []ActionRecord `json:"action_log"`
	State          StateSnapshot  `json:"state"`
}

// StateSnapshot mirrors §3's Game state for fast load, independent of
// replaying the full action log.
type StateSnapshot struct {
	ChapterIndex      int             `json:"chapter_index"`
	CommitCursor      int             `json:"commit_cursor"`
	CurrentNodeID     int             `json:"current_node_id"`
	VisitedNodeIDs    []int           `json:"visited_node_ids"`
	Gold              int             `json:"gold"`
	HP                int             `json:"hp"`
	MaxHP             int             `json:"max_hp"`
	DeckCardIDs       []string        `json:"deck_card_ids"`
	RelicIDs          []string        `json:"relic_ids"`
	EnemiesDefeated   []string        `json:"enemies_defeated"`
	ChaptersCompleted []int           `json:"chapters_completed"`
	IsGameOver        bool            `json:"is_game_over"`
	IsVictory         bool            `json:"is_victory"`
}

// Save projects a GameState plus its accumulated action log into the
// stable save document. packIDs should be reg.PackIDs (already sorted).
func Save(state *GameState, packIDs []string, actionLog []ActionRecord) SavedRun {
	sorted := append([]string{}, packIDs...)
	sort.Strings(sorted)

	deckIDs := make([]string, len(state.Player.Deck))
	for i, c := range state.Player.Deck {
		deckIDs[i] = c.CardID
	}

	return SavedRun{
		SchemaVersion:  CurrentSchemaVersion,
		RunID:          state.RunID,
		Seed:           state.RootSeed,
		Mutator:        state.Mutator.Name,
		ContentPackIDs: sorted,
		ActionLog:      actionLog,
		State: StateSnapshot{
			ChapterIndex: state.ChapterIndex, CommitCursor: state.CommitCursor,
			CurrentNodeID: state.Route.CurrentNodeID, VisitedNodeIDs: append([]int{}, state.Route.VisitedNodeIDs...),
			Gold: state.Player.Gold, HP: state.Player.Character.HP, MaxHP: state.Player.Character.MaxHP.Value(),
			DeckCardIDs: deckIDs, RelicIDs: append([]string{}, state.Player.RelicIDs...),
			EnemiesDefeated: append([]string{}, state.EnemiesDefeated...), ChaptersCompleted: append([]int{}, state.ChaptersCompleted...),
			IsGameOver: state.IsGameOver, IsVictory: state.IsVictory,
		},
	}
}

// Migrate upgrades an older schema version's document in place. There is
// only one schema version so far; this is the seam future versions hook
// into (§6 "readers must accept older schema versions and upgrade in
// memory").
func Migrate(doc SavedRun) SavedRun {
	if doc.SchemaVersion < CurrentSchemaVersion {
		doc.SchemaVersion = CurrentSchemaVersion
	}
	return doc
}

// mutatorByName resolves a stored mutator tag back to its scaling
// values, falling back to chapter.StandardMutator for an unrecognised
// or empty tag.
func mutatorByName(name string) chapter.Mutator {
	switch name {
	case chapter.HardMutator.Name:
		return chapter.HardMutator
	default:
		return chapter.StandardMutator
	}
}
